// Package sim provides the single-fund simulator: one trial of a venture fund's
// lifecycle from initial checks to the LP/GP waterfall.
//
// # Reading Guide
//
// Start with these three files to understand a trial:
//   - config.go: FundConfig, its defaults and validation
//   - deal.go: Deal lifecycle (initial check → optional follow-on → exit)
//   - fund.go: SimulateFund, which draws deals, allocates reserves, builds
//     cash flows, applies carry and extracts IRR/MOIC
//
// # Architecture
//
// The sim package owns the trial; the building blocks live in sub-packages:
//   - sim/outcome/: exit multiple samplers (discrete, lognormal, pareto) and the exit-timing rule
//   - sim/cashflow/: capital call and distribution events, per-year folding, the carry waterfall
//   - sim/returns/: NPV, IRR and MOIC
//   - sim/montecarlo/: many trials on a worker pool, summary statistics and exports
//
// # Randomness
//
// SimulateFund never touches global randomness. It draws from a PartitionedRNG
// whose subsystems (outcome, exit) are isolated streams, so the same key and
// config always produce a bit-identical SimulationResult.
package sim
