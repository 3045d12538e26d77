package sim

import (
	"fmt"
	"math"

	"github.com/fund-sim/fund-sim/sim/cashflow"
	"github.com/fund-sim/fund-sim/sim/outcome"
	"github.com/fund-sim/fund-sim/sim/returns"
)

// SimulationResult is the outcome of one fund trial. It is owned by the trial
// that produced it and read-only afterwards.
type SimulationResult struct {
	Config FundConfig
	Deals  []Deal
	Events []cashflow.Event

	// LPGross is the LP series before carry, LPNet after carry, GP the carry
	// paid to the manager. All have length FundLifeYears+1.
	LPGross cashflow.Series
	LPNet   cashflow.Series
	GP      cashflow.Series

	Invested      float64
	Distributed   float64
	FollowOnTotal float64
	HurdleTarget  float64
	Carry         float64

	// GrossIRR and NetIRR are NaN when undefined.
	GrossIRR  float64
	NetIRR    float64
	GrossMOIC float64
	NetMOIC   float64
}

// GrossIRRDefined reports whether the gross IRR could be solved.
func (r *SimulationResult) GrossIRRDefined() bool { return !math.IsNaN(r.GrossIRR) }

// NetIRRDefined reports whether the net IRR could be solved.
func (r *SimulationResult) NetIRRDefined() bool { return !math.IsNaN(r.NetIRR) }

// SimulateFund runs one complete fund trial. It is a pure function of cfg and
// rng: outcomes come from the rng's outcome stream and exit years from its
// exit stream.
func SimulateFund(cfg FundConfig, rng *PartitionedRNG) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sampler, err := outcome.NewMultipleSampler(cfg.OutcomeSpec())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	policy, err := ParseFollowOnPolicy(string(cfg.FollowOnPolicy))
	if err != nil {
		return nil, err
	}

	deals := drawDeals(cfg, sampler, rng)
	followOns := AllocateFollowOns(policy, deals, cfg.ReservePool(), cfg.InvestPeriod, cfg.FundLifeYears)
	followOnTotal := 0.0
	for _, f := range followOns {
		d := &deals[f.Deal]
		d.FollowOn = f.Amount
		d.FollowOnYear = f.Year
		d.HasFollowOn = true
		followOnTotal += f.Amount
	}

	events := BuildEvents(cfg, deals)
	gross, err := cashflow.Fold(events, cfg.FundLifeYears)
	if err != nil {
		return nil, fmt.Errorf("building LP cash flows: %w", err)
	}
	invested, distributed := cashflow.Totals(events)
	w := cashflow.ApplyCarry(gross, invested, distributed, cashflow.Terms{
		CarryRate:  cfg.CarryRate,
		HurdleRate: cfg.HurdleRate,
		FundLife:   cfg.FundLifeYears,
	})

	return &SimulationResult{
		Config:        cfg,
		Deals:         deals,
		Events:        events,
		LPGross:       gross,
		LPNet:         w.NetLP,
		GP:            w.GP,
		Invested:      invested,
		Distributed:   distributed,
		FollowOnTotal: followOnTotal,
		HurdleTarget:  w.HurdleTarget,
		Carry:         w.Carry,
		GrossIRR:      solveIRR(gross),
		NetIRR:        solveIRR(w.NetLP),
		GrossMOIC:     returns.MOIC(distributed, invested),
		NetMOIC:       returns.MOIC(distributed-w.Carry, invested),
	}, nil
}

// drawDeals writes the initial checks and draws every deal's multiple and
// exit year. All multiples are drawn before any exit year.
func drawDeals(cfg FundConfig, sampler outcome.MultipleSampler, rng *PartitionedRNG) []Deal {
	check := cfg.InitialCheck()
	multiples := outcome.SampleN(sampler, rng.ForSubsystem(SubsystemOutcome), cfg.NumDeals)
	exitRNG := rng.ForSubsystem(SubsystemExit)

	deals := make([]Deal, cfg.NumDeals)
	for i := range deals {
		investYear := InvestYear(i, cfg.NumDeals, cfg.InvestPeriod)
		exitYear := outcome.ExitYear(exitRNG, multiples[i], cfg.FundLifeYears)
		if exitYear < investYear {
			exitYear = investYear
		}
		deals[i] = Deal{
			Index:        i,
			InitialCheck: check,
			InvestYear:   investYear,
			Multiple:     multiples[i],
			ExitYear:     exitYear,
		}
	}
	return deals
}

// BuildEvents lists every LP cash-flow event of the fund: initial checks,
// follow-on checks, exit proceeds and management fees.
func BuildEvents(cfg FundConfig, deals []Deal) []cashflow.Event {
	events := make([]cashflow.Event, 0, 3*len(deals)+cfg.FundLifeYears)
	for _, d := range deals {
		events = append(events, cashflow.Call(d.Index, d.InvestYear, d.InitialCheck, cashflow.KindInitialCheck))
		if d.HasFollowOn {
			events = append(events, cashflow.Call(d.Index, d.FollowOnYear, d.FollowOn, cashflow.KindFollowOn))
		}
		events = append(events, cashflow.Proceeds(d.Index, d.ExitYear, d.Proceeds()))
	}
	return append(events, cashflow.ManagementFees(cfg.MgmtFeeRate, cfg.FundSize, cfg.FundLifeYears)...)
}

// solveIRR maps an unsolvable series to NaN; the trial itself stays valid.
func solveIRR(s cashflow.Series) float64 {
	irr, err := returns.IRR(s)
	if err != nil {
		return math.NaN()
	}
	return irr
}
