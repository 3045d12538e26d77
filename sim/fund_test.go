package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fund-sim/fund-sim/sim/cashflow"
	"github.com/fund-sim/fund-sim/sim/outcome"
)

func runTrial(t *testing.T, cfg FundConfig, seed int64) *SimulationResult {
	t.Helper()
	r, err := SimulateFund(cfg, NewPartitionedRNG(NewSimulationKey(seed)))
	require.NoError(t, err)
	return r
}

// configVariants covers every distribution mode and follow-on policy plus
// short and long fund lives.
func configVariants() map[string]FundConfig {
	out := map[string]FundConfig{}
	for _, mode := range []outcome.Mode{outcome.ModeDiscrete, outcome.ModeLogNormal, outcome.ModePareto} {
		for _, policy := range []FollowOnPolicy{FollowOnNone, FollowOnTopQuartile} {
			cfg := DefaultFundConfig()
			cfg.DistMode = mode
			cfg.FollowOnPolicy = policy
			out[string(mode)+"/"+string(policy)] = cfg
		}
	}
	short := DefaultFundConfig()
	short.FundLifeYears = 5
	short.InvestPeriod = 4
	out["short fund"] = short

	long := DefaultFundConfig()
	long.FundLifeYears = 14
	long.NumDeals = 7
	long.ReserveRatio = 0.05
	out["long fund few deals"] = long
	return out
}

func TestSimulateFund_Invariants(t *testing.T) {
	for name, cfg := range configVariants() {
		t.Run(name, func(t *testing.T) {
			for seed := int64(0); seed < 25; seed++ {
				r := runTrial(t, cfg, seed)

				// series lengths
				assert.Len(t, r.LPGross, cfg.FundLifeYears+1)
				assert.Len(t, r.LPNet, cfg.FundLifeYears+1)
				assert.Len(t, r.GP, cfg.FundLifeYears+1)

				// initial checks sum to the deployable capital
				initial := 0.0
				followOn := 0.0
				for _, d := range r.Deals {
					initial += d.InitialCheck
					followOn += d.FollowOn
					assert.GreaterOrEqual(t, d.ExitYear, d.InvestYear, "deal %d", d.Index)
					assert.LessOrEqual(t, d.ExitYear, cfg.FundLifeYears, "deal %d", d.Index)
					if d.HasFollowOn {
						assert.GreaterOrEqual(t, d.ExitYear, d.FollowOnYear, "deal %d", d.Index)
						assert.GreaterOrEqual(t, d.FollowOnYear, d.InvestYear, "deal %d", d.Index)
					}
					assert.GreaterOrEqual(t, d.Multiple, 0.0)
				}
				assert.InDelta(t, cfg.FundSize*(1-cfg.ReserveRatio), initial, 1e-6)
				assert.LessOrEqual(t, followOn, cfg.ReservePool()+1e-6)
				assert.InDelta(t, followOn, r.FollowOnTotal, 1e-9)

				assert.GreaterOrEqual(t, r.Carry, 0.0)
				assert.GreaterOrEqual(t, r.NetMOIC, 0.0)
				assert.LessOrEqual(t, r.NetMOIC, r.GrossMOIC)

				// net = gross - carry in the final year only
				last := cfg.FundLifeYears
				assert.InDelta(t, r.LPGross[last]-r.Carry, r.LPNet[last], 1e-6)
				assert.Equal(t, r.Carry, r.GP[last])
				assert.InDelta(t, r.Carry, r.GP.Sum(), 1e-9)

				// the folded series conserves every event
				assert.InDelta(t, r.Distributed-r.Invested, r.LPGross.Sum(), 1e-3)
			}
		})
	}
}

func TestSimulateFund_NoneFollowOnPolicy(t *testing.T) {
	for _, ratio := range []float64{0, 0.2, 0.6, 0.95} {
		cfg := DefaultFundConfig()
		cfg.FollowOnPolicy = FollowOnNone
		cfg.ReserveRatio = ratio
		r := runTrial(t, cfg, 7)
		for _, d := range r.Deals {
			assert.Zero(t, d.FollowOn)
			assert.False(t, d.HasFollowOn)
		}
		assert.Zero(t, r.FollowOnTotal)
		for _, e := range r.Events {
			assert.NotEqual(t, cashflow.KindFollowOn, e.Kind)
		}
	}
}

func TestSimulateFund_InvestedIncludesFees(t *testing.T) {
	cfg := DefaultFundConfig()
	r := runTrial(t, cfg, 1)
	fees := cfg.MgmtFeeRate * cfg.FundSize * float64(cfg.FundLifeYears)
	want := cfg.FundSize*(1-cfg.ReserveRatio) + r.FollowOnTotal + fees
	assert.InDelta(t, want, r.Invested, 1e-3)

	proceeds := 0.0
	for _, d := range r.Deals {
		proceeds += d.Proceeds()
	}
	assert.InDelta(t, proceeds, r.Distributed, 1e-3)
	assert.InDelta(t, r.Distributed/r.Invested, r.GrossMOIC, 1e-12)
}

func TestSimulateFund_IdenticalSeedIsBitIdentical(t *testing.T) {
	for name, cfg := range configVariants() {
		t.Run(name, func(t *testing.T) {
			a := runTrial(t, cfg, 123)
			b := runTrial(t, cfg, 123)

			assert.Equal(t, a.Deals, b.Deals)
			assert.Equal(t, a.Events, b.Events)
			assert.Equal(t, a.LPGross, b.LPGross)
			assert.Equal(t, a.LPNet, b.LPNet)
			assert.Equal(t, a.GP, b.GP)
			assert.Equal(t, a.Carry, b.Carry)
			assert.Equal(t, a.GrossMOIC, b.GrossMOIC)
			assert.Equal(t, a.NetMOIC, b.NetMOIC)
			// NaN != NaN, so compare IRRs by bit pattern
			assert.Equal(t, math.Float64bits(a.GrossIRR), math.Float64bits(b.GrossIRR))
			assert.Equal(t, math.Float64bits(a.NetIRR), math.Float64bits(b.NetIRR))
		})
	}
}

func TestSimulateFund_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultFundConfig()
	a := runTrial(t, cfg, 1)
	b := runTrial(t, cfg, 2)
	assert.NotEqual(t, a.Deals, b.Deals)
}

func TestSimulateFund_IRRMatchesSeries(t *testing.T) {
	r := runTrial(t, DefaultFundConfig(), 5)
	if r.GrossIRRDefined() {
		assert.InDelta(t, 0, npv(r.LPGross, r.GrossIRR)/1e6, 1e-4)
	}
	if r.NetIRRDefined() {
		assert.InDelta(t, 0, npv(r.LPNet, r.NetIRR)/1e6, 1e-4)
		assert.LessOrEqual(t, r.NetIRR, r.GrossIRR+1e-9)
	}
}

func TestSimulateFund_AllWriteOffsLeaveIRRUndefined(t *testing.T) {
	// GIVEN a lognormal capped at zero, every deal is written off
	cfg := DefaultFundConfig()
	cfg.DistMode = outcome.ModeLogNormal
	cfg.DistParams = map[string]float64{"cap": 1e-300, "meanlog": -1000}
	r := runTrial(t, cfg, 3)

	assert.False(t, r.GrossIRRDefined())
	assert.False(t, r.NetIRRDefined())
	assert.Zero(t, r.Carry)
	assert.InDelta(t, 0, r.GrossMOIC, 1e-9)
}

func TestSimulateFund_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultFundConfig()
	cfg.NumDeals = 0
	_, err := SimulateFund(cfg, NewPartitionedRNG(NewSimulationKey(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBuildEvents_OnePerCheckAndExit(t *testing.T) {
	cfg := DefaultFundConfig()
	cfg.NumDeals = 2
	cfg.FundLifeYears = 5
	cfg.InvestPeriod = 2
	deals := []Deal{
		{Index: 0, InitialCheck: 10, InvestYear: 0, Multiple: 3, ExitYear: 5, FollowOn: 5, FollowOnYear: 3, HasFollowOn: true},
		{Index: 1, InitialCheck: 10, InvestYear: 1, Multiple: 0, ExitYear: 2},
	}
	events := BuildEvents(cfg, deals)

	byKind := map[cashflow.Kind]int{}
	for _, e := range events {
		byKind[e.Kind]++
	}
	assert.Equal(t, 2, byKind[cashflow.KindInitialCheck])
	assert.Equal(t, 1, byKind[cashflow.KindFollowOn])
	assert.Equal(t, 2, byKind[cashflow.KindExitProceeds])
	assert.Equal(t, 5, byKind[cashflow.KindManagementFee])

	s, err := cashflow.Fold(events, 5)
	require.NoError(t, err)
	fee := cfg.MgmtFeeRate * cfg.FundSize
	assert.InDelta(t, -10, s[0], 1e-9)
	assert.InDelta(t, -10-fee, s[1], 1e-9)
	assert.InDelta(t, -fee, s[2], 1e-9)
	assert.InDelta(t, -5-fee, s[3], 1e-9)
	assert.InDelta(t, 45-fee, s[5], 1e-9)
}

func npv(s cashflow.Series, r float64) float64 {
	total := 0.0
	for t, cf := range s {
		total += cf / math.Pow(1+r, float64(t))
	}
	return total
}
