package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDeals(multiples []float64, exits []int, check float64) []Deal {
	deals := make([]Deal, len(multiples))
	for i := range deals {
		deals[i] = Deal{Index: i, InitialCheck: check, Multiple: multiples[i], ExitYear: exits[i]}
	}
	return deals
}

func TestAllocateFollowOns_NonePolicyAllocatesNothing(t *testing.T) {
	deals := makeDeals([]float64{50, 10, 3, 1}, []int{10, 9, 8, 5}, 100)
	for _, reserve := range []float64{0, 100, 1e9} {
		assert.Empty(t, AllocateFollowOns(FollowOnNone, deals, reserve, 3, 10))
	}
}

func TestAllocateFollowOns_SelectsTopQuartileByScore(t *testing.T) {
	// GIVEN 8 deals; ceil(25% of 8) = 2 are eligible
	multiples := []float64{1, 10, 0, 50, 3, 1, 10, 0}
	exits := []int{5, 6, 3, 10, 8, 7, 9, 2}
	deals := makeDeals(multiples, exits, 100)

	got := AllocateFollowOns(FollowOnTopQuartile, deals, 10_000, 3, 10)

	// scores: deal3=50, deal6=9, deal1=6, deal4=2.4
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Deal)
	assert.Equal(t, 6, got[1].Deal)
	for _, f := range got {
		assert.Equal(t, 100.0, f.Amount, "capped at initial check")
		assert.Equal(t, 4, f.Year, "invest_period + 1")
	}
}

func TestAllocateFollowOns_HalvesRemainingReserve(t *testing.T) {
	// GIVEN a reserve smaller than twice the initial check
	deals := makeDeals([]float64{50, 10, 5, 3}, []int{10, 10, 10, 10}, 100)

	got := AllocateFollowOns(FollowOnTopQuartile, deals, 120, 3, 10)

	// ceil(0.25*4) = 1 deal: min(100, 120/2)
	require.Len(t, got, 1)
	assert.InDelta(t, 60, got[0].Amount, 1e-12)
}

func TestAllocateFollowOns_SequenceOfHalvings(t *testing.T) {
	multiples := make([]float64, 12)
	exits := make([]int, 12)
	for i := range multiples {
		multiples[i] = float64(12 - i)
		exits[i] = 10
	}
	deals := makeDeals(multiples, exits, 100)

	got := AllocateFollowOns(FollowOnTopQuartile, deals, 100, 3, 10)

	require.Len(t, got, 3)
	assert.InDelta(t, 50, got[0].Amount, 1e-12)
	assert.InDelta(t, 25, got[1].Amount, 1e-12)
	assert.InDelta(t, 12.5, got[2].Amount, 1e-12)
}

func TestAllocateFollowOns_NeverExceedsReserve(t *testing.T) {
	for _, reserve := range []float64{0, 1, 50, 250, 1000, 1e6} {
		multiples := make([]float64, 40)
		exits := make([]int, 40)
		for i := range multiples {
			multiples[i] = float64(i % 7)
			exits[i] = 2 + i%9
		}
		got := AllocateFollowOns(FollowOnTopQuartile, makeDeals(multiples, exits, 100), reserve, 3, 10)
		total := 0.0
		for _, f := range got {
			total += f.Amount
		}
		assert.LessOrEqual(t, total, reserve, "reserve %v", reserve)
	}
}

func TestAllocateFollowOns_ZeroReserve(t *testing.T) {
	deals := makeDeals([]float64{50, 10}, []int{10, 9}, 100)
	assert.Empty(t, AllocateFollowOns(FollowOnTopQuartile, deals, 0, 3, 10))
}

func TestAllocateFollowOns_TiesBrokenByIndex(t *testing.T) {
	deals := makeDeals([]float64{3, 3, 3, 3, 3, 3, 3, 3}, []int{8, 8, 8, 8, 8, 8, 8, 8}, 10)
	got := AllocateFollowOns(FollowOnTopQuartile, deals, 1000, 3, 10)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Deal)
	assert.Equal(t, 1, got[1].Deal)
}

func TestFollowOnYear(t *testing.T) {
	tests := []struct {
		name       string
		investYear int
		exitYear   int
		want       int
	}{
		{"late exit", 0, 10, 4},
		{"early exit pulls follow-on in", 0, 3, 2},
		{"never before initial check", 2, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deal{InvestYear: tt.investYear, ExitYear: tt.exitYear}
			assert.Equal(t, tt.want, followOnYear(d, 3))
		})
	}
}

func TestInvestYear_SpreadsAcrossInvestmentPeriod(t *testing.T) {
	counts := map[int]int{}
	for i := 0; i < 30; i++ {
		counts[InvestYear(i, 30, 3)]++
	}
	assert.Equal(t, map[int]int{0: 10, 1: 10, 2: 10}, counts)
	assert.Equal(t, 0, InvestYear(0, 1, 5))
}
