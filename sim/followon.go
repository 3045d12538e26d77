package sim

import (
	"math"
	"sort"
)

// topQuartileShare is the fraction of deals eligible for follow-on capital.
const topQuartileShare = 0.25

// FollowOn is one reserve allocation.
type FollowOn struct {
	Deal   int
	Amount float64
	Year   int
}

// FollowOnScore ranks a deal for follow-on: multiple weighted by how late
// in the fund life it exits.
func FollowOnScore(d Deal, fundLife int) float64 {
	return d.Multiple * float64(d.ExitYear) / float64(fundLife)
}

// AllocateFollowOns decides which deals receive reserve capital. Deals must
// carry their drawn multiple and exit year. The allocation is deterministic
// given those draws and never exceeds reserve in total.
//
// Under top_quartile, the ceil(25%) highest-scoring deals are visited in rank
// order (ties by deal index); each takes min(initial check, remaining/2)
// until the reserve is exhausted.
func AllocateFollowOns(policy FollowOnPolicy, deals []Deal, reserve float64, investPeriod, fundLife int) []FollowOn {
	if policy != FollowOnTopQuartile || reserve <= 0 || len(deals) == 0 {
		return nil
	}

	ranked := make([]int, len(deals))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return FollowOnScore(deals[ranked[a]], fundLife) > FollowOnScore(deals[ranked[b]], fundLife)
	})
	selected := int(math.Ceil(topQuartileShare * float64(len(deals))))
	if selected > len(ranked) {
		selected = len(ranked)
	}

	var out []FollowOn
	remaining := reserve
	for _, idx := range ranked[:selected] {
		if remaining <= 0 {
			break
		}
		d := deals[idx]
		amount := math.Min(d.InitialCheck, remaining/2)
		if amount <= 0 {
			continue
		}
		remaining -= amount
		out = append(out, FollowOn{
			Deal:   d.Index,
			Amount: amount,
			Year:   followOnYear(d, investPeriod),
		})
	}
	return out
}

// followOnYear is the year after the investment period, pulled in to precede
// the exit and never earlier than the initial check.
func followOnYear(d Deal, investPeriod int) int {
	year := investPeriod + 1
	if d.ExitYear-1 < year {
		year = d.ExitYear - 1
	}
	if year < d.InvestYear {
		year = d.InvestYear
	}
	return year
}
