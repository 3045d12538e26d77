package outcome

import "math/rand"

// Outcome tiers used by the exit-timing rule.
const (
	winnerThreshold = 3.0
	winnerFirstYear = 6
)

// ExitRange returns the inclusive exit-year range for a multiple. Both bounds
// are clamped to fundLife and the lower bound never exceeds the upper.
func ExitRange(multiple float64, fundLife int) (lo, hi int) {
	switch {
	case multiple == 0:
		lo, hi = 2, 6
	case multiple < winnerThreshold:
		lo, hi = 4, 8
	default:
		lo, hi = winnerFirstYear, fundLife
	}
	if hi > fundLife {
		hi = fundLife
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// ExitYear draws a uniform integer exit year from the multiple's tier range.
func ExitYear(rng *rand.Rand, multiple float64, fundLife int) int {
	lo, hi := ExitRange(multiple, fundLife)
	if lo == hi {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
