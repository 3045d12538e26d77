package cashflow

import "fmt"

// Series holds one net amount per year; index 0 is year 0 and the length is
// always fundLife+1.
type Series []float64

// NewSeries returns an all-zero series for years 0..fundLife.
func NewSeries(fundLife int) Series {
	return make(Series, fundLife+1)
}

// Fold sums events into a series by year. Events landing on the same year
// accumulate; an event outside 0..fundLife is an error.
func Fold(events []Event, fundLife int) (Series, error) {
	s := NewSeries(fundLife)
	for _, e := range events {
		if e.Year < 0 || e.Year > fundLife {
			return nil, fmt.Errorf("%s event for deal %d in year %d outside fund life 0..%d",
				e.Kind, e.Deal, e.Year, fundLife)
		}
		s[e.Year] += e.Amount
	}
	return s, nil
}

// FinalYear returns the index of the last year.
func (s Series) FinalYear() int {
	return len(s) - 1
}

// Sum returns the sum of all entries.
func (s Series) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Cumulative returns the running total by year (the J-curve).
func (s Series) Cumulative() Series {
	out := make(Series, len(s))
	running := 0.0
	for i, v := range s {
		running += v
		out[i] = running
	}
	return out
}

// Clone returns an independent copy.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}
