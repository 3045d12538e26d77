package cashflow

import "math"

// Terms are the GP economics that drive the waterfall.
type Terms struct {
	CarryRate  float64
	HurdleRate float64
	FundLife   int
}

// Waterfall is the outcome of applying carry to a gross LP series.
type Waterfall struct {
	// HurdleTarget is invested * (1+hurdle)^fundLife, a single checkpoint at
	// the end of the fund rather than a time-weighted preferred return.
	HurdleTarget float64
	Carry        float64
	NetLP        Series
	GP           Series
}

// HurdleTarget is the minimum LP distribution before carry applies.
func HurdleTarget(invested, hurdleRate float64, fundLife int) float64 {
	return invested * math.Pow(1+hurdleRate, float64(fundLife))
}

// ApplyCarry computes carry and splits the gross series into net LP and GP
// series. Carry is owed only when gross profit is positive and distributions
// clear the hurdle target; it is taken in full from the final year.
func ApplyCarry(gross Series, invested, distributed float64, terms Terms) Waterfall {
	w := Waterfall{
		HurdleTarget: HurdleTarget(invested, terms.HurdleRate, terms.FundLife),
		NetLP:        gross.Clone(),
		GP:           NewSeries(gross.FinalYear()),
	}
	profit := distributed - invested
	if profit > 0 && distributed > w.HurdleTarget {
		w.Carry = terms.CarryRate * (distributed - w.HurdleTarget)
	}
	last := gross.FinalYear()
	w.NetLP[last] -= w.Carry
	w.GP[last] = w.Carry
	return w
}
