// Package returns computes fund return metrics: NPV, IRR and MOIC.
package returns

import (
	"errors"
	"math"
)

var (
	// ErrUndefinedIRR is returned when the cash flows never change sign.
	ErrUndefinedIRR = errors.New("irr undefined: cash flows do not change sign")
	// ErrNoConvergence is returned when no root is found in the search interval.
	ErrNoConvergence = errors.New("irr undefined: no root in search interval")
)

// Search interval and tolerances for the root finder.
const (
	MinRate = -0.99
	MaxRate = 5.0

	rateTolerance = 1e-10
	maxIterations = 200
	// bracketSteps subdivides [MinRate, MaxRate] when the endpoints do not
	// bracket a root on their own.
	bracketSteps = 500
)

// NPV returns sum(cf[t] / (1+rate)^t).
func NPV(cashFlows []float64, rate float64) float64 {
	total := 0.0
	discount := 1.0
	for _, cf := range cashFlows {
		total += cf / discount
		discount *= 1 + rate
	}
	return total
}

// HasSignChange reports whether the series has at least one strictly
// positive and one strictly negative entry.
func HasSignChange(cashFlows []float64) bool {
	pos, neg := false, false
	for _, cf := range cashFlows {
		switch {
		case cf > 0:
			pos = true
		case cf < 0:
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

// IRR returns the rate in [MinRate, MaxRate] at which NPV is zero.
// It returns ErrUndefinedIRR for same-sign series and ErrNoConvergence when
// no root can be bracketed or the solver fails.
func IRR(cashFlows []float64) (float64, error) {
	if !HasSignChange(cashFlows) {
		return math.NaN(), ErrUndefinedIRR
	}
	f := func(r float64) float64 { return NPV(cashFlows, r) }

	lo, hi, ok := bracket(f, MinRate, MaxRate)
	if !ok {
		return math.NaN(), ErrNoConvergence
	}
	root, ok := brent(f, lo, hi)
	if !ok {
		return math.NaN(), ErrNoConvergence
	}
	return root, nil
}

// bracket finds a sub-interval of [a, b] where f changes sign, scanning from
// a toward b so the lowest root is preferred.
func bracket(f func(float64) float64, a, b float64) (float64, float64, bool) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, a, true
	}
	if fb == 0 {
		return b, b, true
	}
	step := (b - a) / bracketSteps
	x0, f0 := a, fa
	for i := 1; i <= bracketSteps; i++ {
		x1 := a + float64(i)*step
		if i == bracketSteps {
			x1 = b
		}
		f1 := f(x1)
		if math.IsNaN(f1) || math.IsInf(f1, 0) {
			x0, f0 = x1, f1
			continue
		}
		if f1 == 0 {
			return x1, x1, true
		}
		if !math.IsNaN(f0) && !math.IsInf(f0, 0) && math.Signbit(f0) != math.Signbit(f1) {
			return x0, x1, true
		}
		x0, f0 = x1, f1
	}
	return 0, 0, false
}

// brent is Brent's method on a bracketing interval [a, b].
func brent(f func(float64) float64, a, b float64) (float64, bool) {
	if a == b {
		return a, true
	}
	fa, fb := f(a), f(b)
	if math.Signbit(fa) == math.Signbit(fb) {
		return 0, false
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	d := b - a
	mflag := true

	for i := 0; i < maxIterations; i++ {
		if fb == 0 || math.Abs(b-a) < rateTolerance {
			return b, true
		}
		var s float64
		if fa != fc && fb != fc {
			// inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// secant
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		useBisection := s < lo || s > hi ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < rateTolerance) ||
			(!mflag && math.Abs(c-d) < rateTolerance)
		if useBisection {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d, c, fc = c, b, fb
		if math.Signbit(fa) != math.Signbit(fs) {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return 0, false
}
