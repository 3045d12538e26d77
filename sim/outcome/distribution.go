package outcome

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Mode selects the probability model used to draw return multiples.
type Mode string

const (
	ModeDiscrete  Mode = "discrete"
	ModeLogNormal Mode = "lognormal"
	ModePareto    Mode = "pareto"
)

var validModes = map[Mode]bool{
	ModeDiscrete: true, ModeLogNormal: true, ModePareto: true,
}

// IsValidMode reports whether m names a supported distribution.
func IsValidMode(m Mode) bool {
	return validModes[m]
}

// Default parameters per mode. Params in a DistSpec override these key by key.
var defaultParams = map[Mode]map[string]float64{
	ModeDiscrete:  {},
	ModeLogNormal: {"meanlog": 0.0, "sdlog": 1.5, "cap": 100},
	ModePareto:    {"scale": 0.5, "alpha": 1.2, "cap": 200},
}

// Fixed categorical support for the discrete model.
var (
	DiscreteSupport       = []float64{0, 1, 3, 10, 50}
	DiscreteProbabilities = []float64{0.55, 0.25, 0.10, 0.07, 0.03}
)

// DistSpec is the tagged variant describing an outcome distribution.
type DistSpec struct {
	Mode   Mode               `yaml:"mode" json:"mode"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// Resolved returns the mode's default parameters overlaid with s.Params.
func (s DistSpec) Resolved() map[string]float64 {
	out := make(map[string]float64, len(defaultParams[s.Mode])+len(s.Params))
	for k, v := range defaultParams[s.Mode] {
		out[k] = v
	}
	for k, v := range s.Params {
		out[k] = v
	}
	return out
}

// Validate checks the mode and its resolved parameters.
func (s DistSpec) Validate() error {
	if !IsValidMode(s.Mode) {
		return fmt.Errorf("unknown dist_mode %q; valid: discrete, lognormal, pareto", s.Mode)
	}
	defaults := defaultParams[s.Mode]
	for name, val := range s.Params {
		if _, ok := defaults[name]; !ok {
			return fmt.Errorf("dist_params.%s is not recognized for mode %q", name, s.Mode)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("dist_params.%s must be a finite number, got %f", name, val)
		}
	}
	p := s.Resolved()
	switch s.Mode {
	case ModeLogNormal:
		if p["sdlog"] < 0 {
			return fmt.Errorf("dist_params.sdlog must be non-negative, got %f", p["sdlog"])
		}
		if p["cap"] <= 0 {
			return fmt.Errorf("dist_params.cap must be positive, got %f", p["cap"])
		}
	case ModePareto:
		if p["scale"] <= 0 {
			return fmt.Errorf("dist_params.scale must be positive, got %f", p["scale"])
		}
		if p["alpha"] <= 0 {
			return fmt.Errorf("dist_params.alpha must be positive, got %f", p["alpha"])
		}
		if p["cap"] <= 0 {
			return fmt.Errorf("dist_params.cap must be positive, got %f", p["cap"])
		}
	}
	return nil
}

// MultipleSampler draws return multiples for portfolio companies.
type MultipleSampler interface {
	// Sample returns a non-negative multiple of invested capital.
	Sample(rng *rand.Rand) float64
}

// DiscreteSampler draws from a fixed categorical distribution by inverse CDF.
type DiscreteSampler struct {
	values []float64
	cdf    []float64
}

// NewDiscreteSampler builds a categorical sampler. Probabilities are normalized
// and non-positive entries are skipped.
func NewDiscreteSampler(values, probs []float64) *DiscreteSampler {
	total := 0.0
	for _, p := range probs {
		if p > 0 {
			total += p
		}
	}
	s := &DiscreteSampler{}
	cumulative := 0.0
	for i, v := range values {
		if i >= len(probs) || probs[i] <= 0 {
			continue
		}
		cumulative += probs[i] / total
		s.values = append(s.values, v)
		s.cdf = append(s.cdf, cumulative)
	}
	if len(s.cdf) > 0 {
		s.cdf[len(s.cdf)-1] = 1.0
	}
	return s
}

func (s *DiscreteSampler) Sample(rng *rand.Rand) float64 {
	if len(s.values) == 0 {
		return 0
	}
	u := rng.Float64()
	idx := sort.Search(len(s.cdf), func(i int) bool { return u < s.cdf[i] })
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return s.values[idx]
}

// LogNormalSampler draws exp(mu + sigma*Z) clamped to cap.
type LogNormalSampler struct {
	mu, sigma float64
	cap       float64
}

func (s *LogNormalSampler) Sample(rng *rand.Rand) float64 {
	val := math.Exp(s.mu + s.sigma*rng.NormFloat64())
	if math.IsNaN(val) || val > s.cap {
		return s.cap
	}
	return val
}

// ParetoSampler draws scale / U^(1/alpha) clamped to cap.
type ParetoSampler struct {
	scale, alpha float64
	cap          float64
}

func (s *ParetoSampler) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent division by zero → +Inf
	}
	val := s.scale / math.Pow(u, 1.0/s.alpha)
	if math.IsInf(val, 0) || math.IsNaN(val) || val > s.cap {
		return s.cap
	}
	return val
}

// NewMultipleSampler creates the sampler for spec. This is the only place the
// distribution mode is inspected.
func NewMultipleSampler(spec DistSpec) (MultipleSampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	p := spec.Resolved()
	switch spec.Mode {
	case ModeDiscrete:
		return NewDiscreteSampler(DiscreteSupport, DiscreteProbabilities), nil
	case ModeLogNormal:
		return &LogNormalSampler{mu: p["meanlog"], sigma: p["sdlog"], cap: p["cap"]}, nil
	case ModePareto:
		return &ParetoSampler{scale: p["scale"], alpha: p["alpha"], cap: p["cap"]}, nil
	default:
		return nil, fmt.Errorf("unknown dist_mode %q", spec.Mode)
	}
}

// SampleN draws n independent multiples in order.
func SampleN(s MultipleSampler, rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Sample(rng)
	}
	return out
}
