package outcome

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscreteSampler_WriteOffFrequency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewMultipleSampler(DistSpec{Mode: ModeDiscrete})
	require.NoError(t, err)

	n := 10000
	zeros := 0
	for _, v := range SampleN(s, rng, n) {
		if v == 0 {
			zeros++
		}
	}
	freq := float64(zeros) / float64(n)
	if math.Abs(freq-0.55) > 0.02 {
		t.Errorf("write-off frequency = %.4f, want 0.55 ± 0.02", freq)
	}
}

func TestDiscreteSampler_OnlyProducesSupportValues(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewDiscreteSampler(DiscreteSupport, DiscreteProbabilities)
	support := map[float64]bool{}
	for _, v := range DiscreteSupport {
		support[v] = true
	}
	seen := map[float64]int{}
	for i := 0; i < 20000; i++ {
		v := s.Sample(rng)
		require.True(t, support[v], "sample %v outside support", v)
		seen[v]++
	}
	// every category has positive mass, so 20k draws hit all of them
	assert.Len(t, seen, len(DiscreteSupport))
}

func TestDiscreteProbabilities_SumToOne(t *testing.T) {
	total := 0.0
	for _, p := range DiscreteProbabilities {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.Len(t, DiscreteProbabilities, len(DiscreteSupport))
}

func TestNewDiscreteSampler_SkipsZeroProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewDiscreteSampler([]float64{0, 5}, []float64{0, 2})
	for i := 0; i < 100; i++ {
		assert.Equal(t, 5.0, s.Sample(rng))
	}
}

func TestLogNormalSampler_ClampedToCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewMultipleSampler(DistSpec{
		Mode:   ModeLogNormal,
		Params: map[string]float64{"meanlog": 2.0, "sdlog": 3.0, "cap": 25},
	})
	require.NoError(t, err)
	hitCap := false
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 0 || v > 25 {
			t.Fatalf("sample %d: %v outside [0, 25]", i, v)
		}
		if v == 25 {
			hitCap = true
		}
	}
	assert.True(t, hitCap, "heavy lognormal tail should reach the cap")
}

func TestLogNormalSampler_MedianMatchesMeanlog(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := NewMultipleSampler(DistSpec{
		Mode:   ModeLogNormal,
		Params: map[string]float64{"meanlog": 0.5, "sdlog": 0.4},
	})
	require.NoError(t, err)
	below := 0
	n := 10000
	for i := 0; i < n; i++ {
		if s.Sample(rng) < math.Exp(0.5) {
			below++
		}
	}
	assert.InDelta(t, 0.5, float64(below)/float64(n), 0.02)
}

func TestParetoSampler_BoundedByScaleAndCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewMultipleSampler(DistSpec{
		Mode:   ModePareto,
		Params: map[string]float64{"scale": 0.8, "alpha": 1.1},
	})
	require.NoError(t, err)
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 0.8 || v > 200 {
			t.Fatalf("sample %d: %v outside [0.8, 200]", i, v)
		}
	}
}

func TestParetoSampler_InverseCDF(t *testing.T) {
	// GIVEN the same seed, the sampler output equals scale / u^(1/alpha)
	s := &ParetoSampler{scale: 2, alpha: 3, cap: 1e9}
	rng1 := rand.New(rand.NewSource(11))
	rng2 := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		u := rng2.Float64()
		assert.InDelta(t, 2/math.Pow(u, 1.0/3), s.Sample(rng1), 1e-9)
	}
}

func TestSampleN_ReproducibleWithSameSeed(t *testing.T) {
	for _, mode := range []Mode{ModeDiscrete, ModeLogNormal, ModePareto} {
		t.Run(string(mode), func(t *testing.T) {
			s, err := NewMultipleSampler(DistSpec{Mode: mode})
			require.NoError(t, err)
			a := SampleN(s, rand.New(rand.NewSource(99)), 200)
			b := SampleN(s, rand.New(rand.NewSource(99)), 200)
			assert.Equal(t, a, b)
		})
	}
}

func TestDistSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    DistSpec
		wantErr bool
	}{
		{"discrete", DistSpec{Mode: ModeDiscrete}, false},
		{"lognormal defaults", DistSpec{Mode: ModeLogNormal}, false},
		{"pareto override", DistSpec{Mode: ModePareto, Params: map[string]float64{"alpha": 2}}, false},
		{"unknown mode", DistSpec{Mode: "beta"}, true},
		{"empty mode", DistSpec{}, true},
		{"negative sdlog", DistSpec{Mode: ModeLogNormal, Params: map[string]float64{"sdlog": -1}}, true},
		{"zero alpha", DistSpec{Mode: ModePareto, Params: map[string]float64{"alpha": 0}}, true},
		{"zero scale", DistSpec{Mode: ModePareto, Params: map[string]float64{"scale": 0}}, true},
		{"negative cap", DistSpec{Mode: ModeLogNormal, Params: map[string]float64{"cap": -5}}, true},
		{"NaN param", DistSpec{Mode: ModePareto, Params: map[string]float64{"cap": math.NaN()}}, true},
		{"param of other mode", DistSpec{Mode: ModePareto, Params: map[string]float64{"sdlog": 1}}, true},
		{"params on discrete", DistSpec{Mode: ModeDiscrete, Params: map[string]float64{"cap": 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistSpec_ResolvedOverlaysDefaults(t *testing.T) {
	got := DistSpec{Mode: ModePareto, Params: map[string]float64{"cap": 50}}.Resolved()
	assert.Equal(t, map[string]float64{"scale": 0.5, "alpha": 1.2, "cap": 50}, got)
}
