package montecarlo

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fund-sim/fund-sim/sim"
)

// Distribution describes a sample of one metric.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// Describe summarizes values. An empty sample yields a zero Distribution.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P10:    quantile(0.10, sorted),
		P25:    quantile(0.25, sorted),
		Median: quantile(0.50, sorted),
		P75:    quantile(0.75, sorted),
		P90:    quantile(0.90, sorted),
	}
	if len(sorted) > 1 {
		d.Mean, d.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		d.Mean = sorted[0]
	}
	return d
}

// quantile expects sorted input. Empirical returns an observed value (the
// lower one for an even-sized median).
func quantile(p float64, sorted []float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Stats are the distributional statistics of a batch. IRR distributions
// exclude undefined values; MOIC and carry include every trial.
type Stats struct {
	Trials            int          `json:"trials"`
	GrossIRR          Distribution `json:"gross_irr"`
	NetIRR            Distribution `json:"net_irr"`
	GrossMOIC         Distribution `json:"gross_moic"`
	NetMOIC           Distribution `json:"net_moic"`
	Carry             Distribution `json:"carry"`
	Invested          Distribution `json:"invested"`
	Distributed       Distribution `json:"distributed"`
	UndefinedGrossIRR int          `json:"undefined_gross_irr"`
	UndefinedNetIRR   int          `json:"undefined_net_irr"`
}

// Stats computes distribution statistics over every row.
func (s *Summary) Stats() Stats {
	return Stats{
		Trials:            len(s.Rows),
		GrossIRR:          Describe(s.Defined(GrossIRR)),
		NetIRR:            Describe(s.Defined(NetIRR)),
		GrossMOIC:         Describe(s.Column(GrossMOIC)),
		NetMOIC:           Describe(s.Column(NetMOIC)),
		Carry:             Describe(s.Column(Carry)),
		Invested:          Describe(s.Column(Invested)),
		Distributed:       Describe(s.Column(Distributed)),
		UndefinedGrossIRR: s.UndefinedGrossIRR(),
		UndefinedNetIRR:   s.UndefinedNetIRR(),
	}
}

// DefaultSurvivalThresholds are the net MOIC levels reported by default.
var DefaultSurvivalThresholds = []float64{1.5, 2, 3, 5}

// SurvivalPoint is P(net MOIC >= Threshold).
type SurvivalPoint struct {
	Threshold   float64 `json:"threshold"`
	Probability float64 `json:"probability"`
}

// Survival returns P(net MOIC >= t) for each threshold.
func (s *Summary) Survival(thresholds []float64) []SurvivalPoint {
	out := make([]SurvivalPoint, len(thresholds))
	for i, t := range thresholds {
		out[i].Threshold = t
		if len(s.Rows) == 0 {
			continue
		}
		hits := 0
		for _, r := range s.Rows {
			if r.NetMOIC >= t {
				hits++
			}
		}
		out[i].Probability = float64(hits) / float64(len(s.Rows))
	}
	return out
}

// YearBand is the cross-trial distribution of cumulative net LP cash flow at
// one year.
type YearBand struct {
	Year   int     `json:"year"`
	Mean   float64 `json:"mean"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// FanChart groups each trial's cumulative net LP series by year. All results
// are expected to share one fund life; shorter series are skipped per year.
func FanChart(results []*sim.SimulationResult) []YearBand {
	years := 0
	for _, r := range results {
		if r != nil && len(r.LPNet) > years {
			years = len(r.LPNet)
		}
	}
	cumulative := make([][]float64, 0, len(results))
	for _, r := range results {
		if r != nil {
			cumulative = append(cumulative, r.LPNet.Cumulative())
		}
	}

	bands := make([]YearBand, years)
	for y := 0; y < years; y++ {
		values := make([]float64, 0, len(cumulative))
		for _, c := range cumulative {
			if y < len(c) {
				values = append(values, c[y])
			}
		}
		d := Describe(values)
		bands[y] = YearBand{Year: y, Mean: d.Mean, P10: d.P10, P25: d.P25, Median: d.Median, P75: d.P75, P90: d.P90}
	}
	return bands
}
