package montecarlo

import (
	"github.com/fund-sim/fund-sim/sim"
)

// Report is the presentation-ready view of a batch: statistics, the survival
// table and the cash-flow fan chart.
type Report struct {
	Seed     int64           `json:"seed"`
	Config   sim.FundConfig  `json:"config"`
	Stats    Stats           `json:"stats"`
	Survival []SurvivalPoint `json:"survival"`
	FanChart []YearBand      `json:"fan_chart"`
	Rows     []Row           `json:"rows,omitempty"`
}

// NewReport builds a Report. Nil thresholds use DefaultSurvivalThresholds.
// Rows are attached only when includeRows is set.
func NewReport(b *Batch, thresholds []float64, includeRows bool) *Report {
	if thresholds == nil {
		thresholds = DefaultSurvivalThresholds
	}
	r := &Report{
		Seed:     int64(b.Key),
		Config:   b.Config,
		Stats:    b.Summary.Stats(),
		Survival: b.Summary.Survival(thresholds),
		FanChart: FanChart(b.Results),
	}
	if includeRows {
		r.Rows = b.Summary.Rows
	}
	return r
}
