package montecarlo

import (
	"encoding/json"
	"math"

	"github.com/fund-sim/fund-sim/sim"
)

// Row holds the scalar metrics of one trial. Undefined IRRs are NaN.
type Row struct {
	Trial       int
	GrossIRR    float64
	NetIRR      float64
	GrossMOIC   float64
	NetMOIC     float64
	Carry       float64
	Invested    float64
	Distributed float64
}

// MarshalJSON encodes undefined IRRs as null.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Trial       int      `json:"trial"`
		GrossIRR    *float64 `json:"gross_irr"`
		NetIRR      *float64 `json:"net_irr"`
		GrossMOIC   float64  `json:"gross_moic"`
		NetMOIC     float64  `json:"net_moic"`
		Carry       float64  `json:"carry"`
		Invested    float64  `json:"invested"`
		Distributed float64  `json:"distributed"`
	}{
		Trial:       r.Trial,
		GrossIRR:    definedOrNil(r.GrossIRR),
		NetIRR:      definedOrNil(r.NetIRR),
		GrossMOIC:   r.GrossMOIC,
		NetMOIC:     r.NetMOIC,
		Carry:       r.Carry,
		Invested:    r.Invested,
		Distributed: r.Distributed,
	})
}

func definedOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Summary is the per-trial table of a batch, one row per trial in trial order.
type Summary struct {
	Rows []Row
}

// Summarize reduces trial results into a Summary. Nil results are skipped.
func Summarize(results []*sim.SimulationResult) *Summary {
	s := &Summary{Rows: make([]Row, 0, len(results))}
	for i, r := range results {
		if r == nil {
			continue
		}
		s.Rows = append(s.Rows, Row{
			Trial:       i,
			GrossIRR:    r.GrossIRR,
			NetIRR:      r.NetIRR,
			GrossMOIC:   r.GrossMOIC,
			NetMOIC:     r.NetMOIC,
			Carry:       r.Carry,
			Invested:    r.Invested,
			Distributed: r.Distributed,
		})
	}
	return s
}

// Column extracts one metric for every row, NaN included.
func (s *Summary) Column(f func(Row) float64) []float64 {
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = f(r)
	}
	return out
}

// Defined extracts one metric, dropping NaN values.
func (s *Summary) Defined(f func(Row) float64) []float64 {
	out := make([]float64, 0, len(s.Rows))
	for _, r := range s.Rows {
		if v := f(r); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// UndefinedGrossIRR counts trials whose gross IRR could not be solved.
func (s *Summary) UndefinedGrossIRR() int {
	return len(s.Rows) - len(s.Defined(GrossIRR))
}

// UndefinedNetIRR counts trials whose net IRR could not be solved.
func (s *Summary) UndefinedNetIRR() int {
	return len(s.Rows) - len(s.Defined(NetIRR))
}

// Column selectors.
func GrossIRR(r Row) float64    { return r.GrossIRR }
func NetIRR(r Row) float64      { return r.NetIRR }
func GrossMOIC(r Row) float64   { return r.GrossMOIC }
func NetMOIC(r Row) float64     { return r.NetMOIC }
func Carry(r Row) float64       { return r.Carry }
func Invested(r Row) float64    { return r.Invested }
func Distributed(r Row) float64 { return r.Distributed }
