package montecarlo

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fund-sim/fund-sim/sim"
)

// WriteSummaryCSV writes one row per trial. Undefined IRRs are left blank.
func WriteSummaryCSV(w io.Writer, s *Summary) error {
	cw := csv.NewWriter(w)

	header := []string{
		"trial",
		"gross_irr",
		"net_irr",
		"gross_moic",
		"net_moic",
		"carry",
		"invested",
		"distributed",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range s.Rows {
		row := []string{
			strconv.Itoa(r.Trial),
			fmtRatio(r.GrossIRR),
			fmtRatio(r.NetIRR),
			fmtRatio(r.GrossMOIC),
			fmtRatio(r.NetMOIC),
			FormatMoney(r.Carry),
			FormatMoney(r.Invested),
			FormatMoney(r.Distributed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCashFlowsCSV writes the per-year LP and GP series of every trial in
// long format (trial, year, ...), the input for fan charts and J-curves.
func WriteCashFlowsCSV(w io.Writer, results []*sim.SimulationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "year", "lp_gross", "lp_net", "gp", "lp_net_cumulative"}); err != nil {
		return err
	}
	for i, r := range results {
		if r == nil {
			continue
		}
		cumulative := r.LPNet.Cumulative()
		for year := range r.LPGross {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(year),
				FormatMoney(r.LPGross[year]),
				FormatMoney(r.LPNet[year]),
				FormatMoney(r.GP[year]),
				FormatMoney(cumulative[year]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatMoney renders a currency amount with exactly two decimals.
func FormatMoney(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

func fmtRatio(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
