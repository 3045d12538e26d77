package cmd

import (
	"fmt"
	"io"

	"github.com/fund-sim/fund-sim/sim/montecarlo"
)

// printReport writes the human-readable batch report.
func printReport(w io.Writer, r *montecarlo.Report) {
	s := r.Stats
	fmt.Fprintln(w, "=== Fund Simulation ===")
	fmt.Fprintf(w, "Trials               : %d (seed %d)\n", s.Trials, r.Seed)
	fmt.Fprintf(w, "Fund Size            : %s\n", montecarlo.FormatMoney(r.Config.FundSize))
	fmt.Fprintf(w, "Initial Deals        : %d (reserve %.0f%%, %s)\n",
		r.Config.NumDeals, r.Config.ReserveRatio*100, r.Config.FollowOnPolicy)
	fmt.Fprintf(w, "Outcome Distribution : %s\n", r.Config.DistMode)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-12s %9s %9s %9s %9s %9s %9s\n", "Metric", "Mean", "P10", "P25", "Median", "P75", "P90")
	printRow(w, "Gross MOIC", "%.2fx", s.GrossMOIC)
	printRow(w, "Net MOIC", "%.2fx", s.NetMOIC)
	printRow(w, "Gross IRR", "%.1f%%", percent(s.GrossIRR))
	printRow(w, "Net IRR", "%.1f%%", percent(s.NetIRR))
	if s.UndefinedNetIRR > 0 || s.UndefinedGrossIRR > 0 {
		fmt.Fprintf(w, "Undefined IRR        : %d gross, %d net (excluded above)\n", s.UndefinedGrossIRR, s.UndefinedNetIRR)
	}
	fmt.Fprintf(w, "Average Carry        : %s\n", montecarlo.FormatMoney(s.Carry.Mean))
	fmt.Fprintf(w, "Average Invested     : %s\n", montecarlo.FormatMoney(s.Invested.Mean))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Net MOIC Survival ===")
	for _, p := range r.Survival {
		fmt.Fprintf(w, "P(net MOIC >= %.1fx)  : %.1f%%\n", p.Threshold, p.Probability*100)
	}

	if len(r.FanChart) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Cumulative Net LP Cash Flow ===")
		fmt.Fprintf(w, "%-4s %16s %16s %16s\n", "Year", "P10", "Median", "P90")
		for _, b := range r.FanChart {
			fmt.Fprintf(w, "%-4d %16s %16s %16s\n", b.Year,
				montecarlo.FormatMoney(b.P10), montecarlo.FormatMoney(b.Median), montecarlo.FormatMoney(b.P90))
		}
	}
}

func printRow(w io.Writer, name, format string, d montecarlo.Distribution) {
	if d.Count == 0 {
		fmt.Fprintf(w, "%-12s %9s\n", name, "n/a")
		return
	}
	cell := func(v float64) string { return fmt.Sprintf(format, v) }
	fmt.Fprintf(w, "%-12s %9s %9s %9s %9s %9s %9s\n", name,
		cell(d.Mean), cell(d.P10), cell(d.P25), cell(d.Median), cell(d.P75), cell(d.P90))
}

func percent(d montecarlo.Distribution) montecarlo.Distribution {
	d.Mean *= 100
	d.P10 *= 100
	d.P25 *= 100
	d.Median *= 100
	d.P75 *= 100
	d.P90 *= 100
	return d
}
