package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fund-sim/fund-sim/sim"
	"github.com/fund-sim/fund-sim/sim/montecarlo"
)

var (
	// Batch flags
	seed       int64     // Base seed; trial i draws from seed XOR hash("trial_i")
	trials     int       // Number of independent fund trials
	workers    int       // Worker pool size (0 = GOMAXPROCS)
	logLevel   string    // Log verbosity level
	configPath string    // Optional fund configuration YAML
	outPath    string    // Per-trial summary CSV
	flowsPath  string    // Per-year cash flow CSV
	jsonOutput bool      // Print the report as JSON instead of text
	thresholds []float64 // Net MOIC survival thresholds

	// Fund configuration overrides
	fundSize       float64
	numDeals       int
	reserveRatio   float64
	fundLife       int
	investPeriod   int
	mgmtFeeRate    float64
	carryRate      float64
	hurdleRate     float64
	followOnPolicy string
	distMode       string
	distParams     map[string]string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fund-sim",
	Short: "Monte Carlo simulator for venture fund strategies",
}

// runCmd runs a Monte Carlo batch using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate many funds and report the distribution of returns",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := resolveFundConfig(cmd, configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		batch, err := montecarlo.NewRunner(workers).Run(ctx, trials, cfg, sim.NewSimulationKey(seed))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if outPath != "" {
			if err := writeFile(outPath, func(f *os.File) error { return montecarlo.WriteSummaryCSV(f, batch.Summary) }); err != nil {
				logrus.Fatalf("Failed to write summary CSV: %v", err)
			}
			logrus.Infof("Wrote %d summary rows to %s", len(batch.Summary.Rows), outPath)
		}
		if flowsPath != "" {
			if err := writeFile(flowsPath, func(f *os.File) error { return montecarlo.WriteCashFlowsCSV(f, batch.Results) }); err != nil {
				logrus.Fatalf("Failed to write cash flow CSV: %v", err)
			}
			logrus.Infof("Wrote cash flows to %s", flowsPath)
		}

		report := montecarlo.NewReport(batch, thresholds, false)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				logrus.Fatalf("Failed to encode report: %v", err)
			}
			return
		}
		printReport(os.Stdout, report)

		logrus.Info("Simulation complete.")
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerFundFlags attaches the per-field configuration overrides. Defaults
// mirror sim.DefaultFundConfig; a flag only overrides the config file when set.
func registerFundFlags(cmd *cobra.Command) {
	d := sim.DefaultFundConfig()
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a fund configuration YAML file")
	cmd.Flags().Float64Var(&fundSize, "fund-size", d.FundSize, "Committed capital")
	cmd.Flags().IntVar(&numDeals, "deals", d.NumDeals, "Number of initial deals")
	cmd.Flags().Float64Var(&reserveRatio, "reserve-ratio", d.ReserveRatio, "Fraction of the fund held back for follow-ons, in [0, 1)")
	cmd.Flags().IntVar(&fundLife, "fund-life", d.FundLifeYears, "Fund life in years")
	cmd.Flags().IntVar(&investPeriod, "invest-period", d.InvestPeriod, "Investment period in years")
	cmd.Flags().Float64Var(&mgmtFeeRate, "mgmt-fee", d.MgmtFeeRate, "Annual management fee rate on committed capital")
	cmd.Flags().Float64Var(&carryRate, "carry", d.CarryRate, "GP carried interest rate")
	cmd.Flags().Float64Var(&hurdleRate, "hurdle", d.HurdleRate, "Annual hurdle rate")
	cmd.Flags().StringVar(&followOnPolicy, "follow-on", string(d.FollowOnPolicy), "Follow-on policy (none, top_quartile)")
	cmd.Flags().StringVar(&distMode, "dist", string(d.DistMode), "Outcome distribution (discrete, lognormal, pareto)")
	cmd.Flags().StringToStringVar(&distParams, "dist-param", nil, "Distribution parameter overrides, e.g. alpha=1.1,cap=150")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Base seed for trial randomness")
	runCmd.Flags().IntVar(&trials, "trials", 1000, "Number of fund trials")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (0 = one per CPU)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write per-trial summary rows to this CSV file")
	runCmd.Flags().StringVar(&flowsPath, "cashflows-out", "", "Write per-year LP/GP cash flows of every trial to this CSV file")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	runCmd.Flags().Float64SliceVar(&thresholds, "thresholds", montecarlo.DefaultSurvivalThresholds, "Net MOIC survival thresholds")
	registerFundFlags(runCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(serveCmd)
}
