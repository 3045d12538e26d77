package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fund-sim/fund-sim/sim"
)

// defaultsCmd prints the reference configuration as YAML, a starting point for --config files.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default fund configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaults(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Failed to encode defaults: %v", err)
		}
	},
}

// writeDefaults encodes the default configuration with the default
// distribution parameters filled in.
func writeDefaults(w io.Writer) error {
	cfg := sim.DefaultFundConfig()
	if params := cfg.OutcomeSpec().Resolved(); len(params) > 0 {
		cfg.DistParams = params
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

