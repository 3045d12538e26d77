package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/fund-sim/fund-sim/sim"
	"github.com/fund-sim/fund-sim/sim/outcome"
)

// loadFundConfig reads a fund configuration YAML file. Fields absent from the
// file keep their defaults. Unknown keys are rejected so typos fail loudly.
func loadFundConfig(path string) (sim.FundConfig, error) {
	cfg := sim.DefaultFundConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading fund config: %w", err)
	}
	return parseFundConfig(data)
}

func parseFundConfig(data []byte) (sim.FundConfig, error) {
	cfg := sim.DefaultFundConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing fund config YAML: %w", err)
	}
	return cfg, nil
}

// resolveFundConfig builds the effective configuration: defaults, then the
// optional YAML file, then any flags the user set explicitly.
func resolveFundConfig(cmd *cobra.Command, path string) (sim.FundConfig, error) {
	cfg := sim.DefaultFundConfig()
	if path != "" {
		var err error
		if cfg, err = loadFundConfig(path); err != nil {
			return cfg, err
		}
		logrus.Infof("Loaded fund config from %s", path)
	}
	if err := applyFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *sim.FundConfig) error {
	if flags.Changed("fund-size") {
		cfg.FundSize = fundSize
	}
	if flags.Changed("deals") {
		cfg.NumDeals = numDeals
	}
	if flags.Changed("reserve-ratio") {
		cfg.ReserveRatio = reserveRatio
	}
	if flags.Changed("fund-life") {
		cfg.FundLifeYears = fundLife
	}
	if flags.Changed("invest-period") {
		cfg.InvestPeriod = investPeriod
	}
	if flags.Changed("mgmt-fee") {
		cfg.MgmtFeeRate = mgmtFeeRate
	}
	if flags.Changed("carry") {
		cfg.CarryRate = carryRate
	}
	if flags.Changed("hurdle") {
		cfg.HurdleRate = hurdleRate
	}
	if flags.Changed("follow-on") {
		p, err := sim.ParseFollowOnPolicy(followOnPolicy)
		if err != nil {
			return err
		}
		cfg.FollowOnPolicy = p
	}
	if flags.Changed("dist") {
		if !outcome.IsValidMode(outcome.Mode(distMode)) {
			return fmt.Errorf("%w: unknown dist_mode %q; valid: discrete, lognormal, pareto", sim.ErrInvalidConfig, distMode)
		}
		if outcome.Mode(distMode) != cfg.DistMode {
			// parameters of the previous mode no longer apply
			cfg.DistParams = nil
		}
		cfg.DistMode = outcome.Mode(distMode)
	}
	if flags.Changed("dist-param") {
		params, err := parseDistParams(distParams)
		if err != nil {
			return err
		}
		merged := make(map[string]float64, len(cfg.DistParams)+len(params))
		for k, v := range cfg.DistParams {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		cfg.DistParams = merged
	}
	return nil
}

func parseDistParams(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: dist param %s=%q is not a number", sim.ErrInvalidConfig, k, v)
		}
		out[k] = f
	}
	return out, nil
}
