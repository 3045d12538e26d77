package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/fund-sim/fund-sim/sim/outcome"
)

// ErrInvalidConfig wraps every fund configuration validation failure.
var ErrInvalidConfig = errors.New("invalid fund configuration")

// FollowOnPolicy selects how the reserve pool is deployed.
type FollowOnPolicy string

const (
	FollowOnNone        FollowOnPolicy = "none"
	FollowOnTopQuartile FollowOnPolicy = "top_quartile"
)

// ParseFollowOnPolicy accepts "none", "top_quartile" and "top-quartile".
func ParseFollowOnPolicy(s string) (FollowOnPolicy, error) {
	switch s {
	case "none":
		return FollowOnNone, nil
	case "top_quartile", "top-quartile":
		return FollowOnTopQuartile, nil
	default:
		return "", fmt.Errorf("%w: unknown follow_on_policy %q; valid: none, top_quartile", ErrInvalidConfig, s)
	}
}

// FundConfig describes one fund strategy. It is shared read-only by every
// trial of a batch.
type FundConfig struct {
	FundSize       float64            `yaml:"fund_size" json:"fund_size"`
	NumDeals       int                `yaml:"n_initial_deals" json:"n_initial_deals"`
	ReserveRatio   float64            `yaml:"reserve_ratio" json:"reserve_ratio"`
	FundLifeYears  int                `yaml:"fund_life_years" json:"fund_life_years"`
	InvestPeriod   int                `yaml:"invest_period" json:"invest_period"`
	MgmtFeeRate    float64            `yaml:"mgmt_fee_rate" json:"mgmt_fee_rate"`
	CarryRate      float64            `yaml:"carry_rate" json:"carry_rate"`
	HurdleRate     float64            `yaml:"hurdle_rate" json:"hurdle_rate"`
	FollowOnPolicy FollowOnPolicy     `yaml:"follow_on_policy" json:"follow_on_policy"`
	DistMode       outcome.Mode       `yaml:"dist_mode" json:"dist_mode"`
	DistParams     map[string]float64 `yaml:"dist_params,omitempty" json:"dist_params,omitempty"`
}

// DefaultFundConfig returns the reference strategy: a $50M fund writing 30
// initial checks with 40% held in reserve.
func DefaultFundConfig() FundConfig {
	return FundConfig{
		FundSize:       50_000_000,
		NumDeals:       30,
		ReserveRatio:   0.4,
		FundLifeYears:  10,
		InvestPeriod:   3,
		MgmtFeeRate:    0.02,
		CarryRate:      0.20,
		HurdleRate:     0.08,
		FollowOnPolicy: FollowOnTopQuartile,
		DistMode:       outcome.ModeDiscrete,
	}
}

// OutcomeSpec returns the outcome distribution as a tagged variant.
func (c FundConfig) OutcomeSpec() outcome.DistSpec {
	return outcome.DistSpec{Mode: c.DistMode, Params: c.DistParams}
}

// ReservePool is the capital set aside for follow-ons.
func (c FundConfig) ReservePool() float64 {
	return c.FundSize * c.ReserveRatio
}

// InitialCheck is the equal check size written to each initial deal.
func (c FundConfig) InitialCheck() float64 {
	return c.FundSize * (1 - c.ReserveRatio) / float64(c.NumDeals)
}

// Validate rejects degenerate configurations. Values are never clamped.
func (c FundConfig) Validate() error {
	if err := requireFinite(map[string]float64{
		"fund_size": c.FundSize, "reserve_ratio": c.ReserveRatio,
		"mgmt_fee_rate": c.MgmtFeeRate, "carry_rate": c.CarryRate, "hurdle_rate": c.HurdleRate,
	}); err != nil {
		return err
	}
	if c.FundSize <= 0 {
		return fmt.Errorf("%w: fund_size must be positive, got %f", ErrInvalidConfig, c.FundSize)
	}
	if c.NumDeals <= 0 {
		return fmt.Errorf("%w: n_initial_deals must be positive, got %d", ErrInvalidConfig, c.NumDeals)
	}
	if c.ReserveRatio < 0 || c.ReserveRatio >= 1 {
		return fmt.Errorf("%w: reserve_ratio must be in [0, 1), got %f", ErrInvalidConfig, c.ReserveRatio)
	}
	if c.FundLifeYears <= 0 {
		return fmt.Errorf("%w: fund_life_years must be positive, got %d", ErrInvalidConfig, c.FundLifeYears)
	}
	if c.InvestPeriod <= 0 {
		return fmt.Errorf("%w: invest_period must be positive, got %d", ErrInvalidConfig, c.InvestPeriod)
	}
	if c.InvestPeriod > c.FundLifeYears {
		return fmt.Errorf("%w: invest_period (%d) must not exceed fund_life_years (%d)",
			ErrInvalidConfig, c.InvestPeriod, c.FundLifeYears)
	}
	if c.MgmtFeeRate < 0 {
		return fmt.Errorf("%w: mgmt_fee_rate must be non-negative, got %f", ErrInvalidConfig, c.MgmtFeeRate)
	}
	if c.CarryRate < 0 || c.CarryRate > 1 {
		return fmt.Errorf("%w: carry_rate must be in [0, 1], got %f", ErrInvalidConfig, c.CarryRate)
	}
	if c.HurdleRate <= -1 {
		return fmt.Errorf("%w: hurdle_rate must be greater than -1, got %f", ErrInvalidConfig, c.HurdleRate)
	}
	if _, err := ParseFollowOnPolicy(string(c.FollowOnPolicy)); err != nil {
		return err
	}
	if err := c.OutcomeSpec().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func requireFinite(fields map[string]float64) error {
	for name, val := range fields {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfig, name, val)
		}
	}
	return nil
}
