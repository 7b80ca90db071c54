package engineconfig

import (
	"github.com/marlowequity/factorline/internal/factors"
)

// Config is the YAML-backed threshold configuration of the derivation
// engine. The values are empirical tunings, kept out of code so they
// can change without a release.
type Config struct {
	Staleness     Staleness     `yaml:"staleness" json:"staleness"`
	PriceLookback PriceLookback `yaml:"price_lookback" json:"price_lookback"`
	OutlierCap    OutlierCap    `yaml:"outlier_cap" json:"outlier_cap"`
}

// Staleness holds the soft/hard age thresholds for slow-moving atomics.
type Staleness struct {
	SoftStaleDays  int `yaml:"soft_stale_days" json:"soft_stale_days"`
	HardExpireDays int `yaml:"hard_expire_days" json:"hard_expire_days"`
}

// PriceLookback bounds the backward walk for price resolution.
type PriceLookback struct {
	MaxPriorTradingDays int `yaml:"max_prior_trading_days" json:"max_prior_trading_days"`
}

// OutlierCap controls cross-sectional capping of pb_ratio.
type OutlierCap struct {
	SampleThreshold int     `yaml:"sample_threshold" json:"sample_threshold"`
	Percentile      float64 `yaml:"percentile" json:"percentile"`
	FixedCap        float64 `yaml:"fixed_cap" json:"fixed_cap"`
}

// Default returns the production thresholds.
func Default() *Config {
	return &Config{
		Staleness: Staleness{
			SoftStaleDays:  270,
			HardExpireDays: 365,
		},
		PriceLookback: PriceLookback{
			MaxPriorTradingDays: 3,
		},
		OutlierCap: OutlierCap{
			SampleThreshold: 50,
			Percentile:      0.99,
			FixedCap:        100.0,
		},
	}
}

// ToEngine converts the file representation into engine thresholds.
func (c *Config) ToEngine() factors.Config {
	return factors.Config{
		Staleness: factors.StalenessPolicy{
			SoftStaleDays:  c.Staleness.SoftStaleDays,
			HardExpireDays: c.Staleness.HardExpireDays,
		},
		MaxPriorTradingDays: c.PriceLookback.MaxPriorTradingDays,
		Cap: factors.CapConfig{
			SampleThreshold: c.OutlierCap.SampleThreshold,
			Percentile:      c.OutlierCap.Percentile,
			FixedCap:        c.OutlierCap.FixedCap,
		},
	}
}
