package engineconfig

import "fmt"

// ValidationError reports a config constraint violation. These stop
// the program: a bad threshold file is a caller fault, not data noise.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all threshold constraints.
func Validate(cfg *Config) error {
	if cfg.Staleness.SoftStaleDays <= 0 {
		return ValidationError{"staleness.soft_stale_days", "must be > 0"}
	}
	if cfg.Staleness.HardExpireDays <= 0 {
		return ValidationError{"staleness.hard_expire_days", "must be > 0"}
	}
	if cfg.Staleness.SoftStaleDays > cfg.Staleness.HardExpireDays {
		return ValidationError{"staleness", "soft_stale_days must be <= hard_expire_days"}
	}
	if cfg.PriceLookback.MaxPriorTradingDays <= 0 {
		return ValidationError{"price_lookback.max_prior_trading_days", "must be > 0"}
	}
	if cfg.OutlierCap.SampleThreshold <= 0 {
		return ValidationError{"outlier_cap.sample_threshold", "must be > 0"}
	}
	if cfg.OutlierCap.Percentile <= 0 || cfg.OutlierCap.Percentile >= 1 {
		return ValidationError{"outlier_cap.percentile", "must be in (0, 1)"}
	}
	if cfg.OutlierCap.FixedCap <= 0 {
		return ValidationError{"outlier_cap.fixed_cap", "must be > 0"}
	}
	return nil
}
