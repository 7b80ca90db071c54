package factors

// Config holds the tunable thresholds of the derivation engine.
// The defaults mirror the values the pipeline was tuned with; they are
// kept as configuration because they are empirical, not derived.
type Config struct {
	Staleness           StalenessPolicy
	MaxPriorTradingDays int
	Cap                 CapConfig
	Verbose             bool
}

// CapConfig controls cross-sectional outlier capping for pb_ratio.
type CapConfig struct {
	// SampleThreshold is the minimum cross-section size for the
	// percentile cap; smaller samples fall back to FixedCap.
	SampleThreshold int
	Percentile      float64
	FixedCap        float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		Staleness: StalenessPolicy{
			SoftStaleDays:  270,
			HardExpireDays: 365,
		},
		MaxPriorTradingDays: 3,
		Cap: CapConfig{
			SampleThreshold: 50,
			Percentile:      0.99,
			FixedCap:        100.0,
		},
	}
}
