package factors

import (
	"github.com/marlowequity/factorline/pkg/logger"
)

// Tracker accumulates staleness and expiry events for one computation
// run. It is not safe for concurrent use: the engine gives each worker
// its own tracker and merges them when the fan-in completes.
type Tracker struct {
	log     *logger.Logger
	verbose bool

	staleCount   int
	expiredCount int

	staleByFactor   map[string]int
	expiredByFactor map[string]int
}

// NewTracker creates an empty tracker. With verbose enabled every
// individual stale/expired event is logged as it happens; otherwise
// only the Flush summary is emitted.
func NewTracker(log *logger.Logger, verbose bool) *Tracker {
	return &Tracker{
		log:             log,
		verbose:         verbose,
		staleByFactor:   make(map[string]int),
		expiredByFactor: make(map[string]int),
	}
}

// RecordStale counts a stale-but-usable resolution for a factor.
func (t *Tracker) RecordStale(factor string, ageDays int) {
	t.staleCount++
	t.staleByFactor[factor]++
	if t.verbose {
		t.log.WithFields(map[string]interface{}{
			"factor":   factor,
			"age_days": ageDays,
		}).Debug("Stale observation used")
	}
}

// RecordExpired counts a hard-expired resolution for a factor.
func (t *Tracker) RecordExpired(factor string, ageDays int) {
	t.expiredCount++
	t.expiredByFactor[factor]++
	if t.verbose {
		t.log.WithFields(map[string]interface{}{
			"factor":   factor,
			"age_days": ageDays,
		}).Debug("Expired observation skipped")
	}
}

// Merge folds another tracker's counts into this one.
func (t *Tracker) Merge(other *Tracker) {
	t.staleCount += other.staleCount
	t.expiredCount += other.expiredCount
	for k, v := range other.staleByFactor {
		t.staleByFactor[k] += v
	}
	for k, v := range other.expiredByFactor {
		t.expiredByFactor[k] += v
	}
}

// StaleCount returns the total number of stale events.
func (t *Tracker) StaleCount() int { return t.staleCount }

// ExpiredCount returns the total number of expired events.
func (t *Tracker) ExpiredCount() int { return t.expiredCount }

// Flush emits the single per-run quality summary line.
func (t *Tracker) Flush() {
	t.log.WithFields(map[string]interface{}{
		"stale_count":       t.staleCount,
		"expired_count":     t.expiredCount,
		"stale_by_factor":   t.staleByFactor,
		"expired_by_factor": t.expiredByFactor,
	}).Info("Quality event summary")
}
