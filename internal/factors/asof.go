package factors

import "time"

// StalenessPolicy holds the two escalating age thresholds for
// slow-moving atomics. Observations older than SoftStaleDays are used
// with a quality event; older than HardExpireDays they are unusable.
type StalenessPolicy struct {
	SoftStaleDays  int
	HardExpireDays int
}

// ResolveAsOf returns the most recent observation on or before cutoff.
//
// The returned bool is false when the series has no observation on or
// before the cutoff, or when the latest one has hard-expired. Stale and
// expired resolutions are recorded on the tracker under the calling
// factor's name.
func ResolveAsOf(s Series, cutoff time.Time, policy StalenessPolicy, factor string, tracker *Tracker) (Point, bool) {
	idx := lastIndexOnOrBefore(s, cutoff)
	if idx < 0 {
		return Point{}, false
	}
	p := s[idx]

	age := daysBetween(p.Date, cutoff)
	switch {
	case age > policy.HardExpireDays:
		tracker.RecordExpired(factor, age)
		return Point{}, false
	case age > policy.SoftStaleDays:
		tracker.RecordStale(factor, age)
	}
	return p, true
}
