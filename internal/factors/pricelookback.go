package factors

import "time"

// ResolvePrice finds a usable price for a cutoff date.
//
// An exact-date match with a positive price resolves with lag 0.
// Otherwise up to maxPriorTradingDays prior dated rows are walked
// backward, skipping non-positive prices, and the chosen row must not
// be more than maxPriorTradingDays business days behind the cutoff.
// The returned lag counts dated rows walked back from the cutoff; a
// lag above 1 is worth a stale-price warning at the call site.
func ResolvePrice(prices Series, cutoff time.Time, maxPriorTradingDays int) (Point, int, bool) {
	deduped := dedupeByDate(prices)

	idx := lastIndexOnOrBefore(deduped, cutoff)
	if idx < 0 {
		return Point{}, 0, false
	}

	lag := 0
	if !deduped[idx].Date.Equal(dateOnly(cutoff)) {
		lag = 1
	}
	for ; idx >= 0 && lag <= maxPriorTradingDays; idx, lag = idx-1, lag+1 {
		p := deduped[idx]
		if p.Value <= 0 {
			continue
		}
		if businessDaysBetween(p.Date, cutoff) > maxPriorTradingDays {
			break
		}
		return p, lag, true
	}
	return Point{}, 0, false
}

// dedupeByDate collapses a sorted series to one row per date, last wins.
func dedupeByDate(s Series) Series {
	if len(s) < 2 {
		return s
	}
	out := make(Series, 0, len(s))
	for i, p := range s {
		if i+1 < len(s) && s[i+1].Date.Equal(p.Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}
