package factors

import (
	"sort"
	"time"
)

// Point is one dated value in a symbol-scoped time series.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is a date-sorted sequence of observations for one symbol and
// one atomic factor. Duplicate dates are allowed; the later-loaded row
// sorts after the earlier one and wins as-of resolution.
type Series []Point

// sortSeries orders a series ascending by date, preserving input order
// for equal dates.
func sortSeries(s Series) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Date.Before(s[j].Date)
	})
}

// lastIndexOnOrBefore returns the index of the last point dated on or
// before cutoff, or -1 when the series starts after the cutoff.
func lastIndexOnOrBefore(s Series, cutoff time.Time) int {
	// First index strictly after cutoff.
	n := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(cutoff)
	})
	return n - 1
}

// positiveOnly returns the subsequence of s with values > 0.
func positiveOnly(s Series) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Value > 0 {
			out = append(out, p)
		}
	}
	return out
}
