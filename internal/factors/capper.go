package factors

import (
	"sort"
	"time"

	"github.com/marlowequity/factorline/internal/contracts"
)

// CapOutliers caps extreme values of the named factor per observation
// date, across all symbols sharing that date.
//
// Cross-sections of at least cfg.SampleThreshold values are capped at
// the sample percentile; smaller samples fall back to the fixed cap,
// since the tail percentile cannot be estimated reliably there.
// Capping only ever lowers a value. Records are modified in place.
func CapOutliers(records []contracts.FactorRecord, factorName string, cfg CapConfig) {
	byDate := make(map[time.Time][]int)
	for i, r := range records {
		if r.FactorName == factorName {
			byDate[r.ObservationDate] = append(byDate[r.ObservationDate], i)
		}
	}

	for _, idxs := range byDate {
		bound := cfg.FixedCap
		if len(idxs) >= cfg.SampleThreshold {
			values := make([]float64, len(idxs))
			for i, idx := range idxs {
				values[i] = records[idx].Value
			}
			bound = percentile(values, cfg.Percentile)
		}
		for _, idx := range idxs {
			if records[idx].Value > bound {
				records[idx].Value = bound
			}
		}
	}
}

// percentile returns the p-quantile (0 <= p <= 1) of values using
// linear interpolation between order statistics.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
