package factors

import (
	"fmt"

	"github.com/marlowequity/factorline/internal/contracts"
)

// periodKey identifies one sampling period for one symbol and factor.
type periodKey struct {
	symbol string
	factor string
	year   int
	period int
}

// Sample reduces records to the requested output cadence.
//
// Daily passes through unchanged. Other cadences keep the single
// record with the latest observation date per (symbol, factor,
// period); observation-date ties prefer the later source report date,
// the more current source vintage.
func Sample(records []contracts.FactorRecord, freq contracts.Frequency) ([]contracts.FactorRecord, error) {
	if freq == contracts.FreqDaily {
		return records, nil
	}

	latest := make(map[periodKey]contracts.FactorRecord)
	order := make([]periodKey, 0, len(records))
	for _, r := range records {
		key, err := samplingKey(r, freq)
		if err != nil {
			return nil, err
		}
		cur, seen := latest[key]
		if !seen {
			latest[key] = r
			order = append(order, key)
			continue
		}
		if r.ObservationDate.After(cur.ObservationDate) ||
			(r.ObservationDate.Equal(cur.ObservationDate) && r.SourceReportDate.After(cur.SourceReportDate)) {
			latest[key] = r
		}
	}

	out := make([]contracts.FactorRecord, 0, len(order))
	for _, key := range order {
		out = append(out, latest[key])
	}
	return out, nil
}

// samplingKey maps a record onto its sampling period.
func samplingKey(r contracts.FactorRecord, freq contracts.Frequency) (periodKey, error) {
	key := periodKey{symbol: r.Symbol, factor: r.FactorName}
	switch freq {
	case contracts.FreqWeekly:
		key.year, key.period = r.ObservationDate.ISOWeek()
	case contracts.FreqMonthly:
		key.year, key.period = r.ObservationDate.Year(), int(r.ObservationDate.Month())
	case contracts.FreqQuarterly:
		key.year, key.period = r.ObservationDate.Year(), (int(r.ObservationDate.Month())-1)/3+1
	case contracts.FreqAnnual:
		key.year = r.ObservationDate.Year()
	default:
		return periodKey{}, fmt.Errorf("unsupported output frequency %q", freq)
	}
	return key, nil
}
