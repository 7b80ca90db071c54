package factors

import (
	"sort"
	"strings"
	"time"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/pkg/logger"
)

// symbolInputs holds one symbol's atomic series, keyed by atomic
// factor name. Series are date-sorted with input order preserved for
// duplicate dates.
type symbolInputs struct {
	symbol string
	series map[string]Series

	news *newsDaily // memoized by the sentiment calculators
}

// get returns the named series, or nil when the symbol has none.
func (in *symbolInputs) get(name string) Series {
	return in.series[name]
}

// runContext carries the per-run state every calculator needs: the
// emission window, thresholds, and the worker-local quality tracker.
type runContext struct {
	cfg        Config
	start, end time.Time
	tracker    *Tracker
	log        *logger.Logger
}

// calcFunc computes one derived factor for one symbol.
type calcFunc func(rc *runContext, in *symbolInputs) []contracts.FactorRecord

// normalize parses and filters raw observations into per-symbol series.
//
// Rows with an unparsable date, a missing symbol, a missing factor
// name, or an absent/non-finite value are dropped; these are data
// faults, not errors. Rows outside [from, to] are discarded.
func normalize(observations []contracts.Observation, from, to time.Time) map[string]*symbolInputs {
	bySymbol := make(map[string]*symbolInputs)

	for _, obs := range observations {
		symbol := strings.TrimSpace(obs.Symbol)
		factor := strings.TrimSpace(obs.FactorName)
		if symbol == "" || factor == "" {
			continue
		}
		date, ok := contracts.ParseDate(obs.ObservationDate)
		if !ok {
			continue
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		if obs.Value == nil || !contracts.IsFinite(*obs.Value) {
			continue
		}

		in := bySymbol[symbol]
		if in == nil {
			in = &symbolInputs{symbol: symbol, series: make(map[string]Series)}
			bySymbol[symbol] = in
		}
		in.series[factor] = append(in.series[factor], Point{Date: date, Value: *obs.Value})
	}

	for _, in := range bySymbol {
		for _, s := range in.series {
			sortSeries(s)
		}
	}
	return bySymbol
}

// sortedSymbols returns the symbol keys in ascending order.
func sortedSymbols(bySymbol map[string]*symbolInputs) []string {
	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// newRecord builds a derived factor record in the output contract shape.
func newRecord(symbol string, observationDate time.Time, kind Kind, value float64, sourceReportDate time.Time) contracts.FactorRecord {
	return contracts.FactorRecord{
		Symbol:           symbol,
		ObservationDate:  observationDate,
		FactorName:       kind.FactorName(),
		Value:            value,
		Source:           contracts.SourceFactorTransform,
		Frequency:        kind.CadenceLabel(),
		SourceReportDate: sourceReportDate,
	}
}

// laterDate returns the more recent of two dates.
func laterDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
