package factors

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/pkg/logger"
)

// windowPadDays extends the data window before the analysis start so
// trailing-12-month and staleness lookups resolve at the window's edge.
const windowPadDays = 370

// Request describes one engine invocation.
type Request struct {
	RunDate         time.Time
	BackfillYears   int
	OutputFrequency contracts.Frequency
}

// Engine derives final factors from atomic observations. It is a pure
// function of its inputs: persistence and extraction stay with the
// caller.
type Engine struct {
	cfg Config
	log *logger.Logger
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(cfg Config, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Compute derives all final factors for the request's date range.
//
// Input rows that cannot be keyed or dated are dropped silently; an
// empty or all-invalid input yields an empty result. Symbols are
// computed concurrently with worker-local quality trackers merged at
// fan-in, so output and the quality summary are deterministic for a
// fixed input.
func (e *Engine) Compute(ctx context.Context, observations []contracts.Observation, req Request) ([]contracts.FactorRecord, error) {
	if req.RunDate.IsZero() {
		return nil, fmt.Errorf("run date is required")
	}
	runDate := dateOnly(req.RunDate)

	years := req.BackfillYears
	if years < 1 {
		years = 1
	}
	backfillDays := int(math.Round(365.25 * float64(years)))
	start := runDate.AddDate(0, 0, -backfillDays)
	dataStart := start.AddDate(0, 0, -windowPadDays)

	bySymbol := normalize(observations, dataStart, runDate)
	symbols := sortedSymbols(bySymbol)

	e.log.WithFields(map[string]interface{}{
		"run_date":       runDate.Format("2006-01-02"),
		"backfill_years": years,
		"symbols":        len(symbols),
		"atomic_rows":    len(observations),
	}).Info("Starting factor derivation")

	results := make([][]contracts.FactorRecord, len(symbols))
	trackers := make([]*Tracker, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tracker := NewTracker(e.log, e.cfg.Verbose)
			rc := &runContext{
				cfg:     e.cfg,
				start:   start,
				end:     runDate,
				tracker: tracker,
				log:     e.log,
			}
			var records []contracts.FactorRecord
			for _, kind := range AllKinds {
				records = append(records, kind.calculator()(rc, bySymbol[symbol])...)
			}
			results[i] = records
			trackers[i] = tracker
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracker := NewTracker(e.log, e.cfg.Verbose)
	var records []contracts.FactorRecord
	for i := range symbols {
		records = append(records, results[i]...)
		tracker.Merge(trackers[i])
	}

	CapOutliers(records, KindPBRatio.FactorName(), e.cfg.Cap)

	records, err := Sample(records, req.OutputFrequency)
	if err != nil {
		return nil, err
	}
	sortRecords(records)

	tracker.Flush()
	e.log.WithFields(map[string]interface{}{
		"records":          len(records),
		"output_frequency": req.OutputFrequency.String(),
	}).Info("Factor derivation completed")

	return records, nil
}

// sortRecords orders output by symbol, observation date, factor name.
func sortRecords(records []contracts.FactorRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if !a.ObservationDate.Equal(b.ObservationDate) {
			return a.ObservationDate.Before(b.ObservationDate)
		}
		return a.FactorName < b.FactorName
	})
}
