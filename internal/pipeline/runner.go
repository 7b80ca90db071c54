package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/internal/factors"
	"github.com/marlowequity/factorline/internal/store"
	"github.com/marlowequity/factorline/pkg/logger"
)

// AtomicSource pulls atomic observations for a run window.
type AtomicSource interface {
	FetchWindow(ctx context.Context, runDate time.Time, backfillYears int, symbols []string) ([]contracts.Observation, error)
}

// FactorSink persists derived factor records.
type FactorSink interface {
	Load(ctx context.Context, records []contracts.FactorRecord, dry bool) (int, error)
}

// AuditLog records run start/finish rows.
type AuditLog interface {
	Start(ctx context.Context, info store.RunInfo) error
	Finish(ctx context.Context, runID, status string, rowsWritten int, errMessage string) error
}

// Options describe one pipeline run.
type Options struct {
	RunDate       time.Time
	BackfillYears int
	Frequency     contracts.Frequency
	Symbols       []string
	DryRun        bool
}

// Result summarizes a completed run.
type Result struct {
	RunID       string
	Records     int
	RowsWritten int
	Quality     Report
}

// Runner wires the engine to its collaborators: atomic pull, factor
// upsert, and run audit.
type Runner struct {
	source AtomicSource
	sink   FactorSink
	audit  AuditLog
	engine *factors.Engine
	log    *logger.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner(source AtomicSource, sink FactorSink, audit AuditLog, engine *factors.Engine, log *logger.Logger) *Runner {
	return &Runner{source: source, sink: sink, audit: audit, engine: engine, log: log}
}

// Run executes one derivation run end to end and returns its summary.
func (r *Runner) Run(ctx context.Context, opts Options) (Result, error) {
	result := Result{RunID: uuid.NewString()}

	if err := r.audit.Start(ctx, store.RunInfo{
		RunID:         result.RunID,
		RunDate:       opts.RunDate,
		Frequency:     opts.Frequency.String(),
		BackfillYears: opts.BackfillYears,
		Symbols:       opts.Symbols,
		DryRun:        opts.DryRun,
	}); err != nil {
		// The run is still worth doing when only the audit row failed.
		r.log.WithError(err).Warn("Failed to write run audit start")
	}

	rowsWritten, err := r.run(ctx, opts, &result)
	if err != nil {
		if finishErr := r.audit.Finish(ctx, result.RunID, "failed", 0, err.Error()); finishErr != nil {
			r.log.WithError(finishErr).Warn("Failed to write run audit finish")
		}
		return result, err
	}

	result.RowsWritten = rowsWritten
	if err := r.audit.Finish(ctx, result.RunID, "succeeded", rowsWritten, ""); err != nil {
		r.log.WithError(err).Warn("Failed to write run audit finish")
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, opts Options, result *Result) (int, error) {
	atomics, err := r.source.FetchWindow(ctx, opts.RunDate, opts.BackfillYears, opts.Symbols)
	if err != nil {
		return 0, fmt.Errorf("pull atomic observations: %w", err)
	}

	records, err := r.engine.Compute(ctx, atomics, factors.Request{
		RunDate:         opts.RunDate,
		BackfillYears:   opts.BackfillYears,
		OutputFrequency: opts.Frequency,
	})
	if err != nil {
		return 0, fmt.Errorf("derive factors: %w", err)
	}
	result.Records = len(records)

	result.Quality = RunChecks(records)
	if !result.Quality.Passed {
		r.log.WithFields(map[string]interface{}{
			"missing_required":  result.Quality.MissingRequired,
			"invalid_frequency": result.Quality.InvalidFrequency,
			"duplicates":        result.Quality.Duplicates,
		}).Warn("Quality checks failed for emitted records")
	}

	rowsWritten, err := r.sink.Load(ctx, records, opts.DryRun)
	if err != nil {
		return 0, fmt.Errorf("load factor records: %w", err)
	}
	return rowsWritten, nil
}
