package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunAudit persists one row per pipeline run so operators can see what
// ran, with which parameters, and how it ended.
type RunAudit struct {
	pool   *pgxpool.Pool
	schema string
}

// NewRunAudit creates a run audit writer.
func NewRunAudit(pool *pgxpool.Pool, schema string) *RunAudit {
	return &RunAudit{pool: pool, schema: schema}
}

// RunInfo describes a starting run.
type RunInfo struct {
	RunID         string
	RunDate       time.Time
	Frequency     string
	BackfillYears int
	Symbols       []string
	DryRun        bool
}

// Start inserts (or overwrites) the run row as running.
func (a *RunAudit) Start(ctx context.Context, info RunInfo) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.pipeline_runs (
			run_id, run_date, started_at, status, frequency, backfill_years, symbols, dry_run
		) VALUES ($1, $2, CURRENT_TIMESTAMP, 'running', $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			run_date = EXCLUDED.run_date,
			started_at = EXCLUDED.started_at,
			status = 'running',
			frequency = EXCLUDED.frequency,
			backfill_years = EXCLUDED.backfill_years,
			symbols = EXCLUDED.symbols,
			dry_run = EXCLUDED.dry_run,
			updated_at = CURRENT_TIMESTAMP
	`, a.schema)

	_, err := a.pool.Exec(ctx, query,
		info.RunID, info.RunDate, info.Frequency, info.BackfillYears,
		strings.Join(info.Symbols, ","), info.DryRun,
	)
	if err != nil {
		return fmt.Errorf("audit run start: %w", err)
	}
	return nil
}

// Finish updates the run row with its final status.
func (a *RunAudit) Finish(ctx context.Context, runID, status string, rowsWritten int, errMessage string) error {
	query := fmt.Sprintf(`
		UPDATE %s.pipeline_runs
		SET finished_at = CURRENT_TIMESTAMP,
			status = $2,
			rows_written = $3,
			error_message = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE run_id = $1
	`, a.schema)

	_, err := a.pool.Exec(ctx, query, runID, status, rowsWritten, errMessage)
	if err != nil {
		return fmt.Errorf("audit run finish: %w", err)
	}
	return nil
}
