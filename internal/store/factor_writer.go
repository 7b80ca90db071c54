package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/pkg/logger"
)

// FactorWriter upserts derived factor records. The upsert key is
// (symbol, factor_name, observation_date); value, source, frequency
// and source report date are refreshed on conflict so recomputation is
// idempotent.
type FactorWriter struct {
	pool   *pgxpool.Pool
	schema string
	log    *logger.Logger
}

// NewFactorWriter creates a factor record writer.
func NewFactorWriter(pool *pgxpool.Pool, schema string, log *logger.Logger) *FactorWriter {
	return &FactorWriter{pool: pool, schema: schema, log: log}
}

// Load writes records with upsert semantics and returns the number of
// rows written. In dry mode it validates and counts without touching
// the database.
func (w *FactorWriter) Load(ctx context.Context, records []contracts.FactorRecord, dry bool) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for i, r := range records {
		if err := validateRecord(r); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}
	if dry {
		w.log.WithField("rows", len(records)).Info("Dry run, skipping factor load")
		return len(records), nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.factor_observations (
			symbol, observation_date, factor_name, factor_value,
			source, metric_frequency, source_report_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, factor_name, observation_date) DO UPDATE SET
			factor_value = EXCLUDED.factor_value,
			source = EXCLUDED.source,
			metric_frequency = EXCLUDED.metric_frequency,
			source_report_date = EXCLUDED.source_report_date,
			updated_at = CURRENT_TIMESTAMP
	`, w.schema)

	batch := &pgx.Batch{}
	for _, r := range records {
		var reportDate any
		if !r.SourceReportDate.IsZero() {
			reportDate = r.SourceReportDate
		}
		batch.Queue(query,
			r.Symbol, r.ObservationDate, r.FactorName, r.Value,
			r.Source, r.Frequency, reportDate,
		)
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("upsert factor record: %w", err)
		}
	}
	return len(records), nil
}

// validateRecord checks the upsert contract before any row is queued.
func validateRecord(r contracts.FactorRecord) error {
	if r.Symbol == "" {
		return fmt.Errorf("missing symbol")
	}
	if r.FactorName == "" {
		return fmt.Errorf("missing factor name")
	}
	if r.ObservationDate.IsZero() {
		return fmt.Errorf("missing observation date")
	}
	if !contracts.IsFinite(r.Value) {
		return fmt.Errorf("non-finite value for %s/%s", r.Symbol, r.FactorName)
	}
	return nil
}
