package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/internal/factors"
)

// windowPadDays mirrors the engine's lookback pad so the pulled window
// always covers trailing-12-month and staleness lookups.
const windowPadDays = 370

// AtomicReader pulls atomic observations for the engine. Market and
// alternative atomics live in factor_observations; balance-sheet
// atomics live in financial_observations, where the reporting date
// plays the observation-date role.
type AtomicReader struct {
	pool   *pgxpool.Pool
	schema string
}

// NewAtomicReader creates an atomic observation reader.
func NewAtomicReader(pool *pgxpool.Pool, schema string) *AtomicReader {
	return &AtomicReader{pool: pool, schema: schema}
}

// FetchWindow pulls all atomic observations needed for a run, ordered
// deterministically. An empty symbols slice means the whole universe.
func (r *AtomicReader) FetchWindow(ctx context.Context, runDate time.Time, backfillYears int, symbols []string) ([]contracts.Observation, error) {
	if backfillYears < 1 {
		backfillYears = 1
	}
	backfillDays := int(math.Round(365.25 * float64(backfillYears)))
	start := runDate.AddDate(0, 0, -backfillDays-windowPadDays)

	market, err := r.fetchMarket(ctx, start, runDate, symbols)
	if err != nil {
		return nil, fmt.Errorf("fetch market atomics: %w", err)
	}
	financial, err := r.fetchFinancial(ctx, start, runDate, symbols)
	if err != nil {
		return nil, fmt.Errorf("fetch financial atomics: %w", err)
	}
	return append(market, financial...), nil
}

func (r *AtomicReader) fetchMarket(ctx context.Context, start, end time.Time, symbols []string) ([]contracts.Observation, error) {
	query := fmt.Sprintf(`
		SELECT symbol, observation_date::text, factor_name, COALESCE(factor_value::text, ''),
		       source, metric_frequency, COALESCE(source_report_date::text, '')
		FROM %s.factor_observations
		WHERE observation_date BETWEEN $1 AND $2
		  AND factor_name = ANY($3)
		  AND ($4::text[] IS NULL OR symbol = ANY($4))
		ORDER BY symbol, observation_date, factor_name
	`, r.schema)

	rows, err := r.pool.Query(ctx, query, start, end, factors.MarketAtomics(), nullableSymbols(symbols))
	if err != nil {
		return nil, err
	}
	return scanObservations(rows)
}

func (r *AtomicReader) fetchFinancial(ctx context.Context, start, end time.Time, symbols []string) ([]contracts.Observation, error) {
	query := fmt.Sprintf(`
		SELECT symbol, report_date::text, metric_name, COALESCE(metric_value::text, ''),
		       source, period_type, COALESCE(as_of::text, '')
		FROM %s.financial_observations
		WHERE report_date BETWEEN $1 AND $2
		  AND metric_name = ANY($3)
		  AND ($4::text[] IS NULL OR symbol = ANY($4))
		ORDER BY symbol, report_date, metric_name
	`, r.schema)

	rows, err := r.pool.Query(ctx, query, start, end, factors.FinancialAtomics(), nullableSymbols(symbols))
	if err != nil {
		return nil, err
	}
	return scanObservations(rows)
}

// scanObservations reads observation rows, coercing the value column
// through the shared parse boundary. Values that do not parse stay nil
// and fall out during engine normalization.
func scanObservations(rows pgx.Rows) ([]contracts.Observation, error) {
	defer rows.Close()

	var out []contracts.Observation
	for rows.Next() {
		var obs contracts.Observation
		var rawValue string
		if err := rows.Scan(&obs.Symbol, &obs.ObservationDate, &obs.FactorName,
			&rawValue, &obs.Source, &obs.Frequency, &obs.SourceReportDate); err != nil {
			return nil, err
		}
		if v, ok := contracts.ParseNumeric(rawValue); ok {
			obs.Value = &v
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

// nullableSymbols maps an empty filter to SQL NULL so the symbol
// clause collapses to true.
func nullableSymbols(symbols []string) any {
	if len(symbols) == 0 {
		return nil
	}
	return symbols
}
