package factors

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/pkg/logger"
)

func obsRow(symbol, date, factor string, value float64) contracts.Observation {
	return contracts.Observation{
		Symbol:           symbol,
		ObservationDate:  date,
		FactorName:       factor,
		Value:            &value,
		Source:           "extractor",
		Frequency:        "daily",
		SourceReportDate: date,
	}
}

func testEngine() *Engine {
	return NewEngine(DefaultConfig(), logger.NewNop())
}

func dailyRequest(runDate string) Request {
	date, ok := contracts.ParseDate(runDate)
	if !ok {
		panic("bad run date in test: " + runDate)
	}
	return Request{RunDate: date, BackfillYears: 1, OutputFrequency: contracts.FreqDaily}
}

func byFactor(records []contracts.FactorRecord, name string) []contracts.FactorRecord {
	var out []contracts.FactorRecord
	for _, r := range records {
		if r.FactorName == name {
			out = append(out, r)
		}
	}
	return out
}

func TestEngine_RunDateRequired(t *testing.T) {
	_, err := testEngine().Compute(context.Background(), nil, Request{OutputFrequency: contracts.FreqDaily})
	assert.Error(t, err)
}

func TestEngine_EmptyInput(t *testing.T) {
	out, err := testEngine().Compute(context.Background(), nil, dailyRequest("2026-01-31"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEngine_DividendYieldEndToEnd(t *testing.T) {
	// Saturday month-end: the Friday close carries the yield, the two
	// in-window dividends sum to 2.0.
	observations := []contracts.Observation{
		obsRow("AAPL", "2026-01-30", AtomicPrice, 100),
		obsRow("AAPL", "2025-06-01", AtomicDividend, 1.2),
		obsRow("AAPL", "2025-12-01", AtomicDividend, 0.8),
	}

	out, err := testEngine().Compute(context.Background(), observations, dailyRequest("2026-01-31"))
	require.NoError(t, err)

	yields := byFactor(out, "dividend_yield")
	require.Len(t, yields, 1)
	r := yields[0]
	assert.Equal(t, d(2026, 1, 31), r.ObservationDate)
	assert.InDelta(t, 0.02, r.Value, 1e-12)
	assert.Equal(t, d(2026, 1, 30), r.SourceReportDate)
	assert.Equal(t, contracts.SourceFactorTransform, r.Source)
	assert.Equal(t, "monthly", r.Frequency)
}

func TestEngine_DebtToEquityDaily(t *testing.T) {
	observations := []contracts.Observation{
		obsRow("MSFT", "2025-12-31", AtomicTotalDebt, 300),
		obsRow("MSFT", "2025-12-31", AtomicEquity, 100),
	}

	out, err := testEngine().Compute(context.Background(), observations, dailyRequest("2026-01-15"))
	require.NoError(t, err)

	d2e := byFactor(out, "debt_to_equity")
	// One record per day from the report date through the run date.
	require.Len(t, d2e, 16)
	assert.Equal(t, d(2025, 12, 31), d2e[0].ObservationDate)
	assert.Equal(t, d(2026, 1, 15), d2e[15].ObservationDate)
	for _, r := range d2e {
		assert.InDelta(t, 3.0, r.Value, 1e-12)
	}
}

func TestEngine_ExpiredInputProducesNoFactor(t *testing.T) {
	// Equity 366 days old at the only resolvable month-end.
	observations := []contracts.Observation{
		obsRow("AAPL", "2026-01-30", AtomicPrice, 100),
		obsRow("AAPL", "2026-01-15", AtomicSharesOutstanding, 10),
		obsRow("AAPL", "2025-01-30", AtomicEquity, 500),
	}

	out, err := testEngine().Compute(context.Background(), observations, dailyRequest("2026-01-31"))
	require.NoError(t, err)
	assert.Empty(t, byFactor(out, "pb_ratio"))
}

func TestEngine_PBRatioFixedCap(t *testing.T) {
	observations := []contracts.Observation{
		obsRow("ZZZ", "2026-01-30", AtomicPrice, 1000),
		obsRow("ZZZ", "2025-12-31", AtomicSharesOutstanding, 1000),
		obsRow("ZZZ", "2025-12-31", AtomicEquity, 1),
	}

	out, err := testEngine().Compute(context.Background(), observations, dailyRequest("2026-01-31"))
	require.NoError(t, err)

	pbs := byFactor(out, "pb_ratio")
	require.Len(t, pbs, 1)
	assert.Equal(t, 100.0, pbs[0].Value)
}

func TestEngine_MalformedRowsDropped(t *testing.T) {
	nan := math.NaN()
	clean := []contracts.Observation{
		obsRow("MSFT", "2025-12-31", AtomicTotalDebt, 300),
		obsRow("MSFT", "2025-12-31", AtomicEquity, 100),
	}
	dirty := append([]contracts.Observation{
		obsRow("MSFT", "not-a-date", AtomicTotalDebt, 1),
		obsRow("", "2025-12-31", AtomicTotalDebt, 1),
		obsRow("MSFT", "2025-12-31", "", 1),
		{Symbol: "MSFT", ObservationDate: "2025-12-31", FactorName: AtomicTotalDebt},
		{Symbol: "MSFT", ObservationDate: "2025-12-31", FactorName: AtomicTotalDebt, Value: &nan},
	}, clean...)

	req := dailyRequest("2026-01-15")
	want, err := testEngine().Compute(context.Background(), clean, req)
	require.NoError(t, err)
	got, err := testEngine().Compute(context.Background(), dirty, req)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestEngine_DeterministicAcrossRuns(t *testing.T) {
	observations := []contracts.Observation{
		obsRow("MSFT", "2025-12-31", AtomicTotalDebt, 300),
		obsRow("MSFT", "2025-12-31", AtomicEquity, 100),
		obsRow("AAPL", "2025-12-31", AtomicTotalDebt, 50),
		obsRow("AAPL", "2025-12-31", AtomicEquity, 200),
		obsRow("AAPL", "2026-01-30", AtomicPrice, 100),
		obsRow("AAPL", "2025-06-01", AtomicDividend, 1.2),
		obsRow("ZZZ", "2026-01-10", AtomicNewsSentiment, 0.4),
		obsRow("ZZZ", "2026-01-10", AtomicNewsArticleCount, 7),
	}

	req := dailyRequest("2026-01-31")
	first, err := testEngine().Compute(context.Background(), observations, req)
	require.NoError(t, err)
	second, err := testEngine().Compute(context.Background(), observations, req)
	require.NoError(t, err)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	// Output ordering: symbol, then date, then factor name.
	for i := 1; i < len(first); i++ {
		a, b := first[i-1], first[i]
		if a.Symbol != b.Symbol {
			assert.Less(t, a.Symbol, b.Symbol)
			continue
		}
		if !a.ObservationDate.Equal(b.ObservationDate) {
			assert.True(t, a.ObservationDate.Before(b.ObservationDate))
			continue
		}
		assert.Less(t, a.FactorName, b.FactorName)
	}
}

func TestEngine_MonthlySampling(t *testing.T) {
	observations := []contracts.Observation{
		obsRow("MSFT", "2025-11-30", AtomicTotalDebt, 300),
		obsRow("MSFT", "2025-11-30", AtomicEquity, 100),
	}

	req := Request{
		RunDate:         d(2026, 1, 15),
		BackfillYears:   1,
		OutputFrequency: contracts.FreqMonthly,
	}
	out, err := testEngine().Compute(context.Background(), observations, req)
	require.NoError(t, err)

	d2e := byFactor(out, "debt_to_equity")
	// Daily records collapse to one per month: Nov, Dec, Jan.
	require.Len(t, d2e, 3)
	assert.Equal(t, d(2025, 11, 30), d2e[0].ObservationDate)
	assert.Equal(t, d(2025, 12, 31), d2e[1].ObservationDate)
	assert.Equal(t, d(2026, 1, 15), d2e[2].ObservationDate)
}

func TestEngine_UnsupportedOutputFrequency(t *testing.T) {
	observations := []contracts.Observation{
		obsRow("MSFT", "2025-12-31", AtomicTotalDebt, 300),
		obsRow("MSFT", "2025-12-31", AtomicEquity, 100),
	}

	req := Request{
		RunDate:         d(2026, 1, 15),
		BackfillYears:   1,
		OutputFrequency: contracts.Frequency(42),
	}
	_, err := testEngine().Compute(context.Background(), observations, req)
	assert.Error(t, err)
}
