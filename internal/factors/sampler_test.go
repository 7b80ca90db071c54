package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowequity/factorline/internal/contracts"
)

func sampleRec(symbol string, obs time.Time, factor string, value float64, srd time.Time) contracts.FactorRecord {
	return contracts.FactorRecord{
		Symbol:           symbol,
		ObservationDate:  obs,
		FactorName:       factor,
		Value:            value,
		Source:           contracts.SourceFactorTransform,
		SourceReportDate: srd,
	}
}

func TestSample_DailyPassthrough(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 5), "momentum_1m", 0.1, d(2026, 1, 5)),
		sampleRec("AAA", d(2026, 1, 6), "momentum_1m", 0.2, d(2026, 1, 6)),
	}

	out, err := Sample(records, contracts.FreqDaily)
	require.NoError(t, err)
	assert.Equal(t, records, out)
}

func TestSample_MonthlyKeepsLatestObservation(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 5), "debt_to_equity", 1.0, d(2026, 1, 5)),
		sampleRec("AAA", d(2026, 1, 30), "debt_to_equity", 2.0, d(2026, 1, 30)),
		sampleRec("AAA", d(2026, 2, 2), "debt_to_equity", 3.0, d(2026, 2, 2)),
	}

	out, err := Sample(records, contracts.FreqMonthly)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Value)
	assert.Equal(t, 3.0, out[1].Value)
}

func TestSample_TieBreakOnSourceReportDate(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 31), "pb_ratio", 1.0, d(2026, 1, 28)),
		sampleRec("AAA", d(2026, 1, 31), "pb_ratio", 2.0, d(2026, 1, 30)),
	}

	out, err := Sample(records, contracts.FreqMonthly)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].Value)
}

func TestSample_WeeklyUsesISOWeeks(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 5), "momentum_1m", 1.0, d(2026, 1, 5)),   // Monday
		sampleRec("AAA", d(2026, 1, 9), "momentum_1m", 2.0, d(2026, 1, 9)),   // Friday, same week
		sampleRec("AAA", d(2026, 1, 12), "momentum_1m", 3.0, d(2026, 1, 12)), // next Monday
	}

	out, err := Sample(records, contracts.FreqWeekly)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Value)
	assert.Equal(t, 3.0, out[1].Value)
}

func TestSample_QuarterlyAndAnnual(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 15), "ebitda_margin", 1.0, d(2026, 1, 15)),
		sampleRec("AAA", d(2026, 3, 31), "ebitda_margin", 2.0, d(2026, 3, 31)),
		sampleRec("AAA", d(2026, 4, 1), "ebitda_margin", 3.0, d(2026, 4, 1)),
	}

	quarterly, err := Sample(records, contracts.FreqQuarterly)
	require.NoError(t, err)
	require.Len(t, quarterly, 2)
	assert.Equal(t, 2.0, quarterly[0].Value)
	assert.Equal(t, 3.0, quarterly[1].Value)

	annual, err := Sample(records, contracts.FreqAnnual)
	require.NoError(t, err)
	require.Len(t, annual, 1)
	assert.Equal(t, 3.0, annual[0].Value)
}

func TestSample_SymbolsAndFactorsAreSeparate(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 15), "pb_ratio", 1.0, d(2026, 1, 15)),
		sampleRec("BBB", d(2026, 1, 15), "pb_ratio", 2.0, d(2026, 1, 15)),
		sampleRec("AAA", d(2026, 1, 15), "dividend_yield", 3.0, d(2026, 1, 15)),
	}

	out, err := Sample(records, contracts.FreqMonthly)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestSample_UnsupportedFrequency(t *testing.T) {
	records := []contracts.FactorRecord{
		sampleRec("AAA", d(2026, 1, 15), "pb_ratio", 1.0, d(2026, 1, 15)),
	}

	_, err := Sample(records, contracts.Frequency(99))
	assert.Error(t, err)
}
