package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSentimentAvg_NoNewsAtAll(t *testing.T) {
	in := testInputs("AAPL", map[string]Series{AtomicPrice: {{Date: d(2026, 1, 5), Value: 100}}})
	rc := testRunContext(d(2026, 1, 1), d(2026, 1, 31))

	assert.Empty(t, computeSentimentAvg(rc, in))
	assert.Empty(t, computeArticleCount(rc, in))
}

func TestComputeSentimentAvg_ZeroFillDecay(t *testing.T) {
	// One scored day at the window start; every later day is zero-filled,
	// so the rolling mean decays as the window grows.
	in := testInputs("AAPL", map[string]Series{
		AtomicNewsSentiment: {{Date: d(2026, 1, 1), Value: 0.9}},
	})
	rc := testRunContext(d(2026, 1, 1), d(2026, 1, 10))

	out := computeSentimentAvg(rc, in)
	require.Len(t, out, 10)
	assert.InDelta(t, 0.9, out[0].Value, 1e-12)
	assert.InDelta(t, 0.45, out[1].Value, 1e-12)
	assert.InDelta(t, 0.3, out[2].Value, 1e-12)
	assert.InDelta(t, 0.09, out[9].Value, 1e-12)
}

func TestComputeSentimentAvg_MultipleScoresPerDayAveraged(t *testing.T) {
	in := testInputs("AAPL", map[string]Series{
		AtomicNewsSentiment: {
			{Date: d(2026, 1, 1), Value: 0.2},
			{Date: d(2026, 1, 1), Value: 0.8},
		},
	})
	rc := testRunContext(d(2026, 1, 1), d(2026, 1, 1))

	out := computeSentimentAvg(rc, in)
	require.Len(t, out, 1)
	assert.InDelta(t, 0.5, out[0].Value, 1e-12)
}

func TestComputeSentimentAvg_Clamped(t *testing.T) {
	in := testInputs("AAPL", map[string]Series{
		AtomicNewsSentiment: {{Date: d(2026, 1, 1), Value: 3.5}},
	})
	rc := testRunContext(d(2026, 1, 1), d(2026, 1, 2))

	out := computeSentimentAvg(rc, in)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Value)
}

func TestComputeArticleCount_RollingWindow(t *testing.T) {
	in := testInputs("AAPL", map[string]Series{
		AtomicNewsArticleCount: {
			{Date: d(2026, 1, 1), Value: 5},
			{Date: d(2026, 1, 2), Value: 3},
		},
	})
	rc := testRunContext(d(2026, 1, 1), d(2026, 2, 5))

	out := computeArticleCount(rc, in)
	require.Len(t, out, 36)

	byDate := make(map[string]float64)
	for _, r := range out {
		byDate[r.ObservationDate.Format("2006-01-02")] = r.Value
	}
	assert.Equal(t, 5.0, byDate["2026-01-01"])
	assert.Equal(t, 8.0, byDate["2026-01-02"])
	// Jan 30 window still reaches back to Jan 1; Jan 31 no longer does.
	assert.Equal(t, 8.0, byDate["2026-01-30"])
	assert.Equal(t, 3.0, byDate["2026-01-31"])
	assert.Equal(t, 0.0, byDate["2026-02-05"])
}

func TestBuildNewsDaily_Memoized(t *testing.T) {
	in := testInputs("AAPL", map[string]Series{
		AtomicNewsSentiment: {{Date: d(2026, 1, 1), Value: 0.5}},
	})
	rc := testRunContext(d(2026, 1, 1), d(2026, 1, 5))

	first := buildNewsDaily(rc, in)
	second := buildNewsDaily(rc, in)
	assert.Same(t, first, second)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, -1.0, clamp(-2.5, -1, 1))
	assert.Equal(t, 0.3, clamp(0.3, -1, 1))
	assert.Equal(t, 1.0, clamp(7.0, -1, 1))
}
