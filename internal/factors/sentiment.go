package factors

import (
	"time"

	"github.com/marlowequity/factorline/internal/contracts"
)

// sentimentWindowDays is the rolling window, in calendar days, for the
// news aggregates. News can arrive on non-trading days, so the series
// is reindexed onto every calendar day before the window is applied.
const sentimentWindowDays = 30

// newsDaily is one symbol's news series reindexed onto every calendar
// day of the analysis window, with rolling aggregates precomputed.
// Missing days carry sentiment 0 (zero-news neutral assumption) and
// article count 0.
type newsDaily struct {
	days    []time.Time
	avg30   []float64 // rolling 30-calendar-day mean of daily mean sentiment
	count30 []float64 // rolling 30-calendar-day sum of article counts
}

// buildNewsDaily assembles the reindexed news series for a symbol.
// Returns nil when the symbol has no news atomics at all.
func buildNewsDaily(rc *runContext, in *symbolInputs) *newsDaily {
	if in.news != nil {
		return in.news
	}
	sentiment := in.get(AtomicNewsSentiment)
	counts := in.get(AtomicNewsArticleCount)
	if len(sentiment) == 0 && len(counts) == 0 {
		return nil
	}

	// Per-calendar-day mean sentiment: raw rows may hold several
	// article-level scores for the same day.
	sentSum := make(map[time.Time]float64)
	sentN := make(map[time.Time]int)
	for _, p := range sentiment {
		sentSum[p.Date] += p.Value
		sentN[p.Date]++
	}
	countSum := make(map[time.Time]float64)
	for _, p := range counts {
		countSum[p.Date] += p.Value
	}

	days := calendarDays(rc.start, rc.end)
	dailySent := make([]float64, len(days))
	dailyCount := make([]float64, len(days))
	for i, d := range days {
		if n := sentN[d]; n > 0 {
			dailySent[i] = sentSum[d] / float64(n)
		}
		dailyCount[i] = countSum[d]
	}

	nd := &newsDaily{
		days:    days,
		avg30:   rollingMean(dailySent, sentimentWindowDays),
		count30: rollingSum(dailyCount, sentimentWindowDays),
	}
	in.news = nd
	return nd
}

// computeSentimentAvg emits the 30-calendar-day mean sentiment on every
// day of the analysis window, clamped to [-1, 1].
func computeSentimentAvg(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	nd := buildNewsDaily(rc, in)
	if nd == nil {
		return nil
	}
	out := make([]contracts.FactorRecord, 0, len(nd.days))
	for i, d := range nd.days {
		out = append(out, newRecord(in.symbol, d, KindSentiment30DAvg, clamp(nd.avg30[i], -1, 1), d))
	}
	return out
}

// computeArticleCount emits the 30-calendar-day article count sum on
// every day of the analysis window.
func computeArticleCount(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	nd := buildNewsDaily(rc, in)
	if nd == nil {
		return nil
	}
	out := make([]contracts.FactorRecord, 0, len(nd.days))
	for i, d := range nd.days {
		out = append(out, newRecord(in.symbol, d, KindArticleCount30D, nd.count30[i], d))
	}
	return out
}

// rollingSum computes the trailing sum over up to window entries,
// current entry included.
func rollingSum(values []float64, window int) []float64 {
	prefix := make([]float64, len(values)+1)
	for i, v := range values {
		prefix[i+1] = prefix[i] + v
	}
	out := make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = prefix[i+1] - prefix[lo]
	}
	return out
}

// rollingMean computes the trailing mean over up to window entries.
func rollingMean(values []float64, window int) []float64 {
	out := rollingSum(values, window)
	for i := range out {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] /= float64(i - lo + 1)
	}
	return out
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
