package factors

import (
	"math"

	"github.com/marlowequity/factorline/internal/contracts"
)

// momentumWindow is the rolling window, in trading-day records, for
// both momentum and return volatility.
const momentumWindow = 20

// tradingSeries prepares a price series for the technical factors: one
// row per date (last wins) with non-positive prices removed.
func tradingSeries(in *symbolInputs) Series {
	return positiveOnly(dedupeByDate(in.get(AtomicPrice)))
}

// computeMomentum1M emits close[t]/close[t-20] - 1 on every trading
// day in the analysis window. The window counts trading-day records,
// not calendar days.
func computeMomentum1M(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	prices := tradingSeries(in)
	if len(prices) <= momentumWindow {
		return nil
	}

	var out []contracts.FactorRecord
	for i := momentumWindow; i < len(prices); i++ {
		date := prices[i].Date
		if date.Before(rc.start) || date.After(rc.end) {
			continue
		}
		ret := prices[i].Value/prices[i-momentumWindow].Value - 1
		out = append(out, newRecord(in.symbol, date, KindMomentum1M, ret, date))
	}
	return out
}

// computeVolatility20D emits the rolling 20-observation standard
// deviation of simple daily returns on every trading day in the
// analysis window.
func computeVolatility20D(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	prices := tradingSeries(in)
	if len(prices) <= momentumWindow {
		return nil
	}

	returns := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		returns[i] = prices[i].Value/prices[i-1].Value - 1
	}

	var out []contracts.FactorRecord
	for i := momentumWindow; i < len(prices); i++ {
		date := prices[i].Date
		if date.Before(rc.start) || date.After(rc.end) {
			continue
		}
		std := sampleStdDev(returns[i-momentumWindow+1 : i+1])
		out = append(out, newRecord(in.symbol, date, KindVolatility20D, std, date))
	}
	return out
}

// sampleStdDev returns the sample standard deviation (n-1 denominator).
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}
