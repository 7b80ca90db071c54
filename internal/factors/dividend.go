package factors

import (
	"github.com/marlowequity/factorline/internal/contracts"
)

// computeDividendYield emits the trailing-12-month dividend yield at
// each month-end in the analysis window.
//
// The price is resolved through the price lookback; dividends default
// to zero when the symbol has no dividend atomics. The TTM window is
// (price_date - 365d, price_date].
func computeDividendYield(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	prices := in.get(AtomicPrice)
	if len(prices) == 0 {
		return nil
	}
	dividends := in.get(AtomicDividend)

	var out []contracts.FactorRecord
	for _, monthEnd := range monthEnds(rc.start, rc.end) {
		px, lag, ok := ResolvePrice(prices, monthEnd, rc.cfg.MaxPriorTradingDays)
		if !ok {
			continue
		}
		if lag > 1 {
			rc.log.WithFields(map[string]interface{}{
				"symbol": in.symbol,
				"cutoff": monthEnd.Format("2006-01-02"),
				"lag":    lag,
			}).Warn("Stale price used for dividend_yield")
		}

		ttmStart := px.Date.AddDate(0, 0, -365)
		ttm := 0.0
		for _, d := range dividends {
			if d.Date.After(ttmStart) && !d.Date.After(px.Date) {
				ttm += d.Value
			}
		}

		out = append(out, newRecord(in.symbol, monthEnd, KindDividendYield, ttm/px.Value, px.Date))
	}
	return out
}
