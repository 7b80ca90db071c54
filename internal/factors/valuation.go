package factors

import (
	"github.com/marlowequity/factorline/internal/contracts"
)

// computePBRatio emits price-to-book at each month-end in the analysis
// window: price * shares_outstanding / total_shareholder_equity.
//
// Price comes through the price lookback; shares and equity are as-of
// joins under the staleness policy. The raw ratio is emitted here; the
// cross-sectional capper runs later in the engine.
func computePBRatio(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	prices := in.get(AtomicPrice)
	shares := in.get(AtomicSharesOutstanding)
	equity := in.get(AtomicEquity)
	if len(prices) == 0 || len(shares) == 0 || len(equity) == 0 {
		return nil
	}

	factor := KindPBRatio.FactorName()

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
			}).Warn("Stale price used for pb_ratio")
		}

		sh, ok := ResolveAsOf(shares, monthEnd, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		eq, ok := ResolveAsOf(equity, monthEnd, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		if sh.Value <= 0 || eq.Value <= 0 {
			continue
		}

		pb := px.Value * sh.Value / eq.Value
		out = append(out, newRecord(in.symbol, monthEnd, KindPBRatio, pb, px.Date))
	}
	return out
}
