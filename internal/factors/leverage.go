package factors

import (
	"github.com/marlowequity/factorline/internal/contracts"
)

// computeDebtToEquity emits total_debt / total_shareholder_equity at
// each daily cutoff where both inputs resolve under the staleness
// policy. The source report date is the later of the two inputs.
func computeDebtToEquity(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	debt := in.get(AtomicTotalDebt)
	equity := in.get(AtomicEquity)
	if len(debt) == 0 || len(equity) == 0 {
		return nil
	}

	factor := KindDebtToEquity.FactorName()

	var out []contracts.FactorRecord
	for _, cutoff := range calendarDays(rc.start, rc.end) {
		d, ok := ResolveAsOf(debt, cutoff, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		e, ok := ResolveAsOf(equity, cutoff, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		if e.Value <= 0 {
			continue
		}
		out = append(out, newRecord(in.symbol, cutoff, KindDebtToEquity, d.Value/e.Value, laterDate(d.Date, e.Date)))
	}
	return out
}

// computeEBITDAMargin emits ebitda / revenue at each daily cutoff.
// Revenue must be positive.
func computeEBITDAMargin(rc *runContext, in *symbolInputs) []contracts.FactorRecord {
	ebitda := in.get(AtomicEBITDA)
	revenue := in.get(AtomicRevenue)
	if len(ebitda) == 0 || len(revenue) == 0 {
		return nil
	}

	factor := KindEBITDAMargin.FactorName()

	var out []contracts.FactorRecord
	for _, cutoff := range calendarDays(rc.start, rc.end) {
		e, ok := ResolveAsOf(ebitda, cutoff, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		r, ok := ResolveAsOf(revenue, cutoff, rc.cfg.Staleness, factor, rc.tracker)
		if !ok {
			continue
		}
		if r.Value <= 0 {
			continue
		}
		out = append(out, newRecord(in.symbol, cutoff, KindEBITDAMargin, e.Value/r.Value, laterDate(e.Date, r.Date)))
	}
	return out
}
