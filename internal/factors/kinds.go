package factors

// Atomic factor names consumed by the calculators. These match the
// names written by the extraction pipeline.
const (
	AtomicPrice             = "adjusted_close_price"
	AtomicDividend          = "dividend_per_share"
	AtomicSharesOutstanding = "shares_outstanding"
	AtomicEquity            = "total_shareholder_equity"
	AtomicTotalDebt         = "total_debt"
	AtomicEBITDA            = "ebitda"
	AtomicRevenue           = "revenue"
	AtomicNewsSentiment     = "news_sentiment_daily"
	AtomicNewsArticleCount  = "news_article_count_daily"
)

// MarketAtomics lists the atomic names stored as market/alternative
// observations.
func MarketAtomics() []string {
	return []string{
		AtomicPrice,
		AtomicDividend,
		AtomicNewsSentiment,
		AtomicNewsArticleCount,
	}
}

// FinancialAtomics lists the atomic names stored as balance-sheet
// observations, where the reporting date plays the observation-date role.
func FinancialAtomics() []string {
	return []string{
		AtomicSharesOutstanding,
		AtomicEquity,
		AtomicTotalDebt,
		AtomicEBITDA,
		AtomicRevenue,
	}
}

// Kind enumerates the derived factors. Dispatch to calculators goes
// through this closed set, not through factor-name strings.
type Kind int

const (
	KindDividendYield Kind = iota
	KindPBRatio
	KindDebtToEquity
	KindEBITDAMargin
	KindMomentum1M
	KindVolatility20D
	KindSentiment30DAvg
	KindArticleCount30D
)

// AllKinds lists every derived factor in emission order.
var AllKinds = []Kind{
	KindDividendYield,
	KindPBRatio,
	KindDebtToEquity,
	KindEBITDAMargin,
	KindMomentum1M,
	KindVolatility20D,
	KindSentiment30DAvg,
	KindArticleCount30D,
}

// FactorName returns the emitted factor_name for the kind.
func (k Kind) FactorName() string {
	switch k {
	case KindDividendYield:
		return "dividend_yield"
	case KindPBRatio:
		return "pb_ratio"
	case KindDebtToEquity:
		return "debt_to_equity"
	case KindEBITDAMargin:
		return "ebitda_margin"
	case KindMomentum1M:
		return "momentum_1m"
	case KindVolatility20D:
		return "volatility_20d"
	case KindSentiment30DAvg:
		return "sentiment_30d_avg"
	case KindArticleCount30D:
		return "article_count_30d"
	default:
		return "unknown"
	}
}

// CadenceLabel returns the frequency label stamped on emitted records.
func (k Kind) CadenceLabel() string {
	switch k {
	case KindDividendYield, KindPBRatio:
		return "monthly"
	default:
		return "daily"
	}
}

// calculator binds each kind to its computation.
func (k Kind) calculator() calcFunc {
	switch k {
	case KindDividendYield:
		return computeDividendYield
	case KindPBRatio:
		return computePBRatio
	case KindDebtToEquity:
		return computeDebtToEquity
	case KindEBITDAMargin:
		return computeEBITDAMargin
	case KindMomentum1M:
		return computeMomentum1M
	case KindVolatility20D:
		return computeVolatility20D
	case KindSentiment30DAvg:
		return computeSentimentAvg
	case KindArticleCount30D:
		return computeArticleCount
	default:
		return nil
	}
}
