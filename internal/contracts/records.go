package contracts

import "time"

// SourceFactorTransform tags records produced by the derivation engine.
const SourceFactorTransform = "factor_transform"

// Observation is a raw atomic observation handed to the engine.
// Dates arrive as ISO strings because upstream extractors disagree on
// formats; the engine drops rows it cannot parse.
type Observation struct {
	Symbol           string
	ObservationDate  string // YYYY-MM-DD, possibly with a time suffix
	FactorName       string
	Value            *float64
	Source           string
	Frequency        string
	SourceReportDate string
}

// FactorRecord is a derived factor value emitted by the engine.
// The upsert identity is (symbol, observation_date, factor_name).
type FactorRecord struct {
	Symbol           string
	ObservationDate  time.Time
	FactorName       string
	Value            float64
	Source           string
	Frequency        string
	SourceReportDate time.Time
}

// Key returns the upsert identity of the record.
func (r FactorRecord) Key() RecordKey {
	return RecordKey{
		Symbol:          r.Symbol,
		ObservationDate: r.ObservationDate.Format("2006-01-02"),
		FactorName:      r.FactorName,
	}
}

// RecordKey identifies one factor observation.
type RecordKey struct {
	Symbol          string
	ObservationDate string
	FactorName      string
}
