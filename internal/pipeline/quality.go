package pipeline

import (
	"github.com/marlowequity/factorline/internal/contracts"
)

// allowedFrequencies are the cadence labels a record may carry.
var allowedFrequencies = map[string]struct{}{
	"daily":     {},
	"weekly":    {},
	"monthly":   {},
	"quarterly": {},
	"annual":    {},
}

// Report summarizes record-level quality checks over an emitted batch.
type Report struct {
	RowCount         int
	MissingRequired  int
	Duplicates       int
	InvalidFrequency int
	NonFinite        int
	Passed           bool
}

// RunChecks inspects emitted records before load. It never rejects
// the batch itself; the caller decides what a failed report means.
func RunChecks(records []contracts.FactorRecord) Report {
	report := Report{RowCount: len(records)}

	seen := make(map[contracts.RecordKey]struct{}, len(records))
	for _, r := range records {
		if r.Symbol == "" || r.FactorName == "" || r.ObservationDate.IsZero() || r.Source == "" {
			report.MissingRequired++
		}
		if _, ok := allowedFrequencies[r.Frequency]; !ok {
			report.InvalidFrequency++
		}
		if !contracts.IsFinite(r.Value) {
			report.NonFinite++
		}
		key := r.Key()
		if _, dup := seen[key]; dup {
			report.Duplicates++
		} else {
			seen[key] = struct{}{}
		}
	}

	report.Passed = report.MissingRequired == 0 && report.InvalidFrequency == 0
	return report
}
