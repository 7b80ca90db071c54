package contracts

import (
	"fmt"
	"strings"
)

// Frequency is the output cadence of emitted factor records.
type Frequency int

const (
	FreqDaily Frequency = iota
	FreqWeekly
	FreqMonthly
	FreqQuarterly
	FreqAnnual
)

// ParseFrequency converts a frequency label to a Frequency.
// Unknown labels are a caller error and fail fast.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return FreqDaily, nil
	case "weekly":
		return FreqWeekly, nil
	case "monthly":
		return FreqMonthly, nil
	case "quarterly":
		return FreqQuarterly, nil
	case "annual":
		return FreqAnnual, nil
	default:
		return FreqDaily, fmt.Errorf("unsupported output frequency %q (valid: daily, weekly, monthly, quarterly, annual)", s)
	}
}

// String returns the canonical label for the frequency.
func (f Frequency) String() string {
	switch f {
	case FreqDaily:
		return "daily"
	case FreqWeekly:
		return "weekly"
	case FreqMonthly:
		return "monthly"
	case FreqQuarterly:
		return "quarterly"
	case FreqAnnual:
		return "annual"
	default:
		return "unknown"
	}
}
