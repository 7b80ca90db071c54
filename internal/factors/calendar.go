package factors

import "time"

const day = 24 * time.Hour

// dateOnly truncates t to a UTC calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / day)
}

// calendarDays returns every calendar day in [start, end].
func calendarDays(start, end time.Time) []time.Time {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return nil
	}
	out := make([]time.Time, 0, daysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.Add(day) {
		out = append(out, d)
	}
	return out
}

// monthEnds returns every month-end date in [start, end].
func monthEnds(start, end time.Time) []time.Time {
	start, end = dateOnly(start), dateOnly(end)
	var out []time.Time
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		next := cur.AddDate(0, 1, 0)
		monthEnd := next.AddDate(0, 0, -1)
		if !monthEnd.Before(start) && !monthEnd.After(end) {
			out = append(out, monthEnd)
		}
		cur = next
	}
	return out
}

// businessDaysBetween counts weekdays in (from, to].
// Returns 0 when to is not after from.
func businessDaysBetween(from, to time.Time) int {
	from, to = dateOnly(from), dateOnly(to)
	count := 0
	for d := from.Add(day); !d.After(to); d = d.Add(day) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
