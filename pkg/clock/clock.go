package clock

import "time"

// Clock supplies "today" for due-date comparisons. Installment status is a
// pure function of its inputs, so the current date is injected rather than
// read from the system clock inside the computation.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return Truncate(time.Now().UTC())
}

// System returns a clock backed by the real system time.
func System() Clock {
	return systemClock{}
}

// Fixed returns a clock frozen at the given instant (truncated to a date).
type Fixed struct {
	Date time.Time
}

func (f Fixed) Today() time.Time {
	return Truncate(f.Date)
}

// Truncate normalizes a timestamp to midnight UTC so due-date comparisons
// work at whole-day granularity.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
