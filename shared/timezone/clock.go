package timezone

import "time"

// Clock supplies the current time. Services receive it explicitly so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type appClock struct{}

// NewClock returns a Clock reporting wall time in the application timezone.
func NewClock() Clock {
	return appClock{}
}

func (appClock) Now() time.Time {
	return Now()
}

// StartOfDay truncates t to midnight of its calendar day in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// DayWindow returns the [start, end) bounds of the calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)

	return start, start.AddDate(0, 0, 1)
}

// DateKey returns the calendar date of t in the application timezone as midnight UTC,
// the representation used for DATE columns.
func DateKey(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// AsDate drops the clock of t and keeps its calendar date as midnight UTC.
func AsDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
