package dateutil

import (
	"math"
	"time"
)

// DateFormat is the canonical date-only layout used everywhere dates are
// stored or displayed.
const DateFormat = "2006-01-02"

// Day strips the time-of-day from t and pins it to midnight UTC. All date
// arithmetic in the app goes through this so that day differences stay
// integers regardless of the local timezone or DST transitions.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current date at day granularity.
func Today() time.Time {
	return Day(time.Now())
}

// AddDays returns the date days calendar days after t (days may be negative).
func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

// DiffDays returns a minus b in whole days.
func DiffDays(a, b time.Time) int {
	return int(math.Round(Day(a).Sub(Day(b)).Hours() / 24))
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(DateFormat)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Range enumerates every day from start to end inclusive. An end before
// start yields an empty slice.
func Range(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Weekend reports whether t falls on a Saturday or Sunday.
func Weekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
