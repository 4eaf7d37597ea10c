package daterange

import "time"

// DayKeyFormat is the canonical key for calendar-day lookups.
const DayKeyFormat = "2006-01-02"

// DateRange is a half-open [CheckIn, CheckOut) interval at day granularity.
// Both bounds are normalized to UTC midnight.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a DateRange, truncating both bounds to UTC days. An inverted or
// same-day interval is accepted as-is; Nights coerces it to a single night so
// callers never deal with a zero-length stay.
func New(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Key renders a date as its calendar-day lookup key.
func Key(t time.Time) string {
	return Day(t).Format(DayKeyFormat)
}

// Nights returns the number of whole nights in the range, never less than one.
func (r DateRange) Nights() int {
	n := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Dates returns the Nights() consecutive calendar days starting at CheckIn.
func (r DateRange) Dates() []time.Time {
	nights := r.Nights()
	out := make([]time.Time, 0, nights)
	for i := 0; i < nights; i++ {
		out = append(out, r.CheckIn.AddDate(0, 0, i))
	}
	return out
}

// Contains reports whether the day of d falls inside the half-open interval.
func (r DateRange) Contains(d time.Time) bool {
	day := Day(d)
	return !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

// Window returns days consecutive calendar dates starting at the day of start.
func Window(start time.Time, days int) []time.Time {
	if days < 1 {
		days = 1
	}
	first := Day(start)
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, first.AddDate(0, 0, i))
	}
	return out
}
