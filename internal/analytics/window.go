package analytics

import "time"

// MonthBack returns the start of the same calendar day one month before t,
// clamped to the last day of the previous month when it is shorter
// (Mar 31 -> Feb 28/29). The result is in t's location.
func MonthBack(t time.Time) time.Time {
	y, m, d := t.Date()
	prev := time.Date(y, m-1, 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(prev.Year(), prev.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(prev.Year(), prev.Month(), d, 0, 0, 0, 0, t.Location())
}

// InLastMonth reports whether ts falls in [MonthBack(now), now].
func InLastMonth(ts, now time.Time) bool {
	return !ts.Before(MonthBack(now)) && !ts.After(now)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	ay, am, _ := a.In(loc).Date()
	by, bm, _ := b.In(loc).Date()
	return ay == by && am == bm
}
