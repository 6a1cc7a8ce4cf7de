package domain

import "time"

// IsNewDay reports whether a and b fall on different local calendar
// days, i.e. differ in year, month, or day-of-month.
func IsNewDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay != by || am != bm || ad != bd
}

// DayKey returns the local calendar date of t in the form used as the
// history primary key.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
