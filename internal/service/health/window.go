package health

import "time"

// WeekStart returns the Monday 00:00:00 of the week containing t, in
// t's location. Sunday maps to the Monday six days prior (ISO weeks
// start on Monday). The result doubles as the weekly dedup key for
// checkin and feedback submissions.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	year, month, day := t.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// LookbackWindow returns t shifted days into the past. The scoring
// engine uses it to bound its sample to recent weeks.
func LookbackWindow(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}
