package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart_MidWeek(t *testing.T) {
	// Wednesday 2025-06-04 -> Monday 2025-06-02
	wed := time.Date(2025, 6, 4, 15, 30, 45, 0, time.UTC)
	got := WeekStart(wed)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestWeekStart_Sunday(t *testing.T) {
	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2025, 6, 8, 23, 59, 59, 0, time.UTC)
	got := WeekStart(sun)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStart_MondayIsFixpoint(t *testing.T) {
	mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, WeekStart(mon))

	// A Monday afternoon still maps to that morning's midnight.
	later := mon.Add(14 * time.Hour)
	assert.Equal(t, mon, WeekStart(later))
}

func TestWeekStart_Idempotent(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),  // Monday
		time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC), // Wednesday
		time.Date(2025, 6, 7, 8, 15, 0, 0, time.UTC), // Saturday
		time.Date(2025, 6, 8, 1, 0, 0, 0, time.UTC),  // Sunday
		time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	for _, instant := range instants {
		once := WeekStart(instant)
		assert.Equal(t, once, WeekStart(once), "WeekStart not idempotent for %s", instant)
		assert.Equal(t, time.Monday, once.Weekday())
		assert.Equal(t, 0, once.Hour())
		assert.Equal(t, 0, once.Minute())
		assert.Equal(t, 0, once.Second())
	}
}

func TestWeekStart_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	instant := time.Date(2025, 6, 4, 12, 0, 0, 0, loc)

	got := WeekStart(instant)
	assert.Equal(t, loc, got.Location())
}

func TestLookbackWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	got := LookbackWindow(now, 28)

	assert.Equal(t, time.Date(2025, 5, 18, 10, 0, 0, 0, time.UTC), got)
}
