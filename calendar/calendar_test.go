package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestWeekOfYear(t *testing.T) {
	testCases := []struct {
		name string
		t    time.Time
		want int
	}{
		{"year starting on Monday, first Wednesday", date(2024, time.January, 3), 1},
		{"year starting on Sunday, late December", date(2023, time.December, 27), 52},
		{"year starting on Friday, first full week", date(2021, time.January, 6), 1},
		{"year starting on Friday, late December", date(2021, time.December, 29), 52},
		{"year starting on Wednesday, Jan 1", date(2025, time.January, 1), 0},
		{"year starting on Thursday, first full week", date(2026, time.January, 7), 1},
		{"year starting on Saturday, Jan 1", date(2022, time.January, 1), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekOfYear(tc.t))
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	testCases := []struct {
		name string
		t    time.Time
		want time.Time
	}{
		{"week owned by the later month", date(2024, time.January, 1), date(2024, time.January, 3)},
		{"week inside one month", date(2023, time.December, 30), date(2023, time.December, 27)},
		{"week owned by the earlier month", date(2022, time.January, 1), date(2021, time.December, 29)},
		{"sunday", date(2024, time.March, 10), date(2024, time.March, 13)},
		{"wednesday maps to itself", date(2024, time.March, 13), date(2024, time.March, 13)},
		{"time of day is dropped", time.Date(2024, time.March, 16, 23, 59, 0, 0, time.UTC), date(2024, time.March, 13)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.t)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, time.Wednesday, got.Weekday())
		})
	}
}

func TestWeekYearLabel(t *testing.T) {
	testCases := []struct {
		name     string
		t        time.Time
		wantYear int
		wantWeek int
	}{
		{"last full week of 2023", date(2023, time.December, 30), 2023, 52},
		{"december day of week 1 goes to the next year", date(2023, time.December, 31), 2024, 1},
		{"january day of week 1", date(2024, time.January, 2), 2024, 1},
		{"middle of the year", date(2024, time.July, 10), 2024, 28},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			year, week := WeekYearLabel(tc.t)
			assert.Equal(t, tc.wantYear, year)
			assert.Equal(t, tc.wantWeek, week)
		})
	}
}

func TestWeekYearLabelOfRepresentativeDayIsMonotonic(t *testing.T) {
	type label struct{ year, week int }
	less := func(a, b label) bool {
		if a.year != b.year {
			return a.year < b.year
		}
		return a.week < b.week
	}

	var prev *label
	for d := date(2019, time.December, 1); d.Before(date(2027, time.February, 1)); d = AddDays(d, 1) {
		y, w := WeekYearLabel(StartOfWeek(d))
		cur := label{y, w}
		if prev != nil {
			require.False(t, less(cur, *prev), "%s: %+v goes before %+v", d.Format("2006-01-02"), cur, *prev)
		}
		prev = &cur
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2023, time.December))
	assert.Equal(t, 30, DaysInMonth(2023, time.April))
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 1, DayOfYear(date(2024, time.January, 1)))
	assert.Equal(t, 366, DayOfYear(date(2024, time.December, 31)))
	assert.Equal(t, 365, DayOfYear(date(2023, time.December, 31)))
}

func TestNextGridInstant(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	t.Run("regular hour", func(t *testing.T) {
		cur := time.Date(2024, time.March, 5, 10, 0, 0, 0, ny)
		assert.Equal(t, time.Date(2024, time.March, 5, 13, 0, 0, 0, ny), NextGridInstant(cur, 3))
	})

	t.Run("crosses midnight", func(t *testing.T) {
		cur := time.Date(2024, time.March, 5, 22, 0, 0, 0, ny)
		assert.Equal(t, time.Date(2024, time.March, 6, 1, 0, 0, 0, ny), NextGridInstant(cur, 3))
	})

	t.Run("spring forward skips the missing hour", func(t *testing.T) {
		cur := time.Date(2024, time.March, 10, 1, 0, 0, 0, ny)
		next := NextGridInstant(cur, 1)
		assert.True(t, next.After(cur))
		assert.Equal(t, 3, next.Hour())
	})

	t.Run("fall back still moves forward", func(t *testing.T) {
		cur := time.Date(2024, time.November, 3, 0, 0, 0, 0, ny)
		next := NextGridInstant(cur, 1)
		assert.True(t, next.After(cur))
		assert.Equal(t, 1, next.Hour())

		next2 := NextGridInstant(next, 1)
		assert.True(t, next2.After(next))
		assert.Equal(t, 2, next2.Hour())
	})

	t.Run("non-positive step is a logic error", func(t *testing.T) {
		cur := time.Date(2024, time.March, 5, 10, 0, 0, 0, ny)
		assert.Panics(t, func() { NextGridInstant(cur, 0) })
		assert.Panics(t, func() { NextGridInstant(cur, -1) })
	})
}

func TestNextGridInstantStrictProgressOverDSTDays(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	for _, day := range []time.Time{
		time.Date(2024, time.March, 10, 0, 0, 0, 0, ny),
		time.Date(2024, time.November, 3, 0, 0, 0, 0, ny),
	} {
		for _, step := range []int{1, 2, 3, 5} {
			cur := day
			end := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, ny)
			n := 0
			for cur.Before(end) {
				next := NextGridInstant(cur, step)
				require.True(t, next.After(cur), "day %s step %d: %s -> %s", day, step, cur, next)
				cur = next
				n++
				require.Less(t, n, 100)
			}
		}
	}
}
