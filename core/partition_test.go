package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func utcTime(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func keyStrings(cols *Columns) []string {
	ret := make([]string, 0, cols.Len())
	for _, col := range cols.List {
		ret = append(ret, col.Key.String())
	}
	return ret
}

// checkColumnsConsistent checks the properties every partition must have:
// strictly increasing anchors, contiguous half-open intervals, and every
// column being found by its own start and anchor.
func checkColumnsConsistent(t *testing.T, cols *Columns) {
	t.Helper()

	for i := range cols.List {
		col := &cols.List[i]

		assert.Equal(t, i, col.Index)
		assert.True(t, col.Start.Before(col.End), "column %s: start %s, end %s", col.Key, col.Start, col.End)

		if i > 0 {
			prev := &cols.List[i-1]
			assert.True(t, col.Anchor.After(prev.Anchor), "anchors of %s and %s", prev.Key, col.Key)
			assert.True(t, prev.End.Equal(col.Start), "end of %s is not start of %s", prev.Key, col.Key)
		}

		for _, at := range []time.Time{col.Start, col.Anchor, col.End.Add(-time.Minute)} {
			got := cols.Lookup(at)
			if assert.NotNil(t, got, "lookup %s", at) {
				assert.Equal(t, col.Key, got.Key, "lookup %s", at)
			}
		}
	}
}

func TestPartition(t *testing.T) {
	nyc := mustLoadLocation(t, "America/New_York")

	type partitionTestCase struct {
		name string

		start time.Time
		end   time.Time
		ss    ScaleStep

		wantKeys []string
	}

	testCases := []partitionTestCase{
		{
			name:     "days",
			start:    utcTime(2024, time.March, 10, 0, 0),
			end:      utcTime(2024, time.March, 12, 0, 0),
			ss:       NewScaleStep(ScaleDays),
			wantKeys: []string{"2024-03-10", "2024-03-11", "2024-03-12"},
		},
		{
			name:     "days, end in the middle of the day",
			start:    utcTime(2024, time.February, 28, 15, 0),
			end:      utcTime(2024, time.March, 1, 9, 30),
			ss:       NewScaleStep(ScaleDays),
			wantKeys: []string{"2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:     "hours over spring forward",
			start:    time.Date(2024, time.March, 10, 0, 0, 0, 0, nyc),
			end:      time.Date(2024, time.March, 10, 5, 0, 0, 0, nyc),
			ss:       NewScaleStep(ScaleHours),
			wantKeys: []string{"2024-03-10T00", "2024-03-10T01", "2024-03-10T03", "2024-03-10T04", "2024-03-10T05"},
		},
		{
			name:     "hours with step 3 over spring forward",
			start:    time.Date(2024, time.March, 10, 0, 0, 0, 0, nyc),
			end:      time.Date(2024, time.March, 10, 8, 0, 0, 0, nyc),
			ss:       ScaleStep{Scale: ScaleHours, Step: 3},
			wantKeys: []string{"2024-03-10T00", "2024-03-10T03", "2024-03-10T06"},
		},
		{
			name:     "hours over fall back",
			start:    time.Date(2024, time.November, 3, 0, 0, 0, 0, nyc),
			end:      time.Date(2024, time.November, 3, 3, 0, 0, 0, nyc),
			ss:       NewScaleStep(ScaleHours),
			wantKeys: []string{"2024-11-03T00", "2024-11-03T01", "2024-11-03T02", "2024-11-03T03"},
		},
		{
			name:     "hours with step 9 restart at midnight",
			start:    utcTime(2024, time.March, 9, 18, 0),
			end:      utcTime(2024, time.March, 10, 10, 0),
			ss:       ScaleStep{Scale: ScaleHours, Step: 9},
			wantKeys: []string{"2024-03-09T18", "2024-03-10T00", "2024-03-10T09"},
		},
		{
			name:     "weeks across the new year",
			start:    utcTime(2023, time.December, 30, 0, 0),
			end:      utcTime(2024, time.January, 2, 0, 0),
			ss:       NewScaleStep(ScaleWeeks),
			wantKeys: []string{"2023-W52", "2024-W01"},
		},
		{
			name:     "months",
			start:    utcTime(2024, time.January, 15, 0, 0),
			end:      utcTime(2024, time.April, 2, 0, 0),
			ss:       NewScaleStep(ScaleMonths),
			wantKeys: []string{"2024-01", "2024-02", "2024-03", "2024-04"},
		},
		{
			name:     "single instant",
			start:    utcTime(2024, time.July, 4, 12, 0),
			end:      utcTime(2024, time.July, 4, 12, 0),
			ss:       NewScaleStep(ScaleDays),
			wantKeys: []string{"2024-07-04"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cols, err := Partition(tc.start, tc.end, tc.ss)
			require.NoError(t, err)

			assert.Equal(t, tc.wantKeys, keyStrings(cols))
			checkColumnsConsistent(t, cols)

			assert.NotNil(t, cols.Lookup(tc.start), "start is not covered")
			assert.NotNil(t, cols.Lookup(tc.end), "end is not covered")
		})
	}
}

func TestPartitionWeeksStartOnSunday(t *testing.T) {
	cols, err := Partition(utcTime(2024, time.March, 13, 0, 0), utcTime(2024, time.March, 27, 0, 0), NewScaleStep(ScaleWeeks))
	require.NoError(t, err)

	require.Equal(t, 3, cols.Len())
	for _, col := range cols.List {
		assert.Equal(t, time.Sunday, col.Start.Weekday())
		assert.Equal(t, time.Wednesday, col.Anchor.Weekday())
		assert.Equal(t, 7*24*time.Hour, col.End.Sub(col.Start))
	}

	assert.Equal(t, utcTime(2024, time.March, 10, 0, 0), cols.First().Start)
}

func TestPartitionLongRangesAreConsistent(t *testing.T) {
	nyc := mustLoadLocation(t, "America/New_York")

	start := time.Date(2023, time.December, 1, 0, 0, 0, 0, nyc)
	end := time.Date(2025, time.January, 31, 0, 0, 0, 0, nyc)

	for _, ss := range []ScaleStep{
		NewScaleStep(ScaleDays),
		NewScaleStep(ScaleWeeks),
		NewScaleStep(ScaleMonths),
	} {
		t.Run(ss.String(), func(t *testing.T) {
			cols, err := Partition(start, end, ss)
			require.NoError(t, err)
			checkColumnsConsistent(t, cols)
		})
	}

	// Hours over both DST transitions of 2024, with all the zoom steps.
	for _, step := range []int{1, 3, 6, 9, 12} {
		ss := ScaleStep{Scale: ScaleHours, Step: step}
		t.Run(ss.String(), func(t *testing.T) {
			for _, day := range []time.Time{
				time.Date(2024, time.March, 9, 0, 0, 0, 0, nyc),
				time.Date(2024, time.November, 2, 0, 0, 0, 0, nyc),
			} {
				cols, err := Partition(day, day.AddDate(0, 0, 3), ss)
				require.NoError(t, err)
				checkColumnsConsistent(t, cols)
			}
		})
	}
}

func TestPartitionErrors(t *testing.T) {
	_, err := Partition(utcTime(2024, time.March, 10, 0, 0), utcTime(2024, time.March, 9, 0, 0), NewScaleStep(ScaleDays))
	assert.True(t, IsConfigurationError(err), "got %v", err)

	_, err = Partition(utcTime(2024, time.March, 10, 0, 0), utcTime(2024, time.March, 11, 0, 0), ScaleStep{Scale: Scale(42)})
	assert.True(t, IsConfigurationError(err), "got %v", err)
}

func TestPartitionHoursFullDSTDays(t *testing.T) {
	nyc := mustLoadLocation(t, "America/New_York")

	countDay := func(cols *Columns, day int) int {
		n := 0
		for _, col := range cols.List {
			if col.Anchor.Day() == day {
				n++
			}
		}
		return n
	}

	// A single bar over the spring forward day: the day has only 23 hours.
	entries := entriesWithBars(Bar{
		From: time.Date(2024, time.March, 10, 0, 0, 0, 0, nyc),
		To:   time.Date(2024, time.March, 11, 0, 0, 0, 0, nyc),
	})
	dr, err := ResolveVisibleRange(entries, NewScaleStep(ScaleHours))
	require.NoError(t, err)

	cols, err := Partition(dr.Start, dr.End, NewScaleStep(ScaleHours))
	require.NoError(t, err)
	checkColumnsConsistent(t, cols)
	assert.Equal(t, 23, countDay(cols, 10))

	// On the fall back day, both 1 o'clocks share the same column, so there
	// are still 24 columns, and the 1 o'clock one is two hours long.
	cols, err = Partition(
		time.Date(2024, time.November, 3, 0, 0, 0, 0, nyc),
		time.Date(2024, time.November, 3, 23, 0, 0, 0, nyc),
		NewScaleStep(ScaleHours),
	)
	require.NoError(t, err)
	checkColumnsConsistent(t, cols)
	assert.Equal(t, 24, countDay(cols, 3))
	assert.Equal(t, 2*time.Hour, cols.List[1].End.Sub(cols.List[1].Start))
}
