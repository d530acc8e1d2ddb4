package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tierSummary struct {
	Kind    TierKind
	Labels  []string
	NumCols []int
}

func summarizeTiers(h Header) []tierSummary {
	var ret []tierSummary
	for _, tier := range h.Tiers {
		ts := tierSummary{Kind: tier.Kind}
		for _, cell := range tier.Cells {
			ts.Labels = append(ts.Labels, cell.Label)
			ts.NumCols = append(ts.NumCols, cell.NumColumns)
		}
		ret = append(ret, ts)
	}
	return ret
}

func TestBuildHeader(t *testing.T) {
	opts := DefaultOptions()

	type headerTestCase struct {
		name string

		start time.Time
		end   time.Time
		ss    ScaleStep

		want []tierSummary
	}

	testCases := []headerTestCase{
		{
			name:  "days",
			start: utcTime(2024, time.March, 8, 0, 0),
			end:   utcTime(2024, time.March, 11, 0, 0),
			ss:    NewScaleStep(ScaleDays),
			want: []tierSummary{
				{TierYear, []string{"2024"}, []int{4}},
				{TierMonth, []string{"March"}, []int{4}},
				{TierDate, []string{"8", "9", "10", "11"}, []int{1, 1, 1, 1}},
				{TierDayOfWeek, []string{"F", "S", "S", "M"}, []int{1, 1, 1, 1}},
			},
		},
		{
			name:  "hours",
			start: utcTime(2024, time.March, 9, 18, 0),
			end:   utcTime(2024, time.March, 10, 6, 0),
			ss:    ScaleStep{Scale: ScaleHours, Step: 6},
			want: []tierSummary{
				{TierYear, []string{"2024"}, []int{3}},
				{TierMonth, []string{"March"}, []int{3}},
				{TierDate, []string{"9", "10"}, []int{1, 2}},
				{TierDayOfWeek, []string{"S", "S"}, []int{1, 2}},
				{TierHour, []string{"18", "0", "6"}, []int{1, 1, 1}},
			},
		},
		{
			name:  "weeks",
			start: utcTime(2023, time.December, 30, 0, 0),
			end:   utcTime(2024, time.January, 2, 0, 0),
			ss:    NewScaleStep(ScaleWeeks),
			want: []tierSummary{
				{TierYear, []string{"2023", "2024"}, []int{1, 1}},
				{TierMonth, []string{"December", "January"}, []int{1, 1}},
				{TierWeek, []string{"52", "1"}, []int{1, 1}},
			},
		},
		{
			name:  "months",
			start: utcTime(2023, time.November, 15, 0, 0),
			end:   utcTime(2024, time.February, 1, 0, 0),
			ss:    NewScaleStep(ScaleMonths),
			want: []tierSummary{
				{TierYear, []string{"2023", "2024"}, []int{2, 2}},
				{TierMonth, []string{"11", "12", "1", "2"}, []int{1, 1, 1, 1}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cols, err := Partition(tc.start, tc.end, tc.ss)
			require.NoError(t, err)

			h := BuildHeader(cols, &opts, tc.start)
			assert.Equal(t, tc.want, summarizeTiers(h))

			// Every tier covers all the columns, without gaps.
			for _, tier := range h.Tiers {
				left := 0
				for _, cell := range tier.Cells {
					assert.Equal(t, left, cell.Left)
					assert.Equal(t, cell.NumColumns*opts.CellSize, cell.Width)
					left += cell.Width
				}
				assert.Equal(t, cols.Len()*opts.CellSize, left)
			}

			assert.Len(t, h.Units().Cells, cols.Len())
		})
	}
}

func TestBuildHeaderFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.Holidays = []time.Time{time.Date(2024, time.March, 11, 0, 0, 0, 0, time.Local)}

	cols, err := Partition(utcTime(2024, time.March, 8, 0, 0), utcTime(2024, time.March, 11, 0, 0), NewScaleStep(ScaleDays))
	require.NoError(t, err)

	h := BuildHeader(cols, &opts, utcTime(2024, time.March, 9, 12, 0))
	units := h.Units()

	var weekend, holiday, today []bool
	for _, cell := range units.Cells {
		weekend = append(weekend, cell.Weekend)
		holiday = append(holiday, cell.Holiday)
		today = append(today, cell.Today)
	}

	assert.Equal(t, []bool{false, true, true, false}, weekend)
	assert.Equal(t, []bool{false, false, false, true}, holiday)
	assert.Equal(t, []bool{false, true, false, false}, today)

	// In the hours scale, only the current bucket is "today".
	cols, err = Partition(utcTime(2024, time.March, 10, 0, 0), utcTime(2024, time.March, 10, 12, 0), ScaleStep{Scale: ScaleHours, Step: 6})
	require.NoError(t, err)

	h = BuildHeader(cols, &opts, utcTime(2024, time.March, 10, 7, 0))
	today = nil
	for _, cell := range h.Units().Cells {
		today = append(today, cell.Today)
	}
	assert.Equal(t, []bool{false, true, false}, today)
}
