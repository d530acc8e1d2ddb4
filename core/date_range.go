package core

import (
	"time"

	"github.com/juju/errors"

	"github.com/dimonomid/gantt/calendar"
)

// Padding around the data, in columns of the corresponding scale.
const (
	paddingHourSteps  = 3
	paddingDays       = 3
	paddingWeeks      = 3
	paddingMonthsLead = 3
	paddingMonthsTail = 2
)

// DateRange is a range of time, both ends are inclusive on the grid: the
// column containing End is the last column.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DataBounds returns the earliest From and the latest To across all bars of
// all entries. If there are no bars at all, it returns a ConfigurationError:
// there is nothing to build the grid around.
func DataBounds(entries []Entry) (DateRange, error) {
	var (
		ret   DateRange
		found bool
	)

	for _, entry := range entries {
		for _, bar := range entry.Bars {
			if !found || bar.From.Before(ret.Start) {
				ret.Start = bar.From
			}
			if !found || bar.To.After(ret.End) {
				ret.End = bar.To
			}
			found = true
		}
	}

	if !found {
		return DateRange{}, newConfigurationError("no data: need at least one bar in at least one entry")
	}

	return ret, nil
}

// ResolveVisibleRange returns the range which the chart has to show at the
// given scale: the range of the data plus some padding on both sides, aligned
// as needed for the scale.
func ResolveVisibleRange(entries []Entry, ss ScaleStep) (DateRange, error) {
	bounds, err := DataBounds(entries)
	if err != nil {
		return DateRange{}, errors.Trace(err)
	}

	return padRange(bounds, ss), nil
}

func padRange(bounds DateRange, ss ScaleStep) DateRange {
	minDate, maxDate := bounds.Start, bounds.End

	switch ss.Scale {
	case ScaleHours:
		step := ss.hourStep()

		minHour := (minDate.Hour()/step)*step - paddingHourSteps*step
		minDate = time.Date(minDate.Year(), minDate.Month(), minDate.Day(), minHour, 0, 0, 0, minDate.Location())

		maxHour := ((maxDate.Hour()+step-1)/step)*step + paddingHourSteps*step
		maxDate = time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day(), maxHour, 0, 0, 0, maxDate.Location())

	case ScaleWeeks:
		minDate = alignWeekPadding(calendar.AddDays(minDate, -7*paddingWeeks))
		maxDate = alignWeekPadding(calendar.AddDays(maxDate, 7*paddingWeeks))

	case ScaleMonths:
		minDate = calendar.FirstOfMonth(minDate, -paddingMonthsLead)
		maxDate = calendar.FirstOfMonth(maxDate, paddingMonthsTail)

	default:
		minDate = calendar.Midnight(calendar.AddDays(minDate, -paddingDays))
		maxDate = calendar.Midnight(calendar.AddDays(maxDate, paddingDays))
	}

	return DateRange{Start: minDate, End: maxDate}
}

// alignWeekPadding moves the padded date to a day of the same month which
// depends only on which seven-day slice of the month it's in: days 7..13 go
// to the 4th, 14..20 to the 11th, 21..27 to the 18th, 28..31 to the 25th,
// and the first six days of the month to the 4th as well.
func alignWeekPadding(t time.Time) time.Time {
	md := (t.Day() / 7) * 7
	day := md - 3
	if md == 0 {
		day = 4
	}

	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location())
}
