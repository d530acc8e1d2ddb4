package core

import (
	"fmt"
	"time"

	"github.com/dimonomid/gantt/calendar"
)

// ColumnKey identifies a column of the grid at some scale. Any instant maps to
// exactly one key (see KeyFor), so the key is used both to label the
// generated columns and to find the column which a bar end belongs to.
//
// Only the fields relevant for the scale are set:
//
//   - hours: Year, Month, Day, Hour (the first hour of the bucket)
//   - days: Year, Month, Day
//   - weeks: Year, Week (as returned by calendar.WeekYearLabel)
//   - months: Year, Month
type ColumnKey struct {
	Scale Scale

	Year  int
	Month time.Month
	Day   int
	Hour  int
	Week  int
}

func (k ColumnKey) String() string {
	switch k.Scale {
	case ScaleHours:
		return fmt.Sprintf("%04d-%02d-%02dT%02d", k.Year, k.Month, k.Day, k.Hour)
	case ScaleDays:
		return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
	case ScaleWeeks:
		return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
	case ScaleMonths:
		return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
	}

	return fmt.Sprintf("invalid-%d", int(k.Scale))
}

// KeyFor returns the key of the column which t belongs to.
//
// Weeks are keyed by their representative day (see calendar.StartOfWeek), so
// that a day at the very beginning of January, whose week belongs to the
// previous December, gets the key of that December week.
func KeyFor(t time.Time, ss ScaleStep) ColumnKey {
	switch ss.Scale {
	case ScaleHours:
		step := ss.hourStep()
		return ColumnKey{
			Scale: ScaleHours,
			Year:  t.Year(),
			Month: t.Month(),
			Day:   t.Day(),
			Hour:  (t.Hour() / step) * step,
		}

	case ScaleWeeks:
		year, week := calendar.WeekYearLabel(calendar.StartOfWeek(t))
		return ColumnKey{
			Scale: ScaleWeeks,
			Year:  year,
			Week:  week,
		}

	case ScaleMonths:
		return ColumnKey{
			Scale: ScaleMonths,
			Year:  t.Year(),
			Month: t.Month(),
		}

	default:
		return ColumnKey{
			Scale: ScaleDays,
			Year:  t.Year(),
			Month: t.Month(),
			Day:   t.Day(),
		}
	}
}

// anchorFor returns the representative instant of the column which t
// belongs to: the first hour of the bucket, midnight of the day, the week's
// Wednesday or the first day of the month.
func anchorFor(t time.Time, ss ScaleStep) time.Time {
	switch ss.Scale {
	case ScaleHours:
		step := ss.hourStep()
		return time.Date(t.Year(), t.Month(), t.Day(), (t.Hour()/step)*step, 0, 0, 0, t.Location())
	case ScaleWeeks:
		return calendar.StartOfWeek(t)
	case ScaleMonths:
		return calendar.FirstOfMonth(t, 0)
	default:
		return calendar.Midnight(t)
	}
}
