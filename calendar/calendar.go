// Package calendar contains the date arithmetic used by the chart grid.
//
// All functions work with wall-clock values in the location of the given
// time.Time: adding a day means "the same wall-clock time on the next
// calendar day", not "plus 24 hours".
package calendar

import (
	"fmt"
	"time"
)

// maxGridLookahead is how far (in hours) NextGridInstant is allowed to look
// ahead before it gives up. The largest known wall-clock discontinuity is a
// skipped calendar day, so three days is plenty.
const maxGridLookahead = 72

// Midnight returns the beginning of the day of t, in t's location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns the same wall-clock time n calendar days after t (or
// before, if n is negative).
func AddDays(t time.Time, n int) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day()+n,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		t.Location(),
	)
}

// FirstOfMonth returns midnight of the first day of the month of t, shifted
// by the given number of months.
func FirstOfMonth(t time.Time, addMonths int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(addMonths), 1, 0, 0, 0, 0, t.Location())
}

// DayOfYear returns the day number of t in its year, starting from 1.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekOfYear returns the week number of t, counted from the beginning of
// t's year.
//
// If January 1 falls on Thursday or later (weekday > 3, Sunday being 0), the
// partial first week doesn't count, and week 1 starts on the following
// Sunday. Days before that get week 0.
func WeekOfYear(t time.Time) int {
	yearStart := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	if wd := int(yearStart.Weekday()); wd > 3 {
		// The first Saturday of the year.
		yearStart = time.Date(t.Year(), time.January, 7-wd, 0, 0, 0, 0, t.Location())
	}

	return ceilDiv(DayOfYear(t)-DayOfYear(yearStart), 7)
}

// StartOfWeek returns the representative day of the week containing t: the
// Wednesday of the Sunday-to-Saturday window, at midnight.
//
// When the window spans two months, the week belongs to the month which owns
// at least four of its days; the Wednesday always lies in that month, so the
// returned value also tells which month (and year) the week belongs to.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	sunday := time.Date(t.Year(), t.Month(), t.Day()-wd, 0, 0, 0, 0, t.Location())
	saturday := time.Date(t.Year(), t.Month(), t.Day()+6-wd, 0, 0, 0, 0, t.Location())

	if sunday.Month() == saturday.Month() || saturday.Day() >= 4 {
		return time.Date(saturday.Year(), saturday.Month(), saturday.Day()-3, 0, 0, 0, 0, t.Location())
	}

	return time.Date(sunday.Year(), sunday.Month(), sunday.Day()+3, 0, 0, 0, 0, t.Location())
}

// WeekYearLabel returns the year and the week number to display for the
// week containing t. The week number is the WeekOfYear of the week's
// representative day; and a December day whose week is numbered 1 is shown
// as belonging to the next year.
func WeekYearLabel(t time.Time) (year, week int) {
	year = t.Year()
	week = WeekOfYear(StartOfWeek(t))
	if t.Month() == time.December && week == 1 {
		year++
	}

	return year, week
}

// NoProgressError is the value NextGridInstant panics with when it can't
// produce an instant later than the given one. It means a programmer error
// (e.g. a non-positive step), so it's never returned as a regular error.
type NoProgressError struct {
	From     time.Time
	HourStep int
}

func (e *NoProgressError) Error() string {
	return fmt.Sprintf(
		"grid stepping from %s by %d hour(s) does not move forward",
		e.From.Format(time.RFC3339), e.HourStep,
	)
}

// NextGridInstant returns the wall-clock instant hourStep hours after cur.
//
// Near a daylight saving time transition the wall-clock hour we're asking
// for may not exist, and normalizing it can land on cur itself or even
// before it; in this case NextGridInstant tries 2*hourStep, 3*hourStep and so
// on, until it gets an instant strictly later than cur. The returned value is
// therefore always After(cur); if that's impossible, it panics with
// *NoProgressError.
func NextGridInstant(cur time.Time, hourStep int) time.Time {
	if hourStep <= 0 {
		panic(&NoProgressError{From: cur, HourStep: hourStep})
	}

	for n := 1; n*hourStep <= maxGridLookahead; n++ {
		next := time.Date(
			cur.Year(), cur.Month(), cur.Day(),
			cur.Hour()+hourStep*n, cur.Minute(), cur.Second(), cur.Nanosecond(),
			cur.Location(),
		)

		if next.After(cur) {
			return next
		}
	}

	panic(&NoProgressError{From: cur, HourStep: hourStep})
}

// ceilDiv is like math.Ceil(float64(a)/float64(b)) for a positive b.
func ceilDiv(a, b int) int {
	if a > 0 {
		return (a + b - 1) / b
	}

	return -(-a / b)
}
