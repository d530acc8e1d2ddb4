package core

import (
	"time"

	"github.com/dimonomid/gantt/calendar"
	"github.com/juju/errors"
)

// Column is a single unit of the grid at the current scale.
type Column struct {
	Key ColumnKey

	// Index is the ordinal position of the column in the grid.
	Index int

	// Anchor is the representative instant of the column: the first hour of
	// the hours bucket, midnight of the day, Wednesday of the week or the
	// first day of the month.
	Anchor time.Time

	// Start and End is the half-open interval covered by the column. End of
	// a column is always Start of the next one.
	Start time.Time
	End   time.Time
}

// Columns is an ordered set of columns, with O(1) lookup by the key.
type Columns struct {
	ScaleStep ScaleStep
	List      []Column

	idxByKey map[ColumnKey]int
}

func newColumns(ss ScaleStep) *Columns {
	return &Columns{
		ScaleStep: ss,
		idxByKey:  map[ColumnKey]int{},
	}
}

// Len returns the number of columns.
func (c *Columns) Len() int {
	return len(c.List)
}

// IndexOf returns the index of the column with the given key.
func (c *Columns) IndexOf(key ColumnKey) (int, bool) {
	idx, ok := c.idxByKey[key]
	return idx, ok
}

// Lookup returns the column which the instant t belongs to, or nil if there
// is no such column.
func (c *Columns) Lookup(t time.Time) *Column {
	idx, ok := c.idxByKey[KeyFor(t, c.ScaleStep)]
	if !ok {
		return nil
	}

	return &c.List[idx]
}

// First returns the first column; Columns are never empty.
func (c *Columns) First() *Column {
	return &c.List[0]
}

// Last returns the last column.
func (c *Columns) Last() *Column {
	return &c.List[len(c.List)-1]
}

// add adds a column for the instant t, unless the column with the same key
// already exists or the anchor wouldn't be later than the last one; the
// latter can only happen around DST transitions, where two different wall
// clock hours normalize to the same instant.
func (c *Columns) add(t time.Time, start time.Time) {
	key := KeyFor(t, c.ScaleStep)
	if _, ok := c.idxByKey[key]; ok {
		return
	}

	anchor := anchorFor(t, c.ScaleStep)
	if len(c.List) > 0 {
		last := &c.List[len(c.List)-1]
		if !anchor.After(last.Anchor) || !start.After(last.Start) {
			return
		}
		last.End = start
	}

	c.idxByKey[key] = len(c.List)
	c.List = append(c.List, Column{
		Key:    key,
		Index:  len(c.List),
		Anchor: anchor,
		Start:  start,
	})
}

// Partition returns the columns covering the range from dateStart to dateEnd
// (both inclusive: the column containing dateEnd is the last one) at the
// given scale.
func Partition(dateStart, dateEnd time.Time, ss ScaleStep) (*Columns, error) {
	if !ss.Scale.IsValid() {
		return nil, newConfigurationError("invalid scale %s", ss.Scale)
	}

	if dateEnd.Before(dateStart) {
		return nil, newConfigurationError(
			"range end %s is before its start %s",
			dateEnd.Format(time.RFC3339), dateStart.Format(time.RFC3339),
		)
	}

	cols := newColumns(ss)

	switch ss.Scale {
	case ScaleHours:
		partitionHours(cols, dateStart, dateEnd)
	case ScaleDays:
		partitionDays(cols, dateStart, dateEnd)
	case ScaleWeeks:
		partitionWeeks(cols, dateStart, dateEnd)
	case ScaleMonths:
		partitionMonths(cols, dateStart, dateEnd)
	}

	if cols.Len() == 0 {
		// Can't happen since the range is never empty, but better to fail
		// here than with an out of range index somewhere later.
		return nil, errors.Errorf("no columns generated for %s", ss)
	}

	last := cols.Last()
	last.End = nextColumnStart(last, ss)

	return cols, nil
}

// nextHourBucket returns the raw instant to consider after cur: hourStep
// hours later, but if that lands on the next day, then the first bucket of
// that day starts at midnight, regardless of whether the step divides 24.
func nextHourBucket(cur time.Time, hourStep int) time.Time {
	next := calendar.NextGridInstant(cur, hourStep)
	if next.Day() != cur.Day() {
		midnight := calendar.Midnight(next)
		if midnight.After(cur) {
			next = midnight
		}
	}

	return next
}

func partitionHours(cols *Columns, dateStart, dateEnd time.Time) {
	step := cols.ScaleStep.hourStep()

	cur := anchorFor(dateStart, cols.ScaleStep)
	for !cur.After(dateEnd) {
		cols.add(cur, anchorFor(cur, cols.ScaleStep))
		cur = nextHourBucket(cur, step)
	}

	// Make sure that the bucket which contains dateEnd is there, even if
	// stepping has jumped over its beginning.
	cols.add(dateEnd, anchorFor(dateEnd, cols.ScaleStep))
}

// noon returns noon of the given day; unlike midnight, noon exists in every
// location on every day, so it's used for walking days.
func noon(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}

// dayBeforeOrEqual returns whether the calendar day of a is not later than
// the calendar day of b.
func dayBeforeOrEqual(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad <= bd
}

func partitionDays(cols *Columns, dateStart, dateEnd time.Time) {
	y, m, d := dateStart.Date()
	loc := dateStart.Location()

	for i := 0; ; i++ {
		day := noon(y, m, d+i, loc)
		if !dayBeforeOrEqual(day, dateEnd) {
			break
		}

		cols.add(day, calendar.Midnight(day))
	}
}

// partitionWeeks walks the range day by day, and every Sunday starts a new
// week column. The walk starts from the Sunday of the week containing
// dateStart, so that the first column covers dateStart too.
func partitionWeeks(cols *Columns, dateStart, dateEnd time.Time) {
	y, m, d := dateStart.Date()
	loc := dateStart.Location()
	d -= int(dateStart.Weekday())

	for i := 0; ; i++ {
		day := noon(y, m, d+i, loc)
		if !dayBeforeOrEqual(day, dateEnd) {
			break
		}

		if day.Weekday() != time.Sunday {
			continue
		}

		cols.add(day, calendar.Midnight(day))
	}
}

func partitionMonths(cols *Columns, dateStart, dateEnd time.Time) {
	y, m, _ := dateStart.Date()
	loc := dateStart.Location()

	for i := 0; ; i++ {
		first := time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, loc)
		if !dayBeforeOrEqual(first, dateEnd) {
			break
		}

		cols.add(first, first)
	}
}

// nextColumnStart returns where the column following col would start.
func nextColumnStart(col *Column, ss ScaleStep) time.Time {
	switch ss.Scale {
	case ScaleHours:
		return nextHourBucket(col.Start, ss.hourStep())
	case ScaleWeeks:
		return calendar.AddDays(col.Start, 7)
	case ScaleMonths:
		return calendar.FirstOfMonth(col.Start, 1)
	default:
		return calendar.Midnight(noon(col.Start.Year(), col.Start.Month(), col.Start.Day()+1, col.Start.Location()))
	}
}
