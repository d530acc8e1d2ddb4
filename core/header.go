package core

import (
	"strconv"
	"time"
)

// TierKind is the kind of a header row.
type TierKind int

const (
	TierYear TierKind = iota
	TierMonth
	TierDate
	TierDayOfWeek
	TierHour
	TierWeek
)

// HeaderCell is a single cell of a header tier; it spans one or more
// columns.
type HeaderCell struct {
	Label string

	FirstColumn int
	NumColumns  int

	// Left and Width are in pixels.
	Left  int
	Width int

	// Weekend, Holiday and Today are only set for day-related cells (dates,
	// days of week and hours).
	Weekend bool
	Holiday bool
	Today   bool
}

type HeaderTier struct {
	Kind  TierKind
	Cells []HeaderCell
}

// Header is a set of tiers, from the coarsest (years) to the finest one,
// which has exactly one cell per column.
type Header struct {
	Tiers []HeaderTier
}

// Units returns the finest tier.
func (h *Header) Units() *HeaderTier {
	return &h.Tiers[len(h.Tiers)-1]
}

// civilDay is a calendar day, independent of the location.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func civilDayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}

type headerBuilder struct {
	cols     *Columns
	opts     *Options
	holidays map[civilDay]struct{}
	today    civilDay
	todayKey ColumnKey
}

// BuildHeader generates the header tiers for the columns.
func BuildHeader(cols *Columns, opts *Options, now time.Time) Header {
	hb := &headerBuilder{
		cols:     cols,
		opts:     opts,
		holidays: map[civilDay]struct{}{},
		today:    civilDayOf(now),
		todayKey: KeyFor(now, cols.ScaleStep),
	}

	for _, h := range opts.Holidays {
		hb.holidays[civilDayOf(h)] = struct{}{}
	}

	yearTier := hb.group(TierYear, func(c *Column) interface{} {
		return c.Anchor.Year()
	}, func(c *Column, cell *HeaderCell) {
		cell.Label = strconv.Itoa(c.Anchor.Year())
	})

	monthTier := hb.group(TierMonth, func(c *Column) interface{} {
		return [2]int{c.Anchor.Year(), int(c.Anchor.Month())}
	}, func(c *Column, cell *HeaderCell) {
		cell.Label = opts.Months[c.Anchor.Month()-1]
	})

	dayKey := func(c *Column) interface{} {
		return civilDayOf(c.Anchor)
	}

	dateTier := hb.group(TierDate, dayKey, func(c *Column, cell *HeaderCell) {
		cell.Label = strconv.Itoa(c.Anchor.Day())
		hb.setDayFlags(c.Anchor, cell)
	})

	dowTier := hb.group(TierDayOfWeek, dayKey, func(c *Column, cell *HeaderCell) {
		cell.Label = opts.DOW[c.Anchor.Weekday()]
		hb.setDayFlags(c.Anchor, cell)
	})

	switch cols.ScaleStep.Scale {
	case ScaleHours:
		hourTier := hb.perColumn(TierHour, func(c *Column, cell *HeaderCell) {
			cell.Label = strconv.Itoa(c.Key.Hour)
			hb.setDayFlags(c.Anchor, cell)
			cell.Today = c.Key == hb.todayKey
		})
		return Header{Tiers: []HeaderTier{yearTier, monthTier, dateTier, dowTier, hourTier}}

	case ScaleWeeks:
		weekTier := hb.perColumn(TierWeek, func(c *Column, cell *HeaderCell) {
			cell.Label = strconv.Itoa(c.Key.Week)
			cell.Today = c.Key == hb.todayKey
		})
		return Header{Tiers: []HeaderTier{yearTier, monthTier, weekTier}}

	case ScaleMonths:
		monthNumTier := hb.perColumn(TierMonth, func(c *Column, cell *HeaderCell) {
			cell.Label = strconv.Itoa(int(c.Anchor.Month()))
			cell.Today = c.Key == hb.todayKey
		})
		return Header{Tiers: []HeaderTier{yearTier, monthNumTier}}

	default:
		return Header{Tiers: []HeaderTier{yearTier, monthTier, dateTier, dowTier}}
	}
}

func (hb *headerBuilder) setDayFlags(t time.Time, cell *HeaderCell) {
	wd := t.Weekday()
	cell.Weekend = wd == time.Saturday || wd == time.Sunday

	day := civilDayOf(t)
	_, cell.Holiday = hb.holidays[day]
	cell.Today = day == hb.today
}

// group merges adjacent columns with the same group key into a single cell;
// fill is called with the first column of every cell.
func (hb *headerBuilder) group(
	kind TierKind,
	groupKey func(c *Column) interface{},
	fill func(c *Column, cell *HeaderCell),
) HeaderTier {
	tier := HeaderTier{Kind: kind}
	cellSize := hb.opts.CellSize

	var curKey interface{}
	for i := range hb.cols.List {
		col := &hb.cols.List[i]
		key := groupKey(col)

		if len(tier.Cells) == 0 || key != curKey {
			cell := HeaderCell{
				FirstColumn: i,
				Left:        i * cellSize,
			}
			fill(col, &cell)
			tier.Cells = append(tier.Cells, cell)
			curKey = key
		}

		last := &tier.Cells[len(tier.Cells)-1]
		last.NumColumns++
		last.Width = last.NumColumns * cellSize
	}

	return tier
}

func (hb *headerBuilder) perColumn(kind TierKind, fill func(c *Column, cell *HeaderCell)) HeaderTier {
	tier := HeaderTier{Kind: kind, Cells: make([]HeaderCell, 0, hb.cols.Len())}
	cellSize := hb.opts.CellSize

	for i := range hb.cols.List {
		cell := HeaderCell{
			FirstColumn: i,
			NumColumns:  1,
			Left:        i * cellSize,
			Width:       cellSize,
		}
		fill(&hb.cols.List[i], &cell)
		tier.Cells = append(tier.Cells, cell)
	}

	return tier
}
