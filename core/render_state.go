package core

import (
	"time"

	"github.com/juju/errors"
)

// RenderState is the view state which every layout is computed from: the
// scale with the step factor, the current page of rows and the horizontal
// scroll offset. It's a value type: every transition produces a new one.
type RenderState struct {
	ScaleStep ScaleStep

	PageNum int

	// Offset is the horizontal scroll position in pixels; it's never
	// positive, since the content is scrolled to the left.
	Offset int
}

// Layout is everything needed to draw the chart for a RenderState.
type Layout struct {
	// State is the state the layout was computed for, with PageNum and
	// Offset clamped to the actual content.
	State RenderState

	Range   DateRange
	Columns *Columns
	Header  Header
	Page    Page

	// Bars contains the placed bars of the current page; BarErrs contains
	// DataRangeError-s for the bars which could not be placed.
	Bars    []ResolvedBar
	BarErrs []error

	Geometry Geometry

	ContentWidth  int
	ViewportWidth int

	// TodayColumn is the index of the column containing "now", or -1 if
	// there's no such column.
	TodayColumn int
}

// MaxScroll returns the max number of pixels the content can be scrolled by.
func (l *Layout) MaxScroll() int {
	ret := l.ContentWidth - l.ViewportWidth
	if ret < 0 {
		return 0
	}

	return ret
}

// ColumnAt returns the column at the x coordinate relative to the viewport,
// taking the current offset into account. Returns nil if there's no column
// there.
func (l *Layout) ColumnAt(x int) *Column {
	if x < 0 || l.Geometry.CellSize <= 0 {
		return nil
	}

	idx := (x - l.State.Offset) / l.Geometry.CellSize
	if idx < 0 || idx >= l.Columns.Len() {
		return nil
	}

	return &l.Columns.List[idx]
}

// RepDate returns the representative date of the column: the first hour of
// the bucket, the day itself, the week's Wednesday or the first of the month.
func (c *Column) RepDate() time.Time {
	return c.Anchor
}

// computeLayout does all the grid math for the given state.
func computeLayout(entries []Entry, opts *Options, state RenderState, now time.Time) (*Layout, error) {
	dr, err := ResolveVisibleRange(entries, state.ScaleStep)
	if err != nil {
		return nil, errors.Trace(err)
	}

	cols, err := Partition(dr.Start, dr.End, state.ScaleStep)
	if err != nil {
		return nil, errors.Trace(err)
	}

	geom := opts.geometry()
	page := PageFor(len(entries), opts.ItemsPerPage, state.PageNum)
	bars, barErrs := PlaceBars(entries, page, cols, geom)

	l := &Layout{
		Range:         dr,
		Columns:       cols,
		Header:        BuildHeader(cols, opts, now),
		Page:          page,
		Bars:          bars,
		BarErrs:       barErrs,
		Geometry:      geom,
		ContentWidth:  cols.Len() * geom.CellSize,
		ViewportWidth: opts.ViewportWidth,
		TodayColumn:   -1,
	}

	if col := cols.Lookup(now); col != nil {
		l.TodayColumn = col.Index
	}

	l.State = RenderState{
		ScaleStep: state.ScaleStep,
		PageNum:   page.Num,
		Offset:    ClampOffset(state.Offset, l.MaxScroll()),
	}

	return l, nil
}
