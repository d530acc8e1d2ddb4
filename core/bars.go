package core

import (
	"github.com/juju/errors"
)

// Geometry contains the pixel sizes needed to turn columns into offsets.
type Geometry struct {
	// CellSize is the width of a single column, and also the height of a row.
	CellSize int

	// BarMargin is subtracted from the width of every bar, so that adjacent
	// bars don't touch.
	BarMargin int
}

// ResolvedBar is a bar placed on the grid.
type ResolvedBar struct {
	Bar Bar

	// EntryIdx is the index of the entry in the whole data set, and BarIdx
	// is the index of the bar in that entry.
	EntryIdx int
	BarIdx   int

	// Row is the index of the row on the current page.
	Row int

	// StartColumn is the index of the column containing Bar.From, and
	// SpanColumns is the number of columns up to and including the one
	// containing Bar.To; always at least 1.
	StartColumn int
	SpanColumns int

	// Left, Top and Width are in pixels.
	Left  int
	Top   int
	Width int
}

// PlaceBar resolves both ends of the bar to the columns and returns its
// placement. Row and Top are left zero. If either end is outside of the
// columns, or the bar ends before it starts, a *DataRangeError is returned:
// the bar is not placed at some guessed position.
func PlaceBar(bar Bar, cols *Columns, geom Geometry) (ResolvedBar, error) {
	fromIdx, ok := cols.IndexOf(KeyFor(bar.From, cols.ScaleStep))
	if !ok {
		return ResolvedBar{}, errors.Trace(&DataRangeError{
			From: bar.From, To: bar.To,
			Msg: "start is outside of the grid",
		})
	}

	toIdx, ok := cols.IndexOf(KeyFor(bar.To, cols.ScaleStep))
	if !ok {
		return ResolvedBar{}, errors.Trace(&DataRangeError{
			From: bar.From, To: bar.To,
			Msg: "end is outside of the grid",
		})
	}

	span := toIdx - fromIdx + 1
	if span < 1 {
		return ResolvedBar{}, errors.Trace(&DataRangeError{
			From: bar.From, To: bar.To,
			Msg: "end is before start",
		})
	}

	return ResolvedBar{
		Bar:         bar,
		StartColumn: fromIdx,
		SpanColumns: span,
		Left:        fromIdx * geom.CellSize,
		Width:       span*geom.CellSize - geom.BarMargin,
	}, nil
}

// PlaceBars places all bars of the entries from the given page. Bars which
// can't be placed are not included in the result; instead, there is an error
// for each of them in the returned slice of errors.
func PlaceBars(entries []Entry, page Page, cols *Columns, geom Geometry) ([]ResolvedBar, []error) {
	var (
		bars []ResolvedBar
		errs []error
	)

	for entryIdx := page.FirstRow; entryIdx < page.FirstRow+page.NumRows; entryIdx++ {
		entry := entries[entryIdx]
		row := entryIdx - page.FirstRow

		for barIdx, bar := range entry.Bars {
			rb, err := PlaceBar(bar, cols, geom)
			if err != nil {
				if dre, ok := errors.Cause(err).(*DataRangeError); ok {
					dre.EntryIdx = entryIdx
					dre.BarIdx = barIdx
				}
				errs = append(errs, err)
				continue
			}

			rb.EntryIdx = entryIdx
			rb.BarIdx = barIdx
			rb.Row = row
			rb.Top = row * geom.CellSize
			bars = append(bars, rb)
		}
	}

	return bars, errs
}
