package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/mattn/go-runewidth"

	"github.com/dimonomid/gantt/core"
)

const (
	minLabelWidth = 4
	maxLabelWidth = 24
)

type spanKind int

const (
	spanWeekend spanKind = iota
	spanHoliday
	spanToday
	spanBar
)

// span is a highlighted part of a chart line, in viewport coordinates.
type span struct {
	from, to int
	kind     spanKind

	// bar is only set for spanBar.
	bar *core.ResolvedBar
}

// textLine is a single line of the text rendering of a layout.
type textLine struct {
	label string
	chart *RuneBuffer
	spans []span

	// row is the index of the row on the current page, or -1 for header
	// lines.
	row int
}

// renderLayout renders the visible part of the layout as text lines: one per
// header tier, and then one per row of the current page. One char is one
// pixel of the layout, so the layout is supposed to be computed with the
// cell size and the bar margin in chars.
func renderLayout(l *core.Layout, entries []core.Entry) []textLine {
	width := l.ViewportWidth
	offset := l.State.Offset

	lines := make([]textLine, 0, len(l.Header.Tiers)+l.Page.NumRows)

	for ti := range l.Header.Tiers {
		tier := &l.Header.Tiers[ti]
		line := textLine{chart: NewRuneBuffer(width), row: -1}

		for ci := range tier.Cells {
			cell := &tier.Cells[ci]
			left := cell.Left + offset
			if left >= width || left+cell.Width <= 0 {
				continue
			}

			line.chart.WriteAt(left, cellText(cell.Label, cell.Width))
		}

		lines = append(lines, line)
	}

	// Column flags are taken from the finest tier, and go through the finest
	// header line and all the rows.
	var dayFlags []span
	if len(l.Header.Tiers) > 0 {
		for _, cell := range l.Header.Units().Cells {
			left := cell.Left + offset
			for _, f := range []struct {
				set  bool
				kind spanKind
			}{
				{cell.Weekend, spanWeekend},
				{cell.Holiday, spanHoliday},
				{cell.Today, spanToday},
			} {
				if f.set {
					dayFlags = append(dayFlags, clipSpan(span{from: left, to: left + cell.Width, kind: f.kind}, width)...)
				}
			}
		}

		units := &lines[len(l.Header.Tiers)-1]
		units.spans = append(units.spans, dayFlags...)
	}

	for row := 0; row < l.Page.NumRows; row++ {
		entry := &entries[l.Page.FirstRow+row]
		line := textLine{
			label: entry.Name,
			chart: NewRuneBuffer(width),
			spans: append([]span(nil), dayFlags...),
			row:   row,
		}

		for i := range l.Bars {
			rb := &l.Bars[i]
			if rb.Row != row {
				continue
			}

			left := rb.Left + offset
			line.chart.WriteAt(left, barText(rb.Bar.Label, rb.Width))
			line.spans = append(line.spans, clipSpan(span{
				from: left, to: left + rb.Width, kind: spanBar, bar: rb,
			}, width)...)
		}

		lines = append(lines, line)
	}

	return lines
}

// clipSpan returns the span clipped to [0, width), or nothing if it's not
// visible at all.
func clipSpan(s span, width int) []span {
	if s.from < 0 {
		s.from = 0
	}
	if s.to > width {
		s.to = width
	}
	if s.from >= s.to {
		return nil
	}

	return []span{s}
}

// cellText returns the header cell label truncated to the cell width, with
// one char left for the gap between cells.
func cellText(label string, width int) string {
	if width <= 1 {
		return ""
	}

	return runewidth.Truncate(label, width-1, "")
}

// barText returns the text of a bar of the given width, like "[Label===]".
func barText(label string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return "#"
	case width == 2:
		return "[]"
	}

	inner := runewidth.Truncate(label, width-2, "")
	inner += strings.Repeat("=", width-2-runewidth.StringWidth(inner))

	return "[" + inner + "]"
}

// labelWidthFor returns the width of the labels column for the current page.
func labelWidthFor(l *core.Layout, entries []core.Entry) int {
	ret := minLabelWidth
	for i := l.Page.FirstRow; i < l.Page.FirstRow+l.Page.NumRows; i++ {
		if w := runewidth.StringWidth(entries[i].Name); w > ret {
			ret = w
		}
	}

	if ret > maxLabelWidth {
		ret = maxLabelWidth
	}

	return ret
}

// formatLabel truncates or pads the label to exactly the given width.
func formatLabel(label string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(label, width, "…"), width)
}

// layoutSummary returns a one-line description of the layout, used in the
// status line and in the text dump.
func layoutSummary(l *core.Layout) string {
	return fmt.Sprintf(
		"%s | %s - %s | page %d/%d | %d columns",
		l.State.ScaleStep,
		l.Range.Start.Format("2006-01-02"), l.Range.End.Format("2006-01-02"),
		l.Page.Num+1, l.Page.Count,
		l.Columns.Len(),
	)
}

// dumpLayout writes the text rendering of the layout to w.
func dumpLayout(w io.Writer, l *core.Layout, entries []core.Entry) error {
	labelWidth := labelWidthFor(l, entries)

	if _, err := fmt.Fprintln(w, layoutSummary(l)); err != nil {
		return errors.Trace(err)
	}

	for _, line := range renderLayout(l, entries) {
		text := formatLabel(line.label, labelWidth) + " " + line.chart.String()
		if _, err := fmt.Fprintln(w, strings.TrimRight(text, " ")); err != nil {
			return errors.Trace(err)
		}
	}

	for _, barErr := range l.BarErrs {
		if _, err := fmt.Fprintf(w, "warning: %s\n", barErr.Error()); err != nil {
			return errors.Trace(err)
		}
	}

	return nil
}
