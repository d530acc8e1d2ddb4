package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dimonomid/gantt/core"
)

var (
	styleDefault = tcell.StyleDefault
	styleWeekend = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	styleHoliday = tcell.StyleDefault.Background(tcell.ColorDarkRed)
	styleToday   = tcell.StyleDefault.Background(tcell.ColorDarkBlue)
	styleBar     = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// ChartView draws the current layout of the chart: header tiers on top, and
// then the rows with their labels and bars. It also has a cursor, which is a
// cell (a column of a row), used to click on bars and empty cells.
type ChartView struct {
	*tview.Box

	chart *core.Chart

	// onViewportWidth is called from Draw when the width available for the
	// chart differs from the layout's viewport width.
	onViewportWidth func(width int)

	cursorRow int
	cursorCol int
}

func NewChartView(chart *core.Chart, onViewportWidth func(width int)) *ChartView {
	return &ChartView{
		Box:             tview.NewBox(),
		chart:           chart,
		onViewportWidth: onViewportWidth,
	}
}

func (cv *ChartView) Draw(screen tcell.Screen) {
	cv.Box.DrawForSubclass(screen, cv)
	x, y, width, height := cv.GetInnerRect()

	l := cv.chart.Layout()
	entries := cv.chart.Entries()
	labelWidth := labelWidthFor(l, entries)

	chartWidth := width - labelWidth - 1
	if chartWidth < 1 {
		return
	}

	if chartWidth != l.ViewportWidth && cv.onViewportWidth != nil {
		cv.onViewportWidth(chartWidth)
		l = cv.chart.Layout()
	}

	cv.clampCursor(l)
	cursorFrom, cursorTo := cv.cursorSpan(l)

	for lineY, line := range renderLayout(l, entries) {
		if lineY >= height {
			break
		}

		tview.Print(screen, formatLabel(line.label, labelWidth), x, y+lineY, labelWidth, tview.AlignLeft, tcell.ColorWhite)

		for cx := 0; cx < chartWidth; cx++ {
			cell, _ := line.chart.Cell(cx)

			style := styleDefault
			if line.row < 0 {
				style = styleHeader
			}
			for _, s := range line.spans {
				if cx >= s.from && cx < s.to {
					style = spanStyle(style, s.kind)
				}
			}

			if line.row == cv.cursorRow && cx >= cursorFrom && cx < cursorTo {
				style = style.Reverse(true)
			}

			screen.SetContent(x+labelWidth+1+cx, y+lineY, cell[0], cell[1:], style)
		}
	}
}

func spanStyle(cur tcell.Style, kind spanKind) tcell.Style {
	switch kind {
	case spanWeekend:
		return styleWeekend.Foreground(foregroundOf(cur))
	case spanHoliday:
		return styleHoliday.Foreground(foregroundOf(cur))
	case spanToday:
		return styleToday.Foreground(foregroundOf(cur))
	case spanBar:
		return styleBar
	}

	return cur
}

func foregroundOf(style tcell.Style) tcell.Color {
	fg, _, _ := style.Decompose()
	return fg
}

// cursorSpan returns the viewport coordinates of the cell under cursor.
func (cv *ChartView) cursorSpan(l *core.Layout) (int, int) {
	left := cv.cursorCol*l.Geometry.CellSize + l.State.Offset
	return left, left + l.Geometry.CellSize
}

func (cv *ChartView) clampCursor(l *core.Layout) {
	if cv.cursorRow >= l.Page.NumRows {
		cv.cursorRow = l.Page.NumRows - 1
	}
	if cv.cursorRow < 0 {
		cv.cursorRow = 0
	}

	if cv.cursorCol >= l.Columns.Len() {
		cv.cursorCol = l.Columns.Len() - 1
	}
	if cv.cursorCol < 0 {
		cv.cursorCol = 0
	}
}

// MoveCursor moves the cursor by the given number of rows and columns, and
// scrolls the chart if the cursor gets out of the viewport.
func (cv *ChartView) MoveCursor(rows, cols int) error {
	l := cv.chart.Layout()

	cv.cursorRow += rows
	cv.cursorCol += cols
	cv.clampCursor(l)

	return cv.scrollToCursor()
}

// SetCursorCol moves the cursor to the given column, and scrolls the chart to
// it if needed.
func (cv *ChartView) SetCursorCol(col int) error {
	cv.cursorCol = col
	cv.clampCursor(cv.chart.Layout())

	return cv.scrollToCursor()
}

// CursorToViewport moves the cursor into the viewport (if it's outside),
// keeping the scroll position.
func (cv *ChartView) CursorToViewport() {
	l := cv.chart.Layout()
	cs := l.Geometry.CellSize

	firstVisible := (-l.State.Offset + cs - 1) / cs
	lastVisible := (-l.State.Offset+l.ViewportWidth)/cs - 1

	if cv.cursorCol < firstVisible {
		cv.cursorCol = firstVisible
	}
	if lastVisible >= firstVisible && cv.cursorCol > lastVisible {
		cv.cursorCol = lastVisible
	}

	cv.clampCursor(l)
}

func (cv *ChartView) scrollToCursor() error {
	l := cv.chart.Layout()
	cs := l.Geometry.CellSize
	from, to := cv.cursorSpan(l)

	var cells int
	switch {
	case from < 0:
		cells = -((-from + cs - 1) / cs)
	case to > l.ViewportWidth:
		cells = (to - l.ViewportWidth + cs - 1) / cs
	default:
		return nil
	}

	_, err := cv.chart.NavigateCells(cells)
	return err
}

// Click clicks at the middle of the cell under cursor.
func (cv *ChartView) Click() error {
	l := cv.chart.Layout()
	from, to := cv.cursorSpan(l)

	return cv.chart.ClickAt((from+to)/2, cv.cursorRow)
}
