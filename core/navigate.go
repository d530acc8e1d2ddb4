package core

// Page describes which rows are visible.
type Page struct {
	// Num is the zero-based page number, and Count is the total number of
	// pages.
	Num   int
	Count int

	// FirstRow is the index of the first entry on the page, and NumRows is
	// how many entries the page has (the last page may have less than
	// ItemsPerPage).
	FirstRow int
	NumRows  int
}

// PageFor returns the page with the given number, clamped to the existing
// pages.
func PageFor(numRows, itemsPerPage, pageNum int) Page {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}

	count := (numRows + itemsPerPage - 1) / itemsPerPage

	if pageNum >= count {
		pageNum = count - 1
	}
	if pageNum < 0 {
		pageNum = 0
	}

	first := pageNum * itemsPerPage
	n := numRows - first
	if n > itemsPerPage {
		n = itemsPerPage
	}
	if n < 0 {
		n = 0
	}

	return Page{
		Num:      pageNum,
		Count:    count,
		FirstRow: first,
		NumRows:  n,
	}
}

// CanNavigatePage returns whether moving by delta pages stays within the
// existing pages.
func (p Page) CanNavigatePage(delta int) bool {
	n := p.Num + delta
	return n >= 0 && n < p.Count
}

// NavTarget is where to scroll horizontally.
type NavTarget struct {
	Kind NavKind

	// Delta is only used with NavRelative: how many pixels to scroll right
	// (if positive) or left (if negative).
	Delta int
}

type NavKind int

const (
	// NavBegin scrolls to the very beginning of the grid.
	NavBegin NavKind = iota
	// NavEnd scrolls to the very end of the grid.
	NavEnd
	// NavNow scrolls to the column with the current time, if any.
	NavNow
	// NavRelative scrolls by NavTarget.Delta pixels.
	NavRelative
)

// NavigateOffset returns the new offset after navigating to the target, and
// whether navigation is possible at all (NavNow isn't if the current time is
// not on the grid).
func NavigateOffset(l *Layout, target NavTarget) (int, bool) {
	maxScroll := l.MaxScroll()

	switch target.Kind {
	case NavBegin:
		return 0, true

	case NavEnd:
		return -maxScroll, true

	case NavNow:
		if l.TodayColumn < 0 || maxScroll == 0 {
			return l.State.Offset, false
		}

		return ClampOffset(-l.TodayColumn*l.Geometry.CellSize, maxScroll), true

	case NavRelative:
		return ClampOffset(l.State.Offset-target.Delta, maxScroll), true
	}

	return l.State.Offset, false
}
