package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFor(t *testing.T) {
	type pageTestCase struct {
		name string

		numRows      int
		itemsPerPage int
		pageNum      int

		want Page
	}

	testCases := []pageTestCase{
		{"first page", 15, 7, 0, Page{Num: 0, Count: 3, FirstRow: 0, NumRows: 7}},
		{"last partial page", 15, 7, 2, Page{Num: 2, Count: 3, FirstRow: 14, NumRows: 1}},
		{"beyond the last page", 15, 7, 5, Page{Num: 2, Count: 3, FirstRow: 14, NumRows: 1}},
		{"negative page", 15, 7, -1, Page{Num: 0, Count: 3, FirstRow: 0, NumRows: 7}},
		{"exact pages", 14, 7, 1, Page{Num: 1, Count: 2, FirstRow: 7, NumRows: 7}},
		{"no rows", 0, 7, 0, Page{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageFor(tc.numRows, tc.itemsPerPage, tc.pageNum))
		})
	}

	p := PageFor(15, 7, 0)
	assert.True(t, p.CanNavigatePage(1))
	assert.True(t, p.CanNavigatePage(2))
	assert.False(t, p.CanNavigatePage(3))
	assert.False(t, p.CanNavigatePage(-1))

	p = PageFor(15, 7, 2)
	assert.False(t, p.CanNavigatePage(1))
	assert.True(t, p.CanNavigatePage(-2))
}

func TestNavigateOffset(t *testing.T) {
	newLayout := func(offset, todayColumn int) *Layout {
		return &Layout{
			State:         RenderState{Offset: offset},
			Geometry:      testGeometry,
			ContentWidth:  1000,
			ViewportWidth: 400,
			TodayColumn:   todayColumn,
		}
	}

	type navTestCase struct {
		name   string
		layout *Layout
		target NavTarget

		want   int
		wantOK bool
	}

	testCases := []navTestCase{
		{"begin", newLayout(-100, 10), NavTarget{Kind: NavBegin}, 0, true},
		{"end", newLayout(-100, 10), NavTarget{Kind: NavEnd}, -600, true},
		{"now", newLayout(-100, 10), NavTarget{Kind: NavNow}, -240, true},
		{"now far at the end", newLayout(-100, 40), NavTarget{Kind: NavNow}, -600, true},
		{"now is not on the grid", newLayout(-100, -1), NavTarget{Kind: NavNow}, -100, false},
		{"one cell right", newLayout(-100, 10), NavTarget{Kind: NavRelative, Delta: 24}, -124, true},
		{"a week left", newLayout(-100, 10), NavTarget{Kind: NavRelative, Delta: -7 * 24}, 0, true},
		{"a week right near the end", newLayout(-500, 10), NavTarget{Kind: NavRelative, Delta: 7 * 24}, -600, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NavigateOffset(tc.layout, tc.target)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, 600, newLayout(0, 0).MaxScroll())
	assert.Equal(t, 0, (&Layout{ContentWidth: 100, ViewportWidth: 400}).MaxScroll())
}
