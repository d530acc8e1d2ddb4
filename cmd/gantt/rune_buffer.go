package main

import (
	"strings"

	"github.com/rivo/uniseg"
)

// RuneBuffer is a fixed-width line of screen cells, initially all spaces.
// Every cell holds a single grapheme cluster, so combining characters don't
// take cells of their own. Writes outside of the line are clipped, so
// callers can write at any position, including negative ones.
type RuneBuffer struct {
	cells [][]rune
}

func NewRuneBuffer(width int) *RuneBuffer {
	if width < 0 {
		width = 0
	}

	cells := make([][]rune, width)
	for i := range cells {
		cells[i] = []rune{' '}
	}

	return &RuneBuffer{cells: cells}
}

// WriteAt writes a string at the given cell index.
func (b *RuneBuffer) WriteAt(index int, s string) {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if index >= len(b.cells) {
			return
		}

		if index >= 0 {
			b.cells[index] = gr.Runes()
		}
		index++
	}
}

// Fill sets all cells in [from, to) to r.
func (b *RuneBuffer) Fill(from, to int, r rune) {
	if from < 0 {
		from = 0
	}
	if to > len(b.cells) {
		to = len(b.cells)
	}

	for i := from; i < to; i++ {
		b.cells[i] = []rune{r}
	}
}

// Cell returns the runes of the cell: the first one is the main rune, and
// the rest are combining ones.
func (b *RuneBuffer) Cell(index int) ([]rune, bool) {
	if index >= 0 && index < len(b.cells) {
		return b.cells[index], true
	}
	return []rune{' '}, false
}

func (b *RuneBuffer) Len() int {
	return len(b.cells)
}

// String returns the current buffer as a string
func (b *RuneBuffer) String() string {
	var sb strings.Builder
	for _, cell := range b.cells {
		sb.WriteString(string(cell))
	}

	return sb.String()
}
