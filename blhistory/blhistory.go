package blhistory

import (
	"time"
)

// BLHistory is a browser-like history: we can add more items to the history;
// we can go back and forth; when we're a few items back and we add a new item,
// a new item is added at this place in the history and all the previously existing
// newer items are dropped; there is no persistence.
//
// The zero value is not usable, use New.
type BLHistory[T any] struct {
	items []Item[T]

	curIdx int

	// maxLen is the max number of items to keep; the oldest ones are dropped
	// when it's exceeded. Zero means no limit.
	maxLen int
}

type Item[T any] struct {
	Time time.Time

	Value T
}

// New creates an empty history which keeps at most maxLen items; zero maxLen
// means no limit.
func New[T any](maxLen int) *BLHistory[T] {
	h := &BLHistory[T]{
		maxLen: maxLen,
	}

	return h
}

func (h *BLHistory[T]) Add(v T) {
	item := Item[T]{
		Time:  time.Now(),
		Value: v,
	}

	if len(h.items) > 0 && h.curIdx < len(h.items)-1 {
		h.items = h.items[:h.curIdx+1]
	}

	h.items = append(h.items, item)
	if h.maxLen > 0 && len(h.items) > h.maxLen {
		h.items = h.items[len(h.items)-h.maxLen:]
	}

	h.curIdx = len(h.items) - 1
}

// Cur returns the current item, or nil if the history is empty.
func (h *BLHistory[T]) Cur() *Item[T] {
	if len(h.items) == 0 {
		return nil
	}

	item := h.items[h.curIdx]
	return &item
}

func (h *BLHistory[T]) Prev() *Item[T] {
	if h.curIdx == 0 {
		return nil
	}

	h.curIdx--

	item := h.items[h.curIdx]
	return &item
}

func (h *BLHistory[T]) Next() *Item[T] {
	if h.curIdx >= len(h.items)-1 {
		return nil
	}

	h.curIdx++

	item := h.items[h.curIdx]
	return &item
}

// Len returns the number of items in the history.
func (h *BLHistory[T]) Len() int {
	return len(h.items)
}
