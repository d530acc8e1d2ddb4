package clhistory

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
)

// DefaultMaxItems is used when MaxItems in params is zero.
const DefaultMaxItems = 500

// CLHistory is a command-line-like history: commands are added at the end,
// and navigated with Prev / Next, only considering the commands which start
// with what the user has typed so far.
type CLHistory struct {
	params CLHistoryParams

	items []Item

	// curHistIdx is used when navigating the history using Prev / Next.
	// When navigating isn't in progress (after a new item was added using Add),
	// it's reset to -1.
	curHistIdx        int
	lastEphemeralItem Item
}

type CLHistoryParams struct {
	// Filename is where to load the history from and write it to.  If it's
	// empty, the history is only kept in RAM and not persisted anywhere.
	Filename string

	// MaxItems is how many of the last items are kept in RAM.
	MaxItems int
}

type Item struct {
	Time time.Time

	Str string
}

func New(params CLHistoryParams) (*CLHistory, error) {
	if params.MaxItems == 0 {
		params.MaxItems = DefaultMaxItems
	}

	h := &CLHistory{
		params: params,

		curHistIdx: -1,
	}

	if err := h.Load(); err != nil {
		return nil, errors.Trace(err)
	}

	return h, nil
}

// Load loads all history from the file, replacing the in-RAM history. If
// Filename in params is empty or the file doesn't exist, Load is a no-op.
// Malformed lines are skipped.
func (h *CLHistory) Load() error {
	if h.params.Filename == "" {
		return nil
	}

	f, err := os.Open(h.params.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Annotatef(err, "opening %s", h.params.Filename)
	}
	defer f.Close()

	var items []Item

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		item, ok := unmarshalItem(scanner.Text())
		if !ok {
			continue
		}

		items = appendItem(items, item)
	}

	if err := scanner.Err(); err != nil {
		return errors.Annotatef(err, "reading %s", h.params.Filename)
	}

	h.items = h.trimmed(items)
	h.resetHistoryNavigation()

	return nil
}

// Add adds the given string as a new history item to the in-RAM history and,
// if Filename in params was not empty, then also to this file. It also resets
// the history navigation, if any. Empty strings and repetitions of the last
// item are not added.
func (h *CLHistory) Add(s string) error {
	h.resetHistoryNavigation()

	if strings.TrimSpace(s) == "" {
		return nil
	}

	if n := len(h.items); n > 0 && h.items[n-1].Str == s {
		return nil
	}

	item := Item{
		Time: time.Now(),
		Str:  s,
	}

	h.items = h.trimmed(appendItem(h.items, item))

	if h.params.Filename != "" {
		f, err := os.OpenFile(h.params.Filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Trace(err)
		}

		defer f.Close()

		if _, err := f.Write(marshalItem(item)); err != nil {
			return errors.Trace(err)
		}
	}

	return nil
}

// Reset resets the history navigation. Typically client code should call it
// when a user edits or aborts/accepts the command line.
func (h *CLHistory) Reset() {
	h.resetHistoryNavigation()
}

// Prev returns the previous item which starts with the string s that the
// user typed before starting the navigation; if there are no more such items,
// returns the earliest one found so far. The second return value is false if
// the navigation didn't move.
func (h *CLHistory) Prev(s string) (Item, bool) {
	if h.curHistIdx == -1 {
		h.startHistoryNavigation(s)
	}

	for i := h.curHistIdx - 1; i >= 0; i-- {
		if h.matches(i) {
			h.curHistIdx = i
			return h.getItem(i), true
		}
	}

	return h.getItem(h.curHistIdx), false
}

// Next is the opposite of Prev; after the last matching item, it returns the
// string which was typed before starting the navigation.
func (h *CLHistory) Next(s string) (Item, bool) {
	if h.curHistIdx == -1 {
		h.startHistoryNavigation(s)
	}

	// We do allow it to reach len(h.items), which means just returning
	// lastEphemeralItem.
	for i := h.curHistIdx + 1; i <= len(h.items); i++ {
		if i == len(h.items) || h.matches(i) {
			h.curHistIdx = i
			return h.getItem(i), true
		}
	}

	return h.getItem(h.curHistIdx), false
}

// Len returns the number of items in the in-RAM history.
func (h *CLHistory) Len() int {
	return len(h.items)
}

func (h *CLHistory) matches(idx int) bool {
	return strings.HasPrefix(h.items[idx].Str, h.lastEphemeralItem.Str)
}

func (h *CLHistory) startHistoryNavigation(s string) {
	h.curHistIdx = len(h.items)
	h.lastEphemeralItem = Item{Str: s}
}

func (h *CLHistory) resetHistoryNavigation() {
	h.curHistIdx = -1
	h.lastEphemeralItem = Item{}
}

func (h *CLHistory) getItem(idx int) Item {
	if idx < len(h.items) {
		return h.items[idx]
	}

	if idx == len(h.items) {
		return h.lastEphemeralItem
	}

	panic(fmt.Sprintf("idx=%d, len(items)=%d", idx, len(h.items)))
}

func (h *CLHistory) trimmed(items []Item) []Item {
	if len(items) <= h.params.MaxItems {
		return items
	}

	return append([]Item(nil), items[len(items)-h.params.MaxItems:]...)
}

// appendItem appends the item, moving it to the end if the same command
// exists already.
func appendItem(items []Item, item Item) []Item {
	for i := range items {
		if items[i].Str == item.Str {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}

	return append(items, item)
}

// :1650712458000000000:12:0:foo bar baz
func marshalItem(item Item) []byte {
	b := bytes.Buffer{}
	b.WriteRune(':')
	b.WriteString(strconv.FormatInt(item.Time.UnixNano(), 10))
	b.WriteRune(':')
	b.WriteString(strconv.Itoa(len(item.Str) + 1))
	b.WriteString(":0:") // For now, no extra info
	b.WriteString(item.Str)
	b.WriteRune('\n')

	return b.Bytes()
}

func unmarshalItem(line string) (Item, bool) {
	if !strings.HasPrefix(line, ":") {
		return Item{}, false
	}

	parts := strings.SplitN(line[1:], ":", 4)
	if len(parts) != 4 {
		return Item{}, false
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Item{}, false
	}

	if parts[3] == "" {
		return Item{}, false
	}

	return Item{
		Time: time.Unix(0, nanos),
		Str:  parts[3],
	}, true
}
