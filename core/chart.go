package core

import (
	"sync"
	"time"

	"github.com/juju/errors"
	"golang.org/x/sync/semaphore"

	"github.com/dimonomid/gantt/blhistory"
	"github.com/dimonomid/gantt/log"
)

// maxHistoryLen is how many views the Back/Forward history keeps.
const maxHistoryLen = 100

// Hooks are called by the Chart; all of them are optional.
//
// Hooks are called synchronously, while the chart is busy; so if a hook
// calls any of the Chart methods which change the view, they will return
// ErrBusy.
type Hooks struct {
	// OnItemClick is called with the payload of the bar which was clicked.
	OnItemClick func(payload []byte)

	// OnAddClick is called when an empty cell is clicked, with the
	// representative date of the column and the id of the row.
	OnAddClick func(at time.Time, rowID string)

	// OnRender is called after every new layout is computed, and also when
	// a zoom is rejected, with the current layout.
	OnRender func(l *Layout)

	// OnWait is called with true before a layout is computed, and with false
	// after that.
	OnWait func(show bool)
}

// SavedView is the part of the view state which survives restarts.
type SavedView struct {
	Scale Scale `yaml:"scale"`
	Step  int   `yaml:"step,omitempty"`

	// ScrollPos is nil if no scroll position was saved.
	ScrollPos *int `yaml:"scroll_pos,omitempty"`
}

// ViewStateStore persists the SavedView.
type ViewStateStore interface {
	// LoadViewState returns the saved view, if any.
	LoadViewState() (SavedView, bool, error)
	SaveViewState(v SavedView) error
}

type ChartParams struct {
	Options Options
	Entries []Entry

	Hooks Hooks

	Logger *log.Logger

	// StateStore is optional; if set, the view state is restored from it
	// initially and saved to it after every transition.
	StateStore ViewStateStore

	// Now returns the current time; time.Now is used if nil.
	Now func() time.Time
}

// Chart owns the data and the current view state, and computes new layouts
// on every view transition (zooming, paging, scrolling). At most one
// transition is being computed at any time; transitions requested while
// another one is in progress are dropped with ErrBusy.
type Chart struct {
	params ChartParams
	logger *log.Logger

	// sem guards the computation: only one at a time.
	sem *semaphore.Weighted

	// mtx guards everything below.
	mtx     sync.Mutex
	opts    Options
	entries []Entry
	layout  *Layout
	history *blhistory.BLHistory[RenderState]
}

// NewChart validates the options, restores the saved view state if any, and
// computes the initial layout.
func NewChart(params ChartParams) (*Chart, error) {
	if params.Now == nil {
		params.Now = time.Now
	}

	if err := params.Options.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	c := &Chart{
		params:  params,
		logger:  params.Logger.WithNamespaceAppended("chart"),
		sem:     semaphore.NewWeighted(1),
		opts:    params.Options,
		entries: params.Entries,
		history: blhistory.New[RenderState](maxHistoryLen),
	}

	state := RenderState{ScaleStep: NewScaleStep(c.opts.Scale)}

	saved, haveSaved := c.loadSavedView()
	if haveSaved {
		state.ScaleStep = ScaleStep{Scale: saved.Scale, Step: saved.Step}
		if saved.Scale != ScaleHours {
			state.ScaleStep.Step = 0
		}
	}

	l, err := c.compute(state)
	if err != nil {
		return nil, errors.Trace(err)
	}

	switch {
	case haveSaved && saved.ScrollPos != nil:
		l.State.Offset = ClampOffset(*saved.ScrollPos, l.MaxScroll())

	case c.opts.ScrollToToday:
		startPos := c.opts.StartPos.AbsoluteTime(c.now())

		if col := l.Columns.Lookup(startPos); col != nil {
			offset := -(col.Index - startPosColumnsFromLeft) * l.Geometry.CellSize
			l.State.Offset = ClampOffset(offset, l.MaxScroll())
		}
	}

	c.commit(l, true)

	return c, nil
}

// loadSavedView returns the saved view if it's usable with the current
// options.
func (c *Chart) loadSavedView() (SavedView, bool) {
	if c.params.StateStore == nil {
		return SavedView{}, false
	}

	saved, ok, err := c.params.StateStore.LoadViewState()
	if err != nil {
		c.logger.Warnf("Failed to load view state: %s", err.Error())
		return SavedView{}, false
	}

	if !ok {
		return SavedView{}, false
	}

	if !saved.Scale.IsValid() || saved.Scale < c.opts.MinScale || saved.Scale > c.opts.MaxScale {
		c.logger.Infof("Ignoring saved scale %s: not in [%s, %s]", saved.Scale, c.opts.MinScale, c.opts.MaxScale)
		return SavedView{}, false
	}

	if saved.Scale == ScaleHours && (saved.Step < 1 || saved.Step > maxHoursStep) {
		saved.Step = defaultHoursStep
	}

	return saved, true
}

func (c *Chart) now() time.Time {
	return c.params.Now().In(c.opts.Location)
}

// Layout returns the current layout. It's never modified after being
// returned, so the caller can use it as long as needed.
func (c *Chart) Layout() *Layout {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.layout
}

// Options returns a copy of the current options.
func (c *Chart) Options() Options {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.opts
}

// Entries returns all the entries (not only the ones on the current page).
func (c *Chart) Entries() []Entry {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.entries
}

func (c *Chart) compute(state RenderState) (*Layout, error) {
	c.mtx.Lock()
	entries := c.entries
	opts := c.opts
	c.mtx.Unlock()

	l, err := computeLayout(entries, &opts, state, c.now())
	if err != nil {
		return nil, errors.Trace(err)
	}

	c.logger.Verbose1f(
		"Recomputed layout: %s, range %s - %s, %d columns, page %d/%d, offset %d",
		l.State.ScaleStep, l.Range.Start.Format(time.RFC3339), l.Range.End.Format(time.RFC3339),
		l.Columns.Len(), l.Page.Num+1, l.Page.Count, l.State.Offset,
	)

	for _, err := range l.BarErrs {
		c.logger.Warnf("Can't place bar: %s", err.Error())
	}

	return l, nil
}

// commit makes the layout current, and optionally records it in the history.
func (c *Chart) commit(l *Layout, addToHistory bool) {
	c.mtx.Lock()
	c.layout = l
	if addToHistory {
		c.history.Add(l.State)
	}
	c.mtx.Unlock()

	if c.params.StateStore != nil {
		offset := l.State.Offset
		err := c.params.StateStore.SaveViewState(SavedView{
			Scale:     l.State.ScaleStep.Scale,
			Step:      l.State.ScaleStep.Step,
			ScrollPos: &offset,
		})
		if err != nil {
			c.logger.Warnf("Failed to save view state: %s", err.Error())
		}
	}

	c.render(l)
}

func (c *Chart) render(l *Layout) {
	if c.params.Hooks.OnRender != nil {
		c.params.Hooks.OnRender(l)
	}
}

// transition runs a single view transition: next gets the current layout
// and returns the new one, or nil if there's nothing to change.
func (c *Chart) transition(
	name string, addToHistory bool, next func(cur *Layout) (*Layout, error),
) (bool, error) {
	if !c.sem.TryAcquire(1) {
		c.logger.Infof("Dropping %s: busy", name)
		return false, ErrBusy
	}
	defer c.sem.Release(1)

	if c.params.Hooks.OnWait != nil {
		c.params.Hooks.OnWait(true)
		defer c.params.Hooks.OnWait(false)
	}

	l, err := next(c.Layout())
	if err != nil {
		return false, errors.Annotatef(err, "%s", name)
	}

	if l == nil {
		return false, nil
	}

	c.commit(l, addToHistory)

	return true, nil
}

// Zoom zooms in or out, keeping the relative horizontal scroll position.
// Returns false if zooming in that direction is not possible.
func (c *Chart) Zoom(dir ZoomDirection) (bool, error) {
	return c.transition("zoom "+dir.String(), true, func(cur *Layout) (*Layout, error) {
		opts := c.Options()

		ss, ok := NextScaleStep(cur.State.ScaleStep, dir, opts.MinScale, opts.MaxScale)
		if !ok {
			// Rejected zoom still renders, at the current scale.
			c.render(cur)
			return nil, nil
		}

		l, err := c.compute(RenderState{ScaleStep: ss, PageNum: cur.State.PageNum})
		if err != nil {
			return nil, errors.Trace(err)
		}

		offset := RemapOffset(cur.State.Offset, cur.ContentWidth, l.ContentWidth)
		l.State.Offset = ClampOffset(offset, l.MaxScroll())

		return l, nil
	})
}

func (c *Chart) ZoomIn() (bool, error) {
	return c.Zoom(ZoomIn)
}

func (c *Chart) ZoomOut() (bool, error) {
	return c.Zoom(ZoomOut)
}

// NavigatePage moves by delta pages of rows; returns false if there's no
// such page.
func (c *Chart) NavigatePage(delta int) (bool, error) {
	return c.transition("navigate page", true, func(cur *Layout) (*Layout, error) {
		if delta == 0 || !cur.Page.CanNavigatePage(delta) {
			return nil, nil
		}

		state := cur.State
		state.PageNum += delta

		return c.compute(state)
	})
}

// NavigateTo scrolls horizontally; returns false if the offset stays the
// same.
func (c *Chart) NavigateTo(target NavTarget) (bool, error) {
	return c.transition("navigate", true, func(cur *Layout) (*Layout, error) {
		offset, ok := NavigateOffset(cur, target)
		if !ok || offset == cur.State.Offset {
			return nil, nil
		}

		state := cur.State
		state.Offset = offset

		return c.compute(state)
	})
}

// NavigateCells scrolls by the given number of cells (positive scrolls to
// the right, towards later dates).
func (c *Chart) NavigateCells(cells int) (bool, error) {
	l := c.Layout()

	return c.NavigateTo(NavTarget{
		Kind:  NavRelative,
		Delta: cells * l.Geometry.CellSize,
	})
}

// Resize sets the new viewport width, and recomputes the layout so that the
// offset is clamped correctly.
func (c *Chart) Resize(viewportWidth int) (bool, error) {
	return c.transition("resize", false, func(cur *Layout) (*Layout, error) {
		if viewportWidth < 0 {
			return nil, newConfigurationError("viewport width can't be negative, got %d", viewportWidth)
		}

		if viewportWidth == cur.ViewportWidth {
			return nil, nil
		}

		c.mtx.Lock()
		c.opts.ViewportWidth = viewportWidth
		c.mtx.Unlock()

		return c.compute(cur.State)
	})
}

// SetEntries replaces the data, and goes to the first page.
func (c *Chart) SetEntries(entries []Entry) error {
	_, err := c.transition("set entries", true, func(cur *Layout) (*Layout, error) {
		if _, err := DataBounds(entries); err != nil {
			return nil, errors.Trace(err)
		}

		c.mtx.Lock()
		c.entries = entries
		c.mtx.Unlock()

		state := cur.State
		state.PageNum = 0

		return c.compute(state)
	})

	return err
}

// SetOption changes a single option given as "key=value" (see SetOption)
// and recomputes the layout. Setting the scale switches the view to it;
// changing the scale bounds pulls the current scale into them. Options
// marked as StartupOnly are rejected with a ConfigurationError.
func (c *Chart) SetOption(kv string) (bool, error) {
	return c.transition("set option", true, func(cur *Layout) (*Layout, error) {
		name, meta, _, err := ParseOptionKV(kv)
		if err != nil {
			return nil, errors.Trace(err)
		}

		if meta.StartupOnly {
			return nil, newConfigurationError("%s can only be set in the config file or with --set", name)
		}

		opts := c.Options()
		prevScale := opts.Scale

		if err := SetOption(&opts, kv); err != nil {
			return nil, errors.Trace(err)
		}

		if opts.Scale == prevScale {
			opts.Scale = clampScale(opts.Scale, opts.MinScale, opts.MaxScale)
		}

		if err := opts.Validate(); err != nil {
			return nil, errors.Trace(err)
		}

		state := cur.State
		switch {
		case opts.Scale != prevScale:
			state.ScaleStep = NewScaleStep(opts.Scale)
		case state.ScaleStep.Scale < opts.MinScale || state.ScaleStep.Scale > opts.MaxScale:
			state.ScaleStep = NewScaleStep(clampScale(state.ScaleStep.Scale, opts.MinScale, opts.MaxScale))
		}

		c.mtx.Lock()
		c.opts = opts
		c.mtx.Unlock()

		l, err := c.compute(state)
		if err != nil {
			return nil, errors.Trace(err)
		}

		if state.ScaleStep != cur.State.ScaleStep || l.Geometry != cur.Geometry {
			offset := RemapOffset(cur.State.Offset, cur.ContentWidth, l.ContentWidth)
			l.State.Offset = ClampOffset(offset, l.MaxScroll())
		}

		return l, nil
	})
}

func clampScale(s, minScale, maxScale Scale) Scale {
	if minScale > maxScale {
		return s
	}

	if s < minScale {
		return minScale
	}
	if s > maxScale {
		return maxScale
	}

	return s
}

// Back goes to the previous view in history; returns false if there is
// none.
func (c *Chart) Back() (bool, error) {
	return c.historyNav("back", func(h *blhistory.BLHistory[RenderState]) *blhistory.Item[RenderState] {
		return h.Prev()
	})
}

// Forward goes to the next view in history; returns false if there is
// none.
func (c *Chart) Forward() (bool, error) {
	return c.historyNav("forward", func(h *blhistory.BLHistory[RenderState]) *blhistory.Item[RenderState] {
		return h.Next()
	})
}

func (c *Chart) historyNav(
	name string, move func(h *blhistory.BLHistory[RenderState]) *blhistory.Item[RenderState],
) (bool, error) {
	return c.transition(name, false, func(cur *Layout) (*Layout, error) {
		c.mtx.Lock()
		item := move(c.history)
		c.mtx.Unlock()

		if item == nil {
			return nil, nil
		}

		return c.compute(item.Value)
	})
}

// ClickBar calls OnItemClick for the bar with the given indices, if it's on
// the current page.
func (c *Chart) ClickBar(entryIdx, barIdx int) error {
	l := c.Layout()

	for i := range l.Bars {
		rb := &l.Bars[i]
		if rb.EntryIdx == entryIdx && rb.BarIdx == barIdx {
			if c.params.Hooks.OnItemClick != nil {
				c.params.Hooks.OnItemClick(rb.Bar.Payload)
			}
			return nil
		}
	}

	return errors.Errorf("no bar #%d of entry #%d on the current page", barIdx, entryIdx)
}

// ClickAt handles a click at the x coordinate (relative to the viewport) of
// the given row of the current page: if there's a bar, OnItemClick is
// called with its payload; otherwise OnAddClick is called with the
// representative date of the column and the row id.
func (c *Chart) ClickAt(x, row int) error {
	l := c.Layout()

	if row < 0 || row >= l.Page.NumRows {
		return errors.Errorf("no row #%d on the current page", row)
	}

	if rb := l.BarAt(x, row); rb != nil {
		if c.params.Hooks.OnItemClick != nil {
			c.params.Hooks.OnItemClick(rb.Bar.Payload)
		}
		return nil
	}

	col := l.ColumnAt(x)
	if col == nil {
		return errors.Errorf("no column at x=%d", x)
	}

	entries := c.Entries()
	if c.params.Hooks.OnAddClick != nil {
		c.params.Hooks.OnAddClick(col.RepDate(), entries[l.Page.FirstRow+row].ID)
	}

	return nil
}

// BarAt returns the bar at the x coordinate (relative to the viewport) of
// the given row of the current page, or nil.
func (l *Layout) BarAt(x, row int) *ResolvedBar {
	cx := x - l.State.Offset
	for i := range l.Bars {
		rb := &l.Bars[i]
		if rb.Row == row && cx >= rb.Left && cx < rb.Left+rb.Width {
			return rb
		}
	}

	return nil
}
