package pager

import "fyne.io/fyne/v2"

// engine is the toolkit independent half of a PageView: it decides which
// pages are mounted and where, and leaves drawing to its owner through the
// mount and unmount hooks.
type engine struct {
	cfg Config
	ds  Datasource

	window visibleWindow
	pool   reusePool
	states map[fyne.CanvasObject]pageState

	pageSize    fyne.Size // as configured, zero fits the viewport
	laidOutSize fyne.Size // size the mounted pages currently carry

	mount   func(fyne.CanvasObject)
	unmount func(fyne.CanvasObject)
}

func newEngine(cfg Config) *engine {
	return &engine{
		cfg:      cfg,
		pool:     newReusePool(cfg.ReuseCapacity),
		states:   make(map[fyne.CanvasObject]pageState),
		pageSize: cfg.PageSize(),
	}
}

func (e *engine) effectivePageSize(viewport fyne.Size) fyne.Size {
	if e.pageSize.Width == 0 && e.pageSize.Height == 0 {
		return viewport
	}
	size := e.pageSize
	if size.Width == 0 {
		size.Width = viewport.Width
	}
	if size.Height == 0 {
		size.Height = viewport.Height
	}
	return size
}

// layout runs one full pass against the surface and returns how far a
// recenter moved the content, zero if it did not happen.
func (e *engine) layout(s surface) float32 {
	viewport := s.ViewportSize()

	e.updateContentSize(s)
	e.adjustPageSizes(s)
	delta := e.recenterIfNecessary(s)

	minX := s.ContentOffset()
	e.tile(minX, minX+viewport.Width)

	debugf("offset %.1f visible %d reusable %d", s.ContentOffset(), e.window.len(), e.pool.len())
	return delta
}

func (e *engine) updateContentSize(s surface) {
	viewport := s.ViewportSize()
	size := fyne.NewSize(viewport.Width*e.cfg.SpaceMultiplier, viewport.Height)
	if s.ContentSize() != size {
		s.SetContentSize(size)
	}
}

// reset hands every page back to the caller and scrolls to the origin.
func (e *engine) reset(s surface) {
	for _, sl := range e.window.clear() {
		e.detach(sl.page)
		e.release(sl.page)
	}
	for _, page := range e.pool.drain() {
		e.release(page)
	}
	s.SetContentOffset(0)
}

// setPage resets and, for a non-nil page, mounts it as the only page at the
// origin.
func (e *engine) setPage(s surface, page fyne.CanvasObject) {
	e.reset(s)
	if page == nil {
		return
	}

	size := e.effectivePageSize(s.ViewportSize())
	e.laidOutSize = size
	e.window.pushBack(slot{page: page, x: 0, width: size.Width})
	e.attach(page)
}

func (e *engine) attach(page fyne.CanvasObject) {
	e.states[page] = stateVisible
	if e.mount != nil {
		e.mount(page)
	}
}

func (e *engine) detach(page fyne.CanvasObject) {
	if e.unmount != nil {
		e.unmount(page)
	}
}

func (e *engine) release(page fyne.CanvasObject) {
	delete(e.states, page)
	if r, ok := e.ds.(PageReleaser); ok {
		r.PageReleased(page)
	}
}

// currentSlot returns the slot under the viewport's left edge.
func (e *engine) currentSlot(offset float32) (slot, bool) {
	if e.window.empty() {
		return slot{}, false
	}
	// Half a unit of slack absorbs float error after a snap.
	return e.window.at(offset + 0.5)
}
