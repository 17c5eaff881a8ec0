package pager

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PageView shows one row of same-sized pages that can be scrolled
// horizontally without end.
//
// Embedded in a widget.List, call SetPage (or PrepareForReuse) from the
// list's update callback: it drops every page of the previous row and
// resets the scroll position.
type PageView struct {
	widget.BaseWidget

	// OnSettled is called with the page under the viewport's left edge each
	// time a drag or wheel step comes to rest.
	OnSettled func(page fyne.CanvasObject)

	cfg    Config
	engine *engine

	offset      float32
	contentSize fyne.Size
	viewport    fyne.Size

	pages   *fyne.Container
	drag    *dragSurface
	wheel   *wheelOverlay
	tracker velocityTracker
	notches notchAccumulator
	settle  *settleMotion

	now       func() time.Time
	startAnim func(*fyne.Animation)
}

// NewPageView creates a PageView with DefaultConfig.
func NewPageView(ds Datasource) *PageView {
	p, _ := NewPageViewWithConfig(ds, DefaultConfig())
	return p
}

// NewPageViewWithConfig creates a PageView, rejecting invalid configuration.
func NewPageViewWithConfig(ds Datasource, cfg Config) (*PageView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &PageView{
		cfg:    cfg,
		engine: newEngine(cfg),
		now:    time.Now,
	}
	p.startAnim = (*fyne.Animation).Start
	p.engine.ds = ds
	p.notches.notch = cfg.WheelNotch

	p.pages = container.NewWithoutLayout()
	p.engine.mount = func(page fyne.CanvasObject) {
		p.pages.Add(page)
	}
	p.engine.unmount = func(page fyne.CanvasObject) {
		p.pages.Remove(page)
	}

	p.drag = newDragSurface(p)
	p.wheel = newWheelOverlay(p)

	p.ExtendBaseWidget(p)
	return p, nil
}

// SetDatasource replaces the page supplier. Mounted pages are kept.
func (p *PageView) SetDatasource(ds Datasource) {
	p.engine.ds = ds
}

// SetPage drops all current pages and shows page at the start position.
// A nil page leaves the view empty.
func (p *PageView) SetPage(page fyne.CanvasObject) {
	p.stopSettle()
	p.tracker.reset()
	p.engine.setPage(viewSurface{p}, page)
	p.Refresh()
}

// PrepareForReuse drops all pages and resets the scroll position.
func (p *PageView) PrepareForReuse() {
	p.SetPage(nil)
}

// SetPageSize changes the page size; the zero size fits pages to the view.
// The pages are resized on the next layout pass.
func (p *PageView) SetPageSize(size fyne.Size) error {
	if err := validatePageSize(size); err != nil {
		return err
	}
	p.cfg.PageWidth, p.cfg.PageHeight = size.Width, size.Height
	p.engine.pageSize = size
	p.Refresh()
	return nil
}

// PageSize returns the configured page size.
func (p *PageView) PageSize() fyne.Size {
	return p.engine.pageSize
}

// VisiblePages returns the mounted pages from left to right.
func (p *PageView) VisiblePages() []fyne.CanvasObject {
	return p.engine.window.pages()
}

// CurrentPage returns the page under the viewport's left edge, or nil.
func (p *PageView) CurrentPage() fyne.CanvasObject {
	s, ok := p.engine.currentSlot(p.offset)
	if !ok {
		return nil
	}
	return s.page
}

func (p *PageView) CreateRenderer() fyne.WidgetRenderer {
	return &pageViewRenderer{p: p}
}

// ContentOffset returns the x of the viewport's left edge in the internal
// scroll range. It changes on every recenter, so only differences between
// two calls without a layout in between are meaningful.
func (p *PageView) ContentOffset() float32 {
	return p.offset
}

func (p *PageView) clampOffset(x float32) float32 {
	limit := p.contentSize.Width - p.viewport.Width
	if limit < 0 {
		limit = 0
	}
	if x < 0 {
		return 0
	}
	if x > limit {
		return limit
	}
	return x
}

// relayout runs a layout pass and then moves the fyne objects to match, so a
// recenter is never drawn half applied.
func (p *PageView) relayout() {
	delta := p.engine.layout(viewSurface{p})
	if delta != 0 && p.settle != nil {
		p.settle.shift(delta)
	}
	p.commit()
}

func (p *PageView) commit() {
	size := p.engine.laidOutSize
	y := (p.viewport.Height - size.Height) / 2
	for _, s := range p.engine.window.slots {
		s.page.Resize(fyne.NewSize(s.width, size.Height))
		s.page.Move(fyne.NewPos(s.x-p.offset, y))
	}
}

// scrollTo moves the viewport and lays out immediately.
func (p *PageView) scrollTo(x float32) {
	p.offset = p.clampOffset(x)
	p.relayout()
	canvas.Refresh(p.pages)
}

// viewSurface is the scroll state of a PageView as the engine sees it.
// Offset and content size changes made through it are only drawn by the
// commit that ends the layout pass.
type viewSurface struct {
	p *PageView
}

func (s viewSurface) ViewportSize() fyne.Size {
	return s.p.viewport
}

func (s viewSurface) ContentOffset() float32 {
	return s.p.offset
}

func (s viewSurface) SetContentOffset(x float32) {
	s.p.offset = s.p.clampOffset(x)
}

func (s viewSurface) ContentSize() fyne.Size {
	return s.p.contentSize
}

func (s viewSurface) SetContentSize(size fyne.Size) {
	s.p.contentSize = size
	s.p.offset = s.p.clampOffset(s.p.offset)
}

var (
	_ fyne.Widget    = (*PageView)(nil)
	_ fyne.Draggable = (*PageView)(nil)
	_ surface        = viewSurface{}
)

type pageViewRenderer struct {
	p *PageView
}

func (r *pageViewRenderer) Layout(size fyne.Size) {
	r.p.viewport = size
	r.p.pages.Resize(size)
	r.p.drag.Resize(size)
	r.p.wheel.Resize(size)
	r.p.relayout()
}

func (r *pageViewRenderer) MinSize() fyne.Size {
	return r.p.engine.pageSize
}

func (r *pageViewRenderer) Refresh() {
	r.p.relayout()
	canvas.Refresh(r.p.pages)
}

func (r *pageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.p.pages, r.p.drag, r.p.wheel}
}

// IsClip keeps pages that hang over the edges from being drawn outside the
// view. The PageView is not Scrollable, so wheel events it does not page
// with reach the containers around it.
func (r *pageViewRenderer) IsClip() {}

func (r *pageViewRenderer) Destroy() {
	r.p.stopSettle()
}
