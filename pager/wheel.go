package pager

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// notchAccumulator turns scroll deltas into whole wheel notches so
// touchpads, which send many small deltas, do not flip pages too quickly.
type notchAccumulator struct {
	notch float32
	acc   float32
}

func (n *notchAccumulator) add(d float32) int {
	if n.notch <= 0 || math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		return 0
	}

	n.acc += d
	var steps int
	for n.acc >= n.notch {
		steps++
		n.acc -= n.notch
	}
	for n.acc <= -n.notch {
		steps--
		n.acc += n.notch
	}
	return steps
}

// scrolled pages the view one page per wheel notch. Positive fyne deltas
// point left and up, so they step backwards.
func (p *PageView) scrolled(e *fyne.ScrollEvent) {
	d := e.Scrolled.DX
	if d == 0 {
		d = e.Scrolled.DY
	}
	steps := p.notches.add(-d)
	if steps == 0 {
		return
	}
	p.stepPages(steps)
}

func (p *PageView) stepPages(steps int) {
	width := p.engine.laidOutSize.Width
	if p.engine.window.empty() || width <= 0 {
		return
	}

	base := p.offset
	if p.settle != nil {
		base = p.settle.to
	}
	velocity := float32(steps)
	p.settleTo(p.willSettle(velocity, base+float32(steps)*width))
}

// dragSurface sits above the pages and forwards drags to the PageView. It is
// not Tappable, so taps still reach the pages below.
type dragSurface struct {
	widget.BaseWidget
	p *PageView
}

func newDragSurface(p *PageView) *dragSurface {
	d := &dragSurface{p: p}
	d.ExtendBaseWidget(d)
	return d
}

func (d *dragSurface) Dragged(e *fyne.DragEvent) {
	d.p.Dragged(e)
}

func (d *dragSurface) DragEnd() {
	d.p.DragEnd()
}

func (d *dragSurface) CreateRenderer() fyne.WidgetRenderer {
	return &emptyRenderer{}
}

var _ fyne.Draggable = (*dragSurface)(nil)

// wheelOverlay is the only Scrollable in a PageView. It hides itself from
// hit testing unless the wheel mode wants the event, so the wheel otherwise
// reaches an enclosing list.
type wheelOverlay struct {
	widget.BaseWidget
	p *PageView
}

func newWheelOverlay(p *PageView) *wheelOverlay {
	w := &wheelOverlay{p: p}
	w.ExtendBaseWidget(w)
	return w
}

func (w *wheelOverlay) Visible() bool {
	if !w.BaseWidget.Visible() {
		return false
	}
	switch w.p.cfg.WheelMode {
	case WheelAlways:
		return true
	case WheelShift:
		return isShiftActive()
	default:
		return false
	}
}

func (w *wheelOverlay) Scrolled(e *fyne.ScrollEvent) {
	w.p.scrolled(e)
}

func (w *wheelOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &emptyRenderer{}
}

var _ fyne.Scrollable = (*wheelOverlay)(nil)

func isShiftActive() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	d, ok := app.Driver().(desktop.Driver)
	if !ok {
		return false
	}
	return d.CurrentKeyModifiers()&fyne.KeyModifierShift != 0
}

type emptyRenderer struct{}

func (r *emptyRenderer) Layout(fyne.Size) {}
func (r *emptyRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}
func (r *emptyRenderer) Refresh()                     {}
func (r *emptyRenderer) Objects() []fyne.CanvasObject { return nil }
func (r *emptyRenderer) Destroy()                     {}
