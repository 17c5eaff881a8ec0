package pager

import "fyne.io/fyne/v2"

// pageState records which structure owns a page the engine knows about.
// Pages absent from the state table belong to the caller.
type pageState int

const (
	stateReleased pageState = iota
	stateVisible
	statePooled
)

// slot is a mounted page and its horizontal extent in content coordinates.
// Geometry lives here rather than on the page so it can be changed freely
// during a layout pass and committed once at the end.
type slot struct {
	page  fyne.CanvasObject
	x     float32
	width float32
}

func (s slot) right() float32 {
	return s.x + s.width
}

// visibleWindow is the run of mounted pages ordered by x. Neighbouring slots
// always touch: slots[i].right() == slots[i+1].x.
type visibleWindow struct {
	slots []slot
}

func (w *visibleWindow) empty() bool {
	return len(w.slots) == 0
}

func (w *visibleWindow) len() int {
	return len(w.slots)
}

func (w *visibleWindow) first() slot {
	return w.slots[0]
}

func (w *visibleWindow) last() slot {
	return w.slots[len(w.slots)-1]
}

func (w *visibleWindow) pushBack(s slot) {
	w.slots = append(w.slots, s)
}

func (w *visibleWindow) pushFront(s slot) {
	w.slots = append(w.slots, slot{})
	copy(w.slots[1:], w.slots)
	w.slots[0] = s
}

func (w *visibleWindow) popFront() slot {
	s := w.slots[0]
	w.slots = w.slots[1:]
	return s
}

func (w *visibleWindow) popBack() slot {
	s := w.slots[len(w.slots)-1]
	w.slots = w.slots[:len(w.slots)-1]
	return s
}

func (w *visibleWindow) shift(dx float32) {
	for i := range w.slots {
		w.slots[i].x += dx
	}
}

// repack gives every slot the same width and lays them out from x.
func (w *visibleWindow) repack(x, width float32) {
	for i := range w.slots {
		w.slots[i].x = x
		w.slots[i].width = width
		x += width
	}
}

func (w *visibleWindow) pages() []fyne.CanvasObject {
	pages := make([]fyne.CanvasObject, len(w.slots))
	for i, s := range w.slots {
		pages[i] = s.page
	}
	return pages
}

// at returns the slot covering x, preferring the right-hand slot on a shared
// edge.
func (w *visibleWindow) at(x float32) (slot, bool) {
	for _, s := range w.slots {
		if x >= s.x && x < s.right() {
			return s, true
		}
	}
	return slot{}, false
}

func (w *visibleWindow) clear() []slot {
	slots := w.slots
	w.slots = nil
	return slots
}
