package pager

import "fyne.io/fyne/v2"

// tile mounts pages until [minX, maxX] is covered and recycles those that
// fell outside it. Pages touching an edge exactly are kept.
func (e *engine) tile(minX, maxX float32) {
	if e.window.empty() {
		return
	}
	width := e.laidOutSize.Width
	if width <= 0 {
		return
	}

	// Grow before shrinking so this pass can still reuse pooled pages.
	for e.window.last().right() < maxX {
		if !e.addPageAfter(width) {
			break
		}
	}
	for e.window.first().x > minX {
		if !e.addPageBefore(width) {
			break
		}
	}

	// The last page standing is never recycled; an empty window would stop
	// tiling until the next SetPage.
	for e.window.len() > 1 && e.window.first().right() < minX {
		e.recycle(e.window.popFront().page)
	}
	for e.window.len() > 1 && e.window.last().x > maxX {
		e.recycle(e.window.popBack().page)
	}

	for _, page := range e.pool.trim() {
		e.release(page)
	}
}

func (e *engine) addPageAfter(width float32) bool {
	last := e.window.last()
	page := e.request(last.page, true)
	if page == nil {
		return false
	}
	e.window.pushBack(slot{page: page, x: last.right(), width: width})
	e.attach(page)
	return true
}

func (e *engine) addPageBefore(width float32) bool {
	first := e.window.first()
	page := e.request(first.page, false)
	if page == nil {
		return false
	}
	e.window.pushFront(slot{page: page, x: first.x - width, width: width})
	e.attach(page)
	return true
}

// request asks the datasource for the neighbour of ref, offering the
// oldest pooled page, and takes the answer out of the pool if it came from
// there.
func (e *engine) request(ref fyne.CanvasObject, after bool) fyne.CanvasObject {
	if e.ds == nil {
		return nil
	}

	reusable := e.pool.first()
	var page fyne.CanvasObject
	if after {
		page = e.ds.PageAfter(ref, reusable)
	} else {
		page = e.ds.PageBefore(ref, reusable)
	}
	if page == nil {
		return nil
	}

	switch e.states[page] {
	case stateVisible:
		fyne.LogError("pager: datasource returned a visible page", errPageMounted)
		return nil
	case statePooled:
		e.pool.remove(page)
	}
	return page
}

func (e *engine) recycle(page fyne.CanvasObject) {
	e.detach(page)
	e.states[page] = statePooled
	e.pool.push(page)
}
