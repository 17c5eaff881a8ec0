package pager

import "fyne.io/fyne/v2"

// reusePool holds detached pages in the order they were detached.
type reusePool struct {
	pages    []fyne.CanvasObject
	capacity int
}

func newReusePool(capacity int) reusePool {
	return reusePool{capacity: capacity}
}

func (p *reusePool) len() int {
	return len(p.pages)
}

// first is the candidate offered to the datasource: the oldest page, which
// is also the next one trimming would discard.
func (p *reusePool) first() fyne.CanvasObject {
	if len(p.pages) == 0 {
		return nil
	}
	return p.pages[0]
}

func (p *reusePool) contains(page fyne.CanvasObject) bool {
	for _, o := range p.pages {
		if o == page {
			return true
		}
	}
	return false
}

func (p *reusePool) push(page fyne.CanvasObject) {
	if page == nil || p.contains(page) {
		return
	}
	p.pages = append(p.pages, page)
}

func (p *reusePool) remove(page fyne.CanvasObject) bool {
	for i, o := range p.pages {
		if o == page {
			p.pages = append(p.pages[:i], p.pages[i+1:]...)
			return true
		}
	}
	return false
}

// trim drops the oldest pages until the pool fits its capacity and returns
// them, oldest first.
func (p *reusePool) trim() []fyne.CanvasObject {
	over := len(p.pages) - p.capacity
	if over <= 0 {
		return nil
	}
	evicted := make([]fyne.CanvasObject, over)
	copy(evicted, p.pages[:over])
	p.pages = append(p.pages[:0], p.pages[over:]...)
	return evicted
}

// drain empties the pool and returns everything it held.
func (p *reusePool) drain() []fyne.CanvasObject {
	pages := p.pages
	p.pages = nil
	return pages
}
