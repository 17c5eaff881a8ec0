package pager

// adjustPageSizes brings mounted pages to the current effective page size,
// e.g. after the view was resized or SetPageSize was called. Pages are
// re-packed from the first page's x and the offset is scaled with them so the
// same part of the same page stays under the viewport's left edge.
//
// Shifting the offset only by how far the first page moved is not enough
// here: the first page keeps its x, so the offset would stay put while every
// later page moves, and the page under the left edge would change.
func (e *engine) adjustPageSizes(s surface) {
	size := e.effectivePageSize(s.ViewportSize())
	if size == e.laidOutSize {
		return
	}
	old := e.laidOutSize
	e.laidOutSize = size
	if e.window.empty() {
		return
	}

	firstX := e.window.first().x
	if old.Width > 0 && size.Width > 0 {
		pagesIn := (s.ContentOffset() - firstX) / old.Width
		s.SetContentOffset(firstX + pagesIn*size.Width)
	}
	e.window.repack(firstX, size.Width)
}
