// Package pager provides PageView, a horizontally paging fyne widget that
// scrolls through an endless sequence of same-sized pages.
//
// Pages are requested lazily from a Datasource as they scroll into view and
// handed back to it as reuse candidates once they scroll out. Only the pages
// overlapping the viewport (plus at most a couple of recycled ones) are kept
// alive, so a PageView is cheap enough to embed in every row of a
// widget.List.
//
// All PageView methods must be called from the fyne main goroutine. Use
// fyne.Do when feeding it from a background worker.
package pager
