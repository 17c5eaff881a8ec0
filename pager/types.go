package pager

import (
	"errors"

	"fyne.io/fyne/v2"
)

// Datasource supplies the pages shown by a PageView.
//
// reusable is a page that recently scrolled out of view, or nil. It may be
// reconfigured and returned, ignored, or dropped in favour of a new page.
// Returning nil tells the PageView that there is nothing in that direction.
type Datasource interface {
	PageBefore(page, reusable fyne.CanvasObject) fyne.CanvasObject
	PageAfter(page, reusable fyne.CanvasObject) fyne.CanvasObject
}

// PageReleaser can be implemented by a Datasource that wants to know when a
// page is no longer referenced by the PageView.
type PageReleaser interface {
	PageReleased(page fyne.CanvasObject)
}

const (
	// DefaultSpaceMultiplier is the width of the internal scroll range in
	// viewport widths.
	DefaultSpaceMultiplier = 32
	// DefaultRecenterFraction is the drift from the centre, as a fraction of
	// the scroll range, that triggers a recenter.
	DefaultRecenterFraction = 0.25
	// DefaultReuseCapacity is how many detached pages are kept for reuse.
	DefaultReuseCapacity = 2
	// DefaultWheelNotch matches a typical mouse wheel notch in fyne deltas.
	DefaultWheelNotch = 40
)

var (
	// ErrInvalidPageSize is returned for page sizes with negative components.
	ErrInvalidPageSize = errors.New("page size must not be negative")
	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("invalid pager config")

	errPageMounted = errors.New("page is already mounted")
)
