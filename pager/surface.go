package pager

import "fyne.io/fyne/v2"

// surface is the scroll container the engine lays pages out on. The content
// offset is the x of the viewport's left edge in content coordinates.
type surface interface {
	ViewportSize() fyne.Size
	ContentOffset() float32
	SetContentOffset(x float32)
	ContentSize() fyne.Size
	SetContentSize(size fyne.Size)
}
