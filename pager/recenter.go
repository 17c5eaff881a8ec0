package pager

import "math"

// recenterIfNecessary moves the viewport back to the middle of the content
// once it has drifted too far, shifting every page by the same amount so
// nothing moves on screen. It returns the applied shift.
func (e *engine) recenterIfNecessary(s surface) float32 {
	contentWidth := s.ContentSize().Width
	offset := s.ContentOffset()

	center := (contentWidth - s.ViewportSize().Width) / 2
	distance := float32(math.Abs(float64(offset - center)))
	if distance <= contentWidth*e.cfg.RecenterFraction {
		return 0
	}

	delta := center - offset
	s.SetContentOffset(center)
	e.window.shift(delta)
	return delta
}
