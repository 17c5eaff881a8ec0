package pager

import "math"

// SnapTarget corrects the offset a scroll gesture wants to come to rest at so
// it lands on a page boundary.
//
// firstX is the content x of the first mounted page and currentX the offset
// at release. With no velocity the nearest of the first page's two edges
// wins; otherwise proposedX is rounded to the page grid that firstX lies on.
func SnapTarget(firstX, pageWidth, velocityX, proposedX, currentX float32) float32 {
	if pageWidth <= 0 {
		return proposedX
	}

	if velocityX == 0 {
		if currentX-firstX < pageWidth/2 {
			return firstX
		}
		return firstX + pageWidth
	}

	firstPageVisible := float32(math.Mod(float64(firstX), float64(pageWidth)))
	delta := firstPageVisible - pageWidth
	index := float32(math.Round(float64(proposedX / pageWidth)))
	return index*pageWidth + delta
}
