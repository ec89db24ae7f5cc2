package canvas

import "fyne.io/fyne/v2"

// DisplayToCanvas converts a widget-space position to canvas pixel
// coordinates. Each axis scales independently by its intrinsic/displayed
// ratio, so a stretched widget still maps correctly.
func DisplayToCanvas(pos fyne.Position, displaySize fyne.Size, canvasW, canvasH int) (float64, float64) {
	if displaySize.Width <= 0 || displaySize.Height <= 0 {
		return 0, 0
	}
	x := float64(pos.X) * float64(canvasW) / float64(displaySize.Width)
	y := float64(pos.Y) * float64(canvasH) / float64(displaySize.Height)
	return x, y
}

// CanvasToDisplay converts canvas pixel coordinates to display space. It is
// the inverse of DisplayToCanvas, used to place selection chrome.
func CanvasToDisplay(x, y float64, displaySize fyne.Size, canvasW, canvasH int) (float64, float64) {
	if canvasW <= 0 || canvasH <= 0 {
		return 0, 0
	}
	dx := x * float64(displaySize.Width) / float64(canvasW)
	dy := y * float64(displaySize.Height) / float64(canvasH)
	return dx, dy
}
