package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"

	"codraw/internal/overlay"
	"codraw/pkg/colorutil"
)

// drawOverlayChrome draws the pending overlay's dashed outline and its four
// corner handles in display space, so the lines stay crisp at any widget size.
func (dc *DrawingCanvas) drawOverlayChrome(output *image.RGBA, o overlay.Overlay, w, h int) {
	cw, ch := dc.editor.Size()
	displaySize := fyne.NewSize(float32(w), float32(h))

	x1, y1 := CanvasToDisplay(o.Rect.X, o.Rect.Y, displaySize, cw, ch)
	x2, y2 := CanvasToDisplay(o.Rect.X+o.Rect.Width, o.Rect.Y+o.Rect.Height, displaySize, cw, ch)
	drawDashedRect(output, int(x1), int(y1), int(x2), int(y2), colorutil.Blue)

	for _, hr := range o.HandleRects() {
		hx1, hy1 := CanvasToDisplay(hr.X, hr.Y, displaySize, cw, ch)
		hx2, hy2 := CanvasToDisplay(hr.X+hr.Width, hr.Y+hr.Height, displaySize, cw, ch)
		fillRect(output, int(hx1), int(hy1), int(hx2), int(hy2), colorutil.White)
		drawRectOutline(output, int(hx1), int(hy1), int(hx2), int(hy2), colorutil.Blue)
	}
}

// drawDashedRect draws a dashed rectangle outline (alternate pixel runs).
func drawDashedRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()

	// Top edge
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			output.Set(x, y1, col)
		}
	}
	// Bottom edge
	for x := x1; x <= x2; x++ {
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			output.Set(x, y2, col)
		}
	}
	// Left edge
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x1, y, col)
		}
	}
	// Right edge
	for y := y1; y <= y2; y++ {
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x2, y, col)
		}
	}
}

// drawRectOutline draws a solid one pixel rectangle outline.
func drawRectOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()

	for x := x1; x <= x2; x++ {
		if x >= bounds.Min.X && x < bounds.Max.X {
			if y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
				output.Set(x, y1, col)
			}
			if y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
				output.Set(x, y2, col)
			}
		}
	}
	for y := y1; y <= y2; y++ {
		if y >= bounds.Min.Y && y < bounds.Max.Y {
			if x1 >= bounds.Min.X && x1 < bounds.Max.X {
				output.Set(x1, y, col)
			}
			if x2 >= bounds.Min.X && x2 < bounds.Max.X {
				output.Set(x2, y, col)
			}
		}
	}
}

// fillRect fills the rectangle spanned by the two corners.
func fillRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				output.Set(x, y, col)
			}
		}
	}
}
