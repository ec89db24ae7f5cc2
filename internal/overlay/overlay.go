// Package overlay models the floating image awaiting placement on the
// canvas: its geometry, its corner handles, and the drag/resize math.
package overlay

import (
	"image"

	"codraw/pkg/geometry"
)

// HandleSize is the edge length in canvas pixels of a corner handle's
// hit-box.
const HandleSize = 8

// MinWidth is the smallest width an overlay can be resized to.
const MinWidth = 2 * HandleSize

// placeMaxFraction caps the initial overlay size at this share of each
// canvas axis.
const placeMaxFraction = 0.8

// Handle identifies one of the four corner resize handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// Overlay is the single pending image layer on top of the base canvas.
// Rect is in canvas pixels. Aspect is the native width/height ratio captured
// at placement and preserved by every resize.
type Overlay struct {
	Image  image.Image
	Rect   geometry.Rect
	Aspect float64
}

// Place sizes img to at most 80% of each canvas axis while preserving its
// native aspect ratio (smaller images keep their native size) and centers it
// on the canvas.
func Place(img image.Image, canvas geometry.Size) *Overlay {
	bounds := img.Bounds()
	nativeW := float64(bounds.Dx())
	nativeH := float64(bounds.Dy())

	width, height := nativeW, nativeH
	maxW := canvas.Width * placeMaxFraction
	maxH := canvas.Height * placeMaxFraction

	if width > maxW {
		scale := maxW / width
		width = maxW
		height = height * scale
	}
	if height > maxH {
		scale := maxH / height
		height = maxH
		width = width * scale
	}

	return &Overlay{
		Image: img,
		Rect: geometry.NewRect(
			(canvas.Width-width)/2,
			(canvas.Height-height)/2,
			width,
			height,
		),
		Aspect: nativeW / nativeH,
	}
}

// HandleRects returns the four corner hit-boxes, each centered on its
// corner, in HandleTopLeft..HandleBottomRight order.
func (o *Overlay) HandleRects() [4]geometry.Rect {
	hs := float64(HandleSize) / 2
	corners := [4]geometry.Point2D{
		o.Rect.TopLeft(),
		o.Rect.TopRight(),
		o.Rect.BottomLeft(),
		o.Rect.BottomRight(),
	}

	var rects [4]geometry.Rect
	for i, c := range corners {
		rects[i] = geometry.NewRect(c.X-hs, c.Y-hs, HandleSize, HandleSize)
	}
	return rects
}

// HandleAt returns the handle whose hit-box contains p, or HandleNone.
func (o *Overlay) HandleAt(p geometry.Point2D) Handle {
	for i, r := range o.HandleRects() {
		if r.Contains(p) {
			return Handle(i + 1)
		}
	}
	return HandleNone
}

// Contains reports whether p falls inside the overlay's rectangle.
func (o *Overlay) Contains(p geometry.Point2D) bool {
	return o.Rect.Contains(p)
}

// Drag moves the overlay to its gesture-start position translated by the
// accumulated delta, clamped so the rectangle stays fully on-canvas.
func (o *Overlay) Drag(startPos, delta geometry.Point2D, canvas geometry.Size) {
	pos := startPos.Add(delta)
	o.Rect.X = clamp(pos.X, 0, canvas.Width-o.Rect.Width)
	o.Rect.Y = clamp(pos.Y, 0, canvas.Height-o.Rect.Height)
}

// Resize recomputes the geometry from the gesture-start rectangle and the
// accumulated pointer delta. Width drives the resize: it follows the dragged
// corner's horizontal movement, height follows from the aspect ratio, and
// the corner opposite the handle stays fixed. Width is clamped to MinWidth.
// A candidate that would extend past the canvas is ignored, keeping the
// prior geometry.
func (o *Overlay) Resize(handle Handle, start geometry.Rect, delta geometry.Point2D, canvas geometry.Size) {
	var width float64
	switch handle {
	case HandleTopRight, HandleBottomRight:
		width = start.Width + delta.X
	case HandleTopLeft, HandleBottomLeft:
		width = start.Width - delta.X
	default:
		return
	}

	if width < MinWidth {
		width = MinWidth
	}
	height := width / o.Aspect

	candidate := geometry.Rect{Width: width, Height: height}
	switch handle {
	case HandleBottomRight:
		candidate.X = start.X
		candidate.Y = start.Y
	case HandleTopRight:
		candidate.X = start.X
		candidate.Y = start.Y + start.Height - height
	case HandleBottomLeft:
		candidate.X = start.X + start.Width - width
		candidate.Y = start.Y
	case HandleTopLeft:
		candidate.X = start.X + start.Width - width
		candidate.Y = start.Y + start.Height - height
	}

	if !canvas.Bounds().ContainsRect(candidate) {
		return
	}
	o.Rect = candidate
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
