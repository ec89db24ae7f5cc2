package editor

import (
	"image/color"

	"codraw/internal/app"
	"codraw/internal/overlay"
	"codraw/internal/raster"
	"codraw/pkg/geometry"
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureStroke
	gestureDrag
	gestureResize
)

// gesture is the transient record of the pointer interaction in progress.
// It exists only between pointer-down and pointer-up.
type gesture struct {
	kind gestureKind

	// Pointer position at gesture start, canvas coordinates.
	startX, startY float64

	// Previous stroke point.
	lastX, lastY float64

	// Tool captured at stroke start so mid-stroke slider changes don't
	// alter the line being drawn.
	color color.RGBA
	thick int

	// Overlay geometry at gesture start and the grabbed handle.
	startRect geometry.Rect
	handle    overlay.Handle
}

// PointerDown begins a gesture at the given canvas coordinates. On a corner
// handle it starts a resize, inside the overlay a drag; anywhere else any
// pending overlay is flattened and a stroke begins with its starting dot.
func (e *Editor) PointerDown(x, y float64) {
	p := geometry.NewPoint2D(x, y)

	e.mu.Lock()
	flattened := false
	if e.overlay != nil {
		if h := e.overlay.HandleAt(p); h != overlay.HandleNone {
			e.gesture = gesture{
				kind:      gestureResize,
				startX:    x,
				startY:    y,
				startRect: e.overlay.Rect,
				handle:    h,
			}
			e.mu.Unlock()
			return
		}
		if e.overlay.Contains(p) {
			e.gesture = gesture{
				kind:      gestureDrag,
				startX:    x,
				startY:    y,
				startRect: e.overlay.Rect,
			}
			e.mu.Unlock()
			return
		}
		flattened = e.flattenLocked(labelImagePlaced)
	}

	e.gesture = gesture{
		kind:   gestureStroke,
		startX: x,
		startY: y,
		lastX:  x,
		lastY:  y,
		color:  e.session.PenColor(),
		thick:  e.session.PenWidth(),
	}
	raster.DrawLine(e.frame, int(x), int(y), int(x), int(y), e.gesture.color, e.gesture.thick)
	e.mu.Unlock()

	e.session.Emit(app.EventFrameChanged, nil)
	if flattened {
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}

// PointerMove extends the gesture to the given canvas coordinates. Strokes
// append a line segment from the last point; drag and resize recompute the
// overlay from the accumulated delta since gesture start.
func (e *Editor) PointerMove(x, y float64) {
	e.mu.Lock()
	switch e.gesture.kind {
	case gestureStroke:
		raster.DrawLine(e.frame,
			int(e.gesture.lastX), int(e.gesture.lastY), int(x), int(y),
			e.gesture.color, e.gesture.thick)
		e.gesture.lastX = x
		e.gesture.lastY = y

	case gestureDrag:
		// A shortcut-triggered action may have flattened the overlay
		// mid-gesture; the rest of the gesture is void.
		if e.overlay == nil {
			e.gesture = gesture{}
			e.mu.Unlock()
			return
		}
		delta := geometry.NewPoint2D(x-e.gesture.startX, y-e.gesture.startY)
		e.overlay.Drag(e.gesture.startRect.TopLeft(), delta, e.canvasSize())

	case gestureResize:
		if e.overlay == nil {
			e.gesture = gesture{}
			e.mu.Unlock()
			return
		}
		delta := geometry.NewPoint2D(x-e.gesture.startX, y-e.gesture.startY)
		e.overlay.Resize(e.gesture.handle, e.gesture.startRect, delta, e.canvasSize())

	default:
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.session.Emit(app.EventFrameChanged, nil)
}

// PointerUp ends the gesture. A finished stroke commits a snapshot; ending a
// drag or resize leaves the overlay pending. Pointer-leave is reported here
// too, and an up without a matching down does nothing.
func (e *Editor) PointerUp() {
	e.mu.Lock()
	kind := e.gesture.kind
	e.gesture = gesture{}
	if kind == gestureStroke {
		e.commitLocked(labelDrawing)
	}
	e.mu.Unlock()

	if kind == gestureStroke {
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}
