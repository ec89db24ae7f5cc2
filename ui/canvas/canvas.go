// Package canvas provides the interactive drawing surface widget.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"codraw/internal/app"
	"codraw/internal/editor"
	"codraw/internal/raster"
)

// DrawingCanvas displays the editor's canvas and feeds pointer gestures back
// into it. The widget may be stretched to any size; pointer positions are
// mapped to intrinsic canvas pixels per axis.
type DrawingCanvas struct {
	widget.BaseWidget

	editor  *editor.Editor
	session *app.Session

	raster  *fynecanvas.Raster
	content *pointerContent
}

// NewDrawingCanvas creates the drawing surface for the given editor.
func NewDrawingCanvas(session *app.Session, ed *editor.Editor) *DrawingCanvas {
	dc := &DrawingCanvas{
		editor:  ed,
		session: session,
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	cw, ch := ed.Size()
	dc.raster.SetMinSize(fyne.NewSize(float32(cw)/2, float32(ch)/2))

	dc.content = newPointerContent(dc, dc.raster)
	dc.ExtendBaseWidget(dc)

	session.On(app.EventFrameChanged, func(data interface{}) {
		dc.Refresh()
	})

	return dc
}

func (dc *DrawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.content)
}

// draw renders the current frame, the pending overlay, and its selection
// chrome into a raster of the requested pixel size.
func (dc *DrawingCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return output
	}

	frame := dc.editor.Frame()
	o, hasOverlay := dc.editor.Overlay()
	if hasOverlay {
		// Frame is a copy, composing the overlay into it is safe.
		raster.DrawOver(frame, o.Image, o.Rect)
	}

	xdraw.NearestNeighbor.Scale(output, output.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	if hasOverlay {
		dc.drawOverlayChrome(output, o, w, h)
	}
	return output
}

// pointerContent wraps the raster to receive pointer events.
type pointerContent struct {
	widget.BaseWidget
	canvas *DrawingCanvas
	raster *fynecanvas.Raster
}

func newPointerContent(dc *DrawingCanvas, r *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{
		canvas: dc,
		raster: r,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return &pointerContentRenderer{content: pc}
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

// canvasPos maps a widget-space event position to canvas coordinates.
func (pc *pointerContent) canvasPos(pos fyne.Position) (float64, float64) {
	cw, ch := pc.canvas.editor.Size()
	return DisplayToCanvas(pos, pc.Size(), cw, ch)
}

func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := pc.canvasPos(ev.Position)
	pc.canvas.editor.PointerDown(x, y)
}

func (pc *pointerContent) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.canvas.editor.PointerUp()
}

func (pc *pointerContent) Dragged(ev *fyne.DragEvent) {
	x, y := pc.canvasPos(ev.Position)
	pc.canvas.editor.PointerMove(x, y)
}

// DragEnd catches releases that happen outside the widget; a second
// pointer-up after MouseUp is harmless.
func (pc *pointerContent) DragEnd() {
	pc.canvas.editor.PointerUp()
}

func (pc *pointerContent) MouseIn(ev *desktop.MouseEvent) {}

func (pc *pointerContent) MouseMoved(ev *desktop.MouseEvent) {}

// MouseOut ends any gesture in progress: leaving the surface is treated the
// same as lifting the pointer.
func (pc *pointerContent) MouseOut() {
	pc.canvas.editor.PointerUp()
}

type pointerContentRenderer struct {
	content *pointerContent
}

func (r *pointerContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *pointerContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *pointerContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *pointerContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *pointerContentRenderer) Destroy() {}
