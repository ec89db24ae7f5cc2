package editor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codraw/internal/app"
	"codraw/internal/raster"
	"codraw/pkg/colorutil"
)

func newTestEditor(t *testing.T, gen Generator) *Editor {
	t.Helper()
	ed, err := New(app.NewSession(), gen, 960, 540)
	require.NoError(t, err)
	return ed
}

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func labels(e *Editor) []string {
	var out []string
	for _, s := range e.Entries() {
		out = append(out, s.Label)
	}
	return out
}

func TestFreshSession(t *testing.T) {
	ed := newTestEditor(t, nil)

	assert.Equal(t, []string{"New canvas"}, labels(ed))
	assert.Equal(t, 0, ed.Cursor())
	assert.False(t, ed.CanUndo())
	assert.False(t, ed.CanRedo())

	frame := ed.Frame()
	assert.Equal(t, 960, frame.Bounds().Dx())
	assert.Equal(t, 540, frame.Bounds().Dy())
	assert.Equal(t, colorutil.White, frame.RGBAAt(480, 270))

	_, ok := ed.Overlay()
	assert.False(t, ok)
}

func TestStrokeCommitsDrawing(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PointerDown(10, 10)
	ed.PointerMove(50, 50)
	ed.PointerUp()

	assert.Equal(t, []string{"New canvas", "Drawing"}, labels(ed))
	assert.Equal(t, 1, ed.Cursor())

	frame := ed.Frame()
	assert.Equal(t, colorutil.Black, frame.RGBAAt(10, 10))
	assert.Equal(t, colorutil.Black, frame.RGBAAt(50, 50))
	assert.Equal(t, colorutil.Black, frame.RGBAAt(30, 30))
}

func TestStrokeUsesSessionTool(t *testing.T) {
	session := app.NewSession()
	ed, err := New(session, nil, 960, 540)
	require.NoError(t, err)

	session.SetPenColor(colorutil.Red)
	session.SetPenWidth(1)

	ed.PointerDown(100, 100)
	ed.PointerUp()

	frame := ed.Frame()
	assert.Equal(t, colorutil.Red, frame.RGBAAt(100, 100))
	assert.Equal(t, colorutil.White, frame.RGBAAt(102, 100))
}

func TestPointerUpWithoutDownIsNoop(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PointerUp()
	ed.PointerMove(50, 50)

	assert.Equal(t, []string{"New canvas"}, labels(ed))
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(50, 50))
}

func TestUndoRedoReloadFrame(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PointerDown(20, 20)
	ed.PointerUp()
	require.Equal(t, colorutil.Black, ed.Frame().RGBAAt(20, 20))

	ed.Undo()
	assert.Equal(t, 0, ed.Cursor())
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(20, 20))
	assert.True(t, ed.CanRedo())

	ed.Redo()
	assert.Equal(t, 1, ed.Cursor())
	assert.Equal(t, colorutil.Black, ed.Frame().RGBAAt(20, 20))
}

func TestCommitAfterUndoTruncatesRedoTail(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PointerDown(10, 10)
	ed.PointerUp()
	ed.PointerDown(30, 30)
	ed.PointerUp()
	require.Equal(t, 3, len(ed.Entries()))

	ed.Undo()
	cursorBefore := ed.Cursor()
	require.Equal(t, 1, cursorBefore)

	ed.PointerDown(60, 60)
	ed.PointerUp()

	assert.Equal(t, cursorBefore+2, len(ed.Entries()))
	assert.Equal(t, cursorBefore+1, ed.Cursor())
	assert.False(t, ed.CanRedo())
}

func TestPlaceImageCreatesCenteredOverlay(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	o, ok := ed.Overlay()
	require.True(t, ok)
	assert.InDelta(t, 96, o.Rect.X, 1e-9)
	assert.InDelta(t, 78, o.Rect.Y, 1e-9)
	assert.InDelta(t, 768, o.Rect.Width, 1e-9)
	assert.InDelta(t, 384, o.Rect.Height, 1e-9)

	// Pending overlay is not history yet.
	assert.Equal(t, []string{"New canvas"}, labels(ed))
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(480, 270))
}

func TestPlaceImageFlattensPreviousOverlay(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PlaceImage(solidImage(800, 400, colorutil.Red))
	ed.PlaceImage(solidImage(100, 50, colorutil.Blue))

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	assert.Equal(t, colorutil.Red, ed.Frame().RGBAAt(480, 78+10))

	o, ok := ed.Overlay()
	require.True(t, ok)
	assert.InDelta(t, 100, o.Rect.Width, 1e-9)
}

func TestFlattenCommitsOverlayOnce(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PlaceImage(solidImage(800, 400, colorutil.Red))
	ed.Flatten()

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	assert.Equal(t, 1, ed.Cursor())
	assert.Equal(t, colorutil.Red, ed.Frame().RGBAAt(480, 270))
	_, ok := ed.Overlay()
	assert.False(t, ok)

	// Without a pending overlay flatten is a no-op.
	ed.Flatten()
	assert.Equal(t, 2, len(ed.Entries()))
}

func TestDragKeepsOverlayPending(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	// Center of the overlay, away from the handles.
	ed.PointerDown(480, 270)
	ed.PointerMove(510, 250)
	ed.PointerUp()

	o, ok := ed.Overlay()
	require.True(t, ok)
	assert.InDelta(t, 126, o.Rect.X, 1e-9)
	assert.InDelta(t, 58, o.Rect.Y, 1e-9)
	assert.Equal(t, []string{"New canvas"}, labels(ed))
}

func TestResizeViaCornerHandle(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	// Bottom-right handle sits on the corner at (864, 462).
	ed.PointerDown(864, 462)
	ed.PointerMove(480, 462)
	ed.PointerUp()

	o, ok := ed.Overlay()
	require.True(t, ok)
	assert.InDelta(t, 96, o.Rect.X, 1e-9)
	assert.InDelta(t, 78, o.Rect.Y, 1e-9)
	assert.InDelta(t, 384, o.Rect.Width, 1e-9)
	assert.InDelta(t, 192, o.Rect.Height, 1e-9)
	assert.Equal(t, []string{"New canvas"}, labels(ed))
}

func TestStrokeOutsideOverlayFlattensFirst(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	ed.PointerDown(10, 10)
	ed.PointerUp()

	assert.Equal(t, []string{"New canvas", "Image placed", "Drawing"}, labels(ed))
	assert.Equal(t, 2, ed.Cursor())
	_, ok := ed.Overlay()
	assert.False(t, ok)
	assert.Equal(t, colorutil.Red, ed.Frame().RGBAAt(480, 270))
}

func TestPlaceDragPlaceScenario(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PlaceImage(solidImage(800, 400, colorutil.Red))
	ed.PointerDown(480, 270)
	ed.PointerMove(500, 280)
	ed.PointerUp()
	ed.Flatten()

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	assert.Equal(t, 1, ed.Cursor())
}

func TestClearCommitsBlankCanvas(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PointerDown(10, 10)
	ed.PointerUp()

	ed.Clear()

	assert.Equal(t, []string{"New canvas", "Drawing", "Canvas cleared"}, labels(ed))
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(10, 10))
}

func TestClearFlattensPendingOverlayFirst(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	ed.Clear()

	assert.Equal(t, []string{"New canvas", "Image placed", "Canvas cleared"}, labels(ed))
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(480, 270))
	_, ok := ed.Overlay()
	assert.False(t, ok)

	// The placement is still reachable one step back.
	ed.Undo()
	assert.Equal(t, colorutil.Red, ed.Frame().RGBAAt(480, 270))
}

func TestUndoFlattensPendingOverlayFirst(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	ed.Undo()

	// Flatten committed "Image placed", then undo stepped back to the blank
	// canvas.
	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	assert.Equal(t, 0, ed.Cursor())
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(480, 270))
	_, ok := ed.Overlay()
	assert.False(t, ok)
}

func TestRevertToReloadsSnapshot(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PointerDown(10, 10)
	ed.PointerUp()
	ed.PointerDown(30, 30)
	ed.PointerUp()

	ed.RevertTo(0)

	assert.Equal(t, 0, ed.Cursor())
	assert.Equal(t, 3, len(ed.Entries()))
	assert.Equal(t, colorutil.White, ed.Frame().RGBAAt(10, 10))

	ed.RevertTo(2)
	assert.Equal(t, colorutil.Black, ed.Frame().RGBAAt(30, 30))
}

func TestRevertToDropsIndexTruncatedByFlatten(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PointerDown(10, 10)
	ed.PointerUp()
	ed.PointerDown(30, 30)
	ed.PointerUp()
	ed.Undo()
	ed.Undo()
	require.Equal(t, 0, ed.Cursor())
	ed.PlaceImage(solidImage(100, 50, colorutil.Red))

	// Flattening commits at the cursor, truncating the redo tail the index
	// pointed into.
	ed.RevertTo(2)

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
	assert.Equal(t, 1, ed.Cursor())
}

func TestExportFlattensAndEncodes(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.PlaceImage(solidImage(800, 400, colorutil.Red))

	png, err := ed.Export()
	require.NoError(t, err)

	img, err := raster.DecodeBytes(png)
	require.NoError(t, err)
	rgba := raster.ToRGBA(img)
	assert.Equal(t, colorutil.Red, rgba.RGBAAt(480, 270))
	assert.Equal(t, colorutil.White, rgba.RGBAAt(10, 10))

	assert.Equal(t, []string{"New canvas", "Image placed"}, labels(ed))
}

func TestStrokeCoordinatesMayLeaveCanvas(t *testing.T) {
	ed := newTestEditor(t, nil)

	ed.PointerDown(950, 530)
	ed.PointerMove(1100, 600)
	ed.PointerUp()

	assert.Equal(t, []string{"New canvas", "Drawing"}, labels(ed))
	assert.Equal(t, colorutil.Black, ed.Frame().RGBAAt(950, 530))
}
