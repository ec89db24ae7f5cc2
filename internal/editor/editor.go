// Package editor owns the drawing surface state: the working frame, the
// pending overlay, the pointer gesture machine, and the commit pipeline
// that records snapshots into history.
package editor

import (
	"fmt"
	"image"
	"log"
	"sync"

	"codraw/internal/app"
	"codraw/internal/history"
	"codraw/internal/overlay"
	"codraw/internal/raster"
	"codraw/pkg/geometry"
)

// Snapshot labels for actions that are not prompts.
const (
	labelNewCanvas   = "New canvas"
	labelDrawing     = "Drawing"
	labelImagePlaced = "Image placed"
	labelCleared     = "Canvas cleared"
)

// Editor serializes every canvas mutation behind one mutex. Fyne delivers
// pointer and menu events on its event goroutine while generation results
// arrive on their own goroutines; the mutex makes each action atomic.
// Events are emitted only after the lock is released so listeners may call
// back in.
type Editor struct {
	mu sync.Mutex

	session *app.Session
	gen     Generator

	width  int
	height int

	history *history.History
	frame   *image.RGBA
	overlay *overlay.Overlay

	gesture gesture
	genSeq  uint64
}

// New creates an editor with a white canvas of the given size, seeded as the
// first history entry.
func New(session *app.Session, gen Generator, width, height int) (*Editor, error) {
	frame := raster.NewCanvas(width, height)
	png, err := raster.EncodePNG(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initial canvas: %w", err)
	}

	return &Editor{
		session: session,
		gen:     gen,
		width:   width,
		height:  height,
		history: history.New(history.NewSnapshot(labelNewCanvas, png, width, height)),
		frame:   frame,
	}, nil
}

// Size returns the intrinsic canvas size in pixels.
func (e *Editor) Size() (int, int) {
	return e.width, e.height
}

// Frame returns a copy of the working raster. The copy is safe to read while
// the editor keeps mutating its own frame.
func (e *Editor) Frame() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return raster.Clone(e.frame)
}

// Overlay returns a copy of the pending overlay state, if any.
func (e *Editor) Overlay() (overlay.Overlay, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay == nil {
		return overlay.Overlay{}, false
	}
	return *e.overlay, true
}

// Entries returns a copy of the history entries for display.
func (e *Editor) Entries() []history.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Entries()
}

// Cursor returns the index of the current history entry.
func (e *Editor) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Cursor()
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// PlaceImage makes img the pending overlay, sized and centered on the
// canvas. A previously pending overlay is flattened first.
func (e *Editor) PlaceImage(img image.Image) {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	e.overlay = overlay.Place(img, e.canvasSize())
	e.mu.Unlock()

	e.session.Emit(app.EventFrameChanged, nil)
	if flattened {
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}

// Flatten merges the pending overlay into the canvas and commits the result.
// Without a pending overlay it does nothing.
func (e *Editor) Flatten() {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	e.mu.Unlock()

	if flattened {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
		e.session.Emit(app.EventStatusChanged, labelImagePlaced)
	}
}

// Clear flattens any pending overlay, then commits a blank canvas.
func (e *Editor) Clear() {
	e.mu.Lock()
	e.flattenLocked(labelImagePlaced)
	e.frame = raster.NewCanvas(e.width, e.height)
	e.commitLocked(labelCleared)
	e.mu.Unlock()

	e.session.Emit(app.EventFrameChanged, nil)
	e.session.Emit(app.EventHistoryChanged, nil)
}

// Undo flattens any pending overlay, then steps the history cursor back.
func (e *Editor) Undo() {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	moved := e.history.Undo()
	if moved {
		e.reloadFrameLocked()
	}
	e.mu.Unlock()

	if flattened || moved {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}

// Redo flattens any pending overlay, then steps the history cursor forward.
// Flattening commits, which truncates the redo tail, so with a pending
// overlay this amounts to placing it.
func (e *Editor) Redo() {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	moved := e.history.Redo()
	if moved {
		e.reloadFrameLocked()
	}
	e.mu.Unlock()

	if flattened || moved {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}

// RevertTo flattens any pending overlay, then jumps the cursor to index.
// Flattening commits, which can truncate entries past the old cursor; an
// index that no longer exists afterwards is dropped. A negative index is a
// bug and panics in the history layer.
func (e *Editor) RevertTo(index int) {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	moved := false
	if index < e.history.Len() {
		e.history.RevertTo(index)
		e.reloadFrameLocked()
		moved = true
	} else {
		log.Printf("revert target %d was truncated by flatten, ignoring", index)
	}
	e.mu.Unlock()

	if flattened || moved {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
	}
}

// Export flattens any pending overlay and returns the canvas as encoded PNG.
func (e *Editor) Export() ([]byte, error) {
	e.mu.Lock()
	flattened := e.flattenLocked(labelImagePlaced)
	png, err := raster.EncodePNG(e.frame)
	e.mu.Unlock()

	if flattened {
		e.session.Emit(app.EventFrameChanged, nil)
		e.session.Emit(app.EventHistoryChanged, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode canvas: %w", err)
	}
	return png, nil
}

// flattenLocked draws the pending overlay into the frame, commits the result
// and clears the overlay. It reports whether anything happened. Callers hold
// the mutex and emit events after unlocking.
func (e *Editor) flattenLocked(label string) bool {
	if e.overlay == nil {
		return false
	}
	raster.DrawOver(e.frame, e.overlay.Image, e.overlay.Rect)
	e.overlay = nil
	e.commitLocked(label)
	return true
}

// commitLocked encodes the frame and appends it to history.
func (e *Editor) commitLocked(label string) {
	png, err := raster.EncodePNG(e.frame)
	if err != nil {
		log.Printf("failed to encode snapshot %q: %v", label, err)
		return
	}
	e.history.Commit(label, png, e.width, e.height)
}

// reloadFrameLocked replaces the frame with the current history snapshot.
func (e *Editor) reloadFrameLocked() {
	snap := e.history.Current()
	img, err := raster.DecodeBytes(snap.PNG)
	if err != nil {
		log.Printf("failed to decode snapshot %q: %v", snap.Label, err)
		return
	}
	e.frame = raster.ToRGBA(img)
}

func (e *Editor) canvasSize() geometry.Size {
	return geometry.NewSize(float64(e.width), float64(e.height))
}
