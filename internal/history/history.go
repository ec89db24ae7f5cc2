// Package history maintains the linear snapshot history of the canvas.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable full-canvas raster captured at one point in
// history, together with the label of the action that produced it.
type Snapshot struct {
	ID        string
	Label     string
	CreatedAt time.Time
	PNG       []byte
	Width     int
	Height    int
}

// NewSnapshot builds a snapshot with a fresh id and timestamp.
func NewSnapshot(label string, png []byte, width, height int) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now(),
		PNG:       png,
		Width:     width,
		Height:    height,
	}
}

// History is an ordered sequence of snapshots plus a cursor marking the
// current one. It is seeded at construction and never empty. Committing
// while the cursor is not at the end discards everything after the cursor,
// keeping the history linear.
//
// History is a plain data structure; the editor serializes access to it.
type History struct {
	entries []Snapshot
	cursor  int
}

// New creates a history seeded with the given initial snapshot.
func New(seed Snapshot) *History {
	return &History{entries: []Snapshot{seed}}
}

// Commit truncates any entries after the cursor, appends a new snapshot
// built from the arguments, and moves the cursor to it.
func (h *History) Commit(label string, png []byte, width, height int) Snapshot {
	snap := NewSnapshot(label, png, width, height)
	h.entries = append(h.entries[:h.cursor+1], snap)
	h.cursor = len(h.entries) - 1
	return snap
}

// Undo moves the cursor one entry back. It reports whether the cursor moved.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor one entry forward. It reports whether the cursor moved.
func (h *History) Redo() bool {
	if h.cursor == len(h.entries)-1 {
		return false
	}
	h.cursor++
	return true
}

// RevertTo moves the cursor to an arbitrary entry. Callers must pass a valid
// index; an out-of-range index is a programming error and panics.
func (h *History) RevertTo(index int) {
	if index < 0 || index >= len(h.entries) {
		panic(fmt.Sprintf("history: revert index %d out of range [0,%d)", index, len(h.entries)))
	}
	h.cursor = index
}

// Current returns the snapshot at the cursor.
func (h *History) Current() Snapshot {
	return h.entries[h.cursor]
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the snapshot at the given index.
func (h *History) At(index int) Snapshot {
	return h.entries[index]
}

// Entries returns a copy of the snapshot sequence, oldest first.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, len(h.entries))
	copy(out, h.entries)
	return out
}

// CanUndo reports whether an undo would move the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a redo would move the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}
