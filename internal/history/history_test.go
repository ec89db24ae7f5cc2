package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory() *History {
	return New(NewSnapshot("New canvas", []byte("blank"), 960, 540))
}

func TestNewSeedsOneEntry(t *testing.T) {
	h := newTestHistory()

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, "New canvas", h.Current().Label)
	assert.NotEmpty(t, h.Current().ID)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestCommitAdvancesCursor(t *testing.T) {
	h := newTestHistory()

	snap := h.Commit("Drawing", []byte("stroke"), 960, 540)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.Equal(t, snap.ID, h.Current().ID)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := newTestHistory()
	first := h.Commit("Drawing", []byte("a"), 960, 540)
	second := h.Commit("Drawing", []byte("b"), 960, 540)

	require.True(t, h.Undo())
	assert.Equal(t, first.ID, h.Current().ID)

	require.True(t, h.Redo())
	assert.Equal(t, second.ID, h.Current().ID, "redo after undo restores the identical snapshot")
	assert.Equal(t, []byte("b"), h.Current().PNG)
}

func TestUndoAtStartIsNoop(t *testing.T) {
	h := newTestHistory()

	assert.False(t, h.Undo())
	assert.Equal(t, 0, h.Cursor())
}

func TestRedoAtEndIsNoop(t *testing.T) {
	h := newTestHistory()
	h.Commit("Drawing", []byte("a"), 960, 540)

	assert.False(t, h.Redo())
	assert.Equal(t, 1, h.Cursor())
}

func TestCommitAfterUndoTruncates(t *testing.T) {
	h := newTestHistory()
	h.Commit("Drawing", []byte("a"), 960, 540)
	h.Commit("Drawing", []byte("b"), 960, 540)
	h.Commit("Drawing", []byte("c"), 960, 540)

	h.Undo()
	h.Undo()
	cursorBefore := h.Cursor()
	require.Equal(t, 1, cursorBefore)

	h.Commit("Image placed", []byte("d"), 960, 540)

	assert.Equal(t, cursorBefore+2, h.Len(), "entries after the old cursor are discarded")
	assert.Equal(t, cursorBefore+1, h.Cursor())
	assert.Equal(t, "Image placed", h.Current().Label)
	assert.False(t, h.CanRedo(), "discarded entries are unreachable")
}

func TestRevertTo(t *testing.T) {
	h := newTestHistory()
	h.Commit("Drawing", []byte("a"), 960, 540)
	h.Commit("Drawing", []byte("b"), 960, 540)

	h.RevertTo(0)
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, "New canvas", h.Current().Label)

	h.RevertTo(2)
	assert.Equal(t, 2, h.Cursor())
}

func TestRevertToPanicsOnInvalidIndex(t *testing.T) {
	h := newTestHistory()
	h.Commit("Drawing", []byte("a"), 960, 540)

	assert.Panics(t, func() { h.RevertTo(-1) })
	assert.Panics(t, func() { h.RevertTo(2) })
}

func TestCursorAlwaysInRange(t *testing.T) {
	h := newTestHistory()

	ops := []func(){
		func() { h.Commit("Drawing", []byte("x"), 960, 540) },
		func() { h.Undo() },
		func() { h.Undo() },
		func() { h.Redo() },
		func() { h.Commit("Drawing", []byte("y"), 960, 540) },
		func() { h.Redo() },
		func() { h.Undo() },
		func() { h.Commit("Drawing", []byte("z"), 960, 540) },
	}
	for i, op := range ops {
		op()
		require.GreaterOrEqual(t, h.Cursor(), 0, "op %d", i)
		require.Less(t, h.Cursor(), h.Len(), "op %d", i)
		require.GreaterOrEqual(t, h.Len(), 1, "op %d", i)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	h := newTestHistory()
	h.Commit("Drawing", []byte("a"), 960, 540)

	entries := h.Entries()
	require.Len(t, entries, 2)
	entries[0] = Snapshot{}

	assert.Equal(t, "New canvas", h.At(0).Label, "mutating the copy must not affect history")
}

func TestSnapshotIDsAreUnique(t *testing.T) {
	h := newTestHistory()
	seen := map[string]bool{h.Current().ID: true}
	for i := 0; i < 20; i++ {
		snap := h.Commit("Drawing", nil, 960, 540)
		assert.False(t, seen[snap.ID], "duplicate id %s", snap.ID)
		seen[snap.ID] = true
	}
}
