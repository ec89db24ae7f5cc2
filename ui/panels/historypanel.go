package panels

import (
	"fmt"

	"codraw/internal/app"
	"codraw/internal/editor"
	"codraw/internal/history"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// HistoryPanel lists the canvas snapshots and jumps between them on tap.
type HistoryPanel struct {
	session   *app.Session
	editor    *editor.Editor
	container fyne.CanvasObject

	list *widget.List

	// Local copy backing the list; refreshed on every history change.
	entries []history.Snapshot
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel(session *app.Session, ed *editor.Editor) *HistoryPanel {
	hp := &HistoryPanel{
		session: session,
		editor:  ed,
		entries: ed.Entries(),
	}

	hp.list = widget.NewList(
		func() int {
			return len(hp.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Snapshot")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(hp.entries) {
				return
			}
			snap := hp.entries[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s",
				snap.CreatedAt.Format("15:04:05"), shortLabel(snap.Label)))
		},
	)

	hp.list.OnSelected = func(id widget.ListItemID) {
		hp.editor.RevertTo(int(id))
	}

	hp.container = widget.NewCard("History", "", hp.list)

	// Register for events
	session.On(app.EventHistoryChanged, func(data interface{}) {
		hp.reload()
	})

	hp.syncSelection()

	return hp
}

// Container returns the panel container.
func (hp *HistoryPanel) Container() fyne.CanvasObject {
	return hp.container
}

// reload refreshes the list from the editor and re-selects the cursor row.
func (hp *HistoryPanel) reload() {
	hp.entries = hp.editor.Entries()
	hp.list.Refresh()
	hp.syncSelection()
}

// syncSelection highlights the row the editor cursor points at. Select is a
// no-op when the row is already selected, so this does not loop through
// OnSelected back into the editor.
func (hp *HistoryPanel) syncSelection() {
	hp.list.Select(widget.ListItemID(hp.editor.Cursor()))
}

// shortLabel trims long labels (generation prompts) to one list row.
func shortLabel(label string) string {
	const max = 48
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-3]) + "..."
}
