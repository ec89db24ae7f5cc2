// Package panels provides UI panels for the application.
package panels

import (
	"codraw/internal/app"
	"codraw/internal/editor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel groups the drawing tools and the snapshot history next to the canvas.
type SidePanel struct {
	session   *app.Session
	editor    *editor.Editor
	container fyne.CanvasObject

	toolsPanel   *ToolsPanel
	historyPanel *HistoryPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(session *app.Session, ed *editor.Editor, models []string) *SidePanel {
	sp := &SidePanel{
		session: session,
		editor:  ed,
	}

	sp.toolsPanel = NewToolsPanel(session, models)
	sp.historyPanel = NewHistoryPanel(session, ed)

	// Tools stay at their natural height, the history list takes the rest.
	sp.container = container.NewBorder(
		sp.toolsPanel.Container(),
		nil, nil, nil,
		sp.historyPanel.Container(),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.toolsPanel.SetWindow(w)
}
