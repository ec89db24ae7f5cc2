package panels

import (
	"strings"

	"codraw/internal/app"
	"codraw/internal/editor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PromptBar is the generation strip under the canvas: a prompt entry, the
// Generate button, and a progress indicator while a request is in flight.
// Submitting while a request is pending is allowed; the newer request wins.
type PromptBar struct {
	session   *app.Session
	editor    *editor.Editor
	container fyne.CanvasObject

	promptEntry *widget.Entry
	generateBtn *widget.Button
	progress    *widget.ProgressBarInfinite
}

// NewPromptBar creates a new prompt bar.
func NewPromptBar(session *app.Session, ed *editor.Editor) *PromptBar {
	pb := &PromptBar{
		session: session,
		editor:  ed,
	}

	pb.promptEntry = widget.NewEntry()
	pb.promptEntry.SetPlaceHolder("Describe what to add or change...")
	pb.promptEntry.OnSubmitted = func(string) {
		pb.onGenerate()
	}

	pb.generateBtn = widget.NewButton("Generate", func() {
		pb.onGenerate()
	})

	pb.progress = widget.NewProgressBarInfinite()
	pb.progress.Stop()
	pb.progress.Hide()

	pb.container = container.NewBorder(
		nil, pb.progress,
		nil, pb.generateBtn,
		pb.promptEntry,
	)

	// Register for events
	session.On(app.EventGenerationStarted, func(data interface{}) {
		pb.setBusy(true)
	})
	session.On(app.EventGenerationFinished, func(data interface{}) {
		pb.setBusy(false)
	})

	return pb
}

// Container returns the panel container.
func (pb *PromptBar) Container() fyne.CanvasObject {
	return pb.container
}

// Focus moves keyboard focus to the prompt entry.
func (pb *PromptBar) Focus(w fyne.Window) {
	w.Canvas().Focus(pb.promptEntry)
}

func (pb *PromptBar) onGenerate() {
	prompt := strings.TrimSpace(pb.promptEntry.Text)
	if prompt == "" {
		return
	}
	pb.editor.Generate(prompt)
}

func (pb *PromptBar) setBusy(busy bool) {
	if busy {
		pb.progress.Show()
		pb.progress.Start()
	} else {
		pb.progress.Stop()
		pb.progress.Hide()
	}
}
