// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"codraw/internal/app"
	"codraw/internal/config"
	"codraw/internal/editor"
	"codraw/internal/genai"
	"codraw/internal/raster"
	"codraw/internal/version"
	"codraw/ui/canvas"
	"codraw/ui/dialogs"
	"codraw/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir  = "lastDirectory"
	prefKeyEndpoint = "generationEndpoint"
	prefKeyAPIKey   = "generationAPIKey"
	prefKeyModel    = "generationModel"
)

var (
	shortcutUndo = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}
	shortcutRedo = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *app.Session
	editor  *editor.Editor
	cfg     *config.Config
	logger  *slog.Logger

	canvas    *canvas.DrawingCanvas
	sidePanel *panels.SidePanel
	promptBar *panels.PromptBar
	statusBar *widget.Label

	// Actions that follow the history cursor
	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
	undoBtn  *widget.Button
	redoBtn  *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, session *app.Session, ed *editor.Editor, cfg *config.Config, logger *slog.Logger) *MainWindow {
	win := fyneApp.NewWindow("CoDraw")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		editor:  ed,
		cfg:     cfg,
		logger:  logger,
	}

	// Settings saved from the settings dialog override the configuration
	// file, so restore them before any widget reads cfg.
	mw.restoreSettings()

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.SetOnDropped(mw.onDropped)

	mw.applyGeneration()
	mw.syncHistoryActions()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDrawingCanvas(mw.session, mw.editor)

	mw.sidePanel = panels.NewSidePanel(mw.session, mw.editor, mw.cfg.Generation.Models)
	mw.sidePanel.SetWindow(mw.Window)

	mw.promptBar = panels.NewPromptBar(mw.session, mw.editor)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	// Canvas area with the toolbar on top and the prompt bar below
	canvasArea := container.NewBorder(
		toolbar,                  // top
		mw.promptBar.Container(), // bottom
		nil,                      // left
		nil,                      // right
		container.NewPadded(mw.canvas),
	)

	// Main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 760))
}

// createToolbar creates the toolbar with the common canvas actions.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.undoBtn = widget.NewButton("Undo", mw.onUndo)
	mw.redoBtn = widget.NewButton("Redo", mw.onRedo)
	placeBtn := widget.NewButton("Place", mw.onPlaceImage)
	clearBtn := widget.NewButton("Clear", mw.onClearCanvas)

	return container.NewHBox(
		mw.undoBtn,
		mw.redoBtn,
		widget.NewSeparator(),
		placeBtn,
		clearBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	// Edit menu
	mw.undoItem = fyne.NewMenuItem("Undo", mw.onUndo)
	mw.undoItem.Shortcut = shortcutUndo
	mw.redoItem = fyne.NewMenuItem("Redo", mw.onRedo)
	mw.redoItem.Shortcut = shortcutRedo

	editMenu := fyne.NewMenu("Edit",
		mw.undoItem,
		mw.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Place Image", mw.onPlaceImage),
		fyne.NewMenuItem("Clear Canvas", mw.onClearCanvas),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupShortcuts registers the keyboard shortcuts on the window canvas.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().AddShortcut(shortcutUndo, func(fyne.Shortcut) { mw.onUndo() })
	mw.Canvas().AddShortcut(shortcutRedo, func(fyne.Shortcut) { mw.onRedo() })
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventStatusChanged, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.updateStatus(text)
		}
	})

	mw.session.On(app.EventHistoryChanged, func(data interface{}) {
		mw.syncHistoryActions()
	})

	mw.session.On(app.EventGenerationStarted, func(data interface{}) {
		mw.updateStatus("Generating...")
	})

	mw.session.On(app.EventGenerationFinished, func(data interface{}) {
		mw.updateStatus("Ready")
	})

	mw.session.On(app.EventGenerationFailed, func(data interface{}) {
		msg, _ := data.(string)
		if msg == "" {
			msg = "generation failed"
		}
		mw.updateStatus("Generation failed")
		dialog.ShowError(errors.New(msg), mw.Window)
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// syncHistoryActions enables the undo and redo actions according to the
// history cursor.
func (mw *MainWindow) syncHistoryActions() {
	canUndo := mw.editor.CanUndo()
	canRedo := mw.editor.CanRedo()

	if canUndo {
		mw.undoBtn.Enable()
	} else {
		mw.undoBtn.Disable()
	}
	if canRedo {
		mw.redoBtn.Enable()
	} else {
		mw.redoBtn.Disable()
	}

	mw.undoItem.Disabled = !canUndo
	mw.redoItem.Disabled = !canRedo
	if menu := mw.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// restoreSettings overlays generation settings saved from the settings
// dialog onto the loaded configuration.
func (mw *MainWindow) restoreSettings() {
	prefs := mw.app.Preferences()
	if endpoint := prefs.String(prefKeyEndpoint); endpoint != "" {
		mw.cfg.Generation.Endpoint = endpoint
	}
	if key := prefs.String(prefKeyAPIKey); key != "" {
		mw.cfg.Generation.APIKey = key
	}
	if model := prefs.String(prefKeyModel); model != "" {
		mw.cfg.Generation.Model = model
	}
}

// applyGeneration pushes the current generation settings into the running
// session and editor.
func (mw *MainWindow) applyGeneration() {
	gen := mw.cfg.Generation
	mw.session.SetModel(gen.Model)
	mw.editor.SetGenerator(genai.NewClient(gen.Endpoint, gen.APIKey, gen.Timeout(), mw.logger))
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// placeImageFromFile decodes the image at path and hands it to the editor
// as the pending overlay. A file that cannot be read or decoded changes
// nothing and is reported on the status bar only.
func (mw *MainWindow) placeImageFromFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		mw.logger.Warn("could not open image", "path", path, "error", err)
		mw.updateStatus("Could not open " + filepath.Base(path))
		return
	}
	defer f.Close()

	img, err := raster.Decode(f)
	if err != nil {
		mw.logger.Warn("could not decode image", "path", path, "error", err)
		mw.updateStatus("Could not read " + filepath.Base(path))
		return
	}

	mw.saveLastDir(path)
	mw.editor.PlaceImage(img)
	mw.updateStatus("Image loaded: " + filepath.Base(path))
}

// onDropped places the first supported image file dropped onto the window.
func (mw *MainWindow) onDropped(_ fyne.Position, uris []fyne.URI) {
	for _, uri := range uris {
		path := uri.Path()
		if !raster.IsSupportedFormat(path) {
			mw.updateStatus("Unsupported image format: " + filepath.Base(path))
			continue
		}
		mw.placeImageFromFile(path)
		return
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.placeImageFromFile(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(raster.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		mw.saveLastDir(path)

		data, err := mw.editor.Export()
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("canvas.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	mw.editor.Undo()
}

func (mw *MainWindow) onRedo() {
	mw.editor.Redo()
}

func (mw *MainWindow) onPlaceImage() {
	mw.editor.Flatten()
}

func (mw *MainWindow) onClearCanvas() {
	mw.editor.Clear()
}

func (mw *MainWindow) onSettings() {
	dlg := dialogs.NewSettingsDialog(mw.cfg.Generation, mw.Window, mw.applySettings)
	dlg.Show()
}

// applySettings persists generation settings changed in the settings dialog
// and applies them to the running session and editor.
func (mw *MainWindow) applySettings(gen config.GenerationConfig) {
	mw.cfg.Generation = gen

	prefs := mw.app.Preferences()
	prefs.SetString(prefKeyEndpoint, gen.Endpoint)
	prefs.SetString(prefKeyAPIKey, gen.APIKey)
	prefs.SetString(prefKeyModel, gen.Model)

	mw.applyGeneration()
	mw.updateStatus("Settings updated")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About CoDraw",
		fmt.Sprintf("CoDraw v%s\n\n"+
			"A drawing canvas with generative image editing.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
