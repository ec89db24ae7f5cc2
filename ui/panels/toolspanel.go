package panels

import (
	"fmt"
	"image/color"

	"codraw/internal/app"
	"codraw/internal/config"
	"codraw/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// maxPenWidth is the largest stroke thickness offered by the width slider.
const maxPenWidth = 24

// ToolsPanel holds the pen controls and the generation model selector.
type ToolsPanel struct {
	session   *app.Session
	window    fyne.Window
	container fyne.CanvasObject

	colorPreview *fynecanvas.Rectangle
	widthLabel   *widget.Label
	widthSlider  *widget.Slider
	modelSelect  *widget.Select
}

// NewToolsPanel creates a new tools panel.
func NewToolsPanel(session *app.Session, models []string) *ToolsPanel {
	tp := &ToolsPanel{
		session: session,
	}

	tp.colorPreview = fynecanvas.NewRectangle(session.PenColor())
	tp.colorPreview.SetMinSize(fyne.NewSize(0, 24))

	swatches := make([]fyne.CanvasObject, 0, len(colorutil.Palette))
	for _, c := range colorutil.Palette {
		picked := c
		swatches = append(swatches, newColorSwatch(picked, func() {
			session.SetPenColor(picked)
		}))
	}

	customButton := widget.NewButton("Custom...", func() {
		tp.showColorPicker()
	})

	tp.widthLabel = widget.NewLabel(fmt.Sprintf("Width: %d px", session.PenWidth()))
	tp.widthSlider = widget.NewSlider(1, maxPenWidth)
	tp.widthSlider.Step = 1
	tp.widthSlider.Value = float64(session.PenWidth())
	tp.widthSlider.OnChanged = func(v float64) {
		session.SetPenWidth(int(v))
	}

	tp.modelSelect = widget.NewSelect(models, func(selected string) {
		session.SetModel(selected)
	})
	if session.Model() != "" {
		tp.modelSelect.SetSelected(session.Model())
	}

	// Layout
	tp.container = container.NewVBox(
		widget.NewCard("Pen", "", container.NewVBox(
			tp.colorPreview,
			container.NewGridWithColumns(4, swatches...),
			customButton,
			tp.widthLabel,
			tp.widthSlider,
		)),
		widget.NewCard("Model", "", container.NewVBox(
			tp.modelSelect,
		)),
	)

	// Register for events
	session.On(app.EventToolChanged, func(data interface{}) {
		tp.syncTool()
	})
	session.On(app.EventModelChanged, func(data interface{}) {
		if model, ok := data.(string); ok && tp.modelSelect.Selected != model {
			tp.modelSelect.SetSelected(model)
		}
	})
	session.On(app.EventConfigReloaded, func(data interface{}) {
		if cfg, ok := data.(*config.Config); ok {
			tp.setModelOptions(cfg.Generation.Models)
		}
	})

	return tp
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

// SetWindow sets the parent window for dialogs.
func (tp *ToolsPanel) SetWindow(w fyne.Window) {
	tp.window = w
}

// showColorPicker opens the full color picker for pen colors outside the palette.
func (tp *ToolsPanel) showColorPicker() {
	if tp.window == nil {
		return
	}

	picker := dialog.NewColorPicker("Pen Color", "", func(c color.Color) {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		// The pen draws opaque pixels.
		rgba.A = 255
		tp.session.SetPenColor(rgba)
	}, tp.window)
	picker.Advanced = true
	picker.Show()
}

// syncTool updates the pen controls from the session.
func (tp *ToolsPanel) syncTool() {
	tp.colorPreview.FillColor = tp.session.PenColor()
	tp.colorPreview.Refresh()

	width := tp.session.PenWidth()
	tp.widthLabel.SetText(fmt.Sprintf("Width: %d px", width))
	if int(tp.widthSlider.Value) != width {
		tp.widthSlider.SetValue(float64(width))
	}
}

// setModelOptions replaces the selector options, keeping the current model
// selected when the new list still offers it.
func (tp *ToolsPanel) setModelOptions(models []string) {
	if len(models) == 0 {
		return
	}

	tp.modelSelect.Options = models

	current := tp.session.Model()
	for _, m := range models {
		if m == current {
			tp.modelSelect.Refresh()
			return
		}
	}
	tp.modelSelect.SetSelected(models[0])
}

// colorSwatch is a tappable square filled with one preset pen color.
type colorSwatch struct {
	widget.BaseWidget
	rect  *fynecanvas.Rectangle
	onTap func()
}

func newColorSwatch(c color.RGBA, onTap func()) *colorSwatch {
	s := &colorSwatch{
		rect:  fynecanvas.NewRectangle(c),
		onTap: onTap,
	}
	s.rect.SetMinSize(fyne.NewSize(24, 24))
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

// Tapped implements fyne.Tappable.
func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}
