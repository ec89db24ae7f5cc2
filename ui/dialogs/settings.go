// Package dialogs provides application dialogs.
package dialogs

import (
	"strings"

	"codraw/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SettingsDialog edits the generation service settings.
type SettingsDialog struct {
	gen    config.GenerationConfig
	window fyne.Window

	endpointEntry *widget.Entry
	apiKeyEntry   *widget.Entry
	modelSelect   *widget.Select

	onSave func(config.GenerationConfig)
}

// NewSettingsDialog creates a settings dialog seeded with the current values.
// onSave receives the updated settings when the user confirms.
func NewSettingsDialog(gen config.GenerationConfig, window fyne.Window, onSave func(config.GenerationConfig)) *SettingsDialog {
	return &SettingsDialog{
		gen:    gen,
		window: window,
		onSave: onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save {
				d.applyChanges()
				if d.onSave != nil {
					d.onSave(d.gen)
				}
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(460, 240))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	d.endpointEntry = widget.NewEntry()
	d.endpointEntry.SetText(d.gen.Endpoint)

	d.apiKeyEntry = widget.NewPasswordEntry()
	d.apiKeyEntry.SetText(d.gen.APIKey)

	d.modelSelect = widget.NewSelect(d.gen.Models, nil)
	if d.gen.Model != "" {
		d.modelSelect.SetSelected(d.gen.Model)
	}

	return widget.NewForm(
		widget.NewFormItem("Endpoint", d.endpointEntry),
		widget.NewFormItem("API Key", d.apiKeyEntry),
		widget.NewFormItem("Model", d.modelSelect),
	)
}

func (d *SettingsDialog) applyChanges() {
	if endpoint := strings.TrimSpace(d.endpointEntry.Text); endpoint != "" {
		d.gen.Endpoint = endpoint
	}
	d.gen.APIKey = strings.TrimSpace(d.apiKeyEntry.Text)
	if d.modelSelect.Selected != "" {
		d.gen.Model = d.modelSelect.Selected
	}
}
