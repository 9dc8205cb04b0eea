package fyne

import (
	"log/slog"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// FolderDialog is a helper for creating folder open dialogs.
type FolderDialog struct {
	window   fyneapp.Window
	callback func(string)
	logger   *slog.Logger
}

// NewFolderDialog creates a new folder dialog.
func NewFolderDialog(window fyneapp.Window, callback func(string), logger *slog.Logger) *FolderDialog {
	return &FolderDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the folder dialog.
func (d *FolderDialog) Show() {
	dialog.ShowFolderOpen(d.onChosen, d.window)
}

// onChosen forwards the chosen folder to the callback.
func (d *FolderDialog) onChosen(uri fyneapp.ListableURI, err error) {
	if err != nil {
		d.logger.Error("folder dialog error", slog.Any("error", err))
		return
	}
	if uri == nil {
		return // User cancelled
	}

	if d.callback != nil {
		d.callback(uri.Path())
	}
}

// ShowError displays err in a dialog attached to window.
func ShowError(window fyneapp.Window, err error) {
	dialog.ShowError(err, window)
}
