//go:build !nogui
// +build !nogui

// Package gui is the desktop front-end. It mirrors uploader state into
// fyne widgets and forwards picks, drops, and mode clicks back to it.
package gui

import (
	"pdfsmaller/internal/config"
	"pdfsmaller/internal/uploader"
)

// StartGUI builds the uploader and the window and blocks until the window
// closes.
func StartGUI(cfg *config.Config) error {
	var a *App

	// The dialog opener needs the window, which needs the uploader; the
	// closure resolves the cycle.
	up := uploader.New(cfg, uploader.WithDialogOpener(func() {
		if a != nil {
			a.ShowOpenDialog()
		}
	}))
	a = NewApp(cfg, up)
	up.Init()

	a.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
