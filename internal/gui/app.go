//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"pdfsmaller/internal/announce"
	"pdfsmaller/internal/config"
	"pdfsmaller/internal/events"
	"pdfsmaller/internal/log"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/types"
)

// App is the GUI application
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     *config.Config
	up      *uploader.Uploader

	modeSelect *widget.RadioGroup
	fileList   *widget.List
	totalLabel *widget.Label
	statusBar  *widget.Label

	files []*types.FileRef
}

// NewApp creates the GUI application around an initialized uploader.
func NewApp(cfg *config.Config, up *uploader.Uploader) *App {
	return NewAppWith(app.NewWithID("io.github.pdfsmaller"), cfg, up)
}

// NewAppWith builds the application on an existing fyne app, letting tests
// supply the headless test driver.
func NewAppWith(fyneApp fyne.App, cfg *config.Config, up *uploader.Uploader) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		up:      up,
	}
	a.window = fyneApp.NewWindow("PDFSmaller")
	a.window.Resize(fyne.NewSize(520, 420))
	a.buildUI()

	up.Events().SubscribeAll(func(ev events.Event) {
		a.refresh(ev)
	})
	announce.Polite().Subscribe(func(msg announce.Message) {
		a.statusBar.SetText(msg.Text)
	})
	announce.Assertive().Subscribe(func(msg announce.Message) {
		a.statusBar.SetText(msg.Text)
	})

	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.handleDrop(uris)
	})

	return a
}

func (a *App) buildUI() {
	single := types.ConfigFor(types.Single).Label
	batch := types.ConfigFor(types.Batch).Label

	a.modeSelect = widget.NewRadioGroup([]string{single, batch}, func(selected string) {
		var want types.Mode
		switch selected {
		case single:
			want = types.Single
		case batch:
			want = types.Batch
		default:
			return
		}
		if want != a.up.Mode() && !a.up.SetModeTriggered(want, types.TriggerClick) {
			// Rejected switch: snap the control back.
			a.syncModeSelect()
		}
	})
	a.modeSelect.Horizontal = true
	a.syncModeSelect()

	a.fileList = widget.NewList(
		func() int { return len(a.files) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			f := a.files[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s (%s)", f.Name, humanize.IBytes(uint64(f.Size))))
		},
	)
	a.totalLabel = widget.NewLabel("No files yet")
	a.statusBar = widget.NewLabel("")

	addBtn := widget.NewButton("Add Files", func() { a.up.OpenFileDialog() })
	resetBtn := widget.NewButton("Reset", func() { a.up.Reset() })

	top := container.NewVBox(
		widget.NewLabelWithStyle("Upload mode", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.modeSelect,
		container.NewHBox(addBtn, resetBtn),
	)
	bottom := container.NewVBox(a.totalLabel, a.statusBar)

	a.window.SetContent(container.NewBorder(top, bottom, nil, nil, a.fileList))
}

// ShowOpenDialog presents the file picker. Fyne has no native multi-open;
// in batch mode repeated picking appends, which matches the merge
// behavior.
func (a *App) ShowOpenDialog() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		a.selectPath(path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	fd.Show()
}

func (a *App) selectPath(path string) {
	ref, err := types.FileRefFromPath(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.up.SelectFiles(context.Background(), []*types.FileRef{ref})
}

func (a *App) handleDrop(uris []fyne.URI) {
	refs := make([]*types.FileRef, 0, len(uris))
	for _, uri := range uris {
		ref, err := types.FileRefFromPath(uri.Path())
		if err != nil {
			log.LogWithFields(log.F("file", uri.Path()), log.F("error", err)).Warn("Dropped file unreadable")
			continue
		}
		refs = append(refs, ref)
	}

	a.up.DragEnter(len(refs))
	a.up.Drop(context.Background(), refs)
}

func (a *App) syncModeSelect() {
	a.modeSelect.SetSelected(types.ConfigFor(a.up.Mode()).Label)
}

// refresh pulls uploader state back into the widgets after each event.
func (a *App) refresh(ev events.Event) {
	snap := a.up.Snapshot()
	a.files = snap.Files

	a.syncModeSelect()
	if snap.ToggleDisabled {
		a.modeSelect.Disable()
	} else {
		a.modeSelect.Enable()
	}

	if len(a.files) == 0 {
		a.totalLabel.SetText("No files yet")
	} else {
		a.totalLabel.SetText(fmt.Sprintf("%d file(s), %s total",
			len(a.files), humanize.IBytes(uint64(types.TotalSize(a.files)))))
	}
	if ev.Name == events.ValidationError {
		a.statusBar.SetText(snap.Error)
	}
	a.fileList.Refresh()
}

// Run shows the window and blocks until it closes.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Window exposes the main window for tests.
func (a *App) Window() fyne.Window {
	return a.window
}
