//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsmaller/internal/config"
	"pdfsmaller/internal/prefs"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/testutils"
	"pdfsmaller/pkg/types"
)

func newTestApp(t *testing.T) (*App, *uploader.Uploader) {
	t.Helper()

	cfg := config.New()
	up := uploader.New(cfg,
		uploader.WithStore(prefs.NewStoreWith(testutils.NewMapStore())),
		uploader.WithTransitionWindow(0))
	a := NewAppWith(test.NewApp(), cfg, up)
	up.Init()
	return a, up
}

func TestModeSelectFollowsUploader(t *testing.T) {
	a, up := newTestApp(t)

	assert.Equal(t, "Single file", a.modeSelect.Selected)

	require.True(t, up.SetMode(types.Batch))
	assert.Equal(t, "Batch", a.modeSelect.Selected)
}

func TestModeSelectDrivesUploader(t *testing.T) {
	a, up := newTestApp(t)

	a.modeSelect.SetSelected("Batch")
	assert.Equal(t, types.Batch, up.Mode())

	a.modeSelect.SetSelected("Single file")
	assert.Equal(t, types.Single, up.Mode())
}

func TestFileListShowsSelection(t *testing.T) {
	a, up := newTestApp(t)

	f := types.NewFileRef("report.pdf", 2048, "application/pdf", nil)
	require.True(t, up.SelectFiles(context.Background(), []*types.FileRef{f}))

	require.Len(t, a.files, 1)
	assert.Contains(t, a.totalLabel.Text, "1 file(s)")
}

func TestValidationErrorSurfacesInStatus(t *testing.T) {
	a, up := newTestApp(t)

	bad := types.NewFileRef("notes.txt", 100, "text/plain", nil)
	assert.False(t, up.SelectFiles(context.Background(), []*types.FileRef{bad}))
	assert.Contains(t, a.statusBar.Text, "not supported")
}

func TestDisabledToggleDisablesRadio(t *testing.T) {
	a, up := newTestApp(t)

	up.SetToggleDisabled(true)
	// The next event refresh picks the flag up.
	up.Reset()
	assert.True(t, a.modeSelect.Disabled())
}
