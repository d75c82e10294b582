package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsmaller/internal/config"
	"pdfsmaller/internal/prefs"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/testutils"
)

func newDropSetup(t *testing.T) (*Daemon, *uploader.Uploader, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.New()
	cfg.Watch.Enabled = true
	cfg.Watch.DropDir = dir

	up := uploader.New(cfg,
		uploader.WithStore(prefs.NewStoreWith(testutils.NewMapStore())),
		uploader.WithTransitionWindow(0))
	up.Init()

	d, err := NewDaemon(cfg, up)
	require.NoError(t, err)
	d.SetSettleDelay(50 * time.Millisecond)
	return d, up, dir
}

func TestDaemonForwardsDroppedPDF(t *testing.T) {
	d, up, dir := newDropSetup(t)
	require.NoError(t, d.Start())
	defer d.Stop()

	forwarded := make(chan bool, 1)
	d.SetCallback(func(path string, accepted bool) { forwarded <- accepted })

	path := filepath.Join(dir, "drop.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nhello"), 0o644))

	select {
	case accepted := <-forwarded:
		assert.True(t, accepted)
	case <-time.After(5 * time.Second):
		t.Fatal("file never forwarded")
	}
	assert.Equal(t, 1, up.FileCount())
	assert.Equal(t, "drop.pdf", up.Files()[0].Name)
}

func TestDaemonForwardsRejectedFile(t *testing.T) {
	d, up, dir := newDropSetup(t)
	require.NoError(t, d.Start())
	defer d.Stop()

	forwarded := make(chan bool, 1)
	d.SetCallback(func(path string, accepted bool) { forwarded <- accepted })

	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	select {
	case accepted := <-forwarded:
		assert.False(t, accepted)
	case <-time.After(5 * time.Second):
		t.Fatal("file never forwarded")
	}
	assert.Equal(t, 0, up.FileCount())
	assert.Contains(t, up.Error(), "not supported")
}

func TestDaemonRequiresDropDir(t *testing.T) {
	cfg := config.New()
	up := uploader.New(cfg,
		uploader.WithStore(prefs.NewStoreWith(testutils.NewMapStore())),
		uploader.WithTransitionWindow(0))

	d, err := NewDaemon(cfg, up)
	require.NoError(t, err)
	assert.Error(t, d.Start())
}

func TestDaemonStatus(t *testing.T) {
	d, _, dir := newDropSetup(t)

	st := d.Status()
	assert.False(t, st.Running)

	require.NoError(t, d.Start())
	st = d.Status()
	assert.True(t, st.Running)
	assert.Equal(t, []string{dir}, st.DropDirectories)

	d.Stop()
	assert.False(t, d.Status().Running)

	// Stop is idempotent.
	d.Stop()
}
