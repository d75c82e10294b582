package uploader

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsmaller/internal/announce"
	"pdfsmaller/internal/config"
	"pdfsmaller/internal/events"
	"pdfsmaller/internal/prefs"
	"pdfsmaller/internal/validate"
	"pdfsmaller/pkg/testutils"
	"pdfsmaller/pkg/types"
)

// recorder collects every emitted event in order.
type recorder struct {
	events []events.Event
}

func (r *recorder) names() []events.Name {
	out := make([]events.Name, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Name
	}
	return out
}

func (r *recorder) find(name events.Name) (events.Event, bool) {
	for _, ev := range r.events {
		if ev.Name == name {
			return ev, true
		}
	}
	return events.Event{}, false
}

func record(u *Uploader) *recorder {
	r := &recorder{}
	u.Events().SubscribeAll(func(ev events.Event) {
		r.events = append(r.events, ev)
	})
	return r
}

func newTestUploader(t *testing.T, mutate func(*config.Config), opts ...Option) (*Uploader, *recorder) {
	t.Helper()

	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	store := prefs.NewStoreWith(testutils.NewMapStore())
	opts = append([]Option{WithStore(store), WithTransitionWindow(0)}, opts...)
	u := New(cfg, opts...)
	return u, record(u)
}

func TestInitEmitsConstructionEvents(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()

	require.Equal(t, []events.Name{events.ModeInitialized, events.Initialized}, rec.names())
	assert.Equal(t, types.Single, u.Mode())

	// Repeated Init does nothing.
	u.Init()
	assert.Len(t, rec.events, 2)
}

func TestInitResolvesSessionPreference(t *testing.T) {
	backend := testutils.NewMapStore()
	store := prefs.NewStoreWith(backend)
	require.True(t, store.Save(types.Batch, config.DefaultPreferenceKey))

	u := New(config.New(), WithStore(store), WithTransitionWindow(0))
	rec := record(u)
	u.Init()

	assert.Equal(t, types.Batch, u.Mode())
	ev, ok := rec.find(events.ModeInitialized)
	require.True(t, ok)
	payload := ev.Payload.(events.ModeInitializedPayload)
	assert.True(t, payload.SessionPreferenceUsed)
}

func TestInitReportsAttributeErrors(t *testing.T) {
	u := NewFromAttributes(map[string]string{
		"default-mode": "triple",
		"max-size":     "huge",
	}, WithStore(prefs.NewStoreWith(testutils.NewMapStore())), WithTransitionWindow(0))
	rec := record(u)
	u.Init()

	count := 0
	for _, ev := range rec.events {
		if ev.Name == events.AttributeValidationError {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, types.Single, u.Mode())
}

func TestSetModeSwitchesAndPersists(t *testing.T) {
	backend := testutils.NewMapStore()
	store := prefs.NewStoreWith(backend)
	u := New(config.New(), WithStore(store), WithTransitionWindow(0))
	rec := record(u)
	u.Init()

	require.True(t, u.SetMode(types.Batch))
	assert.Equal(t, types.Batch, u.Mode())

	ev, ok := rec.find(events.ModeChanged)
	require.True(t, ok)
	payload := ev.Payload.(events.ModeChangedPayload)
	assert.Equal(t, types.Single, payload.OldMode)
	assert.Equal(t, types.Batch, payload.NewMode)
	assert.Equal(t, types.TriggerProgrammatic, payload.TriggeredBy)

	saved := store.Load(config.DefaultPreferenceKey)
	require.NotNil(t, saved)
	assert.Equal(t, types.Batch, *saved)
}

func TestSetModeInvalid(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()

	assert.False(t, u.SetMode(types.Mode("triple")))
	assert.Equal(t, types.Single, u.Mode())

	ev, ok := rec.find(events.ModeChangeError)
	require.True(t, ok)
	payload := ev.Payload.(events.ModeChangeErrorPayload)
	assert.Equal(t, "invalid_mode", payload.Error)
	assert.Equal(t, "triple", payload.RequestedMode)
}

func TestSetModeSameModeIsNoOp(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	before := len(rec.events)

	assert.True(t, u.SetMode(types.Single))
	assert.Len(t, rec.events, before)
}

func TestSetModeBlockedDuringTransition(t *testing.T) {
	u, rec := newTestUploader(t, nil, WithTransitionWindow(time.Hour))
	u.Init()

	require.True(t, u.SetMode(types.Batch))
	assert.False(t, u.SetMode(types.Single))

	ev, ok := rec.find(events.ModeChangeError)
	require.True(t, ok)
	payload := ev.Payload.(events.ModeChangeErrorPayload)
	assert.Equal(t, "mode_change_blocked", payload.Error)
	assert.Equal(t, types.Batch, payload.CurrentMode)
}

func TestReducedMotionSkipsLockout(t *testing.T) {
	u, _ := newTestUploader(t, func(c *config.Config) {
		c.Interface.ReducedMotion = true
	})
	u.Init()

	// Back-to-back switches succeed because the window is collapsed.
	require.True(t, u.SetMode(types.Batch))
	require.True(t, u.SetMode(types.Single))
	require.True(t, u.SetMode(types.Batch))
}

func TestSetModeBlockedWhenToggleDisabled(t *testing.T) {
	u, rec := newTestUploader(t, func(c *config.Config) {
		c.Uploader.ToggleDisabled = true
	})
	u.Init()

	assert.False(t, u.SetMode(types.Batch))
	assert.Equal(t, types.Single, u.Mode())

	ev, ok := rec.find(events.ModeChangeError)
	require.True(t, ok)
	assert.Equal(t, "mode_change_blocked", ev.Payload.(events.ModeChangeErrorPayload).Error)
}

func TestSwitchToSingleTruncatesFiles(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))

	files := []*types.FileRef{testutils.PDFRef("a.pdf", 100), testutils.PDFRef("b.pdf", 200), testutils.PDFRef("c.pdf", 300)}
	require.True(t, u.SelectFiles(context.Background(), files))
	require.Equal(t, 3, u.FileCount())

	rec.events = nil
	require.True(t, u.SetMode(types.Single))

	require.Equal(t, 1, u.FileCount())
	assert.Equal(t, "a.pdf", u.Files()[0].Name)

	names := rec.names()
	require.Contains(t, names, events.ModeChanged)
	require.Contains(t, names, events.FilesAdapted)
	assert.Less(t, indexOf(names, events.ModeChanged), indexOf(names, events.FilesAdapted))

	ev, _ := rec.find(events.FilesAdapted)
	payload := ev.Payload.(events.FilesAdaptedPayload)
	assert.Equal(t, 3, payload.OriginalFiles)
	assert.Equal(t, 1, payload.AdaptedFiles)
	assert.Equal(t, validate.ReasonModeSwitch, payload.Reason)

	changed, _ := rec.find(events.ModeChanged)
	assert.Equal(t, 3, changed.Payload.(events.ModeChangedPayload).FilesAffected)
}

func indexOf(names []events.Name, name events.Name) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestSelectFilesSingleModeKeepsLast(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	files := []*types.FileRef{testutils.PDFRef("first.pdf", 100), testutils.PDFRef("last.pdf", 200)}
	require.True(t, u.SelectFiles(context.Background(), files))

	require.Equal(t, 1, u.FileCount())
	assert.Equal(t, "last.pdf", u.Files()[0].Name)

	ev, ok := rec.find(events.FilesAdapted)
	require.True(t, ok)
	assert.Equal(t, validate.ReasonModeLimitation, ev.Payload.(events.FilesAdaptedPayload).Reason)
}

func TestDropSingleModeKeepsFirst(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	u.DragEnter(2)
	files := []*types.FileRef{testutils.PDFRef("first.pdf", 100), testutils.PDFRef("last.pdf", 200)}
	require.True(t, u.Drop(context.Background(), files))

	require.Equal(t, 1, u.FileCount())
	assert.Equal(t, "first.pdf", u.Files()[0].Name)
	assert.False(t, u.Snapshot().IsDragOver)
}

func TestBatchModeAppendsAcrossIntakes(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))

	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("a.pdf", 10)}))
	rec.events = nil
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("b.pdf", 20)}))

	require.Equal(t, 2, u.FileCount())
	ev, ok := rec.find(events.FilesSelected)
	require.True(t, ok)
	payload := ev.Payload.(events.FilesSelectedPayload)
	assert.Len(t, payload.Files, 2)
	assert.Len(t, payload.NewFiles, 1)
	assert.False(t, payload.Replaced)
}

func TestSingleModeReplacementFlagged(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()

	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("a.pdf", 10)}))
	rec.events = nil
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("b.pdf", 20)}))

	require.Equal(t, 1, u.FileCount())
	assert.Equal(t, "b.pdf", u.Files()[0].Name)

	ev, ok := rec.find(events.FilesSelected)
	require.True(t, ok)
	assert.True(t, ev.Payload.(events.FilesSelectedPayload).Replaced)
}

func TestIntakeEventOrder(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("ok.pdf", 100)}))

	assert.Equal(t, []events.Name{
		events.ProcessingStart,
		events.FilesSelected,
		events.FilesProcessed,
		events.ProcessingComplete,
	}, rec.names())
}

func TestAllFilesRejected(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	bad := types.NewFileRef("notes.txt", 100, "text/plain", nil)
	assert.False(t, u.SelectFiles(context.Background(), []*types.FileRef{bad}))

	names := rec.names()
	assert.Contains(t, names, events.ValidationError)
	assert.Contains(t, names, events.ProcessingComplete)
	assert.NotContains(t, names, events.FilesProcessed)
	assert.NotContains(t, names, events.FilesSelected)

	assert.Contains(t, u.Error(), "not supported")
	assert.NotContains(t, u.Error(), "failed validation", "a lone rejection surfaces its reason directly")
	assert.Equal(t, 0, u.FileCount())
}

func TestMultipleRejectionsAggregateError(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))
	rec.events = nil

	bad := []*types.FileRef{
		types.NewFileRef("notes.txt", 100, "text/plain", nil),
		types.NewFileRef("draft.txt", 100, "text/plain", nil),
	}
	assert.False(t, u.SelectFiles(context.Background(), bad))

	assert.Contains(t, u.Error(), "2 files failed validation:")
	assert.Contains(t, u.Error(), "notes.txt")
	assert.Contains(t, u.Error(), "draft.txt")
}

func TestEmptySelectionWarns(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	assert.False(t, u.SelectFiles(context.Background(), nil))

	ev, ok := rec.find(events.ValidationWarning)
	require.True(t, ok)
	assert.Contains(t, ev.Payload.(events.ValidationIssuesPayload).Issues, validate.NoValidFilesMessage)
	assert.NotContains(t, rec.names(), events.FilesProcessed)
}

func TestPDFSignatureRejection(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	fake := types.NewFileRef("fake.pdf", 100, "application/pdf", func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("not a pdf")), nil
	})
	assert.False(t, u.SelectFiles(context.Background(), []*types.FileRef{fake}))

	ev, ok := rec.find(events.ValidationError)
	require.True(t, ok)
	issues := ev.Payload.(events.ValidationIssuesPayload).Issues
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "does not appear to be a valid PDF")
}

func TestUnreadablePDFAcceptedWithWarning(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	// No payload accessor: the sniff degrades to a warning.
	f := types.NewFileRef("report.pdf", 100, "application/pdf", nil)
	assert.True(t, u.SelectFiles(context.Background(), []*types.FileRef{f}))

	ev, ok := rec.find(events.ValidationWarning)
	require.True(t, ok)
	assert.Contains(t, ev.Payload.(events.ValidationIssuesPayload).Issues, "could not verify PDF format")
	assert.Equal(t, 1, u.FileCount())
}

func TestDragLifecycleCounter(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	u.DragEnter(1)
	u.DragEnter(1) // child region
	assert.True(t, u.Snapshot().IsDragOver)

	u.DragLeave()
	assert.True(t, u.Snapshot().IsDragOver)
	u.DragLeave()
	assert.False(t, u.Snapshot().IsDragOver)

	names := rec.names()
	assert.Equal(t, []events.Name{events.DragEnter, events.DragLeave}, names)
}

func TestIntakeIgnoredWhileProcessing(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	u.mu.Lock()
	u.state.IsProcessing = true
	u.mu.Unlock()

	assert.False(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("a.pdf", 10)}))
	assert.Empty(t, rec.events)
}

func TestDisabledComponentIgnoresIntake(t *testing.T) {
	u, rec := newTestUploader(t, func(c *config.Config) {
		c.Uploader.Disabled = true
	})
	u.Init()
	rec.events = nil

	assert.False(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("a.pdf", 10)}))
	u.DragEnter(1)
	assert.False(t, u.Snapshot().IsDragOver)
	assert.Empty(t, rec.events)

	// Disabled component implies a disabled toggle.
	assert.True(t, u.IsToggleDisabled())
}

func TestResetClearsState(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{testutils.PDFRef("a.pdf", 10)}))
	rec.events = nil

	u.Reset()
	assert.Equal(t, 0, u.FileCount())
	assert.Empty(t, u.Error())
	assert.Equal(t, []events.Name{events.FilesChanged, events.Reset}, rec.names())

	// Idempotent: a second reset still announces itself.
	rec.events = nil
	u.Reset()
	assert.Equal(t, []events.Name{events.Reset}, rec.names())
}

func TestRemoveFile(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{
		testutils.PDFRef("a.pdf", 10), testutils.PDFRef("b.pdf", 20),
	}))
	rec.events = nil

	files := u.Files()
	assert.True(t, u.RemoveFile(files[0].ID))
	assert.Equal(t, 1, u.FileCount())
	assert.Contains(t, rec.names(), events.FilesChanged)

	assert.False(t, u.RemoveFile("no-such-id"))
}

func TestSetFilesReplacesList(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{
		testutils.PDFRef("old1.pdf", 10), testutils.PDFRef("old2.pdf", 20),
	}))
	rec.events = nil

	require.True(t, u.SetFiles(context.Background(), []*types.FileRef{testutils.PDFRef("new.pdf", 30)}))

	require.Equal(t, 1, u.FileCount())
	assert.Equal(t, "new.pdf", u.Files()[0].Name)
	assert.Equal(t, events.FilesChanged, rec.names()[0])
}

func TestErrorSurface(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	assert.False(t, u.HasError())
	u.SetError("something broke")
	assert.True(t, u.HasError())
	assert.Equal(t, "something broke", u.Error())

	u.ClearError()
	assert.False(t, u.HasError())
}

func TestTotalFileSize(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()
	require.True(t, u.SetMode(types.Batch))
	require.True(t, u.SelectFiles(context.Background(), []*types.FileRef{
		testutils.PDFRef("a.pdf", 100), testutils.PDFRef("b.pdf", 250),
	}))

	assert.Equal(t, int64(350), u.TotalFileSize())
}

func TestValidateFilesIsPure(t *testing.T) {
	u, rec := newTestUploader(t, nil)
	u.Init()
	rec.events = nil

	results := u.ValidateFiles(context.Background(), []*types.FileRef{
		testutils.PDFRef("ok.pdf", 100),
		types.NewFileRef("bad.txt", 100, "text/plain", nil),
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].IsValid)
	assert.False(t, results[1].IsValid)
	assert.Empty(t, rec.events)
	assert.Equal(t, 0, u.FileCount())
}

func TestKeyboardToggle(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	assert.True(t, u.HandleToggleKey(KeySpace))
	assert.Equal(t, types.Batch, u.Mode())
	assert.True(t, u.HandleToggleKey(KeyEnter))
	assert.Equal(t, types.Single, u.Mode())
}

func TestKeyboardAnnouncements(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	assert.False(t, u.HandleToggleKey(KeyEscape))
	assert.Contains(t, announce.Polite().Last(), "Current mode: Single file")

	assert.False(t, u.HandleToggleKey(KeyRight))
	assert.Contains(t, announce.Polite().Last(), "switch to batch mode")
	assert.Equal(t, types.Single, u.Mode())
}

func TestKeyboardOnDisabledToggle(t *testing.T) {
	u, _ := newTestUploader(t, func(c *config.Config) {
		c.Uploader.ToggleDisabled = true
	})
	u.Init()

	assert.False(t, u.HandleToggleKey(KeySpace))
	assert.Equal(t, announce.ToggleDisabledText, announce.Assertive().Last())
	assert.Equal(t, types.Single, u.Mode())
}

func TestAreaKeyOpensDialog(t *testing.T) {
	opened := 0
	u, _ := newTestUploader(t, nil, WithDialogOpener(func() { opened++ }))
	u.Init()

	assert.True(t, u.HandleAreaKey(KeyEnter))
	assert.Equal(t, 1, opened)

	assert.False(t, u.HandleAreaKey(KeyTab))
	assert.Equal(t, 1, opened)
}

func TestFocusRules(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	assert.Equal(t, FocusToggle, u.SetFocus(FocusToggle))

	u.SetToggleDisabled(true)
	assert.Equal(t, FocusArea, u.Focus())
	assert.Equal(t, FocusArea, u.SetFocus(FocusToggle))

	u.SetDisabled(true)
	assert.Equal(t, FocusNone, u.SetFocus(FocusArea))
}

func TestSetDisabledForcesToggle(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	u.SetDisabled(true)
	assert.True(t, u.IsDisabled())
	assert.True(t, u.IsToggleDisabled())

	// The toggle cannot come back while the component stays disabled.
	u.SetToggleDisabled(false)
	assert.True(t, u.IsToggleDisabled())

	u.SetDisabled(false)
	assert.False(t, u.IsToggleDisabled())
}

func TestMultipleFollowsMode(t *testing.T) {
	u, _ := newTestUploader(t, nil)
	u.Init()

	assert.False(t, u.Multiple())
	require.True(t, u.SetMode(types.Batch))
	assert.True(t, u.Multiple())
}
