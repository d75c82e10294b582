// Package uploader implements the dual-mode file uploader core: the mode
// state machine, file intake, the programmatic surface, and the event
// protocol collaborators consume. Front-ends (TUI, GUI, watch daemon) feed
// it gestures and render its state; they never reach into it directly.
package uploader

import (
	"sync"
	"time"

	"pdfsmaller/internal/announce"
	"pdfsmaller/internal/config"
	"pdfsmaller/internal/errors"
	"pdfsmaller/internal/events"
	"pdfsmaller/internal/log"
	"pdfsmaller/internal/prefs"
	"pdfsmaller/internal/validate"
	"pdfsmaller/pkg/types"
)

// TransitionWindow is how long mode changes stay locked out after a switch
// so the front-end animation can settle. Reduced motion collapses it to
// zero.
const TransitionWindow = 500 * time.Millisecond

// Uploader is one uploader instance. Construct with New, attach listeners,
// then call Init to run initial-mode resolution and emit the construction
// events.
type Uploader struct {
	mu sync.Mutex

	cfg      *config.Config
	state    State
	focus    FocusTarget
	pipeline *validate.Pipeline
	store    *prefs.Store

	dispatcher *events.Dispatcher
	polite     *announce.Region
	assertive  *announce.Region

	resolveOpts      prefs.ResolveOptions
	transitionWindow time.Duration
	transitionTimer  *time.Timer

	// attrErrs are configuration problems found before Init; they are
	// reported through events once listeners can exist.
	attrErrs []*errors.AttributeError

	// dialogFn is the front-end hook behind OpenFileDialog.
	dialogFn func()

	initialized bool
}

// Option configures an Uploader at construction.
type Option func(*Uploader)

// WithStore substitutes the preference store, giving the instance an
// isolated session namespace.
func WithStore(s *prefs.Store) Option {
	return func(u *Uploader) { u.store = s }
}

// WithTransitionWindow overrides the mode-change lockout window.
func WithTransitionWindow(d time.Duration) Option {
	return func(u *Uploader) { u.transitionWindow = d }
}

// WithDialogOpener installs the front-end callback invoked by
// OpenFileDialog.
func WithDialogOpener(fn func()) Option {
	return func(u *Uploader) { u.dialogFn = fn }
}

// WithAttributeErrors carries attribute problems found while parsing the
// configuration surface; they are emitted during Init.
func WithAttributeErrors(errs []*errors.AttributeError) Option {
	return func(u *Uploader) { u.attrErrs = errs }
}

// New builds an uploader from configuration. No events fire until Init.
func New(cfg *config.Config, opts ...Option) *Uploader {
	if cfg == nil {
		cfg = config.New()
	}

	u := &Uploader{
		cfg:        cfg,
		pipeline:   validate.NewFromConfig(cfg),
		store:      prefs.Shared(),
		dispatcher: events.NewDispatcher(),
		polite:     announce.Polite(),
		assertive:  announce.Assertive(),
	}

	u.transitionWindow = TransitionWindow
	if cfg.Interface.ReducedMotion {
		u.transitionWindow = 0
	}

	u.resolveOpts = prefs.ResolveOptions{
		LegacyMultiple:     cfg.Uploader.Multiple,
		DefaultMode:        cfg.Uploader.DefaultMode,
		RememberPreference: cfg.Uploader.RememberPreference,
		Key:                cfg.Uploader.PreferenceKey,
	}

	u.state.ComponentDisabled = cfg.Uploader.Disabled
	u.state.ToggleDisabled = cfg.Uploader.ToggleDisabled || cfg.Uploader.Disabled
	u.state.CurrentMode = types.Single

	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewFromAttributes builds an uploader from the attribute surface.
func NewFromAttributes(attrs map[string]string, opts ...Option) *Uploader {
	cfg, attrErrs := config.FromAttributes(attrs)
	opts = append([]Option{WithAttributeErrors(attrErrs)}, opts...)
	return New(cfg, opts...)
}

// Events returns the dispatcher listeners subscribe on. Listeners run on
// the emitting goroutine and must not call mutating uploader operations.
func (u *Uploader) Events() *events.Dispatcher {
	return u.dispatcher
}

// Init resolves the initial mode and emits the construction events. It is
// idempotent; repeated calls do nothing.
func (u *Uploader) Init() {
	var res prefs.Resolution
	var attrErrs []*errors.AttributeError
	var initFailure error
	already := false

	func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		// Resolution must never crash the host: anything unexpected
		// degrades to the minimal fallback view.
		defer func() {
			if r := recover(); r != nil {
				initFailure = errors.Newf("unexpected initialization failure: %v", r)
				u.state.InitializationError = true
				u.state.CurrentMode = types.Single
				u.state.ToggleDisabled = true
			}
		}()

		if u.initialized {
			already = true
			return
		}
		u.initialized = true

		attrErrs = u.attrErrs
		u.attrErrs = nil

		res = u.store.ResolveInitial(u.resolveOpts)
		u.state.CurrentMode = res.InitialMode
	}()

	if already {
		return
	}
	if initFailure != nil {
		log.LogWithFields(log.F("error", initFailure)).Error("uploader degraded to fallback view")
		u.dispatcher.Emit(events.InitializationError, events.InitializationErrorPayload{
			Error:        initFailure.Error(),
			FallbackMode: types.Single,
		})
		return
	}

	for _, ae := range attrErrs {
		u.dispatcher.Emit(events.AttributeValidationError, events.AttributeErrorPayload{
			Attribute: ae.Attribute(),
			Value:     ae.Value(),
			Error:     ae.Error(),
		})
	}
	for _, err := range res.Errors {
		log.LogWithFields(log.F("error", err)).Warn("mode resolution issue")
	}

	u.dispatcher.Emit(events.ModeInitialized, events.ModeInitializedPayload{
		InitialMode:              res.InitialMode,
		BasedOnMultipleAttribute: res.BasedOnMultipleAttribute,
		BasedOnDefaultMode:       res.BasedOnDefaultMode,
		SessionPreferenceUsed:    res.SessionPreferenceUsed,
	})
	u.dispatcher.Emit(events.Initialized, events.InitializedPayload{
		Mode:               res.InitialMode,
		LegacyMultiple:     u.cfg.Uploader.Multiple,
		DefaultMode:        u.cfg.Uploader.DefaultMode,
		RememberPreference: u.cfg.Uploader.RememberPreference,
	})
}

// Config returns the immutable configuration the uploader was built with.
func (u *Uploader) Config() *config.Config {
	return u.cfg
}

// Snapshot returns a copy of the current state for rendering.
func (u *Uploader) Snapshot() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	s := u.state
	s.Files = snapshotFiles(u.state.Files)
	return s
}

// Multiple reports whether the underlying file control should allow
// multi-select in the current mode.
func (u *Uploader) Multiple() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return types.ConfigFor(u.state.CurrentMode).Multiple
}

// emission defers an event past the lock so listeners can safely read
// uploader state.
type emission struct {
	name    events.Name
	payload interface{}
}

func (u *Uploader) flush(q []emission) {
	for _, e := range q {
		u.dispatcher.Emit(e.name, e.payload)
	}
}
