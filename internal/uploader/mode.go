package uploader

import (
	"time"

	"pdfsmaller/internal/announce"
	"pdfsmaller/internal/errors"
	"pdfsmaller/internal/events"
	"pdfsmaller/internal/validate"
	"pdfsmaller/pkg/types"
)

// Mode returns the current mode.
func (u *Uploader) Mode() types.Mode {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.CurrentMode
}

// SetMode requests a programmatic mode change. It returns false when the
// mode is invalid or the change is blocked.
func (u *Uploader) SetMode(m types.Mode) bool {
	return u.setMode(m, types.TriggerProgrammatic)
}

// SetModeTriggered requests a mode change attributed to a specific trigger.
func (u *Uploader) SetModeTriggered(m types.Mode, trigger types.Trigger) bool {
	return u.setMode(m, trigger)
}

// ToggleMode switches to the other mode.
func (u *Uploader) ToggleMode(trigger types.Trigger) bool {
	return u.setMode(u.Mode().Other(), trigger)
}

// IsToggleDisabled reports whether the mode toggle accepts interaction.
func (u *Uploader) IsToggleDisabled() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.ToggleDisabled
}

func (u *Uploader) setMode(m types.Mode, trigger types.Trigger) bool {
	var q []emission
	var politeMsg string
	ok := false

	u.mu.Lock()
	switch {
	case !m.Valid():
		q = append(q, emission{events.ModeChangeError, events.ModeChangeErrorPayload{
			Error:         errors.InvalidMode.String(),
			RequestedMode: string(m),
			CurrentMode:   u.state.CurrentMode,
		}})

	case u.state.ToggleDisabled || u.state.ModeTransitioning:
		q = append(q, emission{events.ModeChangeError, events.ModeChangeErrorPayload{
			Error:         errors.ModeChangeBlocked.String(),
			RequestedMode: string(m),
			CurrentMode:   u.state.CurrentMode,
		}})

	case m == u.state.CurrentMode:
		// Already there; success without side effects.
		ok = true

	default:
		old := u.state.CurrentMode
		before := len(u.state.Files)

		u.state.ModeTransitioning = true
		ad := validate.AdaptForModeSwitch(u.state.Files, m)
		u.state.Files = snapshotFiles(ad.Files)
		u.state.CurrentMode = m

		u.store.HandleModeChange(m, u.resolveOpts)

		q = append(q, emission{events.ModeChanged, events.ModeChangedPayload{
			OldMode:       old,
			NewMode:       m,
			FilesAffected: before,
			TriggeredBy:   trigger,
		}})
		if ad.Discarded > 0 {
			q = append(q, emission{events.FilesAdapted, events.FilesAdaptedPayload{
				OriginalFiles: before,
				AdaptedFiles:  len(ad.Files),
				Mode:          m,
				Reason:        validate.ReasonModeSwitch,
			}})
			politeMsg = announce.ModeChangeTruncated(m, trigger, ad.Files[0].Name, ad.Discarded)
		} else {
			politeMsg = announce.ModeChange(m, trigger, len(ad.Files))
		}

		u.scheduleTransitionEnd()
		ok = true
	}
	u.mu.Unlock()

	u.flush(q)
	if politeMsg != "" {
		u.polite.Announce(politeMsg)
	}
	return ok
}

// scheduleTransitionEnd arms the lockout timer. Under reduced motion the
// window is zero and the lockout never becomes observable. Caller holds
// the lock.
func (u *Uploader) scheduleTransitionEnd() {
	if u.transitionWindow <= 0 {
		u.state.ModeTransitioning = false
		return
	}
	if u.transitionTimer != nil {
		u.transitionTimer.Stop()
	}
	u.transitionTimer = time.AfterFunc(u.transitionWindow, func() {
		u.mu.Lock()
		u.state.ModeTransitioning = false
		u.mu.Unlock()
	})
}

// SetToggleDisabled enables or disables the mode toggle. Disabling while
// the toggle has focus moves focus to the upload area, or releases it when
// the whole component is disabled.
func (u *Uploader) SetToggleDisabled(disabled bool) {
	var announceChange bool

	u.mu.Lock()
	// The toggle cannot be re-enabled while the component is disabled.
	if !disabled && u.state.ComponentDisabled {
		u.mu.Unlock()
		return
	}
	if u.state.ToggleDisabled != disabled {
		u.state.ToggleDisabled = disabled
		announceChange = true
		if disabled && u.focus == FocusToggle {
			if u.state.ComponentDisabled {
				u.focus = FocusNone
			} else {
				u.focus = FocusArea
			}
		}
	}
	u.mu.Unlock()

	if announceChange {
		u.assertive.Announce(announce.ToggleAvailability(disabled))
	}
}

// SetDisabled enables or disables the whole component. A disabled
// component always has a disabled toggle.
func (u *Uploader) SetDisabled(disabled bool) {
	var toggleChanged, toggleNow bool

	u.mu.Lock()
	if u.state.ComponentDisabled != disabled {
		u.state.ComponentDisabled = disabled
		wantToggle := disabled || u.cfg.Uploader.ToggleDisabled
		if u.state.ToggleDisabled != wantToggle {
			u.state.ToggleDisabled = wantToggle
			toggleChanged = true
			toggleNow = wantToggle
		}
		if disabled {
			u.focus = FocusNone
		}
	}
	u.mu.Unlock()

	if toggleChanged {
		u.assertive.Announce(announce.ToggleAvailability(toggleNow))
	}
}

// IsDisabled reports whether the component is disabled.
func (u *Uploader) IsDisabled() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.ComponentDisabled
}
