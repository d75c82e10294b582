package uploader

import (
	"pdfsmaller/internal/announce"
	"pdfsmaller/pkg/types"
)

// Key names understood by HandleToggleKey. Front-ends normalize their own
// key events to these before forwarding.
const (
	KeySpace  = "space"
	KeyEnter  = "enter"
	KeyEscape = "esc"
	KeyLeft   = "left"
	KeyRight  = "right"
	KeyTab    = "tab"
)

// HandleToggleKey processes a key press while the mode toggle has focus.
// Space and Enter switch modes; Escape announces the current mode; the
// arrow keys preview the other mode without switching. It returns true
// when a mode switch happened.
func (u *Uploader) HandleToggleKey(key string) bool {
	u.mu.Lock()
	mode := u.state.CurrentMode
	blocked := u.state.ToggleDisabled || u.state.ComponentDisabled
	u.mu.Unlock()

	switch key {
	case KeySpace, " ", KeyEnter:
		if blocked {
			u.assertive.Announce(announce.ToggleDisabledText)
			return false
		}
		return u.ToggleMode(types.TriggerKeyboard)

	case KeyEscape:
		u.polite.Announce(announce.CurrentMode(mode))
		return false

	case KeyLeft, KeyRight:
		u.polite.Announce(announce.OtherModePreview(mode))
		return false
	}
	return false
}

// HandleAreaKey processes a key press while the upload area has focus.
// Space and Enter open the file picker.
func (u *Uploader) HandleAreaKey(key string) bool {
	switch key {
	case KeySpace, " ", KeyEnter:
		u.OpenFileDialog()
		return true
	}
	return false
}

// ClickToggle is the pointer counterpart of Space/Enter on the toggle.
func (u *Uploader) ClickToggle() bool {
	u.mu.Lock()
	blocked := u.state.ToggleDisabled || u.state.ComponentDisabled
	u.mu.Unlock()

	if blocked {
		u.assertive.Announce(announce.ToggleDisabledText)
		return false
	}
	return u.ToggleMode(types.TriggerClick)
}
