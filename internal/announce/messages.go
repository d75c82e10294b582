package announce

import (
	"fmt"
	"strings"

	"pdfsmaller/pkg/types"
)

// ToggleDisabledText is announced when interaction hits a disabled toggle.
const ToggleDisabledText = "Toggle is disabled"

// ModeChange builds the polite announcement for a completed mode switch,
// with trigger context and the file count carried over. Switches that
// truncated the file list use ModeChangeTruncated instead.
func ModeChange(newMode types.Mode, trigger types.Trigger, fileCount int) string {
	cfg := types.ConfigFor(newMode)

	var b strings.Builder
	fmt.Fprintf(&b, "%s mode enabled", cfg.Label)
	switch trigger {
	case types.TriggerKeyboard:
		b.WriteString(" via keyboard")
	case types.TriggerClick:
		b.WriteString(" via click")
	}
	b.WriteString(". ")
	b.WriteString(cfg.Description)
	b.WriteString(".")

	if fileCount > 0 {
		fmt.Fprintf(&b, " %d file(s) kept.", fileCount)
	}

	return b.String()
}

// ModeChangeTruncated builds the truncation variant naming the kept file.
func ModeChangeTruncated(newMode types.Mode, trigger types.Trigger, kept string, removed int) string {
	cfg := types.ConfigFor(newMode)
	msg := fmt.Sprintf("%s mode enabled", cfg.Label)
	switch trigger {
	case types.TriggerKeyboard:
		msg += " via keyboard"
	case types.TriggerClick:
		msg += " via click"
	}
	return fmt.Sprintf("%s. %d file(s) removed; %q kept.", msg, removed, kept)
}

// CurrentMode builds the Escape-key announcement: the active mode plus a
// usage hint.
func CurrentMode(mode types.Mode) string {
	cfg := types.ConfigFor(mode)
	return fmt.Sprintf("Current mode: %s. %s. Press Space or Enter to switch modes.",
		cfg.Label, cfg.Description)
}

// OtherModePreview builds the arrow-key announcement: what the other mode
// would do, without switching.
func OtherModePreview(current types.Mode) string {
	other := types.ConfigFor(current.Other())
	return fmt.Sprintf("Press Space or Enter to switch to %s mode: %s.",
		strings.ToLower(other.Label), other.Description)
}

// ToggleAvailability builds the assertive announcement for toggle
// disabled/enabled transitions.
func ToggleAvailability(disabled bool) string {
	if disabled {
		return "Mode toggle disabled"
	}
	return "Mode toggle enabled"
}
