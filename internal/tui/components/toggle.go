package components

import (
	"strings"

	"pdfsmaller/internal/tui/styles"
	"pdfsmaller/pkg/types"
)

// Toggle renders the mode switch as a two-segment control.
type Toggle struct {
	mode          types.Mode
	focused       bool
	disabled      bool
	transitioning bool
}

func NewToggle() *Toggle {
	return &Toggle{mode: types.Single}
}

func (t *Toggle) SetMode(m types.Mode)     { t.mode = m }
func (t *Toggle) SetFocused(f bool)        { t.focused = f }
func (t *Toggle) SetDisabled(d bool)       { t.disabled = d }
func (t *Toggle) SetTransitioning(tr bool) { t.transitioning = tr }

func (t *Toggle) View() string {
	var b strings.Builder

	for i, m := range []types.Mode{types.Single, types.Batch} {
		if i > 0 {
			b.WriteString("  ")
		}
		label := "[ " + types.ConfigFor(m).Label + " ]"
		switch {
		case t.disabled:
			b.WriteString(styles.Theme.Disabled.Render(label))
		case m == t.mode:
			b.WriteString(styles.Theme.Selected.Render(label))
		default:
			b.WriteString(styles.Theme.Unselected.Render(label))
		}
	}

	if t.transitioning {
		b.WriteString(styles.Theme.Unselected.Render(" ~"))
	}
	if t.focused {
		return "> " + b.String()
	}
	return "  " + b.String()
}
