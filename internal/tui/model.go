// Package tui is the terminal front-end. It renders uploader state and
// translates key presses into the gestures the uploader understands; all
// mode and file decisions stay inside the uploader.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsmaller/internal/announce"
	"pdfsmaller/internal/events"
	"pdfsmaller/internal/tui/components"
	"pdfsmaller/internal/tui/messages"
	"pdfsmaller/internal/tui/styles"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/types"
)

type Model struct {
	up   *uploader.Uploader
	evCh chan tea.Msg

	toggle    *components.Toggle
	fileList  *components.FileList
	statusBar *components.StatusBar
	pathInput *components.PathInput

	entering bool
	showHelp bool
	quitting bool
}

// New builds the model around an initialized uploader. Uploader events and
// live-region announcements are bridged onto the update loop through a
// buffered channel.
func New(up *uploader.Uploader) *Model {
	m := &Model{
		up:        up,
		evCh:      make(chan tea.Msg, 64),
		toggle:    components.NewToggle(),
		fileList:  components.NewFileList(),
		statusBar: components.NewStatusBar(),
		pathInput: components.NewPathInput(),
	}

	up.Events().SubscribeAll(func(ev events.Event) {
		m.push(messages.UploaderEventMsg{Event: ev})
	})
	announce.Polite().Subscribe(func(msg announce.Message) {
		m.push(messages.AnnouncementMsg{Text: msg.Text})
	})
	announce.Assertive().Subscribe(func(msg announce.Message) {
		m.push(messages.AnnouncementMsg{Text: msg.Text, Assertive: true})
	})

	m.sync()
	return m
}

// push delivers a message without ever blocking the emitting goroutine.
func (m *Model) push(msg tea.Msg) {
	select {
	case m.evCh <- msg:
	default:
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.evCh
	}
}

// sync pulls uploader state into the components.
func (m *Model) sync() {
	snap := m.up.Snapshot()
	m.toggle.SetMode(snap.CurrentMode)
	m.toggle.SetDisabled(snap.ToggleDisabled)
	m.toggle.SetTransitioning(snap.ModeTransitioning)
	m.toggle.SetFocused(m.up.Focus() == uploader.FocusToggle)
	m.fileList.SetFiles(snap.Files)
	m.statusBar.SetLoading(snap.IsProcessing)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.statusBar.Tick())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.UploaderEventMsg:
		m.sync()
		if msg.Event.Name == events.ValidationError {
			m.statusBar.SetError(m.up.Error())
		}
		return m, m.listen()

	case messages.AnnouncementMsg:
		if msg.Assertive {
			m.statusBar.SetError(msg.Text)
		} else {
			m.statusBar.SetText(msg.Text)
		}
		return m, m.listen()

	case messages.FilesPickedMsg:
		m.up.SelectFiles(context.Background(), msg.Files)
		m.sync()
		return m, nil

	case messages.ErrorMsg:
		m.statusBar.SetError(msg.Err.Error())
		return m, nil
	}

	return m, m.statusBar.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entering {
		return m.handlePathEntry(msg)
	}

	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "tab":
		if m.up.Focus() == uploader.FocusToggle {
			m.up.SetFocus(uploader.FocusArea)
		} else {
			m.up.SetFocus(uploader.FocusToggle)
		}
		m.sync()
		return m, nil

	case "a":
		m.entering = true
		return m, m.pathInput.Focus()

	case "d":
		if f := m.fileList.Current(); f != nil {
			m.up.RemoveFile(f.ID)
			m.sync()
		}
		return m, nil

	case "r":
		m.up.Reset()
		m.sync()
		return m, nil

	case "j", "down":
		m.fileList.MoveCursor(1)
		return m, nil

	case "k", "up":
		m.fileList.MoveCursor(-1)
		return m, nil
	}

	// Everything else goes through the uploader's keyboard surface.
	if m.up.Focus() == uploader.FocusToggle {
		m.up.HandleToggleKey(normalizeKey(key))
	} else if key == " " || key == "enter" {
		m.up.HandleAreaKey(normalizeKey(key))
	}
	m.sync()
	return m, nil
}

func (m *Model) handlePathEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		m.entering = false
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			ref, err := types.FileRefFromPath(path)
			if err != nil {
				return messages.ErrorMsg{Err: err}
			}
			return messages.FilesPickedMsg{Files: []*types.FileRef{ref}}
		}

	case "esc":
		m.entering = false
		m.pathInput.Blur()
		return m, nil
	}

	return m, m.pathInput.Update(msg)
}

func normalizeKey(key string) string {
	if key == " " {
		return uploader.KeySpace
	}
	return key
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.up.Snapshot()

	var b strings.Builder
	b.WriteString(styles.Theme.Title.Render("PDFSmaller"))
	b.WriteString("\n")
	b.WriteString(m.toggle.View())
	b.WriteString("\n\n")

	zone := styles.Theme.DropZone
	if snap.IsDragOver {
		zone = styles.Theme.DropZoneHot
	}
	hint := types.ConfigFor(snap.CurrentMode).Description
	b.WriteString(zone.Render(hint + "\n\n" + m.fileList.View()))
	b.WriteString("\n")

	if m.entering {
		b.WriteString(m.pathInput.View())
		b.WriteString("\n")
	}
	if status := m.statusBar.View(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(renderHelp())
	}
	b.WriteString(renderKeyCommands())

	return styles.Theme.App.Render(b.String())
}

func renderKeyCommands() string {
	return styles.Theme.Help.Render(
		"\n[Tab] Focus  [Space/Enter] Toggle or pick  [a] Add path  [d] Remove  [r] Reset  [q] Quit  [?] Help")
}

func renderHelp() string {
	return styles.Theme.Help.Render(fmt.Sprintf(`
Single file mode holds one file; picking another replaces it.
Batch mode collects several files; switching back keeps the first.
With the toggle focused, Esc announces the mode and the arrow
keys preview the other mode without switching.
Accepted files must match the accept list and stay under the
size limit; PDFs are checked for the %q signature.
`, "%PDF-"))
}
