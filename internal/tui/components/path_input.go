package components

import (
	"pdfsmaller/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PathInput is the text prompt used to add files by path.
type PathInput struct {
	input textinput.Model
}

func NewPathInput() *PathInput {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.pdf"
	ti.Prompt = "Add file: "
	ti.CharLimit = 512
	return &PathInput{input: ti}
}

func (p *PathInput) Focus() tea.Cmd {
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *PathInput) Blur() {
	p.input.Blur()
}

func (p *PathInput) Value() string {
	return p.input.Value()
}

func (p *PathInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *PathInput) View() string {
	return styles.Theme.Help.Render(p.input.View())
}
