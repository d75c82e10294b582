package components

import (
	"fmt"
	"strings"

	"pdfsmaller/internal/tui/styles"
	"pdfsmaller/pkg/types"

	"github.com/dustin/go-humanize"
)

// FileList renders the uploader's current files with a movable cursor.
type FileList struct {
	files  []*types.FileRef
	cursor int
}

func NewFileList() *FileList {
	return &FileList{}
}

func (fl *FileList) SetFiles(files []*types.FileRef) {
	fl.files = files
	if fl.cursor >= len(files) {
		fl.cursor = len(files) - 1
	}
	if fl.cursor < 0 {
		fl.cursor = 0
	}
}

func (fl *FileList) MoveCursor(delta int) {
	fl.cursor += delta
	if fl.cursor < 0 {
		fl.cursor = 0
	}
	if fl.cursor >= len(fl.files) && len(fl.files) > 0 {
		fl.cursor = len(fl.files) - 1
	}
}

// Current returns the file under the cursor, or nil.
func (fl *FileList) Current() *types.FileRef {
	if fl.cursor < 0 || fl.cursor >= len(fl.files) {
		return nil
	}
	return fl.files[fl.cursor]
}

func (fl *FileList) View() string {
	if len(fl.files) == 0 {
		return styles.Theme.Unselected.Render("No files yet")
	}

	var b strings.Builder
	for i, f := range fl.files {
		line := fmt.Sprintf("%s (%s)", f.Name, humanize.IBytes(uint64(f.Size)))
		if i == fl.cursor {
			b.WriteString(styles.Theme.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.Theme.Help.Render(fmt.Sprintf("%d file(s), %s total",
		len(fl.files), humanize.IBytes(uint64(types.TotalSize(fl.files))))))
	return b.String()
}
