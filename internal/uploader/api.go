package uploader

import (
	"context"
	"fmt"

	"pdfsmaller/internal/events"
	"pdfsmaller/internal/log"
	"pdfsmaller/pkg/types"
)

// Files returns a snapshot of the current file list.
func (u *Uploader) Files() []*types.FileRef {
	u.mu.Lock()
	defer u.mu.Unlock()
	return snapshotFiles(u.state.Files)
}

// FileCount returns the number of files in the list.
func (u *Uploader) FileCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.state.Files)
}

// HasFiles reports whether the list is non-empty.
func (u *Uploader) HasFiles() bool {
	return u.FileCount() > 0
}

// TotalFileSize returns the combined size of the current list in bytes.
func (u *Uploader) TotalFileSize() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return types.TotalSize(u.state.Files)
}

// Error returns the user-facing error text from the last intake run, or
// the empty string.
func (u *Uploader) Error() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.Error
}

// HasError reports whether the last intake run left user-facing errors.
func (u *Uploader) HasError() bool {
	return u.Error() != ""
}

// SetError installs user-facing error text directly.
func (u *Uploader) SetError(msg string) {
	u.mu.Lock()
	u.state.Error = msg
	u.mu.Unlock()
}

// ClearError discards the user-facing error text.
func (u *Uploader) ClearError() {
	u.SetError("")
}

// IsProcessing reports whether a validation run is in flight.
func (u *Uploader) IsProcessing() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.IsProcessing
}

// AddFiles merges files into the list through the selection channel.
func (u *Uploader) AddFiles(ctx context.Context, files []*types.FileRef) bool {
	return u.SelectFiles(ctx, files)
}

// SetFiles replaces the whole list with whatever survives validation.
func (u *Uploader) SetFiles(ctx context.Context, files []*types.FileRef) bool {
	var q []emission

	u.mu.Lock()
	if len(u.state.Files) > 0 {
		u.state.Files = nil
		q = append(q, emission{events.FilesChanged, events.FilesChangedPayload{}})
	}
	u.mu.Unlock()

	u.flush(q)
	return u.SelectFiles(ctx, files)
}

// RemoveFile drops one file by ID. It returns false when no file with
// that ID is in the list.
func (u *Uploader) RemoveFile(id string) bool {
	var q []emission
	var removedName string

	u.mu.Lock()
	for i, f := range u.state.Files {
		if f.ID == id {
			removedName = f.Name
			u.state.Files = append(u.state.Files[:i], u.state.Files[i+1:]...)
			q = append(q, emission{events.FilesChanged, events.FilesChangedPayload{
				Files: snapshotFiles(u.state.Files),
			}})
			break
		}
	}
	u.mu.Unlock()

	u.flush(q)
	if removedName != "" {
		u.polite.Announce(fmt.Sprintf("Removed %s", removedName))
		return true
	}
	return false
}

// ClearFiles empties the file list.
func (u *Uploader) ClearFiles() {
	var q []emission

	u.mu.Lock()
	if len(u.state.Files) > 0 {
		u.state.Files = nil
		q = append(q, emission{events.FilesChanged, events.FilesChangedPayload{}})
	}
	u.mu.Unlock()

	u.flush(q)
}

// Reset returns the uploader to an empty, idle state: no files, no error,
// no drag highlight. The mode and disabled flags are untouched. Reset is
// idempotent and always observable through the reset event.
func (u *Uploader) Reset() {
	var q []emission

	u.mu.Lock()
	if len(u.state.Files) > 0 {
		q = append(q, emission{events.FilesChanged, events.FilesChangedPayload{}})
	}
	u.state.Files = nil
	u.state.Error = ""
	u.state.IsDragOver = false
	u.state.DragCounter = 0
	q = append(q, emission{events.Reset, nil})
	u.mu.Unlock()

	u.flush(q)
}

// ValidateFiles runs the validation checks without touching uploader
// state or emitting events. The results are positional with the input.
func (u *Uploader) ValidateFiles(ctx context.Context, files []*types.FileRef) []types.ValidationResult {
	out := make([]types.ValidationResult, len(files))
	for i, f := range files {
		out[i] = u.pipeline.ValidateFile(ctx, f)
	}
	return out
}

// OpenFileDialog asks the front-end to present its file picker. Without a
// registered opener, or while disabled, the request is dropped.
func (u *Uploader) OpenFileDialog() {
	u.mu.Lock()
	disabled := u.state.ComponentDisabled
	fn := u.dialogFn
	u.mu.Unlock()

	if disabled {
		return
	}
	if fn == nil {
		log.Debug("file dialog requested but no opener is registered")
		return
	}
	fn()
}

// Focus returns where keyboard focus currently sits.
func (u *Uploader) Focus() FocusTarget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focus
}

// SetFocus moves keyboard focus, honoring the disabled flags: a disabled
// toggle deflects focus to the upload area, and a disabled component
// accepts no focus at all.
func (u *Uploader) SetFocus(t FocusTarget) FocusTarget {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state.ComponentDisabled {
		u.focus = FocusNone
		return u.focus
	}
	if t == FocusToggle && u.state.ToggleDisabled {
		t = FocusArea
	}
	u.focus = t
	return u.focus
}
