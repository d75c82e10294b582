package uploader

import (
	"pdfsmaller/pkg/types"
)

// State is the uploader's mutable record. All access goes through the
// Uploader's lock; snapshots handed out by accessors are copies.
type State struct {
	CurrentMode         types.Mode
	ModeTransitioning   bool
	ToggleDisabled      bool
	ComponentDisabled   bool
	IsDragOver          bool
	IsProcessing        bool
	DragCounter         int
	Files               []*types.FileRef
	Error               string
	InitializationError bool
}

// FocusTarget names where keyboard focus sits inside the component.
type FocusTarget string

const (
	FocusNone   FocusTarget = ""
	FocusToggle FocusTarget = "toggle"
	FocusArea   FocusTarget = "area"
)

// snapshotFiles returns a copy of the file list so callers cannot mutate
// the uploader's view.
func snapshotFiles(files []*types.FileRef) []*types.FileRef {
	out := make([]*types.FileRef, len(files))
	copy(out, files)
	return out
}
