// Package events defines the uploader's externally observable event
// vocabulary and the dispatcher that delivers it. The vocabulary is
// append-only: renaming or removing an event name or a payload field is a
// breaking change for consumers.
package events

import (
	"time"

	"pdfsmaller/pkg/types"
)

// Name identifies one event in the vocabulary.
type Name string

const (
	// Initialized is emitted once after successful construction.
	// Payload: InitializedPayload
	Initialized Name = "initialized"

	// InitializationError is emitted when construction fails and the
	// uploader degrades to the minimal fallback view.
	// Payload: InitializationErrorPayload
	InitializationError Name = "initialization-error"

	// ModeChanged is emitted after a successful mode switch.
	// Payload: ModeChangedPayload
	ModeChanged Name = "mode-changed"

	// ModeChangeError is emitted when a mode change is rejected.
	// Payload: ModeChangeErrorPayload
	ModeChangeError Name = "mode-change-error"

	// ModeInitialized is emitted once initial-mode resolution completes.
	// Payload: ModeInitializedPayload
	ModeInitialized Name = "mode-initialized"

	// FilesAdapted is emitted when the file list changed because of the
	// mode, either at intake or on a mode switch.
	// Payload: FilesAdaptedPayload
	FilesAdapted Name = "files-adapted"

	// FilesSelected is emitted when accepted files are added to the list.
	// Payload: FilesSelectedPayload
	FilesSelected Name = "files-selected"

	// FilesChanged is emitted on any non-intake file list mutation
	// (removal, clear, programmatic set). Payload: FilesChangedPayload
	FilesChanged Name = "files-changed"

	// Drag lifecycle events. Payload: DragPayload
	DragEnter Name = "drag-enter"
	DragLeave Name = "drag-leave"
	DragOver  Name = "drag-over"
	Drop      Name = "drop"

	// Validation pipeline brackets. Payload: ProcessingPayload
	ProcessingStart    Name = "processing-start"
	ProcessingComplete Name = "processing-complete"
	ProcessingError    Name = "processing-error"

	// ValidationError aggregates per-file rejections after a run.
	// Payload: ValidationIssuesPayload
	ValidationError Name = "validation-error"

	// ValidationWarning aggregates non-blocking observations after a run.
	// Payload: ValidationIssuesPayload
	ValidationWarning Name = "validation-warning"

	// FilesProcessed summarizes a run that accepted at least one file.
	// Payload: FilesProcessedPayload
	FilesProcessed Name = "files-processed"

	// Reset is emitted on programmatic reset. No payload.
	Reset Name = "reset"

	// AttributeValidationError reports a bad runtime attribute value.
	// Payload: AttributeErrorPayload
	AttributeValidationError Name = "attribute-validation-error"
)

// Event is one emission. Every event carries its timestamp; payloads are
// stable and consumers must not rely on undocumented fields.
type Event struct {
	Name      Name
	Timestamp time.Time
	Payload   interface{}
}

// InitializedPayload accompanies Initialized.
type InitializedPayload struct {
	Mode               types.Mode `json:"mode"`
	LegacyMultiple     bool       `json:"legacyMultiple"`
	DefaultMode        string     `json:"defaultMode"`
	RememberPreference bool       `json:"rememberPreference"`
}

// InitializationErrorPayload accompanies InitializationError.
type InitializationErrorPayload struct {
	Error        string     `json:"error"`
	FallbackMode types.Mode `json:"fallbackMode"`
}

// ModeChangedPayload accompanies ModeChanged.
type ModeChangedPayload struct {
	OldMode       types.Mode    `json:"oldMode"`
	NewMode       types.Mode    `json:"newMode"`
	FilesAffected int           `json:"filesAffected"`
	TriggeredBy   types.Trigger `json:"triggeredBy"`
}

// ModeChangeErrorPayload accompanies ModeChangeError.
type ModeChangeErrorPayload struct {
	Error         string     `json:"error"`
	RequestedMode string     `json:"requestedMode"`
	CurrentMode   types.Mode `json:"currentMode"`
}

// ModeInitializedPayload accompanies ModeInitialized.
type ModeInitializedPayload struct {
	InitialMode              types.Mode `json:"initialMode"`
	BasedOnMultipleAttribute bool       `json:"basedOnMultipleAttribute"`
	BasedOnDefaultMode       bool       `json:"basedOnDefaultMode"`
	SessionPreferenceUsed    bool       `json:"sessionPreferenceUsed"`
}

// FilesAdaptedPayload accompanies FilesAdapted.
type FilesAdaptedPayload struct {
	OriginalFiles int        `json:"originalFiles"`
	AdaptedFiles  int        `json:"adaptedFiles"`
	Mode          types.Mode `json:"mode"`
	Reason        string     `json:"reason"`
}

// FilesSelectedPayload accompanies FilesSelected.
type FilesSelectedPayload struct {
	Files    []*types.FileRef `json:"files"`
	NewFiles []*types.FileRef `json:"newFiles"`
	Mode     types.Mode       `json:"mode"`
	Replaced bool             `json:"replaced"`
}

// FilesChangedPayload accompanies FilesChanged.
type FilesChangedPayload struct {
	Files []*types.FileRef `json:"files"`
}

// DragPayload accompanies the drag lifecycle events.
type DragPayload struct {
	Files int `json:"files"`
}

// ProcessingPayload accompanies the processing bracket events.
type ProcessingPayload struct {
	Files int    `json:"files"`
	Error string `json:"error,omitempty"`
}

// ValidationIssuesPayload accompanies ValidationError and ValidationWarning.
// Each issue line pairs a file name with a reason.
type ValidationIssuesPayload struct {
	Issues []string `json:"issues"`
	Files  int      `json:"files"`
}

// FilesProcessedPayload accompanies FilesProcessed.
type FilesProcessedPayload struct {
	ValidFiles   int `json:"validFiles"`
	TotalFiles   int `json:"totalFiles"`
	AdaptedFiles int `json:"adaptedFiles"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
}

// AttributeErrorPayload accompanies AttributeValidationError.
type AttributeErrorPayload struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Error     string `json:"error"`
}
