package messages

import (
	"pdfsmaller/internal/events"
	"pdfsmaller/pkg/types"
)

type ErrorMsg struct {
	Err error
}

// UploaderEventMsg wraps one uploader event for the update loop.
type UploaderEventMsg struct {
	Event events.Event
}

// AnnouncementMsg carries a live-region announcement into the status line.
type AnnouncementMsg struct {
	Text      string
	Assertive bool
}

// FilesPickedMsg delivers files resolved from a path the user typed.
type FilesPickedMsg struct {
	Files []*types.FileRef
}
