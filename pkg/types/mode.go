package types

// Mode is the uploader's capability switch. Single admits at most one file,
// Batch admits many.
type Mode string

const (
	// Single is the default mode; the file list never holds more than one entry.
	Single Mode = "single"
	// Batch lifts the single-file limit.
	Batch Mode = "batch"
)

// Valid reports whether m is one of the two supported modes.
func (m Mode) Valid() bool {
	return m == Single || m == Batch
}

// Other returns the opposite mode. Invalid modes map to Batch so that
// toggling from an unknown state still lands inside the enumeration.
func (m Mode) Other() Mode {
	if m == Batch {
		return Single
	}
	return Batch
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a raw attribute value into a Mode.
// The second result is false for anything outside the enumeration.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, m.Valid()
}

// Trigger identifies what initiated a mode change.
type Trigger string

const (
	TriggerProgrammatic Trigger = "programmatic"
	TriggerClick        Trigger = "click"
	TriggerKeyboard     Trigger = "keyboard"
)

// IntakeSource identifies which input channel delivered candidate files.
type IntakeSource string

const (
	// SourceSelection is the file-dialog channel. In single mode the last
	// file of a selection wins.
	SourceSelection IntakeSource = "selection"
	// SourceDrop is the drop channel. In single mode the first file of a
	// drop wins.
	SourceDrop IntakeSource = "drop"
)
