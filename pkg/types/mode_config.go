package types

// UnlimitedFiles marks a mode with no file-count ceiling.
const UnlimitedFiles = -1

// ModeConfig is the read-only presentation record for a mode. The uploader
// consults it for labels and announcements only; behavior is driven by Mode.
type ModeConfig struct {
	Multiple          bool
	MaxFiles          int
	Label             string
	Instructions      string
	AriaLabel         string
	DragMessage       string
	ProcessingMessage string
	EmptyMessage      string
	Description       string
}

var modeConfigs = map[Mode]ModeConfig{
	Single: {
		Multiple:          false,
		MaxFiles:          1,
		Label:             "Single file",
		Instructions:      "Drop a PDF here or choose a file",
		AriaLabel:         "Single file upload area",
		DragMessage:       "Drop your file to upload it",
		ProcessingMessage: "Checking your file...",
		EmptyMessage:      "No file selected",
		Description:       "Upload one PDF at a time",
	},
	Batch: {
		Multiple:          true,
		MaxFiles:          UnlimitedFiles,
		Label:             "Batch",
		Instructions:      "Drop PDFs here or choose files",
		AriaLabel:         "Batch file upload area",
		DragMessage:       "Drop your files to upload them",
		ProcessingMessage: "Checking your files...",
		EmptyMessage:      "No files selected",
		Description:       "Upload several PDFs together",
	},
}

// ConfigFor returns the presentation record for m. Invalid modes fall back
// to the Single record.
func ConfigFor(m Mode) ModeConfig {
	if cfg, ok := modeConfigs[m]; ok {
		return cfg
	}
	return modeConfigs[Single]
}
