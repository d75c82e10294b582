package validate

import (
	"fmt"

	"pdfsmaller/pkg/types"
)

// Adaptation reasons carried in files-adapted events.
const (
	ReasonModeLimitation = "mode-limitation"
	ReasonModeSwitch     = "mode-switch"
)

// Adaptation is the outcome of projecting an intake list through the
// current mode.
type Adaptation struct {
	Files     []*types.FileRef
	Discarded int
	Warning   string
}

// Adapt applies the mode-sensitive selection policy to an intake list:
// batch retains everything; single retains the first file of a drop and the
// last file of a dialog selection.
func Adapt(files []*types.FileRef, mode types.Mode, source types.IntakeSource) Adaptation {
	if mode != types.Single || len(files) <= 1 {
		return Adaptation{Files: files}
	}

	var kept *types.FileRef
	if source == types.SourceDrop {
		kept = files[0]
	} else {
		kept = files[len(files)-1]
	}

	discarded := len(files) - 1
	return Adaptation{
		Files:     []*types.FileRef{kept},
		Discarded: discarded,
		Warning: fmt.Sprintf("Single file mode: only %q was kept (%d file(s) ignored). Switch to batch mode to upload several files at once.",
			kept.Name, discarded),
	}
}

// AdaptForModeSwitch projects the current file list through a new mode.
// Switching to single keeps the first file; switching to batch keeps all.
func AdaptForModeSwitch(files []*types.FileRef, newMode types.Mode) Adaptation {
	if newMode != types.Single || len(files) <= 1 {
		return Adaptation{Files: files}
	}

	discarded := len(files) - 1
	return Adaptation{
		Files:     files[:1],
		Discarded: discarded,
		Warning: fmt.Sprintf("Switched to single file mode: kept %q, removed %d file(s).",
			files[0].Name, discarded),
	}
}
