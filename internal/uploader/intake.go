package uploader

import (
	"context"
	"fmt"
	"strings"

	"pdfsmaller/internal/events"
	"pdfsmaller/internal/log"
	"pdfsmaller/internal/validate"
	"pdfsmaller/pkg/types"
)

// SelectFiles feeds files picked through a selection gesture into the
// intake pipeline. It returns true when at least one file was accepted.
func (u *Uploader) SelectFiles(ctx context.Context, files []*types.FileRef) bool {
	return u.processFiles(ctx, files, types.SourceSelection)
}

// DragEnter records a drag entering the upload area. Nested enter/leave
// pairs from child regions are balanced by a counter.
func (u *Uploader) DragEnter(fileCount int) {
	var q []emission

	u.mu.Lock()
	if !u.state.ComponentDisabled {
		u.state.DragCounter++
		if !u.state.IsDragOver {
			u.state.IsDragOver = true
			q = append(q, emission{events.DragEnter, events.DragPayload{Files: fileCount}})
		}
	}
	u.mu.Unlock()

	u.flush(q)
}

// DragOver records drag movement over the upload area.
func (u *Uploader) DragOver(fileCount int) {
	var q []emission

	u.mu.Lock()
	if !u.state.ComponentDisabled && u.state.IsDragOver {
		q = append(q, emission{events.DragOver, events.DragPayload{Files: fileCount}})
	}
	u.mu.Unlock()

	u.flush(q)
}

// DragLeave records a drag leaving the upload area. The hover highlight
// drops only when the outermost leave arrives.
func (u *Uploader) DragLeave() {
	var q []emission

	u.mu.Lock()
	if u.state.DragCounter > 0 {
		u.state.DragCounter--
	}
	if u.state.DragCounter == 0 && u.state.IsDragOver {
		u.state.IsDragOver = false
		q = append(q, emission{events.DragLeave, events.DragPayload{}})
	}
	u.mu.Unlock()

	u.flush(q)
}

// Drop completes a drag gesture: the hover state clears, the drop event
// fires, and the dropped files run through the intake pipeline.
func (u *Uploader) Drop(ctx context.Context, files []*types.FileRef) bool {
	var q []emission

	u.mu.Lock()
	disabled := u.state.ComponentDisabled
	u.state.DragCounter = 0
	if u.state.IsDragOver {
		u.state.IsDragOver = false
		q = append(q, emission{events.DragLeave, events.DragPayload{}})
	}
	if !disabled {
		q = append(q, emission{events.Drop, events.DragPayload{Files: len(files)}})
	}
	u.mu.Unlock()

	u.flush(q)
	if disabled {
		return false
	}
	return u.processFiles(ctx, files, types.SourceDrop)
}

// processFiles is the single intake path. It brackets the run with
// processing events, applies mode adaptation and validation, merges the
// accepted files into the list, and reports the outcome.
func (u *Uploader) processFiles(ctx context.Context, files []*types.FileRef, source types.IntakeSource) bool {
	u.mu.Lock()
	if u.state.ComponentDisabled {
		u.mu.Unlock()
		log.Debug("intake ignored: component disabled")
		return false
	}
	if u.state.IsProcessing {
		u.mu.Unlock()
		log.Warn("intake ignored: a validation run is already in progress")
		return false
	}
	u.state.IsProcessing = true
	u.state.Error = ""
	mode := u.state.CurrentMode
	u.mu.Unlock()

	u.dispatcher.Emit(events.ProcessingStart, events.ProcessingPayload{Files: len(files)})

	result, adaptation, err := u.runPipeline(ctx, files, mode, source)
	if err != nil {
		u.mu.Lock()
		u.state.IsProcessing = false
		u.state.Error = err.Error()
		u.mu.Unlock()

		log.LogWithFields(log.F("error", err)).Error("file processing failed")
		u.dispatcher.Emit(events.ProcessingError, events.ProcessingPayload{
			Files: len(files),
			Error: err.Error(),
		})
		return false
	}

	var q []emission
	var politeMsg, assertiveMsg string

	u.mu.Lock()
	if adaptation.Discarded > 0 {
		q = append(q, emission{events.FilesAdapted, events.FilesAdaptedPayload{
			OriginalFiles: len(files),
			AdaptedFiles:  len(adaptation.Files),
			Mode:          mode,
			Reason:        validate.ReasonModeLimitation,
		}})
	}

	if len(result.Rejected) > 0 {
		issues := rejectionLines(result.Rejected)
		// A lone rejection surfaces its reason directly; the counted
		// wrapper is for multi-file failures.
		if len(result.Rejected) == 1 {
			u.state.Error = strings.Join(result.Rejected[0].Reasons, ", ")
		} else {
			u.state.Error = fmt.Sprintf("%d files failed validation:\n%s",
				len(result.Rejected), strings.Join(issues, "\n"))
		}
		q = append(q, emission{events.ValidationError, events.ValidationIssuesPayload{
			Issues: issues,
			Files:  len(result.Rejected),
		}})
		assertiveMsg = fmt.Sprintf("%d file(s) failed validation", len(result.Rejected))
	}
	if len(result.Warnings) > 0 {
		q = append(q, emission{events.ValidationWarning, events.ValidationIssuesPayload{
			Issues: result.Warnings,
			Files:  len(adaptation.Files),
		}})
	}

	accepted := len(result.Accepted) > 0
	if accepted {
		replaced := false
		if mode == types.Single {
			replaced = len(u.state.Files) > 0
			u.state.Files = snapshotFiles(result.Accepted)
		} else {
			u.state.Files = append(u.state.Files, result.Accepted...)
		}

		q = append(q, emission{events.FilesSelected, events.FilesSelectedPayload{
			Files:    snapshotFiles(u.state.Files),
			NewFiles: snapshotFiles(result.Accepted),
			Mode:     mode,
			Replaced: replaced,
		}})
		q = append(q, emission{events.FilesProcessed, events.FilesProcessedPayload{
			ValidFiles:   len(result.Accepted),
			TotalFiles:   len(files),
			AdaptedFiles: len(adaptation.Files),
			Errors:       len(result.Rejected),
			Warnings:     len(result.Warnings),
		}})
		politeMsg = acceptedText(result.Accepted, mode)
	}

	q = append(q, emission{events.ProcessingComplete, events.ProcessingPayload{Files: len(files)}})
	u.state.IsProcessing = false
	u.mu.Unlock()

	u.flush(q)
	if assertiveMsg != "" {
		u.assertive.Announce(assertiveMsg)
	}
	if politeMsg != "" {
		u.polite.Announce(politeMsg)
	}
	return accepted
}

// runPipeline executes the validation pipeline off-lock, converting panics
// into processing errors so a bad file cannot take the component down.
func (u *Uploader) runPipeline(ctx context.Context, files []*types.FileRef, mode types.Mode, source types.IntakeSource) (result types.IntakeResult, adaptation validate.Adaptation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected validation failure: %v", r)
		}
	}()
	result, adaptation = u.pipeline.Run(ctx, files, mode, source)
	return result, adaptation, nil
}

func rejectionLines(rejected []types.Rejection) []string {
	lines := make([]string, 0, len(rejected))
	for _, r := range rejected {
		name := ""
		if r.File != nil {
			name = r.File.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(r.Reasons, ", ")))
	}
	return lines
}

func acceptedText(accepted []*types.FileRef, mode types.Mode) string {
	if mode == types.Single && len(accepted) == 1 {
		return fmt.Sprintf("Selected %s", accepted[0].Name)
	}
	return fmt.Sprintf("%d file(s) added", len(accepted))
}
