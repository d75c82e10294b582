// Package validate implements the uploader's file intake pipeline: the
// mode-sensitive adaptation of incoming file lists, the synchronous
// per-file checks, and the PDF signature sniff.
package validate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pdfsmaller/internal/config"
	"pdfsmaller/internal/log"
	"pdfsmaller/pkg/types"
)

// MaxNameLength is the longest accepted file name.
const MaxNameLength = 255

// sizeWarnRatio is the fraction of the size ceiling past which a
// non-blocking warning is recorded.
const sizeWarnRatio = 0.8

// NoValidFilesMessage is reported when a run accepts nothing and rejects
// nothing.
const NoValidFilesMessage = "No valid files were selected."

// Pipeline validates candidate files against the uploader configuration.
type Pipeline struct {
	rules   []AcceptRule
	accept  string
	maxSize int64
}

// New creates a pipeline for an accept list and a size ceiling in bytes.
func New(accept string, maxSize int64) *Pipeline {
	if maxSize <= 0 {
		maxSize = config.DefaultMaxSize
	}
	return &Pipeline{
		rules:   ParseAccept(accept),
		accept:  accept,
		maxSize: maxSize,
	}
}

// NewFromConfig creates a pipeline from the uploader configuration.
func NewFromConfig(cfg *config.Config) *Pipeline {
	return New(cfg.Uploader.Accept, cfg.MaxSizeBytes())
}

// MaxSize returns the configured ceiling in bytes.
func (p *Pipeline) MaxSize() int64 {
	return p.maxSize
}

// ValidateFile runs every per-file check, including the signature sniff for
// PDF-typed files. The sniff is the pipeline's only suspension point and
// honors ctx.
func (p *Pipeline) ValidateFile(ctx context.Context, f *types.FileRef) types.ValidationResult {
	res := p.checkFile(f)
	if !res.IsValid {
		return res
	}

	if f.IsPDFTyped() {
		p.sniffPDF(ctx, f, &res)
	}
	return res
}

// checkFile runs the synchronous checks only.
func (p *Pipeline) checkFile(f *types.FileRef) types.ValidationResult {
	res := types.ValidationResult{IsValid: true}

	if f == nil || f.Name == "" {
		res.AddError("File is not valid")
		return res
	}

	if f.Size == 0 {
		res.AddError("File is empty")
	} else if f.Size > p.maxSize {
		res.AddError(fmt.Sprintf("File is too large (%s). Maximum size is %s.",
			config.FormatSize(f.Size), config.FormatSize(p.maxSize)))
	} else if float64(f.Size) > float64(p.maxSize)*sizeWarnRatio {
		res.AddWarning(fmt.Sprintf("File is close to the size limit (%s of %s)",
			config.FormatSize(f.Size), config.FormatSize(p.maxSize)))
	}

	if !AnyMatch(p.rules, f.Ext(), f.MimeType) {
		label := strings.ToUpper(f.Ext())
		if label == "" {
			label = f.MimeType
		}
		res.AddError(fmt.Sprintf("File type %q not supported. Accepted types: %s",
			label, p.accept))
	}

	if len(f.Name) > MaxNameLength {
		res.AddError(fmt.Sprintf("File name is too long (maximum %d characters)", MaxNameLength))
	}

	if hasProblematicChars(f.Name) {
		res.AddWarning("File name contains characters that may not be handled correctly")
	}

	return res
}

// pdfSignature is the magic prefix of every PDF, per the header sniff.
const pdfSignature = "%PDF-"

// sniffPDF reads the first 8 bytes of the payload and rejects files whose
// decoded ASCII does not start with the PDF signature. Read failures
// degrade to a warning.
func (p *Pipeline) sniffPDF(ctx context.Context, f *types.FileRef, res *types.ValidationResult) {
	if ctx.Err() != nil {
		res.AddWarning("could not verify PDF format")
		return
	}

	rc, err := f.Open()
	if err != nil {
		log.LogWithFields(log.F("file", f.Name), log.F("error", err)).Warn("PDF sniff failed")
		res.AddWarning("could not verify PDF format")
		return
	}
	defer rc.Close()

	// Readers may return fewer bytes per call than asked; keep reading
	// until the full header is in hand or the payload runs out.
	buf := make([]byte, 8)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		log.LogWithFields(log.F("file", f.Name), log.F("error", err)).Warn("PDF sniff failed")
		res.AddWarning("could not verify PDF format")
		return
	}

	if !strings.HasPrefix(string(buf[:n]), pdfSignature) {
		res.AddError("File does not appear to be a valid PDF")
	}
}

// Run adapts the intake list for the current mode and validates every
// retained file, producing the partitioned result. Accepted and rejected
// are disjoint and together cover the adapted list.
func (p *Pipeline) Run(ctx context.Context, files []*types.FileRef, mode types.Mode, source types.IntakeSource) (types.IntakeResult, Adaptation) {
	adaptation := Adapt(files, mode, source)

	var result types.IntakeResult
	if adaptation.Warning != "" {
		result.Warnings = append(result.Warnings, adaptation.Warning)
	}

	for _, f := range adaptation.Files {
		res := p.ValidateFile(ctx, f)
		result.Warnings = append(result.Warnings, res.Warnings...)
		if res.IsValid {
			result.Accepted = append(result.Accepted, f)
		} else {
			result.Rejected = append(result.Rejected, types.Rejection{File: f, Reasons: res.Errors})
		}
	}

	if len(result.Accepted) == 0 && len(result.Rejected) == 0 {
		result.Warnings = append(result.Warnings, NoValidFilesMessage)
	}

	return result, adaptation
}

// hasProblematicChars reports file names carrying characters that commonly
// break downstream tooling: <>:"|?* and ASCII control characters.
func hasProblematicChars(name string) bool {
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '|', '?', '*':
			return true
		}
		if r <= 0x1f {
			return true
		}
	}
	return false
}
