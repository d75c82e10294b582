package types

// ValidationResult is the per-file outcome of the validation pipeline.
// It is folded into emitted events and then discarded.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AddError records a rejection reason and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning records a non-blocking observation.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Rejection pairs a file with the reasons it was refused.
type Rejection struct {
	File    *FileRef `json:"file"`
	Reasons []string `json:"reasons"`
}

// IntakeResult is the partitioned output of one pipeline run. Accepted and
// rejected are disjoint and together cover the adapted input list.
type IntakeResult struct {
	Accepted []*FileRef  `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
	Warnings []string    `json:"warnings"`
}

// ErrorCount returns the number of rejected files.
func (r *IntakeResult) ErrorCount() int {
	return len(r.Rejected)
}
