// Package errors provides standardized error handling for the PDFSmaller
// uploader. It defines the error kinds the component reports, helper
// constructors, and predicates for consistent creation, wrapping, and
// handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Mode error kinds
	InvalidMode
	ModeChangeBlocked
	InvalidDefaultMode
	InvalidResolvedMode
	// Preference store error kinds
	SessionPreferenceError
	StoreUnavailable
	// Attribute error kinds
	AttributeValidationError
	AttributeChangeError
	// Pipeline error kinds
	ValidationRejection
	ProcessingError
	// Construction error kinds
	InitializationError
	CriticalInitializationError
)

// String returns the wire name of the kind, as carried in event payloads.
func (k ErrorKind) String() string {
	switch k {
	case InvalidMode:
		return "invalid_mode"
	case ModeChangeBlocked:
		return "mode_change_blocked"
	case InvalidDefaultMode:
		return "invalid_default_mode"
	case InvalidResolvedMode:
		return "invalid_resolved_mode"
	case SessionPreferenceError:
		return "session_preference_error"
	case StoreUnavailable:
		return "store_unavailable"
	case AttributeValidationError:
		return "attribute_validation_error"
	case AttributeChangeError:
		return "attribute_change_error"
	case ValidationRejection:
		return "validation_rejection"
	case ProcessingError:
		return "processing_error"
	case InitializationError:
		return "initialization_error"
	case CriticalInitializationError:
		return "critical_initialization_error"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all uploader errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ModeError represents errors raised by the mode controller
type ModeError struct {
	ApplicationError
	requested string
	current   string
}

// NewModeError creates a new mode error
func NewModeError(msg string, requested, current string, kind ErrorKind, err error) *ModeError {
	return &ModeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		requested: requested,
		current:   current,
	}
}

// Error returns the mode error message
func (e *ModeError) Error() string {
	if e.requested != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: requested=%s current=%s: %v", e.msg, e.requested, e.current, e.err)
		}
		return fmt.Sprintf("%s: requested=%s current=%s", e.msg, e.requested, e.current)
	}
	return e.ApplicationError.Error()
}

// Requested returns the mode that was asked for
func (e *ModeError) Requested() string {
	return e.requested
}

// Current returns the mode the uploader was in when the change was refused
func (e *ModeError) Current() string {
	return e.current
}

// StoreError represents errors from the session preference store
type StoreError struct {
	ApplicationError
	key string
}

// NewStoreError creates a new preference store error
func NewStoreError(msg string, key string, kind ErrorKind, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		key: key,
	}
}

// Error returns the store error message
func (e *StoreError) Error() string {
	if e.key != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: key=%s: %v", e.msg, e.key, e.err)
		}
		return fmt.Sprintf("%s: key=%s", e.msg, e.key)
	}
	return e.ApplicationError.Error()
}

// Key returns the preference key associated with the error
func (e *StoreError) Key() string {
	return e.key
}

// FileValidationError represents a per-file rejection from the pipeline
type FileValidationError struct {
	ApplicationError
	fileName string
	reasons  []string
}

// NewFileValidationError creates a new file validation error
func NewFileValidationError(fileName string, reasons []string) *FileValidationError {
	msg := "file failed validation"
	if len(reasons) > 0 {
		msg = reasons[0]
	}
	return &FileValidationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: ValidationRejection,
		},
		fileName: fileName,
		reasons:  reasons,
	}
}

// Error returns the validation error message
func (e *FileValidationError) Error() string {
	if e.fileName != "" {
		return fmt.Sprintf("%s: %s", e.fileName, e.msg)
	}
	return e.ApplicationError.Error()
}

// FileName returns the name of the rejected file
func (e *FileValidationError) FileName() string {
	return e.fileName
}

// Reasons returns every rejection reason for the file
func (e *FileValidationError) Reasons() []string {
	return e.reasons
}

// AttributeError represents a bad configuration attribute value
type AttributeError struct {
	ApplicationError
	attribute string
	value     string
}

// NewAttributeError creates a new attribute error
func NewAttributeError(msg, attribute, value string, kind ErrorKind) *AttributeError {
	return &AttributeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		attribute: attribute,
		value:     value,
	}
}

// Error returns the attribute error message
func (e *AttributeError) Error() string {
	if e.attribute != "" {
		return fmt.Sprintf("%s: %s=%q", e.msg, e.attribute, e.value)
	}
	return e.ApplicationError.Error()
}

// Attribute returns the attribute name associated with the error
func (e *AttributeError) Attribute() string {
	return e.attribute
}

// Value returns the offending attribute value
func (e *AttributeError) Value() string {
	return e.value
}

// InitError represents a failure during uploader construction
type InitError struct {
	ApplicationError
	fallbackMode string
}

// NewInitError creates a new initialization error. critical forces the
// minimal fallback view with the toggle hidden.
func NewInitError(msg string, critical bool, fallbackMode string, err error) *InitError {
	kind := InitializationError
	if critical {
		kind = CriticalInitializationError
	}
	return &InitError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		fallbackMode: fallbackMode,
	}
}

// FallbackMode returns the mode the degraded uploader runs in
func (e *InitError) FallbackMode() string {
	return e.fallbackMode
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error with an explicit kind
func NewKind(msg string, kind ErrorKind) error {
	return &ApplicationError{
		msg:  msg,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf extracts the kind from any error in the chain, Unknown otherwise.
func KindOf(err error) ErrorKind {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	var modeErr *ModeError
	if errors.As(err, &modeErr) {
		return modeErr.Kind()
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind()
	}
	return Unknown
}

// IsInvalidMode checks if the error is an invalid mode error
func IsInvalidMode(err error) bool {
	var modeErr *ModeError
	if errors.As(err, &modeErr) {
		return modeErr.Kind() == InvalidMode
	}
	return false
}

// IsModeChangeBlocked checks if the error is a blocked mode change
func IsModeChangeBlocked(err error) bool {
	var modeErr *ModeError
	if errors.As(err, &modeErr) {
		return modeErr.Kind() == ModeChangeBlocked
	}
	return false
}

// IsStoreUnavailable checks if the error reports an unavailable session store
func IsStoreUnavailable(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind() == StoreUnavailable
	}
	return false
}

// IsValidationRejection checks if the error is a per-file rejection
func IsValidationRejection(err error) bool {
	var valErr *FileValidationError
	return errors.As(err, &valErr)
}

// IsCritical checks if the error is a critical initialization error
func IsCritical(err error) bool {
	var initErr *InitError
	if errors.As(err, &initErr) {
		return initErr.Kind() == CriticalInitializationError
	}
	return false
}
