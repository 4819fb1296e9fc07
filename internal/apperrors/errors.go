package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the draw engine. Handlers map these to HTTP status codes
// with errors.Is; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrNotFound indicates an unknown template or draw id.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique-constraint violation (e.g. duplicate slug).
	ErrConflict = errors.New("conflict")

	// ErrCutoff indicates a preselection attempted inside the cutoff window.
	ErrCutoff = errors.New("inside cutoff window")

	// ErrState indicates an illegal lifecycle transition, such as mutating a
	// published draw.
	ErrState = errors.New("illegal state transition")
)

// ValidationError describes malformed input rejected before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GenerationError indicates schedule generation failed partway. The operation
// is idempotent modulo already-created rows, so callers may retry safely.
type GenerationError struct {
	Date time.Time
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("draw generation failed for %s: %v", e.Date.Format("2006-01-02"), e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
