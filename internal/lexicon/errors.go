package lexicon

import (
	"errors"
	"fmt"
)

// ErrInvalidLexicon is returned when a lexicon fails validation
var ErrInvalidLexicon = errors.New("invalid lexicon")

// ValidationError describes one problem found while validating a lexicon
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid lexicon field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid lexicon: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidLexicon
}

// newValidationError creates a ValidationError with a formatted message
func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
