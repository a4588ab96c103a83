package domain

import "errors"

// Domain errors
var (
	ErrDocumentOpen      = errors.New("document could not be opened")
	ErrUnknownGlyphTable = errors.New("unknown glyph table")
	ErrUnknownStore      = errors.New("unknown store driver")
	ErrUnknownEngine     = errors.New("unknown pdf engine")
	ErrStoreNotReady     = errors.New("store not initialized")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
