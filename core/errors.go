package core

import "github.com/pkg/errors"

// FieldError points at one invalid field of a store write: a roster row,
// an attendance entry, a grade cell.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries the field-level failures of a rejected domain
// write. The API maps it to a field/message response.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown asks the API server to stop gracefully, eg. when a handler
// detects the storage adapter can no longer be trusted.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
