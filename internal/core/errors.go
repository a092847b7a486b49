package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeInvalidCapacity = "invalid_capacity"
	ErrCodeEmptyAuthor     = "empty_author"
	ErrCodeNilSource       = "nil_source"
	ErrCodeCancelled       = "cancelled"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrEmptyAuthor     = errors.New("author must not be empty")
	ErrNilSource       = errors.New("char source is nil")
)

// CoreError wraps a code, the failing operation and the underlying error.
type CoreError struct {
	Code string
	Op   string
	Err  error
}

func (e *CoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("core.%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("core.%s: %v", e.Op, e.Err)
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

func coreError(code, op string, err error) *CoreError {
	return &CoreError{Code: code, Op: op, Err: err}
}

// ErrorCode extracts the domain code from err, or "" when err is not a CoreError.
func ErrorCode(err error) string {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
