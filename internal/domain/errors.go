package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate keyed resource (slug, subscriber email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnauthorized signals a missing or wrong admin credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrGenerationFailed signals an LLM provider failure.
	ErrGenerationFailed = errors.New("content generation failed")
)

// Error pairs a sentinel kind with a message safe to show to the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Validationf creates a validation error with a caller-facing message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf creates an already-exists error with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

// PublicMessage returns the caller-facing message carried by err, or "" when
// err has none.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return ""
}
