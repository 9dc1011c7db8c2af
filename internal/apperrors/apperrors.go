// Package apperrors defines the error kinds the service layer returns and
// the handlers translate into HTTP envelopes. Kinds are matched with
// errors.Is so lower layers can wrap them with context.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no caller identity was available.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound means the id did not resolve, or resolved to an inactive record.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition means the requested action is not a legal
	// successor of the current status, including lost concurrent updates.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrValidation means the payload is malformed.
	ErrValidation = errors.New("validation error")
	// ErrUnexpected wraps lower-layer failures such as storage errors.
	ErrUnexpected = errors.New("unexpected error")
)

// Wrap attaches a kind to an underlying error while keeping both visible to
// errors.Is.
func Wrap(kind error, err error) error {
	if err == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Wrapf attaches a kind to a formatted message.
func Wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)
}
