// Package domainerrors defines coded errors shared across services and
// transports. Services attach a Code so handlers can translate failures
// without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and metrics.
type Code string

const (
	// CodeBadRequest covers malformed requests (unparseable body, bad id format).
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput covers well-formed requests missing required domain
	// fields, e.g. an evidence submission without an evidence reference.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound covers unknown caregiver, child, definition, or progress ids.
	CodeNotFound Code = "not_found"
	// CodeInvalidState covers state-machine transitions attempted from a
	// disallowed status.
	CodeInvalidState Code = "invalid_state_transition"
	// CodeUnavailable covers downstream dependency failures (registry,
	// encounter log, localization provider, stores).
	CodeUnavailable Code = "dependency_unavailable"
	// CodeInternal covers everything the caller cannot act on.
	CodeInternal Code = "internal_error"
)

// Error carries a code and a human-readable description.
type Error struct {
	Code        Code
	Description string
	cause       error
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a fixed description.
func New(code Code, description string) error {
	return &Error{Code: code, Description: description}
}

// Newf builds a coded error with a formatted description.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and description to an underlying cause. The cause stays
// reachable through errors.Is/As for logging; the description is what callers
// may surface.
func Wrap(code Code, description string, cause error) error {
	return &Error{Code: code, Description: description, cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that branch on codes.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so transports never leak raw failures as client errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Description extracts the human-readable description, empty for uncoded errors.
func Description(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Description
	}
	return ""
}
