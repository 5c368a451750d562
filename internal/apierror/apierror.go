// Package apierror provides typed domain errors and the standardized error
// response structures for the API. All errors returned to clients go through
// this package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error. Handlers map kinds to HTTP status codes;
// services never deal with HTTP directly.
type Kind string

const (
	// KindValidation: a required field is missing or invalid — detected
	// before any write.
	KindValidation Kind = "validation_error"
	// KindInvalidState: the operation targets an entity outside the
	// required lifecycle state (e.g. mutating a paid comanda).
	KindInvalidState Kind = "invalid_state"
	// KindNotFound: a referenced entity does not exist or is inactive.
	KindNotFound Kind = "not_found"
	// KindConflict: a scheduling conflict (staff already booked).
	KindConflict Kind = "conflict"
	// KindDependency: a write in a multi-step sequence failed after prior
	// steps succeeded. EntityIDs identifies the partially-applied state so
	// a reconciliation step can finish or undo the sequence.
	KindDependency Kind = "dependency_failure"
	// KindInternal: anything else.
	KindInternal Kind = "internal"
)

// Error is the canonical domain error carried across service boundaries.
type Error struct {
	Kind Kind
	Msg  string
	// Fields holds per-field validation messages (KindValidation only)
	Fields map[string]string
	// EntityIDs names the entities already written when a mid-sequence
	// failure occurred (KindDependency only)
	EntityIDs map[string]string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a domain error of the given kind.
func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Ef builds a domain error with a formatted message.
func Ef(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ── Response envelopes ───────────────────────────────────────────────────────

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code      string            `json:"code"`
	Detail    string            `json:"detail"`
	Fields    map[string]string `json:"fields,omitempty"`
	EntityIDs map[string]string `json:"entity_ids,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Code: string(KindInternal), Detail: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{Code: string(KindValidation), Detail: "validation failed", Fields: fields}
}

// Envelope converts a domain error into the wire representation.
func Envelope(err error) *APIError {
	var de *Error
	if errors.As(err, &de) {
		return &APIError{
			Code:      string(de.Kind),
			Detail:    de.Msg,
			Fields:    de.Fields,
			EntityIDs: de.EntityIDs,
		}
	}
	return New(err.Error())
}
