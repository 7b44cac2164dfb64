package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks network failures and unparseable response bodies.
	ErrTransport = errors.New("transport failure")
	// ErrUnauthorized marks a 401 rejection from the backing API.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation marks a non-2xx response carrying a structured
	// validation-error list.
	ErrValidation = errors.New("validation failed")
	// ErrUnknown is the fallback category for everything else.
	ErrUnknown = errors.New("request failed")
)

// parseFailedMessage is the fixed message used when a response body cannot
// be decoded.
const parseFailedMessage = "failed to parse server response"

// Error is the typed error every API failure is surfaced as.
//
// Status is 0 for failures that never produced an HTTP response. Message is
// the server-supplied message when one was present, otherwise derived from
// the status text. Errors carries the optional validation-error list.
type Error struct {
	Status  int
	Message string
	Errors  []string

	transport bool
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// ServerMessage returns the human-readable message, for callers that bind it
// into UI state.
func (e *Error) ServerMessage() string {
	return e.Message
}

// Unwrap maps the error onto its taxonomy sentinel so errors.Is works.
func (e *Error) Unwrap() error {
	switch {
	case e.transport || e.Status == 0:
		return ErrTransport
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case len(e.Errors) > 0:
		return ErrValidation
	default:
		return ErrUnknown
	}
}

func newTransportError(status int, message string) *Error {
	return &Error{Status: status, Message: message, transport: true}
}

func newParseError(status int) *Error {
	return newTransportError(status, parseFailedMessage)
}

// statusMessage derives a generic message from the HTTP status when the
// server supplied none.
func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
