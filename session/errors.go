package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/player"
)

// Kind classifies why a command did not succeed.
type Kind string

const (
	// Conflict means the command is valid but blocked by the current state.
	Conflict Kind = "conflict"
	// Validation means the request itself is malformed or out of range.
	Validation Kind = "validation"
	// NotFound means a referenced file does not exist.
	NotFound Kind = "not_found"
	// AlreadyExists means an upload would overwrite a file.
	AlreadyExists Kind = "already_exists"
	// Unavailable means the engine is gone; an operator has to intervene.
	Unavailable Kind = "unavailable"
	// Transient means the engine rejected or did not confirm the command; the user may retry.
	Transient Kind = "transient"
)

// Error is returned by every controller operation that does not succeed.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func reject(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// classify turns an engine or library failure into an Error.
func classify(message string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	wrap := func(kind Kind, status int) *Error {
		return &Error{Kind: kind, Status: status, Message: message, Err: err}
	}

	switch {
	case errors.Is(err, player.ErrUnavailable):
		return wrap(Unavailable, http.StatusServiceUnavailable)
	case errors.Is(err, player.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return wrap(Transient, http.StatusGatewayTimeout)
	case errors.Is(err, media.ErrExists):
		return wrap(AlreadyExists, http.StatusConflict)
	case errors.Is(err, media.ErrNotFound), errors.Is(err, media.ErrOutsideRoot):
		return wrap(NotFound, http.StatusNotFound)
	case errors.Is(err, media.ErrInvalidName), errors.Is(err, player.ErrOutOfRange):
		return wrap(Validation, http.StatusUnprocessableEntity)
	default:
		return wrap(Transient, http.StatusBadGateway)
	}
}

// StatusOf returns the HTTP status for err, 500 for errors the controller did not produce.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the human message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsKind reports whether err is an Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
