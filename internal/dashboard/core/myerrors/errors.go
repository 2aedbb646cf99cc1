package myerrors

import (
	"errors"
	"fmt"

	"shuttle-admin/internal/dashboard/core/domain/dto"
)

var (
	ErrValidation   = errors.New("form is invalid")
	ErrRejected     = errors.New("request rejected by backend")
	ErrBusy         = errors.New("operation already in progress")
	ErrNotFound     = errors.New("record not found")
	ErrNoSelection  = errors.New("nothing selected")
	ErrModalClosed  = errors.New("modal is not open")
	ErrWidgetClosed = errors.New("map widget is closed")
	ErrNotSupported = errors.New("operation not supported")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDisposed     = errors.New("module disposed")
	ErrUnknownField = errors.New("unknown form field")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status   int                     `json:"-"`
	Message  string                  `json:"message"`
	Messages []dto.ValidationMessage `json:"messages"`
}

func (e *APIError) Error() string {
	if msg := e.UserMessage(); msg != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api status %d", e.Status)
}

// UserMessage is the text the backend meant for the operator, if any.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return dto.FirstMessage(e.Messages)
}

// ServerMessage extracts the backend message from err, falling back to def.
func ServerMessage(err error, def string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.UserMessage(); msg != "" {
			return msg
		}
	}
	return def
}
