package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/editor"
	"github.com/jonathan/resumeace/internal/fetch"
	"github.com/jonathan/resumeace/internal/ingestion"
)

// ErrNotFound indicates a mode, section, template or format that does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrConflict indicates the document changed while a request was being served
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return "conflict: " + e.Message
}

// ErrUnavailable indicates a feature that is not configured, such as the AI tools
// without an API key
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation, *aitools.InputError:
		return http.StatusBadRequest
	case *ErrConflict:
		return http.StatusConflict
	case *ErrUnavailable:
		return http.StatusServiceUnavailable
	case *ingestion.UnsupportedFormatError:
		return http.StatusUnsupportedMediaType
	case *aitools.APICallError, *aitools.ParseError:
		return http.StatusBadGateway
	}

	var fetchErr *fetch.Error
	switch {
	case errors.Is(err, editor.ErrOrderMismatch):
		return http.StatusConflict
	case errors.Is(err, ingestion.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
