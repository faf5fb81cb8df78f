package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, editor.ErrUnknownEvent),
		errors.Is(err, types.ErrUnknownField),
		errors.Is(err, types.ErrInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, editor.ErrLoopStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
