// Package errs defines the error types that handlers hand over to the central error
// middleware, and the rules for rendering them as JSON responses.
package errs

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// HTTPError is an error that knows which HTTP status it maps to. If Expose is set, Message is
// safe to show to clients; otherwise clients only see the generic status text.
type HTTPError struct {
	Status  int
	Message string
	Expose  bool

	// Err carries the underlying cause together with the stack trace of where the error was
	// raised.
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// NewBadRequestError creates a 400 error whose message is shown to the client.
func NewBadRequestError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Expose:  true,
		Err:     errors.New(message),
	}
}

// NewValidationError creates a 400 error for a request payload that failed validation.
func NewValidationError(message string) *HTTPError {
	return NewBadRequestError(message)
}

// NewNotFoundError creates a 404 error whose message is shown to the client.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: message,
		Expose:  true,
		Err:     errors.New(message),
	}
}

// NewInternalServerError wraps err as a 500 error. The cause is logged but never shown to
// clients.
func NewInternalServerError(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Err:     errors.WithStack(err),
	}
}

// Body is the JSON shape of every error response.
type Body struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Render decides on the status code and body for err. Errors that are not an *HTTPError
// become a generic 500. The stack is only filled in when withStack is set.
func Render(err error, withStack bool) (int, Body) {
	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	trace := err
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
		if httpErr.Expose {
			message = httpErr.Message
		}
		if httpErr.Err != nil {
			trace = httpErr.Err
		}
	}

	body := Body{Message: message}
	if withStack {
		body.Stack = fmt.Sprintf("%+v", trace)
	}
	return status, body
}
