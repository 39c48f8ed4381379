package apierror

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
)

// Failure is the classified form of a failure that escaped request handling.
// The set of implementations is closed: MalformedRequest and Unexpected.
type Failure interface {
	failure()
}

// MalformedRequest is a request rejected before it reached application logic.
type MalformedRequest struct {
	Status  int
	Message string
}

// Unexpected is any other failure. Description holds the type, the message and
// a stack trace. For panics the stack is taken at the panic site; for recorded
// errors it is taken where the error was classified, since Go errors carry no
// stack of their own.
type Unexpected struct {
	Description string
}

func (MalformedRequest) failure() {}
func (Unexpected) failure()       {}

// StatusOf returns the HTTP status a failure is answered with. Statuses that
// WriteHeader would reject fall back to 400.
func StatusOf(f Failure) int {
	m, ok := f.(MalformedRequest)
	if !ok {
		return http.StatusInternalServerError
	}
	if m.Status < 100 || m.Status > 999 {
		return http.StatusBadRequest
	}
	return m.Status
}

// RequestError is returned by the layers that reject a request because of
// its framing: body limits, undecodable payloads, invalid path identifiers.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewRequestError creates a RequestError with the given status and message.
func NewRequestError(status int, message string) *RequestError {
	return &RequestError{StatusCode: status, Message: message}
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// BindError wraps an error returned while decoding a request body.
func BindError(err error) *RequestError {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return &RequestError{
			StatusCode: http.StatusRequestEntityTooLarge,
			Message:    fmt.Sprintf("Request body exceeds the %d byte limit.", maxBytes.Limit),
			Err:        err,
		}
	case errors.Is(err, io.EOF):
		return &RequestError{
			StatusCode: http.StatusBadRequest,
			Message:    "Request body is empty.",
			Err:        err,
		}
	default:
		return &RequestError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
			Err:        err,
		}
	}
}

// Classify turns an error recorded during request handling into a Failure.
func Classify(err error) Failure {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return MalformedRequest{Status: reqErr.StatusCode, Message: reqErr.Message}
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return Classify(BindError(maxBytes))
	}

	return Unexpected{Description: fmt.Sprintf("%T: %+v\n%s", err, err, debug.Stack())}
}

// Recovered turns a recovered panic value into a Failure.
func Recovered(v any, stack []byte) Failure {
	return Unexpected{Description: fmt.Sprintf("%T: %v\n%s", v, v, stack)}
}
