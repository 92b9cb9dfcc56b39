package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized matches any APIError carrying a 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport matches any TransportError.
	ErrTransport = errors.New("transport failure")
	// ErrBodyTooLarge is wrapped by the TransportError returned when a
	// response body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("response body exceeds limit")
)

// APIError is a non-2xx response from a backend. Body holds the backend's
// JSON error document verbatim.
type APIError struct {
	// StatusCode is the body's statusCode field, or the HTTP status when absent.
	StatusCode int
	// HTTPStatus is the status line code of the response.
	HTTPStatus int
	// Message is the body's message field; array messages are joined.
	Message string
	// Body is the raw JSON error body, nil when the body was not JSON.
	Body json.RawMessage
}

func newAPIError(httpStatus int, body []byte) *APIError {
	e := &APIError{StatusCode: httpStatus, HTTPStatus: httpStatus}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || !gjson.Valid(trimmed) {
		e.Message = trimmed
		if e.Message == "" {
			e.Message = http.StatusText(httpStatus)
		}
		return e
	}

	e.Body = json.RawMessage(body)
	if code := gjson.Get(trimmed, "statusCode"); code.Type == gjson.Number {
		e.StatusCode = int(code.Int())
	}
	msg := gjson.Get(trimmed, "message")
	if msg.IsArray() {
		parts := make([]string, 0, len(msg.Array()))
		for _, m := range msg.Array() {
			parts = append(parts, m.String())
		}
		e.Message = strings.Join(parts, "; ")
	} else {
		e.Message = msg.String()
	}
	return e
}

// Error returns a human-readable description of the backend error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.HTTPStatus == http.StatusUnauthorized
}

// Is supports errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Unauthorized()
}

// Decode unmarshals the raw error body into v.
func (e *APIError) Decode(v any) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("api: error body is empty")
	}
	return json.Unmarshal(e.Body, v)
}

// TransportError is a failure that produced no usable backend response:
// session resolution, connection, body read or decode.
type TransportError struct {
	// Op names the failed step: session, rate limit, send, read, decode.
	Op  string
	Err error
}

// Error returns a human-readable description of the failure.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("api: %s", e.Op)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is supports errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && (apiErr.StatusCode == code || apiErr.HTTPStatus == code)
}
