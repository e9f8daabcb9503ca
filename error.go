package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrBadParameter
	ErrNotFound
	ErrNotImplemented
	ErrConflict
	ErrInternalServerError
)

const (
	// Message for a response classified as non-2xx
	errUnsuccessful = "Unsuccessful response"
	// Message for a transport or hook failure before classification
	errResponse = "Response error"
	// Message for a body which could not be encoded to the wire format
	errRequest = "Request error"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is a sentinel error code, used for precondition violations
type Err int

// ClientError is raised for any failed call. Exactly one of three causes,
// distinguished by which fields are populated: an encoding failure or a
// transport/hook failure carry no status code and hold the original failure
// in the body field; an unsuccessful response carries the response status
// code and the response body.
type ClientError struct {
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
	Url     string `json:"url,omitempty"`
	Code    int    `json:"code,omitempty"`
	Body    any    `json:"body,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotFound:
		return "not found"
	case ErrNotImplemented:
		return "not implemented"
	case ErrConflict:
		return "conflict"
	case ErrInternalServerError:
		return "internal server error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

func (e *ClientError) Error() string {
	var b strings.Builder
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteString(" ")
	}
	if e.Url != "" {
		b.WriteString(e.Url)
		b.WriteString(": ")
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, "[%d] ", e.Code)
	}
	b.WriteString(e.Message)
	if body := e.DecodedBody(); body != nil {
		fmt.Fprintf(&b, ": %v", body)
	}
	return b.String()
}

// Unwrap returns the original failure for an encoding or transport error
func (e *ClientError) Unwrap() error {
	if err, ok := e.Body.(error); ok {
		return err
	}
	return nil
}

// StatusCode returns the response status code, or zero when the call
// failed before a response was classified
func (e *ClientError) StatusCode() int {
	return e.Code
}

// DecodedBody returns the error payload, with a textual body JSON-parsed
// on a best-effort basis
func (e *ClientError) DecodedBody() any {
	switch body := e.Body.(type) {
	case nil:
		return nil
	case []byte:
		return decodeBody(string(body))
	case string:
		return decodeBody(body)
	default:
		return body
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeBody(text string) any {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		var v any
		if err := json.Unmarshal([]byte(text), &v); err == nil {
			return v
		}
	}
	return text
}
