package jsonrequest

import (
	"errors"
	"fmt"
	"strings"
)

// RequestFailedError is returned when the server answered with a non-2xx status
// and a parsable JSON body. Payload holds that body exactly as decoded.
type RequestFailedError struct {
	Method     string
	URL        string
	StatusCode int
	Payload    any
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s %s: request failed with status %d", e.Method, e.URL, e.StatusCode)
}

// BodyParseError is returned when the response body is not valid JSON,
// whatever the status code was.
type BodyParseError struct {
	StatusCode int
	Snippet    string
	Err        error
}

func (e *BodyParseError) Error() string {
	return fmt.Sprintf("parse response body (status %d): %v", e.StatusCode, e.Err)
}

func (e *BodyParseError) Unwrap() error { return e.Err }

// IsRequestFailed reports whether err carries a RequestFailedError.
func IsRequestFailed(err error) (*RequestFailedError, bool) {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf, true
	}
	return nil, false
}

// IsBodyParseFailure reports whether err carries a BodyParseError.
func IsBodyParseFailure(err error) bool {
	var bp *BodyParseError
	return errors.As(err, &bp)
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
