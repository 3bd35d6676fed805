package repository

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Domain-level errors I prefer callers to match with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// NetworkError reports a round trip that never produced a response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response. Message holds the server's "error" field when
// the body carried one; Error() then returns exactly that text.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return StatusLine(e.StatusCode, e.Status)
}

// Is maps well-known statuses onto the domain sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// FormatError reports a response that could not be interpreted as the expected JSON.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// StatusLine renders the "<status> <statusText>" fallback message.
// status is the raw http.Response.Status, which already carries the code.
func StatusLine(code int, status string) string {
	status = strings.TrimSpace(status)
	if status != "" {
		if strings.HasPrefix(status, strconv.Itoa(code)) {
			return status
		}
		return fmt.Sprintf("%d %s", code, status)
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", code, http.StatusText(code)))
}

// Kind classifies err into the failure taxonomy, used for metrics labels and logs.
func Kind(err error) string {
	var (
		netErr  *NetworkError
		httpErr *HTTPError
		fmtErr  *FormatError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &fmtErr):
		return "format"
	default:
		return "other"
	}
}
