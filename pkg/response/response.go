// Package response centralizes the API's response shapes and the helpers that turn
// raw HTTP responses into decoded values or taxonomy errors.
// Repositories rely on it to keep transport code thin and uniform.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/maxviazov/usagers-client/internal/repository"
)

// MaxBodyBytes bounds how much of a response body is read.
const MaxBodyBytes = 4 << 20

// ReasonNonJSON is the FormatError reason for a success response without a JSON content type.
const ReasonNonJSON = "non-JSON response received"

// ReasonMalformed is the FormatError reason for a JSON body that does not decode.
const ReasonMalformed = "malformed JSON response"

// ErrorPayload is the error envelope the API returns on failures.
type ErrorPayload struct {
	Error string `json:"error"`
}

// MessagePayload is the acknowledgement envelope of DELETE.
type MessagePayload struct {
	Message string `json:"message"`
}

// IsJSON reports whether the Content-Type header announces JSON.
func IsJSON(h http.Header) bool {
	ct := h.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		// Be as lenient as browsers' includes("application/json") check.
		return strings.Contains(strings.ToLower(ct), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Decode checks the status and content type of resp and decodes its JSON body into out.
// Non-2xx statuses yield *repository.HTTPError, content problems *repository.FormatError.
// The body is always drained and closed.
func Decode(resp *http.Response, out any) error {
	defer closeBody(resp)

	if err := MapError(resp); err != nil {
		return err
	}
	if !IsJSON(resp.Header) {
		return &repository.FormatError{Reason: ReasonNonJSON}
	}
	body := io.LimitReader(resp.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &repository.FormatError{Reason: ReasonMalformed, Err: err}
	}
	return nil
}

// MapError converts a non-2xx response into *repository.HTTPError and returns nil otherwise.
// The server message is taken from a JSON {"error": ...} body; anything else falls back
// to the status line.
func MapError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	out := &repository.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	if IsJSON(resp.Header) {
		var payload ErrorPayload
		body := io.LimitReader(resp.Body, MaxBodyBytes)
		if err := json.NewDecoder(body).Decode(&payload); err == nil {
			out.Message = strings.TrimSpace(payload.Error)
		}
	}
	return out
}

// Message returns the text shown to the user for err: the server message for HTTP errors,
// the reason for format errors, the cause for everything else.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *repository.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var fmtErr *repository.FormatError
	if errors.As(err, &fmtErr) {
		return fmtErr.Reason
	}
	return err.Error()
}

func closeBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
	_ = resp.Body.Close()
}
