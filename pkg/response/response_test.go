package response_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/maxviazov/usagers-client/pkg/response"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error { b.closed = true; return nil }

func mkResp(code int, status, contentType, body string) (*http.Response, *trackingBody) {
	b := &trackingBody{Reader: strings.NewReader(body)}
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{StatusCode: code, Status: status, Header: h, Body: b}, b
}

func TestIsJSON(t *testing.T) {
	cases := []struct {
		ct   string
		want bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/problem+json", true},
		{"APPLICATION/JSON", true},
		{"text/html", false},
		{"text/plain; charset=utf-8", false},
		{"", false},
		{"application/json;;broken", true},
	}
	for _, tc := range cases {
		h := http.Header{}
		h.Set("Content-Type", tc.ct)
		if got := response.IsJSON(h); got != tc.want {
			t.Fatalf("IsJSON(%q) = %v, want %v", tc.ct, got, tc.want)
		}
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		code     int
		status   string
		ct       string
		body     string
		wantNil  bool
		wantMsg  string
		wantSent error
	}{
		{"success", 200, "200 OK", "application/json", `{}`, true, "", nil},
		{"created", 201, "201 Created", "application/json", `{}`, true, "", nil},
		{"json_message", 409, "409 Conflict", "application/json", `{"error":"Email already exists"}`, false, "Email already exists", repository.ErrConflict},
		{"json_not_found", 404, "404 Not Found", "application/json", `{"error":"Usager non trouvé"}`, false, "Usager non trouvé", repository.ErrNotFound},
		{"html_body", 500, "500 Internal Server Error", "text/html", "<b>oops</b>", false, "500 Internal Server Error", nil},
		{"json_unparsable", 503, "503 Service Unavailable", "application/json", "not json", false, "503 Service Unavailable", nil},
		{"bare_status", 418, "", "", "", false, "418 I'm a teapot", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := mkResp(tc.code, tc.status, tc.ct, tc.body)
			err := response.MapError(resp)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantMsg {
				t.Fatalf("unexpected error: got %v want %q", err, tc.wantMsg)
			}
			if tc.wantSent != nil && !errors.Is(err, tc.wantSent) {
				t.Fatalf("expected errors.Is(%v), got %v", tc.wantSent, err)
			}
		})
	}
}

func TestDecode_ClosesBodyAndClassifies(t *testing.T) {
	var out struct {
		Total int `json:"total"`
	}

	resp, body := mkResp(200, "200 OK", "application/json", `{"total":7}`)
	if err := response.Decode(resp, &out); err != nil || out.Total != 7 {
		t.Fatalf("decode: err=%v out=%+v", err, out)
	}
	if !body.closed {
		t.Fatalf("body not closed")
	}

	resp, body = mkResp(200, "200 OK", "text/html", `<html></html>`)
	err := response.Decode(resp, &out)
	var fe *repository.FormatError
	if !errors.As(err, &fe) || fe.Reason != response.ReasonNonJSON {
		t.Fatalf("expected non-JSON format error, got %v", err)
	}
	if !body.closed {
		t.Fatalf("body not closed on format error")
	}

	resp, _ = mkResp(200, "200 OK", "application/json", `{"total":`)
	err = response.Decode(resp, &out)
	if !errors.As(err, &fe) || fe.Reason != response.ReasonMalformed {
		t.Fatalf("expected malformed format error, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want string
	}{
		{"nil", nil, ""},
		{"http", &repository.HTTPError{StatusCode: 400, Status: "400 Bad Request", Message: "Invalid input"}, "Invalid input"},
		{"format", &repository.FormatError{Reason: response.ReasonMalformed, Err: io.ErrUnexpectedEOF}, response.ReasonMalformed},
		{"network", &repository.NetworkError{Method: "GET", URL: "http://x/api/users", Err: errors.New("connection refused")}, "network error: GET http://x/api/users: connection refused"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := response.Message(tc.in); got != tc.want {
				t.Fatalf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}
