package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader correlates client logs with server logs.
const RequestIDHeader = "X-Request-ID"

// loggingTransport adapts zerolog to the http.RoundTripper chain.
// I keep it tiny: tag the request with an id, time it, log one line.
type loggingTransport struct {
	next   http.RoundTripper
	logger zerolog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger zerolog.Logger) *loggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger.With().Str("component", "http").Logger()}
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned before the
// header is added, as the RoundTripper contract requires.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := t.next.RoundTrip(req)
	took := time.Since(start)
	if err != nil {
		t.logger.Warn().Err(err).
			Str("request_id", id).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("took", took).
			Msg("request failed")
		return nil, err
	}

	event := t.logger.Debug()
	if resp.StatusCode >= 500 {
		event = t.logger.Warn()
	}
	event.Str("request_id", id).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Dur("took", took).
		Msg("request done")
	return resp, nil
}
