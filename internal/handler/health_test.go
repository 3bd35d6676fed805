package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/usagers-client/internal/handler"
	"github.com/maxviazov/usagers-client/internal/metrics"
)

const testAPI = "http://api.test/api/users"

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestLiveness(t *testing.T) {
	r := handler.NewRouter(fakePinger{err: errors.New("down")}, testAPI, nil)
	w := get(t, r, "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"api answers", nil, http.StatusOK, `{"status":"ready","api":"http://api.test/api/users"}`},
		{"api down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable,
			`{"status":"unavailable","api":"http://api.test/api/users","error":"dial tcp: connection refused"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := get(t, handler.NewRouter(fakePinger{err: tc.err}, testAPI, nil), "/ready")
			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.RequestIssued()
	r := handler.NewRouter(fakePinger{}, testAPI, m.Handler())

	w := get(t, r, handler.MetricsPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "usagers_fetch_requests_total 1"))
}

func TestMetricsEndpoint_DisabledWithoutHandler(t *testing.T) {
	w := get(t, handler.NewRouter(fakePinger{}, testAPI, nil), handler.MetricsPath)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
