// Package handler serves the operational endpoints of a running session: health probes
// and Prometheus metrics. The usagers themselves are only ever reached through the console.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetricsPath is where the Prometheus handler is mounted.
const MetricsPath = "/metrics"

// Register mounts the probes for the API at target and, when metrics is non-nil, the
// metrics handler.
func Register(r *gin.Engine, api Pinger, target string, metrics http.Handler) {
	h := NewHealthHandler(api, target)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	if metrics != nil {
		r.GET(MetricsPath, gin.WrapH(metrics))
	}
}

// NewRouter builds a quiet gin engine: recovery only, no request logging on stdout.
func NewRouter(api Pinger, target string, metrics http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	Register(r, api, target, metrics)
	return r
}
