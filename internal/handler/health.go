package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is the minimal contract needed to check that the usagers API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness endpoints for one upstream API.
type HealthHandler struct {
	api    Pinger
	target string
}

// NewHealthHandler probes api; target is the base URL echoed in readiness replies.
func NewHealthHandler(api Pinger, target string) *HealthHandler {
	return &HealthHandler{api: api, target: target}
}

// Liveness responds OK if the process is up; it doesn't check the API.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness asks the usagers API for its smallest page and reports which API it asked.
func (h *HealthHandler) Readiness(c *gin.Context) {
	body := gin.H{"status": "ready", "api": h.target}
	code := http.StatusOK
	if err := h.api.Ping(c.Request.Context()); err != nil {
		code = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["error"] = err.Error()
	}
	c.JSON(code, body)
}
