// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	database  HealthChecker
	redis     HealthChecker // nil when real-time delivery is disabled
	scheduler HealthChecker // nil when the recurring scheduler is disabled
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Scheduler string `json:"scheduler"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(database, redis, scheduler HealthChecker) *HealthController {
	return &HealthController{
		database:  database,
		redis:     redis,
		scheduler: scheduler,
	}
}

// Check handles GET /health requests.
// The API is degraded when the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Redis:     "disabled",
		Scheduler: "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if h.database != nil && h.database() {
		response.Database = "connected"
	} else {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		response.Redis = "disconnected"
		if h.redis() {
			response.Redis = "connected"
		}
	}

	if h.scheduler != nil {
		response.Scheduler = "stopped"
		if h.scheduler() {
			response.Scheduler = "started"
		}
	}

	c.JSON(status, response)
}
