package handlers

import (
	"context"
	"net/http"
	"time"

	"parkapp/pkg/database"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

// HealthHandlers handles the welcome, liveness and readiness endpoints
type HealthHandlers struct {
	db database.Pinger
}

func NewHealthHandlers(db database.Pinger) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// Welcome handles GET /
func (h *HealthHandlers) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the ParkAPP backend API!",
	})
}

// LivenessCheck reports that the process is serving requests.
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": "unhealthy",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}
