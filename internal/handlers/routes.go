package handlers

import (
	_ "parkapp/docs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Handlers struct {
	Auth     *AuthHandlers
	Vehicles *VehicleHandlers
	Health   *HealthHandlers
}

// RegisterRoutes mounts every endpoint. guard protects the /api routes that
// need a bearer token.
func RegisterRoutes(e *echo.Echo, h *Handlers, guard echo.MiddlewareFunc) {
	e.GET("/", h.Health.Welcome)
	e.GET("/health", h.Health.LivenessCheck)
	e.GET("/health/ready", h.Health.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/admin-login", h.Auth.AdminLogin)

	api.GET("/me", h.Auth.Me, guard)
	api.POST("/vehicle-entry", h.Vehicles.RecordEntry, guard)
	api.PATCH("/vehicle-exit", h.Vehicles.RecordExit, guard)
	api.GET("/vehicle-entries", h.Vehicles.ListEntries, guard)
	api.GET("/vehicle-count", h.Vehicles.CountEntries, guard)
}
