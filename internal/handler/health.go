package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/middleware"
	"github.com/deppfellow/docker-crm/internal/server"
	"github.com/deppfellow/docker-crm/internal/service"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	healthService *service.HealthService
}

func NewHealthHandler(s *server.Server, healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		Handler:       NewHandler(s),
		healthService: healthService,
	}
}

// CheckHealth runs every registered check and answers 200 when the required
// ones pass, 503 otherwise. The body is the full report either way.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	report := h.healthService.Check(c.Request().Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}

	if err := c.JSON(status, report); err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to write health report")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
