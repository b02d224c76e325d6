package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/handler"
)

// registerSystemRoutes adds the routes that are not part of the customer API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
