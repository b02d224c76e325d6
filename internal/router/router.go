// Package router builds the Echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/handler"
	"github.com/deppfellow/docker-crm/internal/middleware"
	"github.com/deppfellow/docker-crm/internal/server"
)

// NewRouter wires middleware in request order: request id first so every
// later layer can log it, the New Relic transaction before anything reads
// it, the context logger before the request logger, then recovery, CORS,
// security headers and the rate limiter.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerCustomerRoutes(router, h)

	return router
}
