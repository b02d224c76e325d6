package middleware

import (
	"github.com/deppfellow/docker-crm/internal/server"
)

// Middlewares groups every middleware component so router setup only
// passes one value around.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic and adds request attributes to transactions.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-client request rate.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. Without a New Relic
// application the tracing middleware degrades to a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
