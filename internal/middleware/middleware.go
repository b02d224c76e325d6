// Package middleware holds the Echo middleware shared by every route.
//
// It covers request ids, New Relic tracing, the request-scoped logger,
// request logging, CORS, security headers, rate limiting, panic recovery
// and the global error handler.
package middleware
