package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/docker-crm/internal/config"
	"github.com/deppfellow/docker-crm/internal/errs"
	"github.com/deppfellow/docker-crm/internal/server"
	"github.com/deppfellow/docker-crm/internal/sqlerr"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/")

	var seen string
	err := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})(c)
	require.NoError(t, err)

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesIncoming(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/")
	c.Request().Header.Set(RequestIDHeader, "req-1")

	require.NoError(t, RequestID()(func(c echo.Context) error { return nil })(c))
	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	ce := NewContextEnhancer(newTestServer())

	err := ce.EnhanceContext()(func(c echo.Context) error {
		assert.NotNil(t, c.Get(LoggerKey))
		assert.Same(t, c.Get(LoggerKey), GetLogger(c))
		return nil
	})(c)
	require.NoError(t, err)
}

func TestGetLoggerWithoutEnhancer(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	assert.Equal(t, zerolog.Disabled, GetLogger(c).GetLevel())
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())

	t.Run("plain text", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/")
		global.GlobalErrorHandler(errs.NewNotFoundError("Customer with ID 3 not found.", true, nil).AsPlainText(), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Customer with ID 3 not found.", rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/")
		global.GlobalErrorHandler(errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "name", Error: "is required"}}, nil), c)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "BAD_REQUEST", body.Code)
		assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, body.Errors)
	})

	t.Run("route not found", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/missing")
		global.GlobalErrorHandler(echo.ErrNotFound, c)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Route not found")
	})

	t.Run("echo error keeps status", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/")
		global.GlobalErrorHandler(echo.ErrMethodNotAllowed, c)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), "METHOD_NOT_ALLOWED")
	})

	t.Run("constraint violation", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/")
		global.GlobalErrorHandler(sqlerr.NewConstraintError(sqlerr.UniqueViolation, "customers", "email",
			"customers_email_key", "duplicate key"), c)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "CUSTOMER_ALREADY_EXISTS")
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/")
		global.GlobalErrorHandler(errors.New("connection reset by peer"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("head has no body", func(t *testing.T) {
		c, rec := newContext(http.MethodHead, "/")
		global.GlobalErrorHandler(errs.NewNotFoundError("gone", true, nil), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestRateLimitDisabledIsPassThrough(t *testing.T) {
	rl := NewRateLimitMiddleware(newTestServer())
	h := rl.Limit()(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for i := 0; i < 20; i++ {
		c, rec := newContext(http.MethodGet, "/")
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
