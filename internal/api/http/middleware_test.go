package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pos-service/internal/observability"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestErrorHandlingRendersDomainError(t *testing.T) {
	app := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("widget")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "widget not found", body["message"])
	_, hasRetry := body["retryAfter"]
	assert.False(t, hasRetry)
}

func TestErrorHandlingRecoversPanic(t *testing.T) {
	app := newTestApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, body["message"], "kaboom")
}

func TestErrorHandlingHidesInternalDetails(t *testing.T) {
	app := newTestApp(t)
	app.Get("/db", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/db", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "internal server error", body["message"])
}

func TestErrorHandlingIncludesRetryAfter(t *testing.T) {
	app := newTestApp(t)
	app.Get("/limited", func(c *fiber.Ctx) error {
		return apperrors.NewRateLimited(42)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Too Many Requests", body["error"])
	assert.Equal(t, float64(42), body["retryAfter"])
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	app := newTestApp(t)
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"hasDeadline": ok})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline", nil))
	require.NoError(t, err)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["hasDeadline"])
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	app := newTestApp(t)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
