package security

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/domain"
)

func newTestGate(limits map[Class]Limit) (*fiber.App, *auth.TokenManager) {
	tokens := auth.NewTokenManager("gate-test-secret", time.Hour)
	gate := NewGate(tokens, DefaultPolicy(), NewLimiter(NewMemoryStore(), limits))

	app := fiber.New()
	app.Use(gate.Handle)
	app.All("/api/*", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/index.html", func(c *fiber.Ctx) error {
		return c.SendString("static")
	})
	return app, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenManager, role domain.Role) string {
	t.Helper()
	token, _, err := tokens.Issue(&domain.User{ID: 1, Username: "tester", Role: role})
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func assertSecurityHeaders(t *testing.T, headers map[string][]string) {
	t.Helper()
	get := func(key string) string {
		if vals := headers[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	assert.Equal(t, "*", get("Access-Control-Allow-Origin"))
	assert.Equal(t, "DENY", get("X-Frame-Options"))
	assert.Equal(t, "nosniff", get("X-Content-Type-Options"))
	assert.NotEmpty(t, get("Strict-Transport-Security"))
	assert.NotEmpty(t, get("Referrer-Policy"))
	assert.NotEmpty(t, get("Content-Security-Policy"))
}

func TestGateRejectsMissingToken(t *testing.T) {
	app, _ := newTestGate(nil)

	req := httptest.NewRequest("GET", "/api/products", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assertSecurityHeaders(t, resp.Header)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestGateRejectsInvalidToken(t *testing.T) {
	app, _ := newTestGate(nil)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestGateRejectsInsufficientRole(t *testing.T) {
	app, tokens := newTestGate(nil)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleCashier))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assertSecurityHeaders(t, resp.Header)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Forbidden", body["error"])
}

func TestGateForwardsPermittedRequest(t *testing.T) {
	app, tokens := newTestGate(nil)

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertSecurityHeaders(t, resp.Header)
	assert.Equal(t, "100", resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

func TestGateAcceptsRawAuthorizationHeader(t *testing.T) {
	app, tokens := newTestGate(nil)

	req := httptest.NewRequest("GET", "/api/sales", nil)
	req.Header.Set("Authorization", issueToken(t, tokens, domain.RoleCashier))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGatePublicRouteSkipsAuth(t *testing.T) {
	app, _ := newTestGate(nil)

	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGatePreflight(t *testing.T) {
	app, _ := newTestGate(nil)

	req := httptest.NewRequest("OPTIONS", "/api/products", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assertSecurityHeaders(t, resp.Header)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestGateIgnoresNonAPIPaths(t *testing.T) {
	app, _ := newTestGate(map[Class]Limit{
		ClassRead: {MaxRequests: 1, Window: time.Minute},
	})

	// No rate limiting or auth outside the API surface, headers still set.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/index.html", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assertSecurityHeaders(t, resp.Header)
		assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	}
}

func TestGateRateLimits(t *testing.T) {
	app, _ := newTestGate(map[Class]Limit{
		ClassLogin: {MaxRequests: 2, Window: time.Minute},
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assertSecurityHeaders(t, resp.Header)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Too Many Requests", body["error"])
	assert.NotNil(t, body["retryAfter"])
}

func TestGateRateLimitKeyedByUser(t *testing.T) {
	app, tokens := newTestGate(map[Class]Limit{
		ClassRead: {MaxRequests: 1, Window: time.Minute},
	})
	token := issueToken(t, tokens, domain.RoleCashier)

	req := httptest.NewRequest("GET", "/api/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestGateAttachesSession(t *testing.T) {
	tokens := auth.NewTokenManager("gate-test-secret", time.Hour)
	gate := NewGate(tokens, DefaultPolicy(), NewLimiter(NewMemoryStore(), nil))

	var captured *auth.Session
	app := fiber.New()
	app.Use(gate.Handle)
	app.Get("/api/sales", func(c *fiber.Ctx) error {
		if session, ok := SessionFromContext(c); ok {
			captured = session
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/sales", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleCashier))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, captured)
	assert.Equal(t, int64(1), captured.UserID)
	assert.Equal(t, domain.RoleCashier, captured.Role)
}
