package security

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/auth"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

const sessionKey = "security_session"

// apiPrefix is the surface the gate protects; anything else (static assets,
// health probes) passes through with only header injection.
const apiPrefix = "/api/"

var securityHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
	"X-Frame-Options":              "DENY",
	"Strict-Transport-Security":    "max-age=31536000; includeSubDomains",
	"X-Content-Type-Options":       "nosniff",
	"Referrer-Policy":              "no-referrer",
	"Content-Security-Policy":      "default-src 'self'",
}

// Gate is the admission-control pipeline every request passes through:
// rate limiting, session validation and role-based access control, composed
// in order with the first applicable exit winning.
type Gate struct {
	tokens  *auth.TokenManager
	policy  *Policy
	limiter *Limiter
}

// NewGate composes the pipeline.
func NewGate(tokens *auth.TokenManager, policy *Policy, limiter *Limiter) *Gate {
	return &Gate{tokens: tokens, policy: policy, limiter: limiter}
}

// Handle enforces the pipeline for one request. Security headers are set
// before any exit so that early error responses carry them too.
func (g *Gate) Handle(c *fiber.Ctx) error {
	for key, value := range securityHeaders {
		c.Set(key, value)
	}

	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}

	path := c.Path()
	if !strings.HasPrefix(path, apiPrefix) {
		return c.Next()
	}

	// Session is resolved before the rate-limit check only so that
	// authenticated clients are counted per user rather than per IP; the
	// admission decisions still run in pipeline order.
	session := g.tokens.ValidateSession(bearerToken(c))

	result := g.limiter.Check(c.Context(), clientIdentifier(c, session), Classify(path, c.Method()))
	c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Set("X-RateLimit-Reset", strconv.Itoa(result.ResetSeconds))

	if !result.Allowed {
		c.Set("Retry-After", strconv.Itoa(result.ResetSeconds))
		return reject(c, apperrors.NewRateLimited(result.ResetSeconds))
	}

	if !g.policy.IsPublic(path) {
		if session == nil {
			// Missing, malformed, tampered and expired tokens all land
			// here; the caller is never told which.
			return reject(c, apperrors.NewUnauthorized("Authentication required. Please log in."))
		}
		if !g.policy.Permits(session.Role, path) {
			return reject(c, apperrors.NewForbidden("You do not have permission to access this resource."))
		}
		c.Locals(sessionKey, session)
	}

	return c.Next()
}

// reject renders a gate exit. The 401/403/429 decisions never reach the
// downstream handler.
func reject(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	body := fiber.Map{
		"error":   domainErr.Kind,
		"message": domainErr.Message,
	}
	if domainErr.RetryAfter > 0 {
		body["retryAfter"] = domainErr.RetryAfter
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}

// SessionFromContext retrieves the authenticated session, if any.
func SessionFromContext(c *fiber.Ctx) (*auth.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*auth.Session)
	return session, ok
}

// bearerToken extracts the credential from the Authorization header,
// accepting both "Bearer <token>" and a raw token value.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

// clientIdentifier keys rate-limit windows: authenticated requests by user
// id, anonymous ones by client address with trusted proxy headers taking
// precedence over the socket peer.
func clientIdentifier(c *fiber.Ctx, session *auth.Session) string {
	if session != nil {
		return "user:" + strconv.FormatInt(session.UserID, 10)
	}
	if ip := c.Get("CF-Connecting-IP"); ip != "" {
		return "ip:" + ip
	}
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if first != "" {
			return "ip:" + first
		}
	}
	return "ip:" + c.IP()
}
