package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/service"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required")
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		User:    dto.NewUserResponse(user),
		Token:   token,
	})
}

// Logout handles POST /api/auth/logout. Best effort: tokens stay valid
// until they expire, the client simply discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	token = strings.TrimPrefix(token, "Bearer ")

	if err := h.auth.Logout(c.Context(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
