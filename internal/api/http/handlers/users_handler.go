package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/repository"
	"github.com/spec-kit/pos-service/internal/security"
	"github.com/spec-kit/pos-service/internal/service"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// UsersHandler manages operator accounts.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(auth *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

// List handles GET /api/users. Password hashes never leave the repository.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page := repository.NewPage(c.QueryInt("page"), c.QueryInt("limit"))
	users, total, err := h.auth.ListUsers(c.Context(), page)
	if err != nil {
		return apperrors.MapError(err)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	if page.Enabled() {
		return c.JSON(fiber.Map{
			"data": resp,
			"meta": dto.NewPageMeta(total, page.Number, page.Limit),
		})
	}
	return c.JSON(resp)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required")
	}

	user, err := h.auth.CreateUser(c.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.auth.UpdateUser(c.Context(), int64(id), req.Role, req.Password)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// Delete handles DELETE /api/users/:id. An account cannot delete itself.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id")
	}
	if session, ok := security.SessionFromContext(c); ok && session.UserID == int64(id) {
		return apperrors.NewValidationError("cannot delete the signed-in account")
	}
	if err := h.auth.DeleteUser(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
