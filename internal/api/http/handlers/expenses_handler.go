package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// ExpensesHandler exposes expense CRUD.
type ExpensesHandler struct {
	expenses repository.ExpenseRepository
}

// NewExpensesHandler constructs handler.
func NewExpensesHandler(expenses repository.ExpenseRepository) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

// List handles GET /api/expenses. startDate and endDate query params bound
// the listing when present.
func (h *ExpensesHandler) List(c *fiber.Ctx) error {
	expenses, err := h.expenses.List(c.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(expenses)
}

// Create handles POST /api/expenses.
func (h *ExpensesHandler) Create(c *fiber.Ctx) error {
	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Category == "" || req.Amount <= 0 {
		return apperrors.NewValidationError("category and positive amount required")
	}

	expense := &domain.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.expenses.Create(c.Context(), expense); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": expense.ID})
}

// Update handles PUT /api/expenses/:id.
func (h *ExpensesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid expense id")
	}

	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	expense := &domain.Expense{
		ID:          int64(id),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.expenses.Update(c.Context(), expense); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/expenses/:id.
func (h *ExpensesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid expense id")
	}
	if err := h.expenses.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
