package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// BorrowedItemsHandler tracks stock borrowed from other businesses.
type BorrowedItemsHandler struct {
	items repository.BorrowedItemRepository
}

// NewBorrowedItemsHandler constructs handler.
func NewBorrowedItemsHandler(items repository.BorrowedItemRepository) *BorrowedItemsHandler {
	return &BorrowedItemsHandler{items: items}
}

// List handles GET /api/borrowed-items.
func (h *BorrowedItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.items.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(items)
}

// Create handles POST /api/borrowed-items.
func (h *BorrowedItemsHandler) Create(c *fiber.Ctx) error {
	var req dto.BorrowedItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.BorrowedFrom == "" {
		return apperrors.NewValidationError("borrowed_from required")
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive")
	}

	item := &domain.BorrowedItem{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		BorrowedFrom: req.BorrowedFrom,
		Reason:       req.Reason,
		Status:       domain.BorrowedItemOutstanding,
	}
	if err := h.items.Create(c.Context(), item); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": item.ID})
}

// Update handles PUT /api/borrowed-items/:id. Setting status to returned is
// how a record gets settled.
func (h *BorrowedItemsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid borrowed item id")
	}

	var req dto.UpdateBorrowedItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Status != "" && req.Status != domain.BorrowedItemOutstanding && req.Status != domain.BorrowedItemReturned {
		return apperrors.NewValidationError("unknown status")
	}

	item := &domain.BorrowedItem{
		ID:           int64(id),
		BorrowedFrom: req.BorrowedFrom,
		Reason:       req.Reason,
		Status:       req.Status,
	}
	if err := h.items.Update(c.Context(), item); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/borrowed-items/:id.
func (h *BorrowedItemsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid borrowed item id")
	}
	if err := h.items.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
