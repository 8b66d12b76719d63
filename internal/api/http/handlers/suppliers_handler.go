package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// SuppliersHandler exposes supplier CRUD.
type SuppliersHandler struct {
	suppliers repository.SupplierRepository
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(suppliers repository.SupplierRepository) *SuppliersHandler {
	return &SuppliersHandler{suppliers: suppliers}
}

// List handles GET /api/suppliers.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.suppliers.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(suppliers)
}

// Get handles GET /api/suppliers/:id.
func (h *SuppliersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid supplier id")
	}
	supplier, err := h.suppliers.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(supplier)
}

// Create handles POST /api/suppliers.
func (h *SuppliersHandler) Create(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required")
	}

	supplier := &domain.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}
	if err := h.suppliers.Create(c.Context(), supplier); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": supplier.ID})
}

// Update handles PUT /api/suppliers/:id.
func (h *SuppliersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid supplier id")
	}

	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	supplier := &domain.Supplier{
		ID:            int64(id),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}
	if err := h.suppliers.Update(c.Context(), supplier); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/suppliers/:id.
func (h *SuppliersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid supplier id")
	}
	if err := h.suppliers.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
