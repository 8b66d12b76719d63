package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// SalesHandler records checkouts and lists past sales.
type SalesHandler struct {
	sales repository.SaleRepository
}

// NewSalesHandler constructs handler.
func NewSalesHandler(sales repository.SaleRepository) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// List handles GET /api/sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	sales, err := h.sales.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, dto.NewSaleResponse(&sales[i]))
	}
	return c.JSON(resp)
}

// Create handles POST /api/sales. Stock for each line is decremented in the
// same transaction that records the sale.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("sale needs at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("item quantity must be positive")
		}
	}

	sale := &domain.Sale{
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := h.sales.Create(c.Context(), sale); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": sale.ID})
}
