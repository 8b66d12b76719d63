package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// PurchaseOrdersHandler manages stock orders placed with suppliers.
type PurchaseOrdersHandler struct {
	orders repository.PurchaseOrderRepository
}

// NewPurchaseOrdersHandler constructs handler.
func NewPurchaseOrdersHandler(orders repository.PurchaseOrderRepository) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{orders: orders}
}

// List handles GET /api/purchase-orders. Supports startDate, endDate and
// status query filters plus the standard page/limit envelope.
func (h *PurchaseOrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.PurchaseOrderFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Status:    c.Query("status"),
	}
	page := repository.NewPage(c.QueryInt("page"), c.QueryInt("limit"))

	orders, total, err := h.orders.List(c.Context(), filter, page)
	if err != nil {
		return apperrors.MapError(err)
	}

	resp := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, dto.NewPurchaseOrderResponse(&orders[i]))
	}
	if page.Enabled() {
		return c.JSON(fiber.Map{
			"data": resp,
			"meta": dto.NewPageMeta(total, page.Number, page.Limit),
		})
	}
	return c.JSON(resp)
}

// Get handles GET /api/purchase-orders/:id including its item lines.
func (h *PurchaseOrdersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid purchase order id")
	}
	order, err := h.orders.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order))
}

// Create handles POST /api/purchase-orders.
func (h *PurchaseOrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("purchase order needs at least one item")
	}

	order := &domain.PurchaseOrder{
		SupplierID: req.SupplierID,
		Total:      req.Total,
		Status:     domain.PurchaseOrderPending,
		Notes:      req.Notes,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.PurchaseOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Cost:      item.Cost,
		})
	}

	if err := h.orders.Create(c.Context(), order); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": order.ID})
}

// Update handles PUT /api/purchase-orders/:id.
func (h *PurchaseOrdersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid purchase order id")
	}

	var req dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	order := &domain.PurchaseOrder{
		ID:         int64(id),
		SupplierID: req.SupplierID,
		Total:      req.Total,
		Notes:      req.Notes,
	}
	if err := h.orders.Update(c.Context(), order); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Receive handles POST /api/purchase-orders/:id/receive. Marking an order
// received is what bumps the stock counters for its lines.
func (h *PurchaseOrdersHandler) Receive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid purchase order id")
	}
	if err := h.orders.MarkReceived(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/purchase-orders/:id.
func (h *PurchaseOrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid purchase order id")
	}
	if err := h.orders.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
