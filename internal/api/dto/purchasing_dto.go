package dto

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// SupplierRequest payload for suppliers.
type SupplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

// PurchaseOrderItemRequest is one line of a purchase order.
type PurchaseOrderItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Cost      float64 `json:"cost"`
}

// CreatePurchaseOrderRequest payload for POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID *int64                     `json:"supplier_id"`
	Total      float64                    `json:"total"`
	Notes      *string                    `json:"notes"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderResponse mirrors a purchase order row.
type PurchaseOrderResponse struct {
	ID         int64                      `json:"id"`
	SupplierID *int64                     `json:"supplier_id"`
	Total      float64                    `json:"total"`
	Status     domain.PurchaseOrderStatus `json:"status"`
	Notes      *string                    `json:"notes"`
	ReceivedAt *time.Time                 `json:"received_at,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
	Items      []PurchaseOrderItemRequest `json:"items,omitempty"`
}

// NewPurchaseOrderResponse maps a domain purchase order.
func NewPurchaseOrderResponse(order *domain.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Total:      order.Total,
		Status:     order.Status,
		Notes:      order.Notes,
		ReceivedAt: order.ReceivedAt,
		CreatedAt:  order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Cost:      item.Cost,
		})
	}
	return resp
}
