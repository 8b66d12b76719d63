package dto

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// SaleItemRequest is one line of a checkout.
type SaleItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateSaleRequest payload for POST /api/sales.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"payment_method"`
}

// SaleItemResponse is one line of a recorded sale.
type SaleItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// SaleResponse mirrors a recorded sale with its items.
type SaleResponse struct {
	ID            int64              `json:"id"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []SaleItemResponse `json:"items"`
}

// NewSaleResponse maps a domain sale.
func NewSaleResponse(sale *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return SaleResponse{
		ID:            sale.ID,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt,
		Items:         items,
	}
}
