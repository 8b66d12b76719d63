package dto

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// ProductRequest payload for creating or updating a product.
type ProductRequest struct {
	Name     string  `json:"name"`
	Barcode  *string `json:"barcode"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	Category *string `json:"category"`
}

// BulkProductsRequest payload for POST /api/products/bulk.
type BulkProductsRequest struct {
	Products []ProductRequest `json:"products"`
}

// ProductResponse mirrors a catalog row.
type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Barcode   *string   `json:"barcode"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	Stock     int       `json:"stock"`
	Category  *string   `json:"category"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Barcode:   p.Barcode,
		Price:     p.Price,
		Cost:      p.Cost,
		Stock:     p.Stock,
		Category:  p.Category,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

// CategoryRequest payload for categories.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// PageMeta is the pagination envelope metadata.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPageMeta computes the envelope for a paginated listing.
func NewPageMeta(total int64, page, limit int) PageMeta {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
