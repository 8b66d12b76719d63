package domain

import "time"

// Sale is a completed checkout transaction.
type Sale struct {
	ID            int64
	Total         float64
	PaymentMethod string
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem is a single product line on a sale.
type SaleItem struct {
	ID          int64
	SaleID      int64
	ProductID   int64
	ProductName string
	Quantity    int
	Price       float64
}
