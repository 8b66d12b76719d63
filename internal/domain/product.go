package domain

import "time"

// Product is a catalog item tracked in inventory.
type Product struct {
	ID        int64
	Name      string
	Barcode   *string
	Price     float64
	Cost      float64
	Stock     int
	Category  *string
	Image     *string
	DeletedAt *time.Time
	CreatedAt time.Time
}

// Category groups products for catalog browsing.
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}
