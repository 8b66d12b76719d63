package domain

import "time"

// Supplier is a vendor that stock is purchased from.
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	CreatedAt     time.Time
}

// PurchaseOrderStatus tracks the lifecycle of an order to a supplier.
type PurchaseOrderStatus string

const (
	PurchaseOrderPending  PurchaseOrderStatus = "pending"
	PurchaseOrderReceived PurchaseOrderStatus = "received"
)

// PurchaseOrder is an order of stock placed with a supplier.
type PurchaseOrder struct {
	ID         int64
	SupplierID *int64
	Total      float64
	Status     PurchaseOrderStatus
	Notes      *string
	ReceivedAt *time.Time
	CreatedAt  time.Time
	Items      []PurchaseOrderItem
}

// PurchaseOrderItem is a product line on a purchase order.
type PurchaseOrderItem struct {
	ID              int64
	PurchaseOrderID int64
	ProductID       int64
	Quantity        int
	Cost            float64
}
