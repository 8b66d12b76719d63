package domain

import "time"

// Expense is an operational cash outflow.
type Expense struct {
	ID          int64
	Category    string
	Amount      float64
	Description *string
	CreatedAt   time.Time
}

// LoanStatus tracks whether loaned stock has come back.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
)

// Loan records stock handed out against collateral.
type Loan struct {
	ID                    int64
	BorrowerName          string
	BorrowerContact       *string
	Collateral            *string
	CollateralDescription *string
	Status                LoanStatus
	CreatedAt             time.Time
	Items                 []LoanItem
}

// LoanItem is a product line on a loan.
type LoanItem struct {
	ID          int64
	LoanID      int64
	ProductID   int64
	ProductName string
	Barcode     *string
	Quantity    int
}

// BorrowedItemStatus tracks stock borrowed from another shop.
type BorrowedItemStatus string

const (
	BorrowedItemOutstanding BorrowedItemStatus = "outstanding"
	BorrowedItemReturned    BorrowedItemStatus = "returned"
)

// BorrowedItem records stock borrowed from a neighboring business.
type BorrowedItem struct {
	ID           int64
	ProductID    int64
	ProductName  string
	Barcode      *string
	Quantity     int
	BorrowedFrom string
	Reason       *string
	Status       BorrowedItemStatus
	CreatedAt    time.Time
}

// ProfitSummary is the cash-flow P&L over a period.
type ProfitSummary struct {
	TotalRevenue        float64
	TotalStockPurchases float64
	TotalExpenses       float64
	NetProfit           float64
	ProfitMargin        float64
	SalesCount          int64
	StartDate           string
	EndDate             string
}
