package dto

import (
	"github.com/spec-kit/pos-service/internal/domain"
)

// ExpenseRequest payload for expenses.
type ExpenseRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
}

// LoanItemRequest is one product line of a loan.
type LoanItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateLoanRequest payload for POST /api/loans.
type CreateLoanRequest struct {
	BorrowerName          string            `json:"borrower_name"`
	BorrowerContact       *string           `json:"borrower_contact"`
	Collateral            *string           `json:"collateral"`
	CollateralDescription *string           `json:"collateral_description"`
	Items                 []LoanItemRequest `json:"items"`
}

// UpdateLoanRequest payload for PUT /api/loans/:id.
type UpdateLoanRequest struct {
	BorrowerName          string  `json:"borrower_name"`
	BorrowerContact       *string `json:"borrower_contact"`
	Collateral            *string `json:"collateral"`
	CollateralDescription *string `json:"collateral_description"`
}

// BorrowedItemRequest payload for POST /api/borrowed-items.
type BorrowedItemRequest struct {
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	BorrowedFrom string  `json:"borrowed_from"`
	Reason       *string `json:"reason"`
}

// UpdateBorrowedItemRequest payload for PUT /api/borrowed-items/:id.
type UpdateBorrowedItemRequest struct {
	BorrowedFrom string                    `json:"borrowed_from"`
	Reason       *string                   `json:"reason"`
	Status       domain.BorrowedItemStatus `json:"status"`
}

// ProfitSummaryResponse mirrors the P&L summary payload.
type ProfitSummaryResponse struct {
	TotalRevenue        float64     `json:"total_revenue"`
	TotalStockPurchases float64     `json:"total_stock_purchases"`
	TotalExpenses       float64     `json:"total_expenses"`
	NetProfit           float64     `json:"net_profit"`
	ProfitMargin        float64     `json:"profit_margin"`
	SalesCount          int64       `json:"sales_count"`
	Period              PeriodRange `json:"period"`
}

// PeriodRange is the date window a summary covers.
type PeriodRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// NewProfitSummaryResponse maps a domain summary.
func NewProfitSummaryResponse(s *domain.ProfitSummary) ProfitSummaryResponse {
	return ProfitSummaryResponse{
		TotalRevenue:        s.TotalRevenue,
		TotalStockPurchases: s.TotalStockPurchases,
		TotalExpenses:       s.TotalExpenses,
		NetProfit:           s.NetProfit,
		ProfitMargin:        s.ProfitMargin,
		SalesCount:          s.SalesCount,
		Period:              PeriodRange{StartDate: s.StartDate, EndDate: s.EndDate},
	}
}

// SettingsRequest payload for PUT /api/settings.
type SettingsRequest struct {
	BusinessName   string  `json:"business_name"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	CurrencySymbol string  `json:"currency_symbol"`
	CurrencyCode   string  `json:"currency_code"`
	TaxRate        float64 `json:"tax_rate"`
	LogoURL        *string `json:"logo_url"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Timezone       string  `json:"timezone"`
}
