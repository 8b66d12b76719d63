package repository

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// ReportRepository computes financial aggregates.
type ReportRepository interface {
	// ProfitSummary is a cash-flow P&L over the period: revenue minus
	// received stock purchases and operational expenses.
	ProfitSummary(ctx context.Context, startDate, endDate string) (*domain.ProfitSummary, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) ProfitSummary(ctx context.Context, startDate, endDate string) (*domain.ProfitSummary, error) {
	if startDate == "" {
		startDate = "1970-01-01"
	}
	if endDate == "" {
		endDate = "2099-12-31"
	}

	var revenue float64
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at BETWEEN $1 AND $2`,
		startDate, endDate,
	).Scan(&revenue); err != nil {
		return nil, err
	}

	var stockPurchases float64
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM purchase_orders
         WHERE status = $1 AND received_at BETWEEN $2 AND $3`,
		domain.PurchaseOrderReceived, startDate, endDate,
	).Scan(&stockPurchases); err != nil {
		return nil, err
	}

	var expenses float64
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE created_at BETWEEN $1 AND $2`,
		startDate, endDate,
	).Scan(&expenses); err != nil {
		return nil, err
	}

	var salesCount int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE created_at BETWEEN $1 AND $2`,
		startDate, endDate,
	).Scan(&salesCount); err != nil {
		return nil, err
	}

	netProfit := revenue - (stockPurchases + expenses)
	margin := 0.0
	if revenue > 0 {
		margin = netProfit / revenue * 100
	}

	return &domain.ProfitSummary{
		TotalRevenue:        round2(revenue),
		TotalStockPurchases: round2(stockPurchases),
		TotalExpenses:       round2(expenses),
		NetProfit:           round2(netProfit),
		ProfitMargin:        round2(margin),
		SalesCount:          salesCount,
		StartDate:           startDate,
		EndDate:             endDate,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
