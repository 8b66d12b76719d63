package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// SaleRepository defines persistence access for checkout transactions.
type SaleRepository interface {
	// Create records the sale and its items and decrements product stock,
	// all in one transaction.
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context) ([]domain.Sale, error)
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository returns a Postgres-backed implementation.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx,
		`INSERT INTO sales (total, payment_method) VALUES ($1, $2) RETURNING id, created_at`,
		sale.Total, sale.PaymentMethod,
	).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return err
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID

		if err := tx.QueryRow(ctx,
			`INSERT INTO sale_items (sale_id, product_id, quantity, price)
             VALUES ($1, $2, $3, $4) RETURNING id`,
			item.SaleID, item.ProductID, item.Quantity, item.Price,
		).Scan(&item.ID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2`,
			item.Quantity, item.ProductID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, total, payment_method, created_at FROM sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.Total, &sale.PaymentMethod, &sale.CreatedAt); err != nil {
			return nil, err
		}
		sale.Items = []domain.SaleItem{}
		index[sale.ID] = len(sales)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT si.id, si.sale_id, si.product_id, COALESCE(p.name, ''), si.quantity, si.price
         FROM sale_items si
         LEFT JOIN products p ON si.product_id = p.id
         ORDER BY si.id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.SaleItem
		if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		if pos, ok := index[item.SaleID]; ok {
			sales[pos].Items = append(sales[pos].Items, item)
		}
	}
	return sales, itemRows.Err()
}
