package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// BorrowedItemRepository defines persistence access for stock borrowed from
// other businesses.
type BorrowedItemRepository interface {
	Create(ctx context.Context, item *domain.BorrowedItem) error
	Update(ctx context.Context, item *domain.BorrowedItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.BorrowedItem, error)
}

type borrowedItemRepository struct {
	pool *pgxpool.Pool
}

// NewBorrowedItemRepository returns a Postgres-backed implementation.
func NewBorrowedItemRepository(pool *pgxpool.Pool) BorrowedItemRepository {
	return &borrowedItemRepository{pool: pool}
}

func (r *borrowedItemRepository) Create(ctx context.Context, item *domain.BorrowedItem) error {
	if item.Status == "" {
		item.Status = domain.BorrowedItemOutstanding
	}

	const query = `
        INSERT INTO borrowed_items (product_id, quantity, borrowed_from, reason, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		item.ProductID,
		item.Quantity,
		item.BorrowedFrom,
		item.Reason,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *borrowedItemRepository) Update(ctx context.Context, item *domain.BorrowedItem) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE borrowed_items SET borrowed_from=$1, reason=$2, status=$3 WHERE id=$4`,
		item.BorrowedFrom,
		item.Reason,
		item.Status,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *borrowedItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM borrowed_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *borrowedItemRepository) List(ctx context.Context) ([]domain.BorrowedItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT bi.id, bi.product_id, COALESCE(p.name, ''), p.barcode,
                bi.quantity, bi.borrowed_from, bi.reason, bi.status, bi.created_at
         FROM borrowed_items bi
         LEFT JOIN products p ON bi.product_id = p.id
         ORDER BY bi.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.BorrowedItem, 0)
	for rows.Next() {
		var item domain.BorrowedItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.ProductName,
			&item.Barcode,
			&item.Quantity,
			&item.BorrowedFrom,
			&item.Reason,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
