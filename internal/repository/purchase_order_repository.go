package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// PurchaseOrderFilter narrows purchase-order listings.
type PurchaseOrderFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

// PurchaseOrderRepository defines persistence access for supplier orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *domain.PurchaseOrder) error
	List(ctx context.Context, filter PurchaseOrderFilter, page Page) ([]domain.PurchaseOrder, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	Update(ctx context.Context, order *domain.PurchaseOrder) error
	Delete(ctx context.Context, id int64) error
	// MarkReceived flips a pending order to received, stamps received_at
	// and adds each line's quantity to product stock.
	MarkReceived(ctx context.Context, id int64) error
}

type purchaseOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderRepository returns a Postgres-backed implementation.
func NewPurchaseOrderRepository(pool *pgxpool.Pool) PurchaseOrderRepository {
	return &purchaseOrderRepository{pool: pool}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if order.Status == "" {
		order.Status = domain.PurchaseOrderPending
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO purchase_orders (supplier_id, total, status, notes)
         VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		order.SupplierID, order.Total, order.Status, order.Notes,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.PurchaseOrderID = order.ID
		if err := tx.QueryRow(ctx,
			`INSERT INTO purchase_order_items (purchase_order_id, product_id, quantity, cost)
             VALUES ($1, $2, $3, $4) RETURNING id`,
			item.PurchaseOrderID, item.ProductID, item.Quantity, item.Cost,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *purchaseOrderRepository) List(ctx context.Context, filter PurchaseOrderFilter, page Page) ([]domain.PurchaseOrder, int64, error) {
	where := ``
	args := []any{}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate, filter.EndDate)
		where = ` WHERE created_at BETWEEN $1 AND $2`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		if where == "" {
			where = ` WHERE status = $1`
		} else {
			where += ` AND status = $3`
		}
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchase_orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, supplier_id, total, status, notes, received_at, created_at
              FROM purchase_orders` + where + ` ORDER BY created_at DESC`
	if page.Enabled() {
		args = append(args, page.Limit, page.Offset())
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.PurchaseOrder, 0)
	for rows.Next() {
		var order domain.PurchaseOrder
		if err := rows.Scan(
			&order.ID,
			&order.SupplierID,
			&order.Total,
			&order.Status,
			&order.Notes,
			&order.ReceivedAt,
			&order.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, rows.Err()
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	if err := r.pool.QueryRow(ctx,
		`SELECT id, supplier_id, total, status, notes, received_at, created_at
         FROM purchase_orders WHERE id=$1`, id).Scan(
		&order.ID,
		&order.SupplierID,
		&order.Total,
		&order.Status,
		&order.Notes,
		&order.ReceivedAt,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, purchase_order_id, product_id, quantity, cost
         FROM purchase_order_items WHERE purchase_order_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID, &item.Quantity, &item.Cost); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

func (r *purchaseOrderRepository) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE purchase_orders SET supplier_id=$1, total=$2, status=$3, notes=$4 WHERE id=$5`,
		order.SupplierID, order.Total, order.Status, order.Notes, order.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`DELETE FROM purchase_order_items WHERE purchase_order_id=$1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *purchaseOrderRepository) MarkReceived(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The pending guard keeps a double receive from double counting stock.
	cmd, err := tx.Exec(ctx,
		`UPDATE purchase_orders SET status=$1, received_at=NOW() WHERE id=$2 AND status=$3`,
		domain.PurchaseOrderReceived, id, domain.PurchaseOrderPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	_, err = tx.Exec(ctx,
		`UPDATE products p SET stock = p.stock + i.quantity
		 FROM purchase_order_items i
		 WHERE i.purchase_order_id = $1 AND i.product_id = p.id`, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
