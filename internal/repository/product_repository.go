package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// ProductRepository defines persistence access for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	CreateBulk(ctx context.Context, products []domain.Product) (int, error)
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, page Page) ([]domain.Product, int64, error)
	SetImage(ctx context.Context, id int64, imageURL *string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, barcode, price, cost, stock, category, image, deleted_at, created_at`

func scanProduct(row pgx.Row, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Barcode,
		&product.Price,
		&product.Cost,
		&product.Stock,
		&product.Category,
		&product.Image,
		&product.DeletedAt,
		&product.CreatedAt,
	)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, barcode, price, cost, stock, category)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Barcode,
		product.Price,
		product.Cost,
		product.Stock,
		product.Category,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *productRepository) CreateBulk(ctx context.Context, products []domain.Product) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO products (name, barcode, price, cost, stock, category)
        VALUES ($1, $2, $3, $4, $5, $6)`

	created := 0
	for i := range products {
		if _, err := tx.Exec(ctx, query,
			products[i].Name,
			products[i].Barcode,
			products[i].Price,
			products[i].Cost,
			products[i].Stock,
			products[i].Category,
		); err != nil {
			return 0, err
		}
		created++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, barcode=$2, price=$3, cost=$4, stock=$5, category=$6
        WHERE id=$7 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Barcode,
		product.Price,
		product.Cost,
		product.Stock,
		product.Category,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE products SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1 AND deleted_at IS NULL`

	var product domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, page Page) ([]domain.Product, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL ORDER BY created_at DESC`
	args := []any{}
	if page.Enabled() {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Limit, page.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

func (r *productRepository) SetImage(ctx context.Context, id int64, imageURL *string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET image=$1 WHERE id=$2`, imageURL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
