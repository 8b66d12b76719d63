package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// LoanRepository defines persistence access for stock loans.
type LoanRepository interface {
	// Create records the loan and its items and decrements product stock,
	// all in one transaction: loaned stock cannot be sold.
	Create(ctx context.Context, loan *domain.Loan) error
	List(ctx context.Context) ([]domain.Loan, error)
	// MarkReturned flips the loan status and restores stock for its items.
	MarkReturned(ctx context.Context, id int64) error
	Update(ctx context.Context, loan *domain.Loan) error
}

type loanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository returns a Postgres-backed implementation.
func NewLoanRepository(pool *pgxpool.Pool) LoanRepository {
	return &loanRepository{pool: pool}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if loan.Status == "" {
		loan.Status = domain.LoanActive
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO loans (borrower_name, borrower_contact, collateral, collateral_description, status)
         VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		loan.BorrowerName, loan.BorrowerContact, loan.Collateral, loan.CollateralDescription, loan.Status,
	).Scan(&loan.ID, &loan.CreatedAt); err != nil {
		return err
	}

	for i := range loan.Items {
		item := &loan.Items[i]
		item.LoanID = loan.ID

		if err := tx.QueryRow(ctx,
			`INSERT INTO loan_items (loan_id, product_id, quantity)
             VALUES ($1, $2, $3) RETURNING id`,
			item.LoanID, item.ProductID, item.Quantity,
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

func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, borrower_name, borrower_contact, collateral, collateral_description, status, created_at
         FROM loans ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]domain.Loan, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.BorrowerName,
			&loan.BorrowerContact,
			&loan.Collateral,
			&loan.CollateralDescription,
			&loan.Status,
			&loan.CreatedAt,
		); err != nil {
			return nil, err
		}
		loan.Items = []domain.LoanItem{}
		index[loan.ID] = len(loans)
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return loans, nil
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT li.id, li.loan_id, li.product_id, p.name, p.barcode, li.quantity
         FROM loan_items li
         JOIN products p ON li.product_id = p.id
         ORDER BY li.id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.LoanItem
		if err := itemRows.Scan(&item.ID, &item.LoanID, &item.ProductID, &item.ProductName, &item.Barcode, &item.Quantity); err != nil {
			return nil, err
		}
		if pos, ok := index[item.LoanID]; ok {
			loans[pos].Items = append(loans[pos].Items, item)
		}
	}
	return loans, itemRows.Err()
}

func (r *loanRepository) MarkReturned(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE loans SET status=$1 WHERE id=$2 AND status=$3`,
		domain.LoanReturned, id, domain.LoanActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock + li.quantity
         FROM loan_items li
         WHERE li.loan_id = $1 AND products.id = li.product_id`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE loans SET borrower_name=$1, borrower_contact=$2, collateral=$3, collateral_description=$4
         WHERE id=$5`,
		loan.BorrowerName, loan.BorrowerContact, loan.Collateral, loan.CollateralDescription, loan.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
