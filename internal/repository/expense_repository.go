package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// ExpenseRepository defines persistence access for operational expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, startDate, endDate string) ([]domain.Expense, error)
}

type expenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository returns a Postgres-backed implementation.
func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	const query = `
        INSERT INTO expenses (category, amount, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		expense.Category,
		expense.Amount,
		expense.Description,
	).Scan(&expense.ID, &expense.CreatedAt)
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE expenses SET category=$1, amount=$2, description=$3 WHERE id=$4`,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context, startDate, endDate string) ([]domain.Expense, error) {
	query := `SELECT id, category, amount, description, created_at FROM expenses`
	args := []any{}
	if startDate != "" && endDate != "" {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, startDate, endDate)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.Category, &expense.Amount, &expense.Description, &expense.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}
