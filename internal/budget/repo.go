package budget

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence surface the handlers are written against.
// Update and Delete are keyed by (user, category), not by id.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]Budget, error)
	Insert(ctx context.Context, b *Budget) error
	UpdateAmount(ctx context.Context, userID, category string, amount float64) (*Budget, error)
	Delete(ctx context.Context, userID, category string) error
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Budget, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, user_id, category, amount, created_at
		 FROM budgets
		 WHERE user_id = $1::uuid
		 ORDER BY category`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Budget, 0)
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, b *Budget) error {
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO budgets (user_id, category, amount)
		 VALUES ($1::uuid, $2, $3)
		 RETURNING id, created_at`,
		b.UserID, b.Category, b.Amount,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateAmount(ctx context.Context, userID, category string, amount float64) (*Budget, error) {
	var b Budget
	err := r.Pool.QueryRow(ctx,
		`UPDATE budgets
		 SET amount = $3
		 WHERE user_id = $1::uuid AND category = $2
		 RETURNING id, user_id, category, amount, created_at`,
		userID, category, amount,
	).Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Delete(ctx context.Context, userID, category string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM budgets WHERE user_id = $1::uuid AND category = $2`,
		userID, category,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
