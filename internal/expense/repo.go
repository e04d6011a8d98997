package expense

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence surface the handlers are written against.
type Store interface {
	Insert(ctx context.Context, e *Expense) error
	ListByUser(ctx context.Context, userID string, rng DateRange) ([]Expense, error)
	GetByID(ctx context.Context, userID, id string) (*Expense, error)
	Update(ctx context.Context, userID, id string, f Fields) (*Expense, error)
	Delete(ctx context.Context, userID, id string) error
	SummaryByCategory(ctx context.Context, userID string, rng DateRange) ([]CategorySummary, error)
	SpendByCategory(ctx context.Context, userID string, rng DateRange) (map[string]float64, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, e *Expense) error {
	return r.Pool.QueryRow(ctx,
		`INSERT INTO expenses (user_id, description, amount, category, spent_on)
		 VALUES ($1::uuid, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.UserID, e.Description, e.Amount, e.Category, e.Date,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *Repository) ListByUser(ctx context.Context, userID string, rng DateRange) ([]Expense, error) {
	query := `SELECT id, user_id, description, amount, category, spent_on, created_at
		FROM expenses
		WHERE user_id = $1::uuid`
	args := []any{userID}
	query, args = appendRange(query, args, rng)
	query += ` ORDER BY spent_on DESC, created_at DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, userID, id string) (*Expense, error) {
	var e Expense
	err := r.Pool.QueryRow(ctx,
		`SELECT id, user_id, description, amount, category, spent_on, created_at
		 FROM expenses
		 WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, f Fields) (*Expense, error) {
	var e Expense
	err := r.Pool.QueryRow(ctx,
		`UPDATE expenses
		 SET description = $3, amount = $4, category = $5, spent_on = $6
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING id, user_id, description, amount, category, spent_on, created_at`,
		id, userID, f.Description, f.Amount, f.Category, f.Date,
	).Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SummaryByCategory(ctx context.Context, userID string, rng DateRange) ([]CategorySummary, error) {
	query := `SELECT category, SUM(amount)::float8 AS total, COUNT(*)::bigint AS count
		FROM expenses
		WHERE user_id = $1::uuid`
	args := []any{userID}
	query, args = appendRange(query, args, rng)
	query += ` GROUP BY category ORDER BY total DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategorySummary, 0)
	for rows.Next() {
		var s CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalAmount, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) SpendByCategory(ctx context.Context, userID string, rng DateRange) (map[string]float64, error) {
	summary, err := r.SummaryByCategory(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	spend := make(map[string]float64, len(summary))
	for _, s := range summary {
		spend[s.Category] = s.TotalAmount
	}
	return spend, nil
}

// appendRange adds the inclusive spent_on bounds to a WHERE clause.
func appendRange(query string, args []any, rng DateRange) (string, []any) {
	if rng.Start != nil {
		args = append(args, *rng.Start)
		query += ` AND spent_on >= $` + strconv.Itoa(len(args))
	}
	if rng.End != nil {
		args = append(args, *rng.End)
		query += ` AND spent_on <= $` + strconv.Itoa(len(args))
	}
	return query, args
}
