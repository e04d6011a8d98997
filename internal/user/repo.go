package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendwise-app/spendwise-backend/internal/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store is what the auth handlers need from user persistence.
type Store interface {
	Create(ctx context.Context, email, passwordHash, name, currency string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Create(ctx context.Context, email, passwordHash, name, currency string) (*domain.User, error) {
	u := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Currency:     currency,
	}
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, currency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		email, passwordHash, name, currency,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, name, currency, created_at
		 FROM users WHERE email = $1`, email)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, name, currency, created_at
		 FROM users WHERE id = $1::uuid`, id)
}

func (r *Repository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Currency, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
