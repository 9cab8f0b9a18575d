package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing staff accounts from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	GetByID(ctx context.Context, id string) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	const query = `
		SELECT id, email, password_hash, display_name, is_active, is_admin, created_at, last_login_at
		FROM public.staff
		WHERE email = $1
	`

	var s Staff
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.DisplayName,
		&s.IsActive, &s.IsAdmin, &s.CreatedAt, &s.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff by email failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	const query = `
		SELECT id, email, password_hash, display_name, is_active, is_admin, created_at, last_login_at
		FROM public.staff
		WHERE id = $1
	`

	var s Staff
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.DisplayName,
		&s.IsActive, &s.IsAdmin, &s.CreatedAt, &s.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff by id failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Staff) error {
	const query = `
		INSERT INTO public.staff (email, password_hash, display_name, is_active, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		s.Email, s.PasswordHash, s.DisplayName, s.IsActive, s.IsAdmin,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create staff failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `UPDATE public.staff SET last_login_at = $2 WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id, t)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
