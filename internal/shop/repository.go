package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Shop) error
	GetByID(ctx context.Context, id string) (*Shop, error)
	List(ctx context.Context, filter Filter) ([]*Shop, int, error)
	Update(ctx context.Context, s *Shop) error
	Delete(ctx context.Context, id string) error

	// GetSchedule returns the operating window for one weekday,
	// or nil (no error) when no row exists.
	GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*Schedule, error)
	UpsertSchedule(ctx context.Context, sc *Schedule) error
	ListSchedules(ctx context.Context, shopID string) ([]Schedule, error)

	GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]Break, error)
	ListBreaks(ctx context.Context, shopID string) ([]Break, error)
	AddBreak(ctx context.Context, b *Break) error
	RemoveBreak(ctx context.Context, shopID, breakID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Shop) error {
	const query = `
		INSERT INTO public.shops (name, address, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, s.Name, s.Address, s.Description).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create shop failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Shop, error) {
	const query = `
		SELECT id, name, address, description, created_at
		FROM public.shops
		WHERE id = $1
	`

	var s Shop
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Address, &s.Description, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get shop failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Shop, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "address", "description", "created_at",
		"count(*) OVER() as total_count",
	).From("public.shops")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"address": kw},
		})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list shops query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shops failed: %w", err)
	}
	defer rows.Close()

	var shops []*Shop
	var total int
	for rows.Next() {
		var s Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Description, &s.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan shop failed: %w", err)
		}
		shops = append(shops, &s)
	}

	return shops, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Shop) error {
	const query = `
		UPDATE public.shops
		SET name = $2, address = $3, description = $4
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.Address, s.Description)
	if err != nil {
		return fmt.Errorf("update shop failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*Schedule, error) {
	const query = `
		SELECT shop_id, weekday, start_min, end_min, enabled
		FROM public.shop_schedules
		WHERE shop_id = $1 AND weekday = $2
	`

	var sc Schedule
	err := r.pool.QueryRow(ctx, query, shopID, int(weekday)).
		Scan(&sc.ShopID, &sc.Weekday, &sc.StartMin, &sc.EndMin, &sc.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule failed: %w", err)
	}
	return &sc, nil
}

func (r *pgxRepository) UpsertSchedule(ctx context.Context, sc *Schedule) error {
	const query = `
		INSERT INTO public.shop_schedules (shop_id, weekday, start_min, end_min, enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shop_id, weekday)
		DO UPDATE SET start_min = $3, end_min = $4, enabled = $5
	`
	if _, err := r.pool.Exec(ctx, query,
		sc.ShopID, int(sc.Weekday), sc.StartMin, sc.EndMin, sc.Enabled,
	); err != nil {
		return fmt.Errorf("upsert schedule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListSchedules(ctx context.Context, shopID string) ([]Schedule, error) {
	const query = `
		SELECT shop_id, weekday, start_min, end_min, enabled
		FROM public.shop_schedules
		WHERE shop_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list schedules failed: %w", err)
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var sc Schedule
		if err := rows.Scan(&sc.ShopID, &sc.Weekday, &sc.StartMin, &sc.EndMin, &sc.Enabled); err != nil {
			return nil, fmt.Errorf("scan schedule failed: %w", err)
		}
		schedules = append(schedules, sc)
	}
	return schedules, nil
}

func (r *pgxRepository) GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]Break, error) {
	const query = `
		SELECT id, shop_id, weekday, start_min, end_min, name
		FROM public.shop_breaks
		WHERE shop_id = $1 AND weekday = $2
		ORDER BY start_min
	`
	return r.scanBreaks(ctx, query, shopID, int(weekday))
}

func (r *pgxRepository) ListBreaks(ctx context.Context, shopID string) ([]Break, error) {
	const query = `
		SELECT id, shop_id, weekday, start_min, end_min, name
		FROM public.shop_breaks
		WHERE shop_id = $1
		ORDER BY weekday, start_min
	`
	return r.scanBreaks(ctx, query, shopID)
}

func (r *pgxRepository) scanBreaks(ctx context.Context, query string, args ...any) ([]Break, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list breaks failed: %w", err)
	}
	defer rows.Close()

	var breaks []Break
	for rows.Next() {
		var b Break
		if err := rows.Scan(&b.ID, &b.ShopID, &b.Weekday, &b.StartMin, &b.EndMin, &b.Name); err != nil {
			return nil, fmt.Errorf("scan break failed: %w", err)
		}
		breaks = append(breaks, b)
	}
	return breaks, nil
}

func (r *pgxRepository) AddBreak(ctx context.Context, b *Break) error {
	const query = `
		INSERT INTO public.shop_breaks (shop_id, weekday, start_min, end_min, name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		b.ShopID, int(b.Weekday), b.StartMin, b.EndMin, b.Name,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("add break failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveBreak(ctx context.Context, shopID, breakID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM public.shop_breaks WHERE id = $1 AND shop_id = $2`, breakID, shopID)
	if err != nil {
		return fmt.Errorf("remove break failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrBreakNotFound
	}
	return nil
}
