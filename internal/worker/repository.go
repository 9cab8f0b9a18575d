package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, w *Worker) error
	GetByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context, filter Filter) ([]*Worker, int, error)
	Update(ctx context.Context, w *Worker) error
	Delete(ctx context.Context, id string) error

	// SetServices replaces the worker's service-eligibility set.
	SetServices(ctx context.Context, workerID string, serviceIDs []string) error

	// ListEligible returns the active workers affiliated with shopID whose
	// eligibility set contains serviceID, ordered by id ascending. The
	// ordering is what makes "any worker" assignment deterministic.
	ListEligible(ctx context.Context, shopID, serviceID string) ([]*Worker, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// workerColumns selects worker fields plus the aggregated eligibility set.
const workerColumns = `
	w.id, w.name, w.status, w.shop_id, w.created_at,
	COALESCE(
		(SELECT array_agg(ws.service_id ORDER BY ws.service_id)
		 FROM public.worker_services ws
		 WHERE ws.worker_id = w.id),
		'{}'
	) AS service_ids
`

func scanWorker(row pgx.Row) (*Worker, error) {
	var w Worker
	if err := row.Scan(&w.ID, &w.Name, &w.Status, &w.ShopID, &w.CreatedAt, &w.ServiceIDs); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *pgxRepository) Create(ctx context.Context, w *Worker) error {
	const query = `
		INSERT INTO public.workers (name, status, shop_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, w.Name, w.Status, w.ShopID).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("create worker failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM public.workers w WHERE w.id = $1`

	w, err := scanWorker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get worker failed: %w", err)
	}
	return w, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Worker, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(workerColumns, "count(*) OVER() as total_count").
		From("public.workers w")

	if filter.ShopID != "" {
		query = query.Where(squirrel.Eq{"w.shop_id": filter.ShopID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"w.status": filter.Status})
	}

	query = query.OrderBy("w.id ASC")

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
		return nil, 0, fmt.Errorf("build list workers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list workers failed: %w", err)
	}
	defer rows.Close()

	var workers []*Worker
	var total int
	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Status, &w.ShopID, &w.CreatedAt, &w.ServiceIDs, &total); err != nil {
			return nil, 0, fmt.Errorf("scan worker failed: %w", err)
		}
		workers = append(workers, &w)
	}

	return workers, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, w *Worker) error {
	const query = `
		UPDATE public.workers
		SET name = $2, status = $3, shop_id = $4
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, w.ID, w.Name, w.Status, w.ShopID)
	if err != nil {
		return fmt.Errorf("update worker failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete worker failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetServices(ctx context.Context, workerID string, serviceIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set services failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM public.worker_services WHERE worker_id = $1`, workerID); err != nil {
		return fmt.Errorf("clear worker services failed: %w", err)
	}

	for _, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO public.worker_services (worker_id, service_id) VALUES ($1, $2)`,
			workerID, serviceID); err != nil {
			return fmt.Errorf("insert worker service failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set services failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListEligible(ctx context.Context, shopID, serviceID string) ([]*Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM public.workers w
		JOIN public.worker_services ws ON ws.worker_id = w.id
		WHERE w.shop_id = $1 AND ws.service_id = $2 AND w.status = 'active'
		ORDER BY w.id ASC
	`

	rows, err := r.pool.Query(ctx, query, shopID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list eligible workers failed: %w", err)
	}
	defer rows.Close()

	var workers []*Worker
	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Status, &w.ShopID, &w.CreatedAt, &w.ServiceIDs); err != nil {
			return nil, fmt.Errorf("scan eligible worker failed: %w", err)
		}
		workers = append(workers, &w)
	}
	return workers, nil
}
