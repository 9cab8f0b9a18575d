package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the booking ledger: the durable store of committed bookings.
type Repository interface {
	// Insert persists the booking if and only if no non-cancelled booking of
	// the same worker and date overlaps its interval. Returns ErrTimeConflict
	// when the slot was taken, including when a concurrent insert wins the race.
	Insert(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)

	// FindActiveByWorkerAndDate returns all non-cancelled bookings of the
	// worker on the given calendar day, ordered by start time.
	FindActiveByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*Booking, error)

	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `
	b.id, b.worker_id, w.name, b.shop_id, s.name, b.service_id, sv.name,
	b.date, b.start_min, b.end_min, b.status, b.client_name, b.client_email,
	b.note, b.created_at, b.updated_at
`

const bookingJoins = `
	FROM public.bookings b
	JOIN public.workers w ON b.worker_id = w.id
	JOIN public.shops s ON b.shop_id = s.id
	LEFT JOIN public.services sv ON b.service_id = sv.id
`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.WorkerID, &b.WorkerName, &b.ShopID, &b.ShopName,
		&b.ServiceID, &b.ServiceName,
		&b.Date, &b.StartMin, &b.EndMin, &b.Status,
		&b.ClientName, &b.ClientEmail, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Insert(ctx context.Context, b *Booking) error {
	// The guarded insert makes check-and-write a single statement: the row is
	// only written when no overlapping non-cancelled booking exists for the
	// worker/date. The bookings_no_overlap exclusion constraint remains the
	// hard guarantee when two inserts race on the same snapshot; its
	// violation maps to the same conflict error.
	const query = `
		INSERT INTO public.bookings
			(worker_id, shop_id, service_id, date, start_min, end_min, status, client_name, client_email, note)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE worker_id = $1
			  AND date = $4
			  AND status <> 'cancelled'
			  AND start_min < $6
			  AND end_min > $5
		)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		b.WorkerID, b.ShopID, b.ServiceID, b.Date, b.StartMin, b.EndMin,
		b.Status, b.ClientName, b.ClientEmail, b.Note,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTimeConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE b.id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) FindActiveByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.worker_id = $1 AND b.date = $2 AND b.status <> 'cancelled'
		ORDER BY b.start_min
	`

	rows, err := r.pool.Query(ctx, query, workerID, date)
	if err != nil {
		return nil, fmt.Errorf("find active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.workers w ON b.worker_id = w.id").
		Join("public.shops s ON b.shop_id = s.id").
		LeftJoin("public.services sv ON b.service_id = sv.id")

	if filter.WorkerID != "" {
		query = query.Where(squirrel.Eq{"b.worker_id": filter.WorkerID})
	}
	if filter.ShopID != "" {
		query = query.Where(squirrel.Eq{"b.shop_id": filter.ShopID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.date": *filter.DateTo})
	}

	query = query.OrderBy("b.date DESC", "b.start_min ASC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
