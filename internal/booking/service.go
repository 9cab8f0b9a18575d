package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	"github.com/shopslot/shop-booking-backend/internal/worker"

	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
)

// ConflictError reports that a requested slot could not be granted. It is an
// expected outcome, not a system failure; handlers render it as 409 with the
// refusal reason so clients can offer alternatives.
type ConflictError struct {
	Reason   Reason
	Conflict *Booking
	Reasons  map[string]Reason
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot unavailable: %s", e.Reason)
}

// ShopDirectory is the shop lookup the booking writer needs.
type ShopDirectory interface {
	GetByID(ctx context.Context, id string) (*shop.Shop, error)
}

type CreateRequest struct {
	Date      time.Time
	StartMin  int
	ServiceID string
	// ShopID is required when Worker.Any is set; for a specific worker it is
	// optional and only cross-checked against the worker's affiliation.
	ShopID      string
	Worker      WorkerSelector
	ClientName  string
	ClientEmail string
	Note        string
}

type BlockRequest struct {
	Date     time.Time
	WorkerID string
	// ShopID is optional; when set it must match the worker's affiliation.
	ShopID string
	Reason string
}

type Service interface {
	// Create books a slot. The availability check and the insert are backed
	// by a guarded write, so two racing requests for the same slot resolve to
	// exactly one booking and one ConflictError.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// BlockDay reserves a worker's entire day for non-client time (vacation,
	// training). It refuses when any active booking already exists that day.
	BlockDay(ctx context.Context, req BlockRequest) (*Booking, error)

	Confirm(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	RemoveBlock(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo     Repository
	resolver *Resolver
	shops    ShopDirectory
	workers  WorkerDirectory
	services ServiceCatalog
}

func NewService(repo Repository, resolver *Resolver, shops ShopDirectory, workers WorkerDirectory, services ServiceCatalog) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		shops:    shops,
		workers:  workers,
		services: services,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrClientRequired
	}
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	date := timeutil.Midnight(req.Date)

	offering, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, svc.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if req.Worker.Any {
		return s.createPooled(ctx, req, date, offering)
	}
	return s.createSpecific(ctx, req, date, offering)
}

func (s *service) createSpecific(ctx context.Context, req CreateRequest, date time.Time, offering *svc.Service) (*Booking, error) {
	w, err := s.workers.GetByID(ctx, req.Worker.ID)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if w.Status != worker.StatusActive {
		return nil, ErrWorkerInactive
	}
	if w.ShopID == nil {
		return nil, ErrWorkerUnassigned
	}
	if req.ShopID != "" && req.ShopID != *w.ShopID {
		return nil, ErrShopMismatch
	}

	res, err := s.resolver.CheckSlot(ctx, SlotRequest{
		Date:      date,
		WorkerID:  w.ID,
		ServiceID: offering.ID,
		StartMin:  req.StartMin,
	})
	if err != nil {
		return nil, err
	}
	if !res.Available {
		return nil, &ConflictError{Reason: res.Reason, Conflict: res.Conflict}
	}

	return s.insert(ctx, req, date, offering, w)
}

// createPooled retries once when the guarded insert loses a race: the winner
// took one worker's slot, but another eligible worker may still be free.
func (s *service) createPooled(ctx context.Context, req CreateRequest, date time.Time, offering *svc.Service) (*Booking, error) {
	if req.ShopID == "" {
		return nil, ErrShopNotFound
	}
	if _, err := s.shops.GetByID(ctx, req.ShopID); err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		w, res, err := s.resolver.FindWorker(ctx, PoolRequest{
			Date:      date,
			ShopID:    req.ShopID,
			ServiceID: offering.ID,
			StartMin:  req.StartMin,
		})
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, &ConflictError{Reason: res.Reason, Reasons: res.Reasons}
		}

		b, err := s.insert(ctx, req, date, offering, w)
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return nil, err
		}
		return b, nil
	}

	return nil, &ConflictError{Reason: ReasonOverlap}
}

func (s *service) insert(ctx context.Context, req CreateRequest, date time.Time, offering *svc.Service, w *worker.Worker) (*Booking, error) {
	serviceID := offering.ID
	b := &Booking{
		WorkerID:    w.ID,
		WorkerName:  w.Name,
		ShopID:      *w.ShopID,
		ServiceID:   &serviceID,
		ServiceName: &offering.Name,
		Date:        date,
		StartMin:    req.StartMin,
		EndMin:      req.StartMin + offering.DurationMinutes,
		Status:      StatusPending,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Note:        req.Note,
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			return nil, &ConflictError{Reason: ReasonOverlap}
		}
		return nil, err
	}
	return b, nil
}

func (s *service) BlockDay(ctx context.Context, req BlockRequest) (*Booking, error) {
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	date := timeutil.Midnight(req.Date)

	w, err := s.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if w.ShopID == nil {
		return nil, ErrWorkerUnassigned
	}
	if req.ShopID != "" && req.ShopID != *w.ShopID {
		return nil, ErrShopMismatch
	}

	// A block claims the whole day through the same guarded insert as a
	// regular booking, so it refuses rather than shadows existing bookings.
	b := &Booking{
		WorkerID:   w.ID,
		WorkerName: w.Name,
		ShopID:     *w.ShopID,
		Date:       date,
		StartMin:   0,
		EndMin:     timeutil.MinutesPerDay,
		Status:     StatusBlock,
		Note:       req.Reason,
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			return nil, &ConflictError{Reason: ReasonOverlap}
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return nil, err
	}
	b.Status = StatusConfirmed
	return b, nil
}

// Cancel is idempotent: cancelling an already-cancelled booking is a no-op.
// Day blocks cannot be cancelled, only removed.
func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusBlock {
		return nil, ErrInvalidStatus
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	return b, nil
}

func (s *service) RemoveBlock(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != StatusBlock {
		return ErrNotBlock
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}
