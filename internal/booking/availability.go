package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// Reason explains why a slot was refused. Conflicts are an expected, frequent
// outcome; callers use the reason to offer alternative slots instead of
// treating refusal as a failure.
type Reason string

const (
	ReasonShopClosed        Reason = "shop_closed"
	ReasonOutsideHours      Reason = "outside_hours"
	ReasonOnBreak           Reason = "on_break"
	ReasonOverlap           Reason = "overlap"
	ReasonIneligibleService Reason = "ineligible_service"
	ReasonNoEligibleWorker  Reason = "no_eligible_worker"
)

// Result is the outcome of an availability check.
type Result struct {
	Available bool
	Reason    Reason
	// Conflict is the booking occupying the slot when Reason == ReasonOverlap.
	Conflict *Booking
	// Reasons maps workerID -> refusal reason when a whole candidate pool was
	// exhausted (Reason == ReasonNoEligibleWorker).
	Reasons map[string]Reason
}

func available() Result {
	return Result{Available: true}
}

func unavailable(reason Reason) Result {
	return Result{Reason: reason}
}

// WorkerSelector chooses between a concrete worker and "any eligible worker".
type WorkerSelector struct {
	ID  string
	Any bool
}

// SpecificWorker selects the worker with the given id.
func SpecificWorker(id string) WorkerSelector {
	return WorkerSelector{ID: id}
}

// AnyEligible lets the resolver pick the first free eligible worker.
func AnyEligible() WorkerSelector {
	return WorkerSelector{Any: true}
}

// Data-provider contracts consumed by the resolver. shop.Service,
// worker.Service and service.Catalog satisfy them; tests supply fakes.

type ScheduleCatalog interface {
	GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*shop.Schedule, error)
	GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]shop.Break, error)
}

type WorkerDirectory interface {
	GetByID(ctx context.Context, id string) (*worker.Worker, error)
	ListEligible(ctx context.Context, shopID, serviceID string) ([]*worker.Worker, error)
}

type ServiceCatalog interface {
	GetByID(ctx context.Context, id string) (*svc.Service, error)
}

// Ledger is the read side of the booking store the resolver needs.
type Ledger interface {
	FindActiveByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*Booking, error)
}

// SlotRequest asks whether one concrete worker is free for a service slot.
// The shop (and therefore the operating calendar) is the worker's affiliation.
type SlotRequest struct {
	Date      time.Time
	WorkerID  string
	ServiceID string
	StartMin  int
}

// PoolRequest asks for any free eligible worker of a shop.
type PoolRequest struct {
	Date      time.Time
	ShopID    string
	ServiceID string
	StartMin  int
}

// Resolver decides whether a proposed slot can be granted. It is pure
// decision logic over the data providers; it never writes. Every provider
// failure propagates as an error so degraded conditions fail closed instead
// of granting a slot that may double-book.
type Resolver struct {
	schedules ScheduleCatalog
	workers   WorkerDirectory
	services  ServiceCatalog
	ledger    Ledger
}

func NewResolver(schedules ScheduleCatalog, workers WorkerDirectory, services ServiceCatalog, ledger Ledger) *Resolver {
	return &Resolver{
		schedules: schedules,
		workers:   workers,
		services:  services,
		ledger:    ledger,
	}
}

// CheckSlot reports whether the worker can take the [start, start+duration)
// interval on the given date. The worker and service must exist; their
// not-found errors propagate to the caller.
func (r *Resolver) CheckSlot(ctx context.Context, req SlotRequest) (Result, error) {
	w, err := r.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		return Result{}, err
	}

	service, err := r.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return Result{}, err
	}

	if !w.EligibleFor(req.ServiceID) {
		return unavailable(ReasonIneligibleService), nil
	}

	// A worker without a shop affiliation has no operating calendar at all.
	if w.ShopID == nil {
		return unavailable(ReasonShopClosed), nil
	}

	weekday := req.Date.Weekday()

	schedule, err := r.schedules.GetSchedule(ctx, *w.ShopID, weekday)
	if err != nil {
		return Result{}, fmt.Errorf("fetch schedule: %w", err)
	}
	if schedule == nil || !schedule.Enabled {
		return unavailable(ReasonShopClosed), nil
	}

	endMin := req.StartMin + service.DurationMinutes
	if req.StartMin < schedule.StartMin || endMin > schedule.EndMin {
		return unavailable(ReasonOutsideHours), nil
	}

	breaks, err := r.schedules.GetBreaks(ctx, *w.ShopID, weekday)
	if err != nil {
		return Result{}, fmt.Errorf("fetch breaks: %w", err)
	}
	for _, br := range breaks {
		if br.StartMin < endMin && br.EndMin > req.StartMin {
			return unavailable(ReasonOnBreak), nil
		}
	}

	committed, err := r.ledger.FindActiveByWorkerAndDate(ctx, req.WorkerID, req.Date)
	if err != nil {
		return Result{}, fmt.Errorf("fetch bookings: %w", err)
	}
	for _, b := range committed {
		// Canonical half-open interval intersection; an identical start time
		// is just a zero-distance overlap, no separate rule needed.
		if b.Overlaps(req.StartMin, endMin) {
			res := unavailable(ReasonOverlap)
			res.Conflict = b
			return res, nil
		}
	}

	return available(), nil
}

// FindWorker returns the first free worker from the shop's eligible pool,
// scanned in worker-id order so identical inputs and ledger state always
// yield the same assignment. When nobody is free the Result carries a
// per-worker reason map for diagnostics.
func (r *Resolver) FindWorker(ctx context.Context, req PoolRequest) (*worker.Worker, Result, error) {
	candidates, err := r.workers.ListEligible(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		return nil, Result{}, fmt.Errorf("list eligible workers: %w", err)
	}

	// The directory orders by id already; sorting again keeps the
	// determinism contract independent of the provider implementation.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	reasons := make(map[string]Reason, len(candidates))
	for _, cand := range candidates {
		res, err := r.CheckSlot(ctx, SlotRequest{
			Date:      req.Date,
			WorkerID:  cand.ID,
			ServiceID: req.ServiceID,
			StartMin:  req.StartMin,
		})
		if err != nil {
			return nil, Result{}, err
		}
		if res.Available {
			return cand, res, nil
		}
		reasons[cand.ID] = res.Reason
	}

	return nil, Result{Reason: ReasonNoEligibleWorker, Reasons: reasons}, nil
}
