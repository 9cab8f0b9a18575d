package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// memRepo is an in-memory Repository whose Insert performs the same
// check-and-write atomically, like the guarded SQL insert does.
type memRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*Booking)}
}

func (m *memRepo) Insert(ctx context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if row.WorkerID != b.WorkerID || !row.Date.Equal(b.Date) || row.Status == StatusCancelled {
			continue
		}
		if row.Overlaps(b.StartMin, b.EndMin) {
			return ErrTimeConflict
		}
	}

	m.seq++
	b.ID = fmt.Sprintf("bk-%d", m.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	m.rows[b.ID] = &clone
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *row
	return &clone, nil
}

func (m *memRepo) FindActiveByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Booking
	for _, row := range m.rows {
		if row.WorkerID == workerID && row.Date.Equal(date) && row.Status != StatusCancelled {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Booking
	for _, row := range m.rows {
		if filter.WorkerID != "" && row.WorkerID != filter.WorkerID {
			continue
		}
		if filter.Status != "" && string(row.Status) != filter.Status {
			continue
		}
		clone := *row
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.Status = status
	row.UpdatedAt = time.Now()
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type fakeShops struct{ shops map[string]*shop.Shop }

func (f *fakeShops) GetByID(ctx context.Context, id string) (*shop.Shop, error) {
	if s, ok := f.shops[id]; ok {
		return s, nil
	}
	return nil, shop.ErrNotFound
}

type fixture struct {
	providers *fakeProviders
	repo      *memRepo
	svc       Service
}

func newServiceFixture() *fixture {
	f := newFixture()
	f.bookings = nil // ledger state lives in the repo here
	repo := newMemRepo()
	resolver := NewResolver(f, f, &fakeCatalog{services: f.services}, repo)
	shops := &fakeShops{shops: map[string]*shop.Shop{
		testShopID: {ID: testShopID, Name: "Downtown"},
	}}
	return &fixture{
		providers: f,
		repo:      repo,
		svc:       NewService(repo, resolver, shops, f, &fakeCatalog{services: f.services}),
	}
}

func validCreate() CreateRequest {
	return CreateRequest{
		Date:       testDate,
		StartMin:   11 * 60,
		ServiceID:  testServiceID,
		Worker:     SpecificWorker("worker-a"),
		ClientName: "Jo Client",
	}
}

func TestCreateSpecificWorker(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "worker-a", b.WorkerID)
	assert.Equal(t, "Ada", b.WorkerName)
	assert.Equal(t, testShopID, b.ShopID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 11*60, b.StartMin)
	assert.Equal(t, 11*60+30, b.EndMin)
	require.NotNil(t, b.ServiceID)
	assert.Equal(t, testServiceID, *b.ServiceID)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fx *fixture, req *CreateRequest)
		wantErr error
	}{
		{
			name:    "missing client name",
			mutate:  func(fx *fixture, req *CreateRequest) { req.ClientName = "  " },
			wantErr: ErrClientRequired,
		},
		{
			name:    "zero date",
			mutate:  func(fx *fixture, req *CreateRequest) { req.Date = time.Time{} },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown service",
			mutate:  func(fx *fixture, req *CreateRequest) { req.ServiceID = "missing" },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "unknown worker",
			mutate:  func(fx *fixture, req *CreateRequest) { req.Worker = SpecificWorker("missing") },
			wantErr: ErrWorkerNotFound,
		},
		{
			name: "inactive worker",
			mutate: func(fx *fixture, req *CreateRequest) {
				fx.providers.workers["worker-a"].Status = worker.StatusInactive
			},
			wantErr: ErrWorkerInactive,
		},
		{
			name: "unassigned worker",
			mutate: func(fx *fixture, req *CreateRequest) {
				fx.providers.workers["worker-a"].ShopID = nil
			},
			wantErr: ErrWorkerUnassigned,
		},
		{
			name:    "shop mismatch",
			mutate:  func(fx *fixture, req *CreateRequest) { req.ShopID = "other-shop" },
			wantErr: ErrShopMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newServiceFixture()
			req := validCreate()
			tt.mutate(fx, &req)

			_, err := fx.svc.Create(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateConflict(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	req := validCreate()
	req.StartMin = 11*60 + 15
	_, err = fx.svc.Create(context.Background(), req)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ReasonOverlap, conflict.Reason)
	require.NotNil(t, conflict.Conflict)
	assert.Equal(t, 11*60, conflict.Conflict.StartMin)
}

func TestCreatePooled(t *testing.T) {
	t.Run("assigns a free eligible worker", func(t *testing.T) {
		fx := newServiceFixture()
		addWorker(fx.providers, "worker-b")

		req := validCreate()
		req.Worker = AnyEligible()
		req.ShopID = testShopID

		// worker-a takes the slot first.
		first, err := fx.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "worker-a", first.WorkerID)

		second, err := fx.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "worker-b", second.WorkerID)
	})

	t.Run("unknown shop", func(t *testing.T) {
		fx := newServiceFixture()
		req := validCreate()
		req.Worker = AnyEligible()
		req.ShopID = "missing"

		_, err := fx.svc.Create(context.Background(), req)
		require.ErrorIs(t, err, ErrShopNotFound)
	})

	t.Run("pool exhausted", func(t *testing.T) {
		fx := newServiceFixture()

		req := validCreate()
		req.Worker = AnyEligible()
		req.ShopID = testShopID

		_, err := fx.svc.Create(context.Background(), req)
		require.NoError(t, err)

		_, err = fx.svc.Create(context.Background(), req)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, ReasonNoEligibleWorker, conflict.Reason)
		assert.Equal(t, map[string]Reason{"worker-a": ReasonOverlap}, conflict.Reasons)
	})
}

// Many clients race for the same slot; exactly one booking must be written.
func TestCreateConcurrentSameSlot(t *testing.T) {
	fx := newServiceFixture()

	const clients = 16
	var wg sync.WaitGroup
	errs := make([]error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validCreate()
			req.ClientName = fmt.Sprintf("client-%d", i)
			_, errs[i] = fx.svc.Create(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		conflicted++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, clients-1, conflicted)
	assert.Len(t, fx.repo.rows, 1)
}

func TestBlockDay(t *testing.T) {
	t.Run("blocks an empty day", func(t *testing.T) {
		fx := newServiceFixture()

		b, err := fx.svc.BlockDay(context.Background(), BlockRequest{
			Date: testDate, WorkerID: "worker-a", ShopID: testShopID, Reason: "vacation",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusBlock, b.Status)
		assert.Equal(t, 0, b.StartMin)
		assert.Equal(t, timeutil.MinutesPerDay, b.EndMin)
		assert.Equal(t, "vacation", b.Note)
		assert.Nil(t, b.ServiceID)

		// Nothing can be booked on a blocked day.
		_, err = fx.svc.Create(context.Background(), validCreate())
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, ReasonOverlap, conflict.Reason)
	})

	t.Run("refuses when bookings exist", func(t *testing.T) {
		fx := newServiceFixture()

		_, err := fx.svc.Create(context.Background(), validCreate())
		require.NoError(t, err)

		_, err = fx.svc.BlockDay(context.Background(), BlockRequest{
			Date: testDate, WorkerID: "worker-a", Reason: "vacation",
		})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("covers the closing minute", func(t *testing.T) {
		fx := newServiceFixture()

		_, err := fx.svc.BlockDay(context.Background(), BlockRequest{
			Date: testDate, WorkerID: "worker-a", Reason: "vacation",
		})
		require.NoError(t, err)

		// A one-minute slot at 23:59 must not slip past the block.
		lastMinute := &Booking{
			WorkerID: "worker-a", Date: testDate,
			StartMin: timeutil.MinutesPerDay - 1, EndMin: timeutil.MinutesPerDay,
			Status: StatusPending,
		}
		require.ErrorIs(t, fx.repo.Insert(context.Background(), lastMinute), ErrTimeConflict)
	})

	t.Run("rejects mismatched shop", func(t *testing.T) {
		fx := newServiceFixture()
		_, err := fx.svc.BlockDay(context.Background(), BlockRequest{
			Date: testDate, WorkerID: "worker-a", ShopID: "shop-other",
		})
		require.ErrorIs(t, err, ErrShopMismatch)
	})

	t.Run("unknown worker", func(t *testing.T) {
		fx := newServiceFixture()
		_, err := fx.svc.BlockDay(context.Background(), BlockRequest{
			Date: testDate, WorkerID: "missing",
		})
		require.ErrorIs(t, err, ErrWorkerNotFound)
	})
}

func TestConfirm(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	confirmed, err := fx.svc.Confirm(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// Only pending bookings can be confirmed.
	_, err = fx.svc.Confirm(context.Background(), b.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = fx.svc.Confirm(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Cancelling again is a no-op.
	again, err := fx.svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)

	// The slot is free again.
	_, err = fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
}

func TestCancelBlockRejected(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.BlockDay(context.Background(), BlockRequest{
		Date: testDate, WorkerID: "worker-a",
	})
	require.NoError(t, err)

	_, err = fx.svc.Cancel(context.Background(), b.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRemoveBlock(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.BlockDay(context.Background(), BlockRequest{
		Date: testDate, WorkerID: "worker-a",
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.RemoveBlock(context.Background(), b.ID))

	// The day opens up once the block is gone.
	_, err = fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
}

func TestRemoveBlockRejectsRegularBooking(t *testing.T) {
	fx := newServiceFixture()

	b, err := fx.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	err = fx.svc.RemoveBlock(context.Background(), b.ID)
	require.ErrorIs(t, err, ErrNotBlock)
}
