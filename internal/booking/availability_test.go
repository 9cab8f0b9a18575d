package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// fakeProviders satisfies the resolver's data-provider interfaces in memory.
type fakeProviders struct {
	workers   map[string]*worker.Worker
	services  map[string]*svc.Service
	schedules map[time.Weekday]*shop.Schedule
	breaks    map[time.Weekday][]shop.Break
	bookings  map[string][]*Booking

	scheduleErr error
	ledgerErr   error
}

func (f *fakeProviders) GetByID(ctx context.Context, id string) (*worker.Worker, error) {
	if w, ok := f.workers[id]; ok {
		return w, nil
	}
	return nil, worker.ErrNotFound
}

func (f *fakeProviders) ListEligible(ctx context.Context, shopID, serviceID string) ([]*worker.Worker, error) {
	var out []*worker.Worker
	for _, w := range f.workers {
		if w.Status != worker.StatusActive || w.ShopID == nil || *w.ShopID != shopID {
			continue
		}
		if w.EligibleFor(serviceID) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeProviders) GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*shop.Schedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.schedules[weekday], nil
}

func (f *fakeProviders) GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]shop.Break, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.breaks[weekday], nil
}

type fakeCatalog struct{ services map[string]*svc.Service }

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*svc.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, svc.ErrNotFound
}

type fakeLedger struct {
	bookings map[string][]*Booking
	err      error
}

func (f *fakeLedger) FindActiveByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[workerID], nil
}

const (
	testShopID    = "shop-1"
	testServiceID = "service-30min"
)

// A Sunday; the fixture shop is open 09:00-18:00 with a 13:00-14:00 break.
var testDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newFixture() *fakeProviders {
	shopID := testShopID
	return &fakeProviders{
		workers: map[string]*worker.Worker{
			"worker-a": {
				ID: "worker-a", Name: "Ada", Status: worker.StatusActive,
				ShopID: &shopID, ServiceIDs: []string{testServiceID},
			},
		},
		services: map[string]*svc.Service{
			testServiceID: {ID: testServiceID, Name: "Haircut", DurationMinutes: 30},
		},
		schedules: map[time.Weekday]*shop.Schedule{
			time.Sunday: {ShopID: testShopID, Weekday: time.Sunday, StartMin: 9 * 60, EndMin: 18 * 60, Enabled: true},
		},
		breaks: map[time.Weekday][]shop.Break{
			time.Sunday: {{ShopID: testShopID, Weekday: time.Sunday, StartMin: 13 * 60, EndMin: 14 * 60, Name: "lunch"}},
		},
		bookings: map[string][]*Booking{
			"worker-a": {{
				ID: "existing", WorkerID: "worker-a", Date: testDate,
				StartMin: 10 * 60, EndMin: 10*60 + 30, Status: StatusConfirmed,
			}},
		},
	}
}

func newTestResolver(f *fakeProviders) *Resolver {
	return NewResolver(f, f, &fakeCatalog{services: f.services}, &fakeLedger{bookings: f.bookings})
}

func TestCheckSlot(t *testing.T) {
	tests := []struct {
		name       string
		startMin   int
		mutate     func(f *fakeProviders)
		wantOK     bool
		wantReason Reason
	}{
		{
			name:     "free slot inside hours",
			startMin: 11 * 60,
			wantOK:   true,
		},
		{
			name:       "overlaps existing booking",
			startMin:   10*60 + 15,
			wantReason: ReasonOverlap,
		},
		{
			name:     "back to back after existing booking",
			startMin: 10*60 + 30,
			wantOK:   true,
		},
		{
			name:     "ends exactly where existing booking starts",
			startMin: 9*60 + 30,
			wantOK:   true,
		},
		{
			name:       "falls inside break",
			startMin:   13*60 + 30,
			wantReason: ReasonOnBreak,
		},
		{
			name:       "partially overlaps break",
			startMin:   12*60 + 45,
			wantReason: ReasonOnBreak,
		},
		{
			name:       "runs past closing time",
			startMin:   17*60 + 45,
			wantReason: ReasonOutsideHours,
		},
		{
			name:       "before opening time",
			startMin:   8 * 60,
			wantReason: ReasonOutsideHours,
		},
		{
			name:     "day disabled",
			startMin: 11 * 60,
			mutate: func(f *fakeProviders) {
				f.schedules[time.Sunday].Enabled = false
			},
			wantReason: ReasonShopClosed,
		},
		{
			name:     "no schedule row for the day",
			startMin: 11 * 60,
			mutate: func(f *fakeProviders) {
				delete(f.schedules, time.Sunday)
			},
			wantReason: ReasonShopClosed,
		},
		{
			name:     "worker has no shop",
			startMin: 11 * 60,
			mutate: func(f *fakeProviders) {
				f.workers["worker-a"].ShopID = nil
			},
			wantReason: ReasonShopClosed,
		},
		{
			name:     "worker not eligible for service",
			startMin: 11 * 60,
			mutate: func(f *fakeProviders) {
				f.workers["worker-a"].ServiceIDs = nil
			},
			wantReason: ReasonIneligibleService,
		},
		{
			name:     "day block occupies everything",
			startMin: 11 * 60,
			mutate: func(f *fakeProviders) {
				f.bookings["worker-a"] = []*Booking{{
					ID: "blk", WorkerID: "worker-a", Date: testDate,
					StartMin: 0, EndMin: 1440, Status: StatusBlock,
				}}
			},
			wantReason: ReasonOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.mutate != nil {
				tt.mutate(f)
			}

			res, err := newTestResolver(f).CheckSlot(context.Background(), SlotRequest{
				Date:      testDate,
				WorkerID:  "worker-a",
				ServiceID: testServiceID,
				StartMin:  tt.startMin,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantOK, res.Available)
			if !tt.wantOK {
				assert.Equal(t, tt.wantReason, res.Reason)
			}
			if tt.wantReason == ReasonOverlap {
				require.NotNil(t, res.Conflict)
			}
		})
	}
}

func TestCheckSlotUnknownWorker(t *testing.T) {
	f := newFixture()
	_, err := newTestResolver(f).CheckSlot(context.Background(), SlotRequest{
		Date: testDate, WorkerID: "missing", ServiceID: testServiceID, StartMin: 11 * 60,
	})
	require.ErrorIs(t, err, worker.ErrNotFound)
}

func TestCheckSlotUnknownService(t *testing.T) {
	f := newFixture()
	_, err := newTestResolver(f).CheckSlot(context.Background(), SlotRequest{
		Date: testDate, WorkerID: "worker-a", ServiceID: "missing", StartMin: 11 * 60,
	})
	require.ErrorIs(t, err, svc.ErrNotFound)
}

// A failing provider must surface as an error, never as an available slot.
func TestCheckSlotFailsClosed(t *testing.T) {
	f := newFixture()
	f.scheduleErr = errors.New("connection reset")

	res, err := newTestResolver(f).CheckSlot(context.Background(), SlotRequest{
		Date: testDate, WorkerID: "worker-a", ServiceID: testServiceID, StartMin: 11 * 60,
	})
	require.Error(t, err)
	assert.False(t, res.Available)

	f = newFixture()
	resolver := NewResolver(f, f, &fakeCatalog{services: f.services}, &fakeLedger{err: errors.New("timeout")})
	res, err = resolver.CheckSlot(context.Background(), SlotRequest{
		Date: testDate, WorkerID: "worker-a", ServiceID: testServiceID, StartMin: 11 * 60,
	})
	require.Error(t, err)
	assert.False(t, res.Available)
}

func addWorker(f *fakeProviders, id string) {
	shopID := testShopID
	f.workers[id] = &worker.Worker{
		ID: id, Name: id, Status: worker.StatusActive,
		ShopID: &shopID, ServiceIDs: []string{testServiceID},
	}
}

func TestFindWorker(t *testing.T) {
	t.Run("skips the busy worker", func(t *testing.T) {
		f := newFixture()
		addWorker(f, "worker-b")

		w, res, err := newTestResolver(f).FindWorker(context.Background(), PoolRequest{
			Date: testDate, ShopID: testShopID, ServiceID: testServiceID, StartMin: 10 * 60,
		})
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, "worker-b", w.ID)
		assert.True(t, res.Available)
	})

	t.Run("lowest worker id wins when several are free", func(t *testing.T) {
		f := newFixture()
		addWorker(f, "worker-b")
		addWorker(f, "worker-c")

		// All three are free at 11:00; repeated calls must agree.
		for i := 0; i < 5; i++ {
			w, _, err := newTestResolver(f).FindWorker(context.Background(), PoolRequest{
				Date: testDate, ShopID: testShopID, ServiceID: testServiceID, StartMin: 11 * 60,
			})
			require.NoError(t, err)
			require.NotNil(t, w)
			assert.Equal(t, "worker-a", w.ID)
		}
	})

	t.Run("pool exhausted reports per-worker reasons", func(t *testing.T) {
		f := newFixture()
		addWorker(f, "worker-b")
		f.bookings["worker-b"] = []*Booking{{
			ID: "b2", WorkerID: "worker-b", Date: testDate,
			StartMin: 10 * 60, EndMin: 11 * 60, Status: StatusPending,
		}}

		w, res, err := newTestResolver(f).FindWorker(context.Background(), PoolRequest{
			Date: testDate, ShopID: testShopID, ServiceID: testServiceID, StartMin: 10 * 60,
		})
		require.NoError(t, err)
		assert.Nil(t, w)
		assert.False(t, res.Available)
		assert.Equal(t, ReasonNoEligibleWorker, res.Reason)
		assert.Equal(t, map[string]Reason{
			"worker-a": ReasonOverlap,
			"worker-b": ReasonOverlap,
		}, res.Reasons)
	})

	t.Run("empty pool", func(t *testing.T) {
		f := newFixture()
		f.workers["worker-a"].Status = worker.StatusInactive

		w, res, err := newTestResolver(f).FindWorker(context.Background(), PoolRequest{
			Date: testDate, ShopID: testShopID, ServiceID: testServiceID, StartMin: 11 * 60,
		})
		require.NoError(t, err)
		assert.Nil(t, w)
		assert.Equal(t, ReasonNoEligibleWorker, res.Reason)
		assert.Empty(t, res.Reasons)
	})
}
