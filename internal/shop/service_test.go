package shop

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	shops     map[string]*Shop
	schedules map[string]map[time.Weekday]*Schedule
	breaks    map[string][]Break
	breakSeq  int
}

func newMemRepo() *memRepo {
	return &memRepo{
		shops:     make(map[string]*Shop),
		schedules: make(map[string]map[time.Weekday]*Schedule),
		breaks:    make(map[string][]Break),
	}
}

func (m *memRepo) Create(ctx context.Context, s *Shop) error {
	s.ID = fmt.Sprintf("shop-%d", len(m.shops)+1)
	s.CreatedAt = time.Now()
	m.shops[s.ID] = s
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Shop, error) {
	if s, ok := m.shops[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memRepo) List(ctx context.Context, filter Filter) ([]*Shop, int, error) {
	var out []*Shop
	for _, s := range m.shops {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(ctx context.Context, s *Shop) error {
	if _, ok := m.shops[s.ID]; !ok {
		return ErrNotFound
	}
	m.shops[s.ID] = s
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.shops[id]; !ok {
		return ErrNotFound
	}
	delete(m.shops, id)
	return nil
}

func (m *memRepo) GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*Schedule, error) {
	return m.schedules[shopID][weekday], nil
}

func (m *memRepo) UpsertSchedule(ctx context.Context, sc *Schedule) error {
	if m.schedules[sc.ShopID] == nil {
		m.schedules[sc.ShopID] = make(map[time.Weekday]*Schedule)
	}
	m.schedules[sc.ShopID][sc.Weekday] = sc
	return nil
}

func (m *memRepo) ListSchedules(ctx context.Context, shopID string) ([]Schedule, error) {
	var out []Schedule
	for _, sc := range m.schedules[shopID] {
		out = append(out, *sc)
	}
	return out, nil
}

func (m *memRepo) GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]Break, error) {
	var out []Break
	for _, b := range m.breaks[shopID] {
		if b.Weekday == weekday {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memRepo) ListBreaks(ctx context.Context, shopID string) ([]Break, error) {
	return m.breaks[shopID], nil
}

func (m *memRepo) AddBreak(ctx context.Context, b *Break) error {
	m.breakSeq++
	b.ID = fmt.Sprintf("break-%d", m.breakSeq)
	m.breaks[b.ShopID] = append(m.breaks[b.ShopID], *b)
	return nil
}

func (m *memRepo) RemoveBreak(ctx context.Context, shopID, breakID string) error {
	breaks := m.breaks[shopID]
	for i, b := range breaks {
		if b.ID == breakID {
			m.breaks[shopID] = append(breaks[:i], breaks[i+1:]...)
			return nil
		}
	}
	return ErrBreakNotFound
}

func newTestService(t *testing.T) (Service, string) {
	t.Helper()
	svc := NewService(newMemRepo())
	s, err := svc.Create(context.Background(), CreateRequest{Name: "Downtown"})
	require.NoError(t, err)
	return svc, s.ID
}

func TestSetSchedule(t *testing.T) {
	tests := []struct {
		name     string
		weekday  time.Weekday
		startMin int
		endMin   int
		wantErr  error
	}{
		{name: "valid window", weekday: time.Monday, startMin: 9 * 60, endMin: 18 * 60},
		{name: "full day", weekday: time.Monday, startMin: 0, endMin: 24 * 60},
		{name: "start equals end", weekday: time.Monday, startMin: 9 * 60, endMin: 9 * 60, wantErr: ErrInvalidTimeRange},
		{name: "start after end", weekday: time.Monday, startMin: 18 * 60, endMin: 9 * 60, wantErr: ErrInvalidTimeRange},
		{name: "negative start", weekday: time.Monday, startMin: -1, endMin: 9 * 60, wantErr: ErrInvalidTimeRange},
		{name: "end past midnight", weekday: time.Monday, startMin: 9 * 60, endMin: 24*60 + 1, wantErr: ErrInvalidTimeRange},
		{name: "invalid weekday", weekday: time.Weekday(7), startMin: 9 * 60, endMin: 18 * 60, wantErr: ErrInvalidWeekday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, shopID := newTestService(t)

			sc, err := svc.SetSchedule(context.Background(), shopID, SetScheduleRequest{
				Weekday:  tt.weekday,
				StartMin: tt.startMin,
				EndMin:   tt.endMin,
				Enabled:  true,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.startMin, sc.StartMin)
			assert.Equal(t, tt.endMin, sc.EndMin)
			assert.True(t, sc.Enabled)
		})
	}
}

func TestSetScheduleOverwrites(t *testing.T) {
	svc, shopID := newTestService(t)

	_, err := svc.SetSchedule(context.Background(), shopID, SetScheduleRequest{
		Weekday: time.Monday, StartMin: 9 * 60, EndMin: 18 * 60, Enabled: true,
	})
	require.NoError(t, err)

	_, err = svc.SetSchedule(context.Background(), shopID, SetScheduleRequest{
		Weekday: time.Monday, StartMin: 10 * 60, EndMin: 16 * 60, Enabled: false,
	})
	require.NoError(t, err)

	sc, err := svc.GetSchedule(context.Background(), shopID, time.Monday)
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, 10*60, sc.StartMin)
	assert.False(t, sc.Enabled)
}

func TestBreaks(t *testing.T) {
	svc, shopID := newTestService(t)

	b, err := svc.AddBreak(context.Background(), shopID, AddBreakRequest{
		Weekday: time.Monday, StartMin: 13 * 60, EndMin: 14 * 60, Name: "lunch",
	})
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)

	breaks, err := svc.GetBreaks(context.Background(), shopID, time.Monday)
	require.NoError(t, err)
	require.Len(t, breaks, 1)

	require.NoError(t, svc.RemoveBreak(context.Background(), shopID, b.ID))

	breaks, err = svc.GetBreaks(context.Background(), shopID, time.Monday)
	require.NoError(t, err)
	assert.Empty(t, breaks)

	err = svc.RemoveBreak(context.Background(), shopID, "missing")
	require.ErrorIs(t, err, ErrBreakNotFound)
}

func TestAddBreakInvalidWindow(t *testing.T) {
	svc, shopID := newTestService(t)

	_, err := svc.AddBreak(context.Background(), shopID, AddBreakRequest{
		Weekday: time.Monday, StartMin: 14 * 60, EndMin: 13 * 60, Name: "lunch",
	})
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestWeek(t *testing.T) {
	svc, shopID := newTestService(t)

	_, err := svc.SetSchedule(context.Background(), shopID, SetScheduleRequest{
		Weekday: time.Monday, StartMin: 9 * 60, EndMin: 18 * 60, Enabled: true,
	})
	require.NoError(t, err)
	_, err = svc.AddBreak(context.Background(), shopID, AddBreakRequest{
		Weekday: time.Monday, StartMin: 13 * 60, EndMin: 14 * 60, Name: "lunch",
	})
	require.NoError(t, err)

	w, err := svc.Week(context.Background(), shopID)
	require.NoError(t, err)
	assert.Len(t, w.Schedules, 1)
	assert.Len(t, w.Breaks, 1)

	_, err = svc.Week(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
