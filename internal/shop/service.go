package shop

import (
	"context"
	"strings"
	"time"

	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
)

type CreateRequest struct {
	Name        string
	Address     string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Address     *string
	Description *string
}

// SetScheduleRequest sets the operating window for one weekday.
type SetScheduleRequest struct {
	Weekday  time.Weekday
	StartMin int
	EndMin   int
	Enabled  bool
}

type AddBreakRequest struct {
	Weekday  time.Weekday
	StartMin int
	EndMin   int
	Name     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Shop, error)
	GetByID(ctx context.Context, id string) (*Shop, error)
	List(ctx context.Context, filter Filter) ([]*Shop, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Shop, error)
	Delete(ctx context.Context, id string) error

	// GetSchedule returns the enabled-or-not window for a weekday (nil when unset).
	GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*Schedule, error)
	GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]Break, error)
	Week(ctx context.Context, shopID string) (*Week, error)
	SetSchedule(ctx context.Context, shopID string, req SetScheduleRequest) (*Schedule, error)
	AddBreak(ctx context.Context, shopID string, req AddBreakRequest) (*Break, error)
	RemoveBreak(ctx context.Context, shopID, breakID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Shop, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	sh := &Shop{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Shop, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Shop, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		sh.Name = *req.Name
	}
	if req.Address != nil {
		sh.Address = *req.Address
	}
	if req.Description != nil {
		sh.Description = *req.Description
	}

	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetSchedule(ctx context.Context, shopID string, weekday time.Weekday) (*Schedule, error) {
	return s.repo.GetSchedule(ctx, shopID, weekday)
}

func (s *service) GetBreaks(ctx context.Context, shopID string, weekday time.Weekday) ([]Break, error) {
	return s.repo.GetBreaks(ctx, shopID, weekday)
}

func (s *service) Week(ctx context.Context, shopID string) (*Week, error) {
	if _, err := s.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	schedules, err := s.repo.ListSchedules(ctx, shopID)
	if err != nil {
		return nil, err
	}
	breaks, err := s.repo.ListBreaks(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return &Week{Schedules: schedules, Breaks: breaks}, nil
}

func (s *service) SetSchedule(ctx context.Context, shopID string, req SetScheduleRequest) (*Schedule, error) {
	if _, err := s.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	if err := validateWindow(req.Weekday, req.StartMin, req.EndMin); err != nil {
		return nil, err
	}

	sc := &Schedule{
		ShopID:   shopID,
		Weekday:  req.Weekday,
		StartMin: req.StartMin,
		EndMin:   req.EndMin,
		Enabled:  req.Enabled,
	}

	if err := s.repo.UpsertSchedule(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) AddBreak(ctx context.Context, shopID string, req AddBreakRequest) (*Break, error) {
	if _, err := s.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	if err := validateWindow(req.Weekday, req.StartMin, req.EndMin); err != nil {
		return nil, err
	}

	b := &Break{
		ShopID:   shopID,
		Weekday:  req.Weekday,
		StartMin: req.StartMin,
		EndMin:   req.EndMin,
		Name:     req.Name,
	}

	if err := s.repo.AddBreak(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) RemoveBreak(ctx context.Context, shopID, breakID string) error {
	if _, err := s.repo.GetByID(ctx, shopID); err != nil {
		return err
	}
	return s.repo.RemoveBreak(ctx, shopID, breakID)
}

func validateWindow(weekday time.Weekday, startMin, endMin int) error {
	if weekday < time.Sunday || weekday > time.Saturday {
		return ErrInvalidWeekday
	}
	if startMin < 0 || endMin > timeutil.MinutesPerDay || startMin >= endMin {
		return ErrInvalidTimeRange
	}
	return nil
}
