package worker

import (
	"context"
	"strings"

	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/shop"
)

type CreateRequest struct {
	Name   string
	Status Status
	ShopID *string
}

type UpdateRequest struct {
	Name   *string
	Status *Status
	ShopID *string
	// ClearShop detaches the worker from its shop when true.
	ClearShop bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Worker, error)
	GetByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context, filter Filter) ([]*Worker, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Worker, error)
	Delete(ctx context.Context, id string) error
	SetServices(ctx context.Context, workerID string, serviceIDs []string) (*Worker, error)
	ListEligible(ctx context.Context, shopID, serviceID string) ([]*Worker, error)
}

type service struct {
	repo        Repository
	shopService shop.Service
	catalog     svc.Catalog
}

func NewService(repo Repository, shopService shop.Service, catalog svc.Catalog) Service {
	return &service{
		repo:        repo,
		shopService: shopService,
		catalog:     catalog,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Worker, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	status := req.Status
	if status == "" {
		status = StatusUnassigned
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if req.ShopID != nil {
		if _, err := s.shopService.GetByID(ctx, *req.ShopID); err != nil {
			return nil, ErrInvalidShop
		}
	}

	w := &Worker{
		Name:   req.Name,
		Status: status,
		ShopID: req.ShopID,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	w.ServiceIDs = []string{}
	return w, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Worker, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Worker, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Worker, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		w.Name = *req.Name
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		w.Status = *req.Status
	}
	if req.ClearShop {
		w.ShopID = nil
	} else if req.ShopID != nil {
		if _, err := s.shopService.GetByID(ctx, *req.ShopID); err != nil {
			return nil, ErrInvalidShop
		}
		w.ShopID = req.ShopID
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetServices(ctx context.Context, workerID string, serviceIDs []string) (*Worker, error) {
	if _, err := s.repo.GetByID(ctx, workerID); err != nil {
		return nil, err
	}

	// Every service in the new eligibility set must exist.
	for _, serviceID := range serviceIDs {
		if _, err := s.catalog.GetByID(ctx, serviceID); err != nil {
			return nil, ErrInvalidService
		}
	}

	if err := s.repo.SetServices(ctx, workerID, serviceIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workerID)
}

func (s *service) ListEligible(ctx context.Context, shopID, serviceID string) ([]*Worker, error) {
	return s.repo.ListEligible(ctx, shopID, serviceID)
}
