package service

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name            string
	DurationMinutes int
	PriceCents      int64
}

type UpdateRequest struct {
	Name            *string
	DurationMinutes *int
	PriceCents      *int64
}

// Catalog is the business layer over the service table. It is named Catalog
// rather than Service because the entity itself is a Service.
type Catalog interface {
	Create(ctx context.Context, req CreateRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Service, error)
	Delete(ctx context.Context, id string) error
}

type catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) Catalog {
	return &catalog{repo: repo}
}

func (c *catalog) Create(ctx context.Context, req CreateRequest) (*Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	s := &Service{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}

	if err := c.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *catalog) GetByID(ctx context.Context, id string) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *catalog) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	return c.repo.List(ctx, filter)
}

func (c *catalog) Update(ctx context.Context, id string, req UpdateRequest) (*Service, error) {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		s.Name = *req.Name
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		s.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, ErrInvalidPrice
		}
		s.PriceCents = *req.PriceCents
	}

	if err := c.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *catalog) Delete(ctx context.Context, id string) error {
	if _, err := c.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}
