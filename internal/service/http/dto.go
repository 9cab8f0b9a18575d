package http

import (
	"time"

	svc "github.com/shopslot/shop-booking-backend/internal/service"
)

// ServiceTag is the minimal service reference embedded in other responses.
type ServiceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewServiceResponse(s *svc.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		CreatedAt:       s.CreatedAt,
	}
}

type CreateServiceBody struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
}

type UpdateServiceBody struct {
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	PriceCents      *int64  `json:"price_cents" binding:"omitempty,min=0"`
}
