package http

import (
	"time"

	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// WorkerTag is the minimal worker reference embedded in other responses.
type WorkerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WorkerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	ShopID     *string   `json:"shop_id"`
	ServiceIDs []string  `json:"service_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewWorkerResponse(w *worker.Worker) WorkerResponse {
	serviceIDs := w.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}
	return WorkerResponse{
		ID:         w.ID,
		Name:       w.Name,
		Status:     string(w.Status),
		ShopID:     w.ShopID,
		ServiceIDs: serviceIDs,
		CreatedAt:  w.CreatedAt,
	}
}

type CreateWorkerBody struct {
	Name   string  `json:"name" binding:"required"`
	Status string  `json:"status" binding:"omitempty,oneof=active inactive unassigned"`
	ShopID *string `json:"shop_id" binding:"omitempty,uuid"`
}

type UpdateWorkerBody struct {
	Name      *string `json:"name"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive unassigned"`
	ShopID    *string `json:"shop_id" binding:"omitempty,uuid"`
	ClearShop bool    `json:"clear_shop"`
}

type SetServicesBody struct {
	ServiceIDs []string `json:"service_ids" binding:"required,dive,uuid"`
}
