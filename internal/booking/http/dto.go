package http

import (
	"time"

	"github.com/shopslot/shop-booking-backend/internal/booking"
	"github.com/shopslot/shop-booking-backend/internal/pkg/timeutil"
)

type BookingResponse struct {
	ID          string    `json:"id"`
	WorkerID    string    `json:"worker_id"`
	WorkerName  string    `json:"worker_name"`
	ShopID      string    `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
	ServiceID   *string   `json:"service_id"`
	ServiceName *string   `json:"service_name"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		WorkerID:    b.WorkerID,
		WorkerName:  b.WorkerName,
		ShopID:      b.ShopID,
		ShopName:    b.ShopName,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		Date:        timeutil.FormatDate(b.Date),
		StartTime:   timeutil.FormatClock(b.StartMin),
		EndTime:     timeutil.FormatClock(b.EndMin),
		Status:      string(b.Status),
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ConflictSlot describes the occupied interval blocking a request without
// exposing the other client's details.
type ConflictSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func NewConflictSlot(b *booking.Booking) *ConflictSlot {
	if b == nil {
		return nil
	}
	return &ConflictSlot{
		StartTime: timeutil.FormatClock(b.StartMin),
		EndTime:   timeutil.FormatClock(b.EndMin),
		Status:    string(b.Status),
	}
}

type AvailabilityResponse struct {
	Available bool          `json:"available"`
	Reason    string        `json:"reason,omitempty"`
	Conflict  *ConflictSlot `json:"conflict,omitempty"`
	// Reasons maps worker id to refusal reason when a whole pool was checked.
	Reasons map[string]string `json:"unavailable_reasons,omitempty"`
	// WorkerID is the worker the pool check would assign.
	WorkerID string `json:"worker_id,omitempty"`
}

type ConflictResponse struct {
	Error    string            `json:"error"`
	Reason   string            `json:"reason"`
	Conflict *ConflictSlot     `json:"conflict,omitempty"`
	Reasons  map[string]string `json:"unavailable_reasons,omitempty"`
}

func reasonStrings(reasons map[string]booking.Reason) map[string]string {
	if len(reasons) == 0 {
		return nil
	}
	out := make(map[string]string, len(reasons))
	for id, r := range reasons {
		out[id] = string(r)
	}
	return out
}

type CreateBookingBody struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	ServiceID string `json:"service_id" binding:"required,uuid"`
	// Two booking modes: a concrete worker_id, or "any eligible worker of
	// this shop" via worker_id="any" (or simply omitting worker_id) plus
	// shop_id. The literal is validated in the handler, not by tag.
	WorkerID    *string `json:"worker_id"`
	ShopID      *string `json:"shop_id" binding:"omitempty,uuid"`
	ClientName  string  `json:"client_name" binding:"required"`
	ClientEmail string  `json:"client_email" binding:"omitempty,email"`
	Note        string  `json:"note"`
}

type BlockDayBody struct {
	WorkerID string `json:"worker_id" binding:"required,uuid"`
	ShopID   string `json:"shop_id" binding:"omitempty,uuid"`
	Date     string `json:"date" binding:"required"`
	Reason   string `json:"reason"`
}
