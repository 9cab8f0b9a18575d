package booking

import (
	"net/http"
	"time"

	"github.com/shopslot/shop-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrShopNotFound     = apperror.New(http.StatusNotFound, "shop not found")
	ErrWorkerNotFound   = apperror.New(http.StatusNotFound, "worker not found")
	ErrServiceNotFound  = apperror.New(http.StatusNotFound, "service not found")
	ErrWorkerInactive   = apperror.New(http.StatusBadRequest, "worker is not active")
	ErrWorkerUnassigned = apperror.New(http.StatusBadRequest, "worker is not affiliated with a shop")
	ErrShopMismatch     = apperror.New(http.StatusBadRequest, "worker is not affiliated with this shop")
	ErrClientRequired   = apperror.New(http.StatusBadRequest, "client name is required")
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "invalid date")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status transition")
	ErrNotBlock         = apperror.New(http.StatusBadRequest, "booking is not a day block")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	// StatusBlock marks a full-day administrative block (vacation, training).
	// Block rows participate in overlap checks like any other active booking
	// but are never confirmed or cancelled, only deleted.
	StatusBlock Status = "block"
)

// Booking occupies the half-open interval [StartMin, EndMin) of one worker's
// day. All times are minutes from midnight in the shop's local wall clock.
type Booking struct {
	ID          string
	WorkerID    string
	WorkerName  string
	ShopID      string
	ShopName    string
	ServiceID   *string // nil for day blocks
	ServiceName *string
	Date        time.Time // calendar day, midnight UTC
	StartMin    int
	EndMin      int
	Status      Status
	ClientName  string
	ClientEmail string
	Note        string // block reason for day blocks
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether the booking's interval intersects [startMin, endMin).
func (b *Booking) Overlaps(startMin, endMin int) bool {
	return b.StartMin < endMin && b.EndMin > startMin
}

// Filter defines parameters for listing bookings.
type Filter struct {
	WorkerID string
	ShopID   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
