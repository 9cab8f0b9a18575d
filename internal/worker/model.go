package worker

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("worker not found")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrInvalidStatus  = errors.New("invalid worker status")
	ErrInvalidShop    = errors.New("invalid shop_id")
	ErrInvalidService = errors.New("invalid service_id")
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusUnassigned Status = "unassigned"
)

// Valid reports whether s is a known worker status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnassigned:
		return true
	}
	return false
}

// Worker is a bookable person. ShopID is nil while the worker is not
// affiliated with any shop. ServiceIDs is the eligibility set: the
// worker may only be booked for services listed there.
type Worker struct {
	ID         string
	Name       string
	Status     Status
	ShopID     *string
	ServiceIDs []string
	CreatedAt  time.Time
}

// EligibleFor reports whether the worker's eligibility set contains serviceID.
func (w *Worker) EligibleFor(serviceID string) bool {
	for _, id := range w.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Filter defines parameters for listing workers.
type Filter struct {
	ShopID   string
	Status   string
	Page     int
	PageSize int
}
