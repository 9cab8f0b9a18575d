package service

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("service not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidPrice    = errors.New("price cannot be negative")
)

// Service is a bookable offering (haircut, massage, consultation).
// DurationMinutes determines the length of the slot a booking occupies.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	PriceCents      int64
	CreatedAt       time.Time
}

// Filter defines parameters for listing services.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
