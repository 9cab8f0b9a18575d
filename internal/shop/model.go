package shop

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("shop not found")
	ErrBreakNotFound    = errors.New("break not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidWeekday   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)

// Shop represents a single physical location clients can book at.
type Shop struct {
	ID          string
	Name        string
	Address     string
	Description string
	CreatedAt   time.Time
}

// Schedule is the operating window of a shop on one weekday.
// StartMin/EndMin are minutes from midnight; the window is half-open
// [StartMin, EndMin). A disabled or missing schedule means the shop is
// closed that weekday.
type Schedule struct {
	ShopID   string
	Weekday  time.Weekday
	StartMin int
	EndMin   int
	Enabled  bool
}

// Break is a sub-window within the operating hours during which no
// booking may start or run through (lunch, cleaning).
type Break struct {
	ID       string
	ShopID   string
	Weekday  time.Weekday
	StartMin int
	EndMin   int
	Name     string
}

// Week bundles the full weekly calendar of a shop for admin views.
type Week struct {
	Schedules []Schedule
	Breaks    []Break
}

// Filter defines parameters for listing shops.
type Filter struct {
	Keyword  string // matches name or address
	Page     int
	PageSize int
}
