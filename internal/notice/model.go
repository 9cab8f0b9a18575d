package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("notice not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidShop     = errors.New("invalid shop_id")
)

// Notice is a customer-facing announcement scoped to one shop
// (holiday closure, schedule change, promotion).
type Notice struct {
	ID        string
	ShopID    string
	Title     string
	Content   string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	ShopID   string
	Keyword  string
	Page     int
	PageSize int
}
