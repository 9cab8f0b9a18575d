package api

import (
	"time"

	"github.com/shopslot/shop-booking-backend/internal/staff"
)

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// StaffResponse is the shape of staff account data returned by the API.
type StaffResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsAdmin     bool       `json:"is_admin"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       StaffResponse `json:"staff"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	Staff StaffResponse `json:"staff"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	Staff StaffResponse `json:"staff"`
}

// NewStaffResponse converts a domain staff account to its API shape.
func NewStaffResponse(s *staff.Staff) StaffResponse {
	var lastLoginAt *time.Time
	if s.LastLoginAt != nil {
		ll := *s.LastLoginAt
		lastLoginAt = &ll
	}

	return StaffResponse{
		ID:          s.ID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		IsActive:    s.IsActive,
		IsAdmin:     s.IsAdmin,
		CreatedAt:   s.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}
