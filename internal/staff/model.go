package staff

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("staff account not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
)

// Staff represents a back-office account (shop managers, administrators).
// Clients booking slots do not have accounts; they identify themselves
// by name/email on each booking.
type Staff struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
