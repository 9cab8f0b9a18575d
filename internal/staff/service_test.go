package staff

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopslot/shop-booking-backend/internal/auth"
)

type memRepo struct {
	byID    map[string]*Staff
	byEmail map[string]*Staff
}

func newMemRepo() *memRepo {
	return &memRepo{
		byID:    make(map[string]*Staff),
		byEmail: make(map[string]*Staff),
	}
}

func (m *memRepo) Create(ctx context.Context, s *Staff) error {
	if _, ok := m.byEmail[s.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	s.ID = fmt.Sprintf("staff-%d", len(m.byID)+1)
	s.CreatedAt = time.Now()
	m.byID[s.ID] = s
	m.byEmail[s.Email] = s
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Staff, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	if s, ok := m.byEmail[email]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	s.LastLoginAt = &at
	return nil
}

func newTestService() Service {
	return NewService(newMemRepo(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()

	acct, err := svc.Register(context.Background(), "Admin@Example.com", "s3cret-pass", "Admin", true)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", acct.Email)
	assert.True(t, acct.IsAdmin)
	assert.True(t, acct.IsActive)
	assert.NotEqual(t, "s3cret-pass", acct.PasswordHash)

	// Login is case-insensitive on email.
	logged, err := svc.Login(context.Background(), "ADMIN@example.COM", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginAt)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "", "s3cret-pass", "", false)
	require.Error(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "short", "", false)
	require.Error(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "s3cret-pass", "", false)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "s3cret-pass", "", false)
	require.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService()

	acct, err := svc.Register(context.Background(), "a@b.com", "s3cret-pass", "", false)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@b.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	acct.IsActive = false
	_, err = svc.Login(context.Background(), "a@b.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrInactiveAccount)
}
