package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

func setupAuth(t *testing.T, now *time.Time) *AuthService {
	t.Helper()
	adminHash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	shopperHash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	accounts := []Account{
		{Email: "Admin@Example.com", PasswordHash: string(adminHash), Role: domain.RoleAdmin},
		{Email: "shopper@example.com", PasswordHash: string(shopperHash), Role: domain.RoleCustomer},
	}
	store := repository.NewStore(storage.NewMemory())
	return NewAuthService(accounts, repository.NewSessions(store), time.Hour, zap.NewNop()).
		WithClock(func() time.Time { return *now })
}

func TestAuth_LoginAndCapabilities(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	auth := setupAuth(t, &now)

	sess, err := auth.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)

	_, err = auth.Authorize(ctx, sess.Token, domain.CapManageCatalog)
	require.NoError(t, err)

	shopper, err := auth.Login(ctx, "shopper@example.com", "hunter2")
	require.NoError(t, err)
	_, err = auth.Authorize(ctx, shopper.Token, domain.CapManageOrders)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = auth.Authorize(ctx, shopper.Token, domain.CapCheckout)
	assert.NoError(t, err)
}

func TestAuth_BadCredentials(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	auth := setupAuth(t, &now)

	_, err := auth.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Authenticate(ctx, "made-up-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ExpiryAndLogout(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	auth := setupAuth(t, &now)

	sess, err := auth.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = auth.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	now = now.Add(-2 * time.Hour)
	sess, err = auth.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx, sess.Token))
	_, err = auth.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("pw")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidPhone(t *testing.T) {
	for _, ok := range []string{"9876543210", "+91 98765 43210", "+1-415-555-0100"} {
		assert.True(t, ValidPhone(ok), ok)
	}
	for _, bad := range []string{"", "12345", "98765abcde", "++919876543210"} {
		assert.False(t, ValidPhone(bad), bad)
	}
}

func TestAddressService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewAddressService(repository.NewAddresses(repository.NewStore(storage.NewMemory())))

	_, err := svc.Save(ctx, "bad", testAddress)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Save(ctx, "a@example.com", domain.Address{Street: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	added, err := svc.Save(ctx, "a@example.com", testAddress)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = svc.Save(ctx, "a@example.com", testAddress)
	require.NoError(t, err)
	assert.False(t, added)
}
