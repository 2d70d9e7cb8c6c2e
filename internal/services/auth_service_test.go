package services

import (
	"context"
	"testing"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"
	"restaurant-order-backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	jwtManager := auth.NewJWTManager("test-secret", 1, 30)
	return NewAuthService(repositories.NewUserRepository(db), jwtManager, nil)
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	service := newTestAuthService(db)
	ctx := context.Background()

	user, err := service.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Requested roles are ignored on self-registration.
	user2, err := service.Register(ctx, &RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user2.Role)
}

func TestRegisterDuplicates(t *testing.T) {
	db := setupTestDB(t)
	service := newTestAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.Register(ctx, &RegisterRequest{
		Username: "other",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	service := newTestAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Login works with the username and with the email.
	for _, identifier := range []string{"alice", "alice@example.com"} {
		response, err := service.Login(ctx, &LoginRequest{Identifier: identifier, Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.NotEmpty(t, response.RefreshToken)
		assert.Equal(t, "alice", response.User.Username)
	}

	_, err = service.Login(ctx, &LoginRequest{Identifier: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.Login(ctx, &LoginRequest{Identifier: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	service := newTestAuthService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice", models.RoleCustomer)

	got, err := service.GetCurrentUser(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = service.GetCurrentUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetCurrentUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRefreshAccessToken(t *testing.T) {
	db := setupTestDB(t)
	service := newTestAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	response, err := service.Login(ctx, &LoginRequest{Identifier: "alice", Password: "password123"})
	require.NoError(t, err)

	pair, err := service.RefreshAccessToken(ctx, response.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = service.RefreshAccessToken(ctx, response.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.RefreshAccessToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
