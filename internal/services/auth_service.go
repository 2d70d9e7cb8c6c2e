package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"
	"restaurant-order-backend/pkg/auth"
	"restaurant-order-backend/pkg/cache"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo   repositories.UserRepository
	jwtManager *auth.JWTManager
	cache      *cache.RedisCache
}

func NewAuthService(userRepo repositories.UserRepository, jwtManager *auth.JWTManager, cache *cache.RedisCache) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      cache,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	// Identifier matches against username or email.
	Identifier string `json:"email_or_username" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         UserSummary `json:"user"`
}

func (s *AuthService) storeRefreshToken(ctx context.Context, userID, refreshToken string, expiryDays int) error {
	if s.cache == nil {
		return nil
	}
	key := fmt.Sprintf("refresh_token:%s", userID)
	expiry := time.Hour * 24 * time.Duration(expiryDays)
	return s.cache.Set(ctx, key, refreshToken, expiry)
}

func (s *AuthService) getStoredRefreshToken(ctx context.Context, userID string) (string, error) {
	if s.cache == nil {
		return "", nil
	}
	key := fmt.Sprintf("refresh_token:%s", userID)
	var token string
	err := s.cache.Get(ctx, key, &token)
	return token, err
}

func (s *AuthService) invalidateRefreshToken(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	key := fmt.Sprintf("refresh_token:%s", userID)
	return s.cache.Delete(ctx, key)
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Role:         models.RoleCustomer, // always customer on self-registration
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		// Same message whether the user is unknown or the password is wrong.
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID.String(), user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID.String(), tokenPair.RefreshToken, 30); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		User: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// GetCurrentUser loads the user behind a validated token. The user may have
// been deleted since the token was issued.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

// RefreshAccessToken validates a refresh token against the stored copy and
// issues a new access token.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	if claims.TokenType != auth.RefreshToken {
		return nil, fmt.Errorf("%w: expected refresh token", ErrUnauthorized)
	}

	if s.cache != nil {
		storedToken, err := s.getStoredRefreshToken(ctx, claims.UserID)
		if err != nil || storedToken != refreshToken {
			return nil, fmt.Errorf("%w: refresh token not found or invalid", ErrUnauthorized)
		}
	}

	newAccessToken, err := s.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	return &auth.TokenPair{
		AccessToken:  newAccessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.invalidateRefreshToken(ctx, userID)
}
