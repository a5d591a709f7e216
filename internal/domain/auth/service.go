package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/pkg/jwt"
	"github.com/roomly/roomly-api/internal/pkg/password"
)

const refreshKeyPrefix = "refresh:"

// Service handles authentication
type Service struct {
	users  user.Repository
	jwt    *jwt.Service
	tokens RefreshStore
}

// NewService creates auth service
func NewService(users user.Repository, jwtService *jwt.Service, tokens RefreshStore) *Service {
	return &Service{users: users, jwt: jwtService, tokens: tokens}
}

// Register creates a new account and issues tokens
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         user.Role(req.Role),
		Status:       user.StatusActive,
	}
	if req.Role == string(user.RoleCompany) && req.CompanyName != "" {
		name := strings.TrimSpace(req.CompanyName)
		u.CompanyName = &name
	}

	if err := s.users.Create(ctx, u); err != nil {
		if err == user.ErrEmailTaken {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("User registered")

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: ToUserResponse(u), Tokens: *tokens}, nil
}

// Login verifies credentials and issues tokens
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive() {
		return nil, ErrUserBlocked
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: ToUserResponse(u), Tokens: *tokens}, nil
}

// Refresh rotates the refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	hash := jwt.HashRefreshToken(refreshToken)
	storedUserID, err := s.tokens.Get(ctx, hash)
	if err != nil {
		if err == ErrTokenNotFound {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if storedUserID != claims.UserID.String() {
		return nil, ErrInvalidRefresh
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidRefresh
	}
	if !u.IsActive() {
		return nil, ErrUserBlocked
	}

	// rotation: the presented token is single-use
	if err := s.tokens.Revoke(ctx, hash); err != nil {
		log.Warn().Err(err).Msg("Failed to revoke rotated refresh token")
	}

	return s.issueTokens(ctx, u)
}

// Logout revokes the refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.jwt.ValidateRefreshToken(refreshToken); err != nil {
		return ErrInvalidRefresh
	}

	if err := s.tokens.Revoke(ctx, jwt.HashRefreshToken(refreshToken)); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrNotFound
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// UpdateProfile updates mutable fields of the authenticated user
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrNotFound
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CompanyName != nil && u.IsCompany() {
		name := strings.TrimSpace(*req.CompanyName)
		u.CompanyName = &name
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, _, expiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, jwt.HashRefreshToken(refresh), u.ID.String(), time.Until(expiresAt)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.jwt.GetAccessTTL()),
	}, nil
}
