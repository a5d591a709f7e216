package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/pkg/jwt"
)

type stubUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.byID[id], nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.byEmail[email], nil
}

func (r *stubUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status user.Status) error {
	u, ok := r.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) List(_ context.Context, _, _ int) ([]user.User, int, error) {
	return nil, 0, nil
}

func newTestService() (*Service, *stubUserRepo, *memoryStore) {
	repo := newStubUserRepo()
	store := NewMemoryStore().(*memoryStore)
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 30*24*time.Hour)
	return NewService(repo, jwtService, store), repo, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Email:    "Anna@Example.com",
		Password: "secret-password",
		Name:     "Anna",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Email != "anna@example.com" {
		t.Errorf("email should be lowercased, got %q", result.User.Email)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	if _, err := svc.Register(ctx, RegisterRequest{
		Email:    "anna@example.com",
		Password: "other-password",
		Name:     "Anna Again",
		Role:     "user",
	}); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	login, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login should return the registered user")
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "wrong"}); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret-password"}); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Email:    "blocked@example.com",
		Password: "secret-password",
		Name:     "Blocked",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := repo.UpdateStatus(ctx, result.User.ID, user.StatusBlocked); err != nil {
		t.Fatalf("block user: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "blocked@example.com", Password: "secret-password"}); err != ErrUserBlocked {
		t.Errorf("expected ErrUserBlocked, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Email:    "rotate@example.com",
		Password: "secret-password",
		Name:     "Rotate",
		Role:     "company",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	first := result.Tokens.RefreshToken
	pair, err := svc.Refresh(ctx, first)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken == first {
		t.Error("refresh should rotate the token")
	}

	// the old token is revoked after rotation
	if _, err := svc.Refresh(ctx, first); err != ErrInvalidRefresh {
		t.Errorf("expected ErrInvalidRefresh for reused token, got %v", err)
	}

	// the new one still works
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Errorf("refresh with rotated token: %v", err)
	}
}

func TestLogoutRevokesRefresh(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Email:    "logout@example.com",
		Password: "secret-password",
		Name:     "Logout",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, result.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(store.tokens) != 0 {
		t.Errorf("expected no stored tokens after logout, got %d", len(store.tokens))
	}

	if _, err := svc.Refresh(ctx, result.Tokens.RefreshToken); err != ErrInvalidRefresh {
		t.Errorf("expected ErrInvalidRefresh after logout, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Email:       "studio@example.com",
		Password:    "secret-password",
		Name:        "Studio Owner",
		Role:        "company",
		CompanyName: "Studio One",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newName := "Renamed Owner"
	newCompany := "Studio Two"
	profile, err := svc.UpdateProfile(ctx, result.User.ID, UpdateProfileRequest{
		Name:        &newName,
		CompanyName: &newCompany,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.Name != newName {
		t.Errorf("expected name %q, got %q", newName, profile.Name)
	}
	if profile.CompanyName == nil || *profile.CompanyName != newCompany {
		t.Errorf("expected company name %q, got %v", newCompany, profile.CompanyName)
	}
}
