package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/pkg/password"
)

type stubAdminRepo struct {
	admins  map[string]*AdminUser
	touched []uuid.UUID
}

func (r *stubAdminRepo) GetByEmail(_ context.Context, email string) (*AdminUser, error) {
	return r.admins[email], nil
}

func (r *stubAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*AdminUser, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *stubAdminRepo) TouchLogin(_ context.Context, id uuid.UUID) error {
	r.touched = append(r.touched, id)
	return nil
}

type stubSpaceRepo struct {
	space.Repository
	statuses map[uuid.UUID]space.Status
	reasons  map[uuid.UUID]*string
}

func (r *stubSpaceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status space.Status, reason *string) error {
	if _, ok := r.statuses[id]; !ok {
		return space.ErrNotFound
	}
	r.statuses[id] = status
	r.reasons[id] = reason
	return nil
}

type stubUserRepo struct {
	user.Repository
	statuses map[uuid.UUID]user.Status
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status user.Status) error {
	if _, ok := r.statuses[id]; !ok {
		return user.ErrNotFound
	}
	r.statuses[id] = status
	return nil
}

func newTestAdmin(t *testing.T, role Role, active bool) *AdminUser {
	t.Helper()
	hash, err := password.Hash("sup3r-secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &AdminUser{
		ID:           uuid.New(),
		Email:        "mod@roomly.dev",
		PasswordHash: hash,
		Name:         "Moderator",
		Role:         role,
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	admin := newTestAdmin(t, RoleModerator, true)
	repo := &stubAdminRepo{admins: map[string]*AdminUser{admin.Email: admin}}
	svc := NewService(repo, NewJWTService("test-secret", time.Hour), nil, nil, nil)

	result, err := svc.Login(ctx, "Mod@Roomly.DEV", "sup3r-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Admin.ID != admin.ID {
		t.Error("wrong admin returned")
	}
	if len(repo.touched) != 1 || repo.touched[0] != admin.ID {
		t.Error("expected last login to be recorded")
	}

	if _, err := svc.Login(ctx, admin.Email, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@roomly.dev", "sup3r-secret"); err != ErrInvalidCredentials {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}

	admin.IsActive = false
	if _, err := svc.Login(ctx, admin.Email, "sup3r-secret"); err != ErrInactive {
		t.Errorf("inactive admin: got %v, want ErrInactive", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	admin := newTestAdmin(t, RoleAdmin, true)
	jwtSvc := NewJWTService("test-secret", time.Hour)

	token, err := jwtSvc.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Errorf("admin ID: got %s, want %s", claims.AdminID, admin.ID)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("role: got %s, want %s", claims.Role, RoleAdmin)
	}

	if _, err := NewJWTService("other-secret", time.Hour).ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestModeration(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	spaceID := uuid.New()

	spaces := &stubSpaceRepo{
		statuses: map[uuid.UUID]space.Status{spaceID: space.StatusPending},
		reasons:  map[uuid.UUID]*string{},
	}
	svc := NewService(&stubAdminRepo{}, NewJWTService("s", time.Hour), nil, spaces, nil)

	if err := svc.ApproveSpace(ctx, adminID, spaceID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if spaces.statuses[spaceID] != space.StatusApproved {
		t.Errorf("status: got %s, want approved", spaces.statuses[spaceID])
	}

	if err := svc.RejectSpace(ctx, adminID, spaceID, "  "); err != ErrReasonRequired {
		t.Errorf("blank reason: got %v, want ErrReasonRequired", err)
	}
	if err := svc.RejectSpace(ctx, adminID, spaceID, "Photos do not match the listing"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if spaces.statuses[spaceID] != space.StatusRejected {
		t.Errorf("status: got %s, want rejected", spaces.statuses[spaceID])
	}
	if r := spaces.reasons[spaceID]; r == nil || *r != "Photos do not match the listing" {
		t.Error("expected the rejection reason to be stored")
	}

	if err := svc.ApproveSpace(ctx, adminID, uuid.New()); err != ErrSpaceNotFound {
		t.Errorf("missing space: got %v, want ErrSpaceNotFound", err)
	}
}

func TestSetUserStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &stubUserRepo{statuses: map[uuid.UUID]user.Status{userID: user.StatusActive}}
	svc := NewService(&stubAdminRepo{}, NewJWTService("s", time.Hour), users, nil, nil)

	if err := svc.SetUserStatus(ctx, uuid.New(), userID, user.StatusBlocked); err != nil {
		t.Fatalf("block: %v", err)
	}
	if users.statuses[userID] != user.StatusBlocked {
		t.Error("expected the user to be blocked")
	}

	if err := svc.SetUserStatus(ctx, uuid.New(), uuid.New(), user.StatusBlocked); err != ErrUserNotFound {
		t.Errorf("missing user: got %v, want ErrUserNotFound", err)
	}
}

func TestRequirePermission(t *testing.T) {
	admin := newTestAdmin(t, RoleModerator, true)
	repo := &stubAdminRepo{admins: map[string]*AdminUser{admin.Email: admin}}
	jwtSvc := NewJWTService("test-secret", time.Hour)
	svc := NewService(repo, jwtSvc, nil, nil, nil)

	token, err := jwtSvc.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(perm Permission, bearer string) int {
		h := AuthMiddleware(jwtSvc, svc)(RequirePermission(perm)(next))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := call(PermModerateSpaces, token); code != http.StatusOK {
		t.Errorf("moderator can moderate: got %d", code)
	}
	if code := call(PermBlockUsers, token); code != http.StatusForbidden {
		t.Errorf("moderator cannot block users: got %d", code)
	}
	if code := call(PermViewSpaces, ""); code != http.StatusUnauthorized {
		t.Errorf("missing token: got %d", code)
	}

	admin.IsActive = false
	if code := call(PermViewSpaces, token); code != http.StatusForbidden {
		t.Errorf("deactivated admin: got %d", code)
	}
}
