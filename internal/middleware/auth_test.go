package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/pkg/jwt"
)

func TestAuth(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour, 24*time.Hour)

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotUserID uuid.UUID
	var gotRole string
	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUserID != userID {
			t.Errorf("expected user id %s, got %s", userID, gotUserID)
		}
		if gotRole != "user" {
			t.Errorf("expected role user, got %s", gotRole)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	jwtService := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	companyToken, _ := jwtService.GenerateAccessToken(uuid.New(), "company")
	userToken, _ := jwtService.GenerateAccessToken(uuid.New(), "user")

	chain := func(token string, mw func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		Auth(jwtService)(mw(next)).ServeHTTP(rec, req)
		return rec
	}

	if rec := chain(companyToken, RequireCompany()); rec.Code != http.StatusOK {
		t.Errorf("company should pass RequireCompany, got %d", rec.Code)
	}
	if rec := chain(userToken, RequireCompany()); rec.Code != http.StatusForbidden {
		t.Errorf("user should be forbidden by RequireCompany, got %d", rec.Code)
	}
	if rec := chain(companyToken, RequireAdmin()); rec.Code != http.StatusForbidden {
		t.Errorf("company should be forbidden by RequireAdmin, got %d", rec.Code)
	}
}
