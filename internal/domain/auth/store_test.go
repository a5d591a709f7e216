package auth

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisStoreWithoutClient(t *testing.T) {
	ctx := context.Background()

	// no Redis configured: the store must still hold tokens instead
	// of panicking on first use
	store := NewRedisStore(nil)

	if err := store.Save(ctx, "hash-1", "user-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	userID, err := store.Get(ctx, "hash-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("user id = %q, want user-1", userID)
	}

	if err := store.Revoke(ctx, "hash-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := store.Get(ctx, "hash-1"); err != ErrTokenNotFound {
		t.Errorf("got %v after revoke, want ErrTokenNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Save(ctx, "hash-2", "user-2", -time.Second); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(ctx, "hash-2"); err != ErrTokenNotFound {
		t.Errorf("got %v for expired token, want ErrTokenNotFound", err)
	}

	if _, err := store.Get(ctx, "never-saved"); err != ErrTokenNotFound {
		t.Errorf("got %v for unknown token, want ErrTokenNotFound", err)
	}
}
