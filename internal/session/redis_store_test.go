package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStore_Roundtrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:    "u-1",
		Email: "emma@jungle.com",
		Role:  models.RoleEmployee,
	}

	if err := store.Set(ctx, "tok-1", user); err != nil {
		t.Fatalf("set: unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: unexpected error: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("expected email %q got %q", user.Email, got.Email)
	}
	if got.Role != models.RoleEmployee {
		t.Errorf("expected role %s got %s", models.RoleEmployee, got.Role)
	}
}

func TestRedisStore_MissingToken(t *testing.T) {
	store, _ := newTestRedisStore(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "unknown token", token: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Get(context.Background(), tt.token)
			if !errors.Is(err, ErrNoSession) {
				t.Fatalf("expected ErrNoSession, got %v", err)
			}
		})
	}
}

func TestRedisStore_MalformedData(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	// Not JSON at all.
	mr.Set("session:bad", "{{{not json")
	if _, err := store.Get(ctx, "bad"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("malformed json: expected ErrNoSession, got %v", err)
	}
	// The corrupt slot must have been dropped.
	if mr.Exists("session:bad") {
		t.Error("corrupt slot should be deleted after read")
	}

	// Valid JSON but a role outside the enumeration.
	mr.Set("session:badrole", `{"email":"x@jungle.com","role":"superadmin"}`)
	if _, err := store.Get(ctx, "badrole"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("invalid role: expected ErrNoSession, got %v", err)
	}
}

func TestRedisStore_ClearIdempotent(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	user := &models.User{Email: "emma@jungle.com", Role: models.RoleEmployee}
	if err := store.Set(ctx, "tok", user); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := store.Clear(ctx, "tok"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "tok"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}

	// Second clear is a no-op.
	if err := store.Clear(ctx, "tok"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	user := &models.User{Email: "emma@jungle.com", Role: models.RoleEmployee}
	if err := store.Set(ctx, "tok", user); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, "tok"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after expiry, got %v", err)
	}
}
