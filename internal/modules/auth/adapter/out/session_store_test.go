package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fitterm/internal/modules/auth/adapter/out"
	"fitterm/internal/modules/auth/domain"
	apperrors "fitterm/internal/platform/errors"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := out.NewFileSessionStore(filepath.Join(t.TempDir(), "state", "session.json"))
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("empty store: want ErrNoSession, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("empty store must not yield a token")
	}

	session := domain.Session{Token: "tok-1", User: domain.User{Email: "an@example.com"}}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != "tok-1" || loaded.User.Email != "an@example.com" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if token, ok := store.Token(); !ok || token != "tok-1" {
		t.Fatalf("token source = %q %v", token, ok)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("after clear: want ErrNoSession, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("double clear must be a no-op, got %v", err)
	}
}
