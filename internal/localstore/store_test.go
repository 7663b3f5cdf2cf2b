package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qtstore.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, path
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, KeyAccessToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Set(ctx, KeyAccessToken, "mock-token-1-admin"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, KeyAccessToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "mock-token-1-admin" {
		t.Errorf("value = %q", got)
	}

	// Overwrite.
	if err := store.Set(ctx, KeyAccessToken, "mock-token-2-zhangsan"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = store.Get(ctx, KeyAccessToken)
	if got != "mock-token-2-zhangsan" {
		t.Errorf("overwritten value = %q", got)
	}

	// Delete is idempotent.
	if err := store.Delete(ctx, KeyAccessToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, KeyAccessToken); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := store.Get(ctx, KeyAccessToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeySystemTheme, `{"background":{"opacity":0.9}}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, KeySystemTheme)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != `{"background":{"opacity":0.9}}` {
		t.Errorf("value after reopen = %q", got)
	}
}
