package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inkstone-labs/qtstore/internal/localstore"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewManager(store)
}

func TestTokenLifecycle(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if got := m.AccessToken(ctx); got != "" {
		t.Fatalf("fresh store should have no access token, got %q", got)
	}

	if err := m.SetTokens(ctx, "mock-token-1-admin", "mock-refresh-token-1"); err != nil {
		t.Fatalf("set tokens: %v", err)
	}
	if got := m.AccessToken(ctx); got != "mock-token-1-admin" {
		t.Errorf("access token = %q", got)
	}
	if got := m.RefreshToken(ctx); got != "mock-refresh-token-1" {
		t.Errorf("refresh token = %q", got)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := m.AccessToken(ctx); got != "" {
		t.Errorf("access token after clear = %q", got)
	}
	if got := m.RefreshToken(ctx); got != "" {
		t.Errorf("refresh token after clear = %q", got)
	}
}

func TestLanguageDefaultsToEnglish(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if got := m.Language(ctx); got != "en" {
		t.Errorf("default language = %q, want en", got)
	}

	if err := m.SetLanguage(ctx, "zh"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if got := m.Language(ctx); got != "zh" {
		t.Errorf("language = %q, want zh", got)
	}
}
