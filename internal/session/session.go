// internal/session/session.go
// Package session tracks the signed-in user's credentials and preferences on
// top of the local store.
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/inkstone-labs/qtstore/internal/localstore"
)

const defaultLanguage = "en"

// Manager reads and writes session state through the local store. The zero
// value is not usable; construct with NewManager.
type Manager struct {
	store *localstore.Store
}

func NewManager(store *localstore.Store) *Manager {
	return &Manager{store: store}
}

// SetTokens stores both tokens from a successful login.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	if err := m.store.Set(ctx, localstore.KeyAccessToken, access); err != nil {
		return err
	}
	return m.store.Set(ctx, localstore.KeyRefreshToken, refresh)
}

// AccessToken returns the stored access token, or "" when signed out.
func (m *Manager) AccessToken(ctx context.Context) string {
	token, err := m.store.Get(ctx, localstore.KeyAccessToken)
	if errors.Is(err, localstore.ErrNotFound) {
		return ""
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to read access token")
		return ""
	}
	return token
}

// RefreshToken returns the stored refresh token, or "" when signed out.
func (m *Manager) RefreshToken(ctx context.Context) string {
	token, err := m.store.Get(ctx, localstore.KeyRefreshToken)
	if err != nil {
		return ""
	}
	return token
}

// Clear drops both tokens. Used on logout and when the server rejects the
// session.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, localstore.KeyAccessToken); err != nil {
		return err
	}
	return m.store.Delete(ctx, localstore.KeyRefreshToken)
}

// Language returns the persisted UI language, defaulting to English.
func (m *Manager) Language(ctx context.Context) string {
	lang, err := m.store.Get(ctx, localstore.KeyLanguage)
	if err != nil || lang == "" {
		return defaultLanguage
	}
	return lang
}

func (m *Manager) SetLanguage(ctx context.Context, lang string) error {
	return m.store.Set(ctx, localstore.KeyLanguage, lang)
}
