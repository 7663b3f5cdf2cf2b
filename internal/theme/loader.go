// internal/theme/loader.go
package theme

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const persistTimeout = 10 * time.Second

// Source fetches and persists one override layer's raw blob. Fetch returns
// "" when the layer has never been set.
type Source interface {
	Fetch(ctx context.Context) (string, error)
	Persist(ctx context.Context, blob string) error
}

// Loader ties the merger to the REST resources holding the two override
// layers. Loads are best-effort: a failed or malformed layer is logged and
// skipped, leaving the default or cached value in place.
type Loader struct {
	merger *Merger
	system Source
	user   Source
}

func NewLoader(m *Merger, system, user Source) *Loader {
	return &Loader{merger: m, system: system, user: user}
}

// LoadSystem fetches the admin/global layer once. Absence and parse
// failures are silent no-ops.
func (l *Loader) LoadSystem(ctx context.Context) {
	blob, err := l.system.Fetch(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("No system theme config available")
		return
	}
	if blob == "" {
		return
	}
	p, err := DecodeConfig(blob)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed system theme config")
		return
	}
	l.merger.SetSystemConfig(p)
}

// LoadUser fetches the signed-in user's layer. Call after a session is
// established.
func (l *Loader) LoadUser(ctx context.Context) {
	blob, err := l.user.Fetch(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("No user theme config available")
		return
	}
	l.ApplyUserBlob(blob)
}

// ApplyUserBlob applies a raw user-layer blob already in hand (e.g. the
// themeConfig field of a freshly loaded profile). An empty blob clears the
// layer; a malformed one is treated as absent.
func (l *Loader) ApplyUserBlob(blob string) {
	if blob == "" {
		l.merger.SetUserConfig(nil)
		return
	}
	p, err := DecodeConfig(blob)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed user theme config")
		l.merger.SetUserConfig(nil)
		return
	}
	l.merger.SetUserConfig(p)
}

// ClearUser drops the user layer, e.g. on logout.
func (l *Loader) ClearUser() {
	l.merger.SetUserConfig(nil)
}

// SaveUser applies the layer locally, then persists it in the background.
// Persistence failure is logged, not rolled back: the UI keeps the
// optimistic value.
func (l *Loader) SaveUser(p *Partial) {
	l.merger.SetUserConfig(p)
	l.persistAsync("user", l.user, p)
}

// SaveSystem is SaveUser for the admin/global layer.
func (l *Loader) SaveSystem(p *Partial) {
	l.merger.SetSystemConfig(p)
	l.persistAsync("system", l.system, p)
}

func (l *Loader) persistAsync(layer string, src Source, p *Partial) {
	if p == nil {
		return
	}
	blob, err := EncodeConfig(p)
	if err != nil {
		log.Warn().Err(err).Str("layer", layer).Msg("Failed to encode theme config")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := src.Persist(ctx, blob); err != nil {
			log.Warn().Err(err).Str("layer", layer).Msg("Failed to persist theme config")
		}
	}()
}
