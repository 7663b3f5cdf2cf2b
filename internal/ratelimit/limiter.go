// internal/ratelimit/limiter.go
// Package ratelimit throttles repeated login attempts per identifier.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds login throttle configuration.
type Config struct {
	Window      time.Duration // Sliding window length (default: 1m)
	MaxAttempts int           // Failed attempts allowed inside the window (default: 5)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns sensible defaults for interactive login.
func DefaultConfig() *Config {
	return &Config{
		Window:      time.Minute,
		MaxAttempts: 5,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type entry struct {
	attempts []time.Time
}

// Limiter tracks failed login attempts per identifier over a sliding window.
type Limiter struct {
	config *Config
	clock  Clock

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a limiter with the given config (nil for defaults).
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config:  cfg,
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Allow checks whether a login attempt for identifier may proceed.
// Does NOT record the attempt; call Record after the credentials fail.
func (l *Limiter) Allow(identifier string) LimitResult {
	now := l.clock.Now()
	key := hashKey(normalizeIdentifier(identifier))

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil {
		return LimitResult{Allowed: true}
	}
	e.prune(now, l.config.Window)
	if len(e.attempts) < l.config.MaxAttempts {
		return LimitResult{Allowed: true}
	}

	oldest := e.attempts[0]
	retry := l.config.Window - now.Sub(oldest)
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("identifier", SanitizeIdentifier(identifier)).
		Dur("retry_after", retry).
		Msg("login rate limit exceeded")
	return LimitResult{Allowed: false, RetryAfter: retry}
}

// Record notes a failed attempt for identifier.
func (l *Limiter) Record(identifier string) {
	now := l.clock.Now()
	key := hashKey(normalizeIdentifier(identifier))

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil {
		e = &entry{}
		l.entries[key] = e
	}
	e.prune(now, l.config.Window)
	e.attempts = append(e.attempts, now)
}

// Reset clears the attempt history after a successful login.
func (l *Limiter) Reset(identifier string) {
	key := hashKey(normalizeIdentifier(identifier))
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

// prune drops attempts older than the window. Caller holds the lock.
func (e *entry) prune(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(e.attempts) && !e.attempts[i].After(cutoff) {
		i++
	}
	e.attempts = e.attempts[i:]
}

func hashKey(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// normalizeIdentifier lowercases the identifier to prevent case-based bypass.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// SanitizeIdentifier masks an identifier for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if at := strings.Index(identifier, "@"); at != -1 {
		local, domain := identifier[:at], identifier[at+1:]
		if len(local) > 2 {
			return local[:2] + "***@" + domain
		}
		return "***@" + domain
	}
	if len(identifier) > 2 {
		return identifier[:2] + "***"
	}
	return "***"
}
