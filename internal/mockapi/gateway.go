// internal/mockapi/gateway.go
// Package mockapi serves the platform API locally so clients run without a
// backend. It installs as an http.RoundTripper: requests matching a rule get
// an in-memory answer after a simulated network delay, everything else passes
// through to the real transport.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/ratelimit"
)

const (
	defaultMinDelay = 200 * time.Millisecond
	defaultMaxDelay = 500 * time.Millisecond
)

var bearerTokenPattern = regexp.MustCompile(`mock-token-(\d+)-`)

// ThemeStore persists the admin-set global theme blob across restarts.
type ThemeStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Request carries the parsed pieces of an intercepted request.
type Request struct {
	Method string
	URL    *url.URL
	Match  []string // pattern submatches against the path
	Body   []byte
	Header http.Header
}

// BindJSON decodes the request body; an empty body binds to the zero value.
func (r *Request) BindJSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

func (r *Request) Query(key string) string {
	return r.URL.Query().Get(key)
}

func (r *Request) QueryInt(key string) int {
	n, _ := strconv.Atoi(r.Query(key))
	return n
}

func (r *Request) QueryInt64(key string) int64 {
	n, _ := strconv.ParseInt(r.Query(key), 10, 64)
	return n
}

// MatchInt64 parses the i-th pattern submatch as an id.
func (r *Request) MatchInt64(i int) int64 {
	if i >= len(r.Match) {
		return 0
	}
	n, _ := strconv.ParseInt(r.Match[i], 10, 64)
	return n
}

// BearerUserID extracts the user id from a demo bearer token
// ("mock-token-<id>-<username>"), defaulting to the first seeded user.
func (r *Request) BearerUserID() int64 {
	m := bearerTokenPattern.FindStringSubmatch(r.Header.Get("Authorization"))
	if m == nil {
		return 1
	}
	id, _ := strconv.ParseInt(m[1], 10, 64)
	return id
}

// Handler produces the envelope for a matched request. A returned error
// simulates a server-side failure and rejects the request.
type Handler func(ctx context.Context, req *Request) (envelope.Envelope, error)

// Rule binds a method and an anchored path pattern to a handler. Sample is a
// representative path the rule is expected to capture; construction uses it
// to prove no earlier rule of the same method shadows this one.
type Rule struct {
	Method  string
	Pattern *regexp.Regexp
	Sample  string
	Handler Handler
}

// Gateway intercepts API requests with an ordered first-match-wins rule
// table.
type Gateway struct {
	rules    []Rule
	next     http.RoundTripper
	minDelay time.Duration
	maxDelay time.Duration
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithDelay overrides the simulated latency range. Zero for both disables
// the delay, which tests rely on.
func WithDelay(min, max time.Duration) Option {
	return func(g *Gateway) {
		g.minDelay = min
		g.maxDelay = max
	}
}

// WithTransport sets the transport used for unmatched requests.
func WithTransport(next http.RoundTripper) Option {
	return func(g *Gateway) {
		g.next = next
	}
}

// New builds the gateway over a seeded dataset. store persists the global
// theme blob; limiter throttles login attempts (nil for defaults).
func New(data *Dataset, store ThemeStore, limiter *ratelimit.Limiter, opts ...Option) (*Gateway, error) {
	if limiter == nil {
		limiter = ratelimit.New(nil)
	}
	return NewWithRules(buildRules(data, store, limiter), opts...)
}

// NewWithRules builds a gateway over an explicit rule table and verifies it.
func NewWithRules(rules []Rule, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		rules:    rules,
		next:     http.DefaultTransport,
		minDelay: defaultMinDelay,
		maxDelay: defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// verify proves every rule is reachable: no earlier rule of the same method
// may capture a later rule's sample path.
func (g *Gateway) verify() error {
	for i, rule := range g.rules {
		if rule.Sample == "" {
			return fmt.Errorf("rule %d (%s %s) has no sample path", i, rule.Method, rule.Pattern)
		}
		if !rule.Pattern.MatchString(rule.Sample) {
			return fmt.Errorf("rule %d (%s %s) does not match its own sample %q", i, rule.Method, rule.Pattern, rule.Sample)
		}
		for j := 0; j < i; j++ {
			earlier := g.rules[j]
			if earlier.Method == rule.Method && earlier.Pattern.MatchString(rule.Sample) {
				return fmt.Errorf("rule %d (%s %s) is shadowed by rule %d (%s)",
					i, rule.Method, rule.Pattern, j, earlier.Pattern)
			}
		}
	}
	return nil
}

// Install swaps the client's transport for the gateway, keeping the previous
// transport for pass-through.
func (g *Gateway) Install(c interface {
	Transport() http.RoundTripper
	SetTransport(http.RoundTripper)
}) {
	g.next = c.Transport()
	c.SetTransport(g)
}

// RoundTrip implements http.RoundTripper.
func (g *Gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	method := strings.ToLower(req.Method)

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		// Restore for pass-through.
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	rule := g.match(method, req.URL.Path)
	if rule == nil {
		return g.next.RoundTrip(req)
	}

	if err := g.sleep(req.Context()); err != nil {
		return nil, err
	}

	mockReq := &Request{
		Method: method,
		URL:    req.URL,
		Match:  rule.Pattern.FindStringSubmatch(req.URL.Path),
		Body:   body,
		Header: req.Header,
	}
	env, err := rule.Handler(req.Context(), mockReq)
	if err != nil {
		log.Ctx(req.Context()).Warn().
			Err(err).
			Str("method", method).
			Str("path", req.URL.Path).
			Msg("mock handler failed")
		return nil, err
	}

	log.Ctx(req.Context()).Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("code", env.Code).
		Msg("request served from mock gateway")
	return makeResponse(req, env)
}

// Dispatch runs the first matching rule directly, without transport plumbing
// or latency. The dev server serves its routes through this.
func (g *Gateway) Dispatch(ctx context.Context, method string, u *url.URL, body []byte, header http.Header) (envelope.Envelope, bool, error) {
	method = strings.ToLower(method)
	rule := g.match(method, u.Path)
	if rule == nil {
		return envelope.Envelope{}, false, nil
	}
	env, err := rule.Handler(ctx, &Request{
		Method: method,
		URL:    u,
		Match:  rule.Pattern.FindStringSubmatch(u.Path),
		Body:   body,
		Header: header,
	})
	return env, true, err
}

func (g *Gateway) match(method, path string) *Rule {
	for i := range g.rules {
		if g.rules[i].Method == method && g.rules[i].Pattern.MatchString(path) {
			return &g.rules[i]
		}
	}
	return nil
}

// sleep simulates network latency, honoring cancellation.
func (g *Gateway) sleep(ctx context.Context) error {
	if g.maxDelay <= 0 {
		return nil
	}
	delay := g.minDelay
	if g.maxDelay > g.minDelay {
		delay += rand.N(g.maxDelay - g.minDelay)
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func makeResponse(req *http.Request, env envelope.Envelope) (*http.Response, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding mock response: %w", err)
	}

	// The backend answers HTTP 200 with the failure in the envelope, except
	// rate limiting which surfaces as a real 429 so clients back off.
	status := http.StatusOK
	if env.Code == envelope.CodeTooMany {
		status = http.StatusTooManyRequests
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		Status:        http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}, nil
}
