// internal/apiclient/client.go
// Package apiclient is the shared HTTP client for the platform API. It injects
// the bearer token, unwraps the {code,message,data} envelope, and maps the
// failure classes to errors the UI layers branch on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inkstone-labs/qtstore/internal/envelope"
)

const defaultTimeout = 30 * time.Second

// SessionStore supplies the bearer token and is cleared when the server
// rejects the session.
type SessionStore interface {
	AccessToken(ctx context.Context) string
	Clear(ctx context.Context) error
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration // zero means 30s
	Session SessionStore  // nil means anonymous

	// OnUnauthorized runs when the server answers HTTP 401, after the
	// session has been cleared. The client invokes it at most once per
	// burst of concurrent failures, so a page of parallel requests hitting
	// an expired session triggers a single redirect.
	OnUnauthorized func()
}

// Client is the shared platform API client.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        SessionStore
	onUnauthorized func()
	redirecting    atomic.Bool

	Auth          *AuthAPI
	Users         *UsersAPI
	Products      *ProductsAPI
	Categories    *CategoriesAPI
	Comments      *CommentsAPI
	Notifications *NotificationsAPI
	Files         *FilesAPI
	Updates       *UpdatesAPI
	Admin         *AdminAPI
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		session:        opts.Session,
		onUnauthorized: opts.OnUnauthorized,
	}
	c.Auth = &AuthAPI{c}
	c.Users = &UsersAPI{c}
	c.Products = &ProductsAPI{c}
	c.Categories = &CategoriesAPI{c}
	c.Comments = &CommentsAPI{c}
	c.Notifications = &NotificationsAPI{c}
	c.Files = &FilesAPI{c}
	c.Updates = &UpdatesAPI{c}
	c.Admin = &AdminAPI{c}
	return c, nil
}

// Transport returns the client's current transport (default when unset).
func (c *Client) Transport() http.RoundTripper {
	if c.httpClient.Transport == nil {
		return http.DefaultTransport
	}
	return c.httpClient.Transport
}

// SetTransport replaces the client's transport. The mock gateway uses this to
// intercept requests.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// get issues a GET and decodes the envelope data into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(ctx, method, path, resp, out)
}

// authorize attaches the bearer token when the session has one.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.session == nil {
		return
	}
	if token := c.session.AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleResponse(ctx context.Context, method, path string, resp *http.Response, out any) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.expireSession(ctx)
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope.Raw
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return fmt.Errorf("%s %s: server error %d: %s", method, path, resp.StatusCode, env.Message)
		}
		return fmt.Errorf("%s %s: server error %d", method, path, resp.StatusCode)
	}

	var env envelope.Raw
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: decoding envelope: %w", method, path, err)
	}
	if env.Code != envelope.CodeOK {
		log.Ctx(ctx).Debug().
			Int("code", env.Code).
			Str("path", path).
			Msg("request failed with business error")
		return &APIError{Code: env.Code, Message: env.Message}
	}

	// A request succeeded, so the session is live again: re-arm the
	// unauthorized hook for the next burst.
	c.redirecting.Store(false)

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decoding data: %w", method, path, err)
	}
	return nil
}

// expireSession clears stored tokens and fires the unauthorized hook once per
// burst of concurrent 401s.
func (c *Client) expireSession(ctx context.Context) {
	if c.session != nil {
		if err := c.session.Clear(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to clear session after 401")
		}
	}
	if c.onUnauthorized != nil && c.redirecting.CompareAndSwap(false, true) {
		c.onUnauthorized()
	}
}
