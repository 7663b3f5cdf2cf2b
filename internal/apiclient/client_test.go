package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/models"
)

// memSession is an in-memory SessionStore for tests.
type memSession struct {
	mu    sync.Mutex
	token string
}

func (s *memSession) AccessToken(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *memSession) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, env envelope.Envelope) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, envelope.OK(models.User{ID: 2, Username: "zhangsan"}))
	}))
	defer server.Close()

	session := &memSession{token: "mock-token-2-zhangsan"}
	client, err := New(Options{BaseURL: server.URL, Session: session})
	require.NoError(t, err)

	user, err := client.Users.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer mock-token-2-zhangsan", gotAuth)
	assert.Equal(t, "zhangsan", user.Username)
}

func TestBusinessErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, envelope.Fail(envelope.CodeForbidden, "account is banned"))
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Auth.Login(context.Background(), LoginRequest{Email: "banned@example.com", Password: "x"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, envelope.CodeForbidden, apiErr.Code)
	assert.Equal(t, "account is banned", apiErr.Message)
}

func TestUnauthorizedClearsSessionAndFiresHookOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &memSession{token: "mock-token-2-zhangsan"}
	hookCalls := 0
	client, err := New(Options{
		BaseURL:        server.URL,
		Session:        session,
		OnUnauthorized: func() { hookCalls++ },
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := client.Users.Profile(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	}

	assert.Empty(t, session.AccessToken(context.Background()), "session should be cleared")
	assert.Equal(t, 1, hookCalls, "hook should fire once per burst")
}

func TestUnauthorizedHookReArmsAfterSuccess(t *testing.T) {
	unauthorized := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unauthorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(t, w, envelope.OK(models.User{ID: 1}))
	}))
	defer server.Close()

	hookCalls := 0
	client, err := New(Options{
		BaseURL:        server.URL,
		Session:        &memSession{token: "t"},
		OnUnauthorized: func() { hookCalls++ },
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = client.Users.Profile(ctx)

	unauthorized = false
	_, err = client.Users.Profile(ctx)
	require.NoError(t, err)

	unauthorized = true
	_, _ = client.Users.Profile(ctx)

	assert.Equal(t, 2, hookCalls, "hook should fire again after an intervening success")
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "rate_limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
			}))
			defer server.Close()

			client, err := New(Options{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Users.Profile(context.Background())
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestPagedDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("categoryId"))
		writeEnvelope(t, w, envelope.Paged([]models.Product{
			{ID: 2, Slug: "ink-draw", Status: models.StatusPublished},
		}, 1))
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL})
	require.NoError(t, err)

	page, err := client.Products.List(context.Background(), ProductListParams{CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "ink-draw", page.Records[0].Slug)
}

func TestNullDataLeavesOutUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, envelope.OK(nil))
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL})
	require.NoError(t, err)

	blob, err := client.Users.Theme(context.Background())
	require.NoError(t, err)
	assert.Empty(t, blob)
}
