package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/localstore"
	"github.com/inkstone-labs/qtstore/internal/mockapi"
	"github.com/inkstone-labs/qtstore/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gateway, err := mockapi.New(mockapi.NewDataset(), store, nil, mockapi.WithDelay(0, 0))
	require.NoError(t, err)

	handler := ChainMiddleware(
		Handler(gateway),
		WithLogging,
		WithRecovery,
		WithRequestID,
	)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDispatchesThroughRuleTable(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/categories")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var env struct {
		Code int               `json:"code"`
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, envelope.CodeOK, env.Code)
	assert.Len(t, env.Data, 6)
}

func TestUnknownRouteAnswersEnvelopeNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "business failures ride an HTTP 200")

	var env envelope.Raw
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, envelope.CodeNotFound, env.Code)
}
