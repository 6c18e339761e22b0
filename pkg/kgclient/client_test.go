package kgclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
	"github.com/fivetwenty-io/kg-client/pkg/kgclient"
)

// kgServer answers users/me and the client credentials handshake, recording
// the authorization headers it saw on users/me.
type kgServer struct {
	*httptest.Server

	mu            sync.Mutex
	authorization string
	client        string
}

func newKGServer(t *testing.T) *kgServer {
	t.Helper()

	srv := &kgServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/v3-beta/users/me", func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		srv.authorization = r.Header.Get("Authorization")
		srv.client = r.Header.Get("Client-Authorization")
		srv.mu.Unlock()

		writeJSON(w, map[string]any{
			"data": map[string]any{"http://schema.org/name": "Ada Lovelace"},
		})
	})
	mux.HandleFunc("/v3-beta/users/authorization/tokenEndpoint", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"data": map[string]any{"endpoint": srv.URL + "/token"}})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"access_token": "service-token", "expires_in": 300})
	})

	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func (s *kgServer) headers() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authorization, s.client
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://core.kg.ebrains.eu/v3-beta/", kgclient.BaseURL("core.kg.ebrains.eu"))
	assert.Equal(t, "http://localhost:8000/v3-beta/", kgclient.BaseURL("localhost:8000"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil config", func(t *testing.T) {
		t.Parallel()

		client, err := kgclient.New(context.Background(), nil)
		require.ErrorIs(t, err, kg.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("rejects missing host", func(t *testing.T) {
		t.Parallel()

		_, err := kgclient.New(context.Background(), &kg.Config{})
		require.ErrorIs(t, err, constants.ErrHostRequired)
		assert.Contains(t, err.Error(), "failed to create new client")
	})

	t.Run("derives base URL", func(t *testing.T) {
		t.Parallel()

		client, err := kgclient.New(context.Background(), &kg.Config{Host: "localhost:8000"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/v3-beta/", client.BaseURL())
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	srv := newKGServer(t)

	client, err := kgclient.NewWithToken(context.Background(), srv.URL, "user-token")
	require.NoError(t, err)

	me, err := client.Users().MyInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, me.Data)
	assert.Equal(t, "Ada Lovelace", me.Data.Name)

	authorization, clientAuthorization := srv.headers()
	assert.Equal(t, "Bearer user-token", authorization)
	assert.Empty(t, clientAuthorization)
}

func TestNewWithTokenProvider(t *testing.T) {
	t.Parallel()

	srv := newKGServer(t)

	calls := 0
	provider := kgclient.TokenCallback(func(context.Context) (string, error) {
		calls++

		return "callback-token", nil
	})

	client, err := kgclient.NewWithTokenProvider(context.Background(), srv.URL, provider)
	require.NoError(t, err)

	_, err = client.Users().MyInfo(context.Background())
	require.NoError(t, err)

	_, err = client.Users().MyInfo(context.Background())
	require.NoError(t, err)

	authorization, _ := srv.headers()
	assert.Equal(t, "Bearer callback-token", authorization)
	assert.Equal(t, 1, calls)
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	t.Run("discovers endpoint and authenticates", func(t *testing.T) {
		t.Parallel()

		srv := newKGServer(t)

		client, err := kgclient.NewWithClientCredentials(context.Background(), srv.URL, "svc", "secret")
		require.NoError(t, err)

		_, err = client.Users().MyInfo(context.Background())
		require.NoError(t, err)

		authorization, _ := srv.headers()
		assert.Equal(t, "Bearer service-token", authorization)
	})

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := kgclient.NewWithClientCredentials(context.Background(), "localhost", "svc", "")
		require.ErrorIs(t, err, constants.ErrClientSecretRequired)
	})
}

func TestWithClientCredentials(t *testing.T) {
	t.Parallel()

	srv := newKGServer(t)

	cfg := kgclient.WithClientCredentials(&kg.Config{
		Host:          srv.URL,
		TokenProvider: kgclient.StaticToken("user-token"),
	}, "svc", "secret")
	require.NotNil(t, cfg.ClientTokenProvider)

	client, err := kgclient.New(context.Background(), cfg)
	require.NoError(t, err)

	_, err = client.Users().MyInfo(context.Background())
	require.NoError(t, err)

	authorization, clientAuthorization := srv.headers()
	assert.Equal(t, "Bearer user-token", authorization)
	assert.Equal(t, "Bearer service-token", clientAuthorization)
}
