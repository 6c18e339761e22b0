package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/kg-client/internal/auth"
)

// newIdentityProvider serves the KG config discovery, an OpenID configuration
// and the device grant endpoints.
func newIdentityProvider(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var devicePolls atomic.Int32

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	mux.HandleFunc("/v3-beta/users/authorization/config", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"endpoint": server.URL + "/.well-known/openid-configuration"},
		})
	})
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"issuer":                        server.URL,
			"authorization_endpoint":        server.URL + "/auth",
			"token_endpoint":                server.URL + "/token",
			"device_authorization_endpoint": server.URL + "/device",
			"jwks_uri":                      server.URL + "/certs",
		})
	})
	mux.HandleFunc("/device", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "kg-core-python", r.PostForm.Get("client_id"))

		writeJSON(w, http.StatusOK, map[string]any{
			"device_code":               "device-123",
			"user_code":                 "ABCD-EFGH",
			"verification_uri":          server.URL + "/verify",
			"verification_uri_complete": server.URL + "/verify?code=ABCD-EFGH",
			"expires_in":                60,
			"interval":                  1,
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())

		switch r.PostForm.Get("grant_type") {
		case "urn:ietf:params:oauth:grant-type:device_code":
			devicePolls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "device-access",
				"refresh_token": "device-refresh",
				"token_type":    "Bearer",
				"expires_in":    300,
			})
		case "refresh_token":
			if r.PostForm.Get("refresh_token") != "good-refresh" {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})

				return
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "refreshed-access",
				"refresh_token": "rotated-refresh",
				"token_type":    "Bearer",
				"expires_in":    300,
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	t.Cleanup(server.Close)

	return server, &devicePolls
}

func TestDeviceFlowProvider(t *testing.T) {
	t.Parallel()

	t.Run("discovers provider and completes device grant", func(t *testing.T) {
		t.Parallel()

		server, polls := newIdentityProvider(t)

		var prompted strings.Builder

		provider := auth.NewDeviceFlowProvider("",
			[]auth.Option{auth.WithHTTPClient(server.Client())},
			auth.WithDevicePrompt(auth.WritePrompt(&prompted)),
		)

		assert.Empty(t, provider.FetchToken(context.Background(), false), "no provider before discovery")

		provider.DefineEndpoint(context.Background(), server.URL+"/v3-beta/")

		assert.Equal(t, "device-access", provider.FetchToken(context.Background(), false))
		assert.Contains(t, prompted.String(), "ABCD-EFGH")
		assert.Equal(t, "device-refresh", provider.RefreshToken())

		assert.Equal(t, "device-access", provider.FetchToken(context.Background(), false))
		assert.Equal(t, int32(1), polls.Load())
	})

	t.Run("uses refresh token first", func(t *testing.T) {
		t.Parallel()

		server, polls := newIdentityProvider(t)
		provider := auth.NewDeviceFlowProvider("kg-cli",
			[]auth.Option{auth.WithHTTPClient(server.Client())},
			auth.WithRefreshToken("good-refresh"),
			auth.WithOAuth2Config(&oauth2.Config{
				ClientID: "kg-cli",
				Endpoint: oauth2.Endpoint{
					TokenURL:      server.URL + "/token",
					DeviceAuthURL: server.URL + "/device",
				},
			}),
			auth.WithDevicePrompt(func(*oauth2.DeviceAuthResponse) {
				t.Error("device prompt should not be shown")
			}),
		)

		assert.Equal(t, "refreshed-access", provider.FetchToken(context.Background(), true))
		assert.Equal(t, "rotated-refresh", provider.RefreshToken())
		assert.Equal(t, int32(0), polls.Load())
	})

	t.Run("discovery failure leaves provider unconfigured", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		logger := &recordingLogger{}
		provider := auth.NewDeviceFlowProvider("",
			[]auth.Option{auth.WithHTTPClient(server.Client()), auth.WithLogger(logger)},
		)

		provider.DefineEndpoint(context.Background(), server.URL+"/v3-beta/")
		assert.Empty(t, provider.FetchToken(context.Background(), false))
		require.Equal(t, []string{"Identity provider discovery failed"}, logger.warnings())
	})
}
