package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

var testSpaces = []string{"common", "dataset", "myspace"}

// fakeKG serves the endpoints the commands use and records method and path.
type fakeKG struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	queries  []string
}

func newFakeKG(t *testing.T) *fakeKG {
	t.Helper()

	fake := &fakeKG{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v3-beta/users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"http://schema.org/name":          "Ada Lovelace",
			"http://schema.org/alternateName": "ada",
		}})
	})
	mux.HandleFunc("GET /v3-beta/spaces", func(w http.ResponseWriter, r *http.Request) {
		from, _ := strconv.Atoi(r.URL.Query().Get("from"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		end := min(from+size, len(testSpaces))

		data := make([]any, 0, size)
		for _, name := range testSpaces[min(from, end):end] {
			data = append(data, map[string]any{
				"http://schema.org/identifier": name,
				"http://schema.org/name":       name,
			})
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data": data, "from": from, "size": len(data), "total": len(testSpaces),
		})
	})
	mux.HandleFunc("DELETE /v3-beta/instances/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /v3-beta/queries/{id}/instances", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []any{map[string]any{"name": "first"}}, "from": 0, "size": 1, "total": 1,
		})
	})
	mux.HandleFunc("POST /v3-beta/instancesByIds/release/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"0f7e2d3b-8c1a-4b6e-9f3d-2a5c7e9b1d40": map[string]any{"data": "RELEASED"},
			"9b1d4a2c-3e5f-4a7b-8c9d-0e1f2a3b4c5d": map[string]any{"error": map[string]any{"code": 404, "message": "Not found"}},
		}})
	})

	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.requests = append(fake.requests, r.Method+" "+r.URL.Path)
		fake.queries = append(fake.queries, r.URL.RawQuery)
		fake.mu.Unlock()

		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fake.Close)

	return fake
}

func (f *fakeKG) recorded() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.requests...), append([]string(nil), f.queries...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// runCLI executes the command tree against fake with a config file naming it.
func runCLI(t *testing.T, fake *fakeKG, stdin string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	content := "host: " + fake.URL + "\ntoken: test-token\n"
	require.NoError(t, os.WriteFile(path, []byte(content), constants.ConfigFilePerm))

	rootCmd := NewRootCommand("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", path}, args...))

	err := rootCmd.Execute()

	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newFakeKG(t), "", "version", "--output", "json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, constants.APIVersion, info["api_version"])
}

func TestConfigShowCommand(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newFakeKG(t), "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "test-token")
	assert.Contains(t, out, "/v3-beta/")
}

func TestMeCommand(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newFakeKG(t), "", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada")
}

func TestSpacesListCommand(t *testing.T) {
	t.Parallel()

	t.Run("first page", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		out, err := runCLI(t, fake, "", "spaces", "list", "--size", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "common")
		assert.NotContains(t, out, "myspace")
		assert.Contains(t, out, "Showing 2 of 3")
	})

	t.Run("all pages", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		out, err := runCLI(t, fake, "", "spaces", "list", "--size", "2", "--all", "-o", "json")
		require.NoError(t, err)

		var spaces []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &spaces))
		assert.Len(t, spaces, 3)

		requests, _ := fake.recorded()
		assert.Equal(t, []string{"GET /v3-beta/spaces", "GET /v3-beta/spaces"}, requests)
	})
}

func TestInstancesDeleteCommand(t *testing.T) {
	t.Parallel()

	t.Run("declined", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		_, err := runCLI(t, fake, "n\n", "instances", "delete", "0f7e2d3b-8c1a-4b6e-9f3d-2a5c7e9b1d40")
		require.ErrorIs(t, err, ErrDeleteNotApproved)

		requests, _ := fake.recorded()
		assert.Empty(t, requests)
	})

	t.Run("forced", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		out, err := runCLI(t, fake, "", "instances", "delete", "--force",
			"https://kg.ebrains.eu/api/instances/0f7e2d3b-8c1a-4b6e-9f3d-2a5c7e9b1d40")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted instance")

		requests, _ := fake.recorded()
		assert.Equal(t, []string{"DELETE /v3-beta/instances/0f7e2d3b-8c1a-4b6e-9f3d-2a5c7e9b1d40"}, requests)
	})
}

func TestInstancesReleaseStatusCommand(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newFakeKG(t), "", "instances", "release-status",
		"0f7e2d3b-8c1a-4b6e-9f3d-2a5c7e9b1d40", "9b1d4a2c-3e5f-4a7b-8c9d-0e1f2a3b4c5d", "-o", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "RELEASED", rows[0]["status"])
	assert.Empty(t, rows[1]["status"])
	assert.NotEmpty(t, rows[1]["error"])
}

func TestQueriesRunCommand(t *testing.T) {
	t.Parallel()

	t.Run("passes parameters", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		out, err := runCLI(t, fake, "", "queries", "run", "b8c3f2e1-0a9d-4c7b-8e6f-5d4c3b2a1f09", "-p", "species=mouse")
		require.NoError(t, err)
		assert.Contains(t, out, `{"name":"first"}`)

		_, queries := fake.recorded()
		require.Len(t, queries, 1)
		assert.Contains(t, queries[0], "species=mouse")
		assert.Contains(t, queries[0], "stage=RELEASED")
	})

	t.Run("rejects malformed parameters", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t)

		_, err := runCLI(t, fake, "", "queries", "run", "b8c3f2e1-0a9d-4c7b-8e6f-5d4c3b2a1f09", "-p", "species")
		require.ErrorIs(t, err, ErrInvalidParam)

		requests, _ := fake.recorded()
		assert.Empty(t, requests)
	})
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  []string
		want    map[string]string
		wantErr bool
	}{
		{name: "none", params: nil, want: nil},
		{name: "pairs", params: []string{"a=1", "b=x=y"}, want: map[string]string{"a": "1", "b": "x=y"}},
		{name: "empty value", params: []string{"a="}, want: map[string]string{"a": ""}},
		{name: "missing separator", params: []string{"a"}, wantErr: true},
		{name: "missing key", params: []string{"=1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseParams(tt.params)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidParam)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLI_PromptsForClientSecret(t *testing.T) {
	t.Parallel()

	app := &cli{secretPrompt: func(prompt string) (string, error) {
		assert.Equal(t, "Client secret: ", prompt)

		return "prompted", nil
	}}

	secret, err := app.promptSecret("Client secret: ")
	require.NoError(t, err)
	assert.Equal(t, "prompted", secret)
}
