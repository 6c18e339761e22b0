package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kg-client/internal/client"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

const testNamespace = "https://kg.ebrains.eu/api/instances/"

// recordedRequest is what the fake KG saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// fakeKG answers every request with the same status and body and records the requests.
type fakeKG struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeKG(t *testing.T, status int, body any) *fakeKG {
	t.Helper()

	return newFakeKGFunc(t, func(http.ResponseWriter, *http.Request) (int, any) {
		return status, body
	})
}

func newFakeKGFunc(t *testing.T, respond func(http.ResponseWriter, *http.Request) (int, any)) *fakeKG {
	t.Helper()

	fake := &fakeKG{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Body:   data,
			Header: request.Header.Clone(),
		})
		fake.mu.Unlock()

		status, body := respond(writer, request)

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(writer).Encode(body)
		}
	}))
	t.Cleanup(fake.Close)

	return fake
}

func (f *fakeKG) last(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.requests)

	return f.requests[len(f.requests)-1]
}

func (f *fakeKG) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func newTestClient(t *testing.T, fake *fakeKG, configure ...func(*kg.Config)) *client.Client {
	t.Helper()

	config := &kg.Config{
		Host:          fake.URL,
		TokenProvider: kg.TokenFunc(func(context.Context, bool) string { return "test-token" }),
	}

	for _, fn := range configure {
		fn(config)
	}

	c, err := client.New(context.Background(), config)
	require.NoError(t, err)

	return c
}

// operationCase describes one facade call and the request it must produce.
type operationCase struct {
	name   string
	call   func(ctx context.Context, c *client.Client) error
	method string
	path   string
	query  url.Values
	body   any
}

// runOperationCases checks method, path, query and body of each case against a
// fake KG answering with an empty success envelope.
func runOperationCases(t *testing.T, cases []operationCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeKG(t, http.StatusOK, map[string]any{})
			c := newTestClient(t, fake)

			require.NoError(t, tc.call(context.Background(), c))

			got := fake.last(t)
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, "/v3-beta/"+tc.path, got.Path)

			query := tc.query
			if query == nil {
				query = url.Values{}
			}

			assert.Equal(t, query, got.Query)

			if tc.body == nil {
				assert.Empty(t, got.Body)
			} else {
				expected, err := json.Marshal(tc.body)
				require.NoError(t, err)
				assert.JSONEq(t, string(expected), string(got.Body))
			}
		})
	}
}

// discard drops the result of an operation returning data.
func discard[T any](_ T, err error) error {
	return err
}
