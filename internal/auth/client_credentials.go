package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// ClientCredentialsProvider exchanges a service account's client id and
// secret for an access token. The token endpoint is discovered from the KG
// unless configured explicitly.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	store        *TokenStore
	opts         *options

	mu            sync.RWMutex
	tokenEndpoint string
}

// NewClientCredentialsProvider creates a client credentials provider.
func NewClientCredentialsProvider(clientID, clientSecret string, opts ...Option) *ClientCredentialsProvider {
	o := newOptions(opts)

	return &ClientCredentialsProvider{
		clientID:      clientID,
		clientSecret:  clientSecret,
		store:         NewTokenStore(),
		opts:          o,
		tokenEndpoint: o.tokenEndpoint,
	}
}

// DefineEndpoint implements kg.TokenProvider. Discovery failures leave the
// endpoint unset and are retried on the next call.
func (p *ClientCredentialsProvider) DefineEndpoint(ctx context.Context, kgEndpoint string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tokenEndpoint != "" {
		return
	}

	endpoint, err := DiscoverTokenEndpoint(ctx, p.opts.httpClient, kgEndpoint)
	if err != nil {
		p.opts.warn("Token endpoint discovery failed", err)

		return
	}

	p.tokenEndpoint = endpoint
}

// TokenEndpoint returns the resolved token endpoint or "".
func (p *ClientCredentialsProvider) TokenEndpoint() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.tokenEndpoint
}

// FetchToken implements kg.TokenProvider.
func (p *ClientCredentialsProvider) FetchToken(ctx context.Context, forceRefresh bool) string {
	if cached := p.store.Get(); !forceRefresh && cached.Valid() {
		return cached.AccessToken
	}

	endpoint := p.TokenEndpoint()
	if endpoint == "" {
		return ""
	}

	token, err := p.requestToken(ctx, endpoint)
	if err != nil {
		p.opts.warn("Client credentials token request failed", err)

		return ""
	}

	p.store.Set(token)

	return token.AccessToken
}

func (p *ClientCredentialsProvider) requestToken(ctx context.Context, endpoint string) (*Token, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type":    constants.GrantTypeClientCredentials,
		"client_id":     p.clientID,
		"client_secret": p.clientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", constants.ContentTypeJSON)
	req.Header.Set("Accept", constants.ContentTypeJSON)

	resp, err := p.opts.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w with status %d", constants.ErrTokenRequestFailed, resp.StatusCode)
	}

	var token Token

	err = json.NewDecoder(resp.Body).Decode(&token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, constants.ErrNoAccessToken
	}

	return token.withExpiry(time.Now()), nil
}
