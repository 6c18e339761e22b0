// Package auth implements the token providers used to authenticate KG requests.
//
// Providers cache the last token they obtained and only fetch a new one when
// the cached token is missing, close to expiry, or a refresh is forced after a
// 401. Failures never surface as errors: a provider that cannot obtain a token
// returns "" and the request proceeds unauthenticated.
package auth

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// Option configures a token provider.
type Option func(*options)

type options struct {
	logger        kg.Logger
	httpClient    *http.Client
	tokenEndpoint string
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger kg.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the client used for discovery and token requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTokenEndpoint skips token endpoint discovery.
func WithTokenEndpoint(endpoint string) Option {
	return func(o *options) {
		o.tokenEndpoint = endpoint
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	return o
}

func (o *options) warn(msg string, err error) {
	if o.logger != nil {
		o.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

// StaticTokenProvider always returns the same token.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// FetchToken implements kg.TokenProvider.
func (p *StaticTokenProvider) FetchToken(context.Context, bool) string {
	return p.token
}

// DefineEndpoint implements kg.TokenProvider.
func (p *StaticTokenProvider) DefineEndpoint(context.Context, string) {}

// TokenCallback produces a token on demand.
type TokenCallback func(ctx context.Context) (string, error)

// CallbackTokenProvider delegates to a caller-supplied function and caches its result.
type CallbackTokenProvider struct {
	callback TokenCallback
	store    *TokenStore
	opts     *options
}

// NewCallbackTokenProvider creates a provider around callback.
func NewCallbackTokenProvider(callback TokenCallback, opts ...Option) *CallbackTokenProvider {
	return &CallbackTokenProvider{
		callback: callback,
		store:    NewTokenStore(),
		opts:     newOptions(opts),
	}
}

// FetchToken implements kg.TokenProvider.
func (p *CallbackTokenProvider) FetchToken(ctx context.Context, forceRefresh bool) string {
	if cached := p.store.Get(); !forceRefresh && cached.Valid() {
		return cached.AccessToken
	}

	token, err := p.callback(ctx)
	if err != nil {
		p.opts.warn("Token callback failed", err)

		return ""
	}

	if token != "" {
		p.store.Set(&Token{AccessToken: token})
	}

	return token
}

// DefineEndpoint implements kg.TokenProvider.
func (p *CallbackTokenProvider) DefineEndpoint(context.Context, string) {}
