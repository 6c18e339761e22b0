package auth

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// DevicePrompt shows the verification URL and user code to the user.
type DevicePrompt func(resp *oauth2.DeviceAuthResponse)

// DeviceFlowProvider obtains tokens for an interactive user through the
// OAuth2 device authorization grant. The identity provider is discovered from
// the KG on DefineEndpoint. Once a refresh token is known, it is used before
// falling back to a new device authorization.
type DeviceFlowProvider struct {
	clientID string
	prompt   DevicePrompt
	store    *TokenStore
	opts     *options

	mu     sync.Mutex
	config *oauth2.Config
}

// DeviceFlowOption configures a DeviceFlowProvider.
type DeviceFlowOption func(*DeviceFlowProvider)

// WithDevicePrompt replaces the default prompt, which writes to stderr.
func WithDevicePrompt(prompt DevicePrompt) DeviceFlowOption {
	return func(p *DeviceFlowProvider) {
		p.prompt = prompt
	}
}

// WithRefreshToken seeds the provider with a refresh token from an earlier login.
func WithRefreshToken(refreshToken string) DeviceFlowOption {
	return func(p *DeviceFlowProvider) {
		p.store.Set(&Token{RefreshToken: refreshToken})
	}
}

// WithOAuth2Config skips identity provider discovery.
func WithOAuth2Config(config *oauth2.Config) DeviceFlowOption {
	return func(p *DeviceFlowProvider) {
		p.config = config
	}
}

// NewDeviceFlowProvider creates a device flow provider for clientID. An empty
// clientID selects the public client registered for KG command line tools.
func NewDeviceFlowProvider(clientID string, opts []Option, flowOpts ...DeviceFlowOption) *DeviceFlowProvider {
	if clientID == "" {
		clientID = constants.DefaultDeviceFlowClientID
	}

	p := &DeviceFlowProvider{
		clientID: clientID,
		prompt:   WritePrompt(os.Stderr),
		store:    NewTokenStore(),
		opts:     newOptions(opts),
	}

	for _, opt := range flowOpts {
		opt(p)
	}

	return p
}

// WritePrompt returns a prompt printing the verification instructions to w.
func WritePrompt(w io.Writer) DevicePrompt {
	return func(resp *oauth2.DeviceAuthResponse) {
		target := resp.VerificationURIComplete
		if target == "" {
			target = resp.VerificationURI
		}

		_, _ = fmt.Fprintf(w, "To authenticate, visit %s and enter the code %s\n", target, resp.UserCode)
	}
}

// DefineEndpoint implements kg.TokenProvider.
func (p *DeviceFlowProvider) DefineEndpoint(ctx context.Context, kgEndpoint string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config != nil {
		return
	}

	config, err := p.discover(ctx, kgEndpoint)
	if err != nil {
		p.opts.warn("Identity provider discovery failed", err)

		return
	}

	p.config = config
}

func (p *DeviceFlowProvider) discover(ctx context.Context, kgEndpoint string) (*oauth2.Config, error) {
	configURL, err := DiscoverOpenIDConfigURL(ctx, p.opts.httpClient, kgEndpoint)
	if err != nil {
		return nil, err
	}

	issuer := strings.TrimSuffix(configURL, constants.WellKnownSuffix)

	provider, err := oidc.NewProvider(p.oauthContext(ctx), issuer)
	if err != nil {
		return nil, fmt.Errorf("discovering identity provider %s: %w", issuer, err)
	}

	endpoint := provider.Endpoint()
	if endpoint.DeviceAuthURL == "" {
		return nil, constants.ErrNoDeviceEndpoint
	}

	return &oauth2.Config{
		ClientID: p.clientID,
		Endpoint: endpoint,
		Scopes:   []string{oidc.ScopeOpenID, "profile", "email", "team"},
	}, nil
}

// FetchToken implements kg.TokenProvider. A forced refresh still tries the
// refresh token before asking the user again.
func (p *DeviceFlowProvider) FetchToken(ctx context.Context, forceRefresh bool) string {
	cached := p.store.Get()
	if !forceRefresh && cached.Valid() {
		return cached.AccessToken
	}

	p.mu.Lock()
	config := p.config
	p.mu.Unlock()

	if config == nil {
		return ""
	}

	if cached != nil && cached.RefreshToken != "" {
		token, err := p.refresh(ctx, config, cached.RefreshToken)
		if err == nil {
			p.store.Set(token)

			return token.AccessToken
		}

		p.opts.warn("Refresh token rejected", err)
	}

	token, err := p.authorize(ctx, config)
	if err != nil {
		p.opts.warn("Device authorization failed", err)

		return ""
	}

	p.store.Set(token)

	return token.AccessToken
}

// RefreshToken returns the refresh token of the last login, or "".
func (p *DeviceFlowProvider) RefreshToken() string {
	if token := p.store.Get(); token != nil {
		return token.RefreshToken
	}

	return ""
}

func (p *DeviceFlowProvider) refresh(ctx context.Context, config *oauth2.Config, refreshToken string) (*Token, error) {
	source := config.TokenSource(p.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	return fromOAuth2(token)
}

func (p *DeviceFlowProvider) authorize(ctx context.Context, config *oauth2.Config) (*Token, error) {
	ctx, cancel := context.WithTimeout(p.oauthContext(ctx), constants.DeviceFlowTimeout)
	defer cancel()

	resp, err := config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting device code: %w", err)
	}

	p.prompt(resp)

	token, err := config.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("waiting for device authorization: %w", err)
	}

	return fromOAuth2(token)
}

func (p *DeviceFlowProvider) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.opts.httpClient)
}

func fromOAuth2(token *oauth2.Token) (*Token, error) {
	if token.AccessToken == "" {
		return nil, constants.ErrNoAccessToken
	}

	return &Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}, nil
}

