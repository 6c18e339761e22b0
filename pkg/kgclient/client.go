// Package kgclient provides the main entry point for creating KG API clients
package kgclient

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/kg-client/internal/auth"
	"github.com/fivetwenty-io/kg-client/internal/client"
	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// ProviderOption configures the token providers built by this package.
type ProviderOption = auth.Option

// DeviceFlowOption configures the device flow provider.
type DeviceFlowOption = auth.DeviceFlowOption

// Token provider options.
var (
	WithProviderLogger     = auth.WithLogger
	WithProviderHTTPClient = auth.WithHTTPClient
	WithTokenEndpoint      = auth.WithTokenEndpoint
	WithDevicePrompt       = auth.WithDevicePrompt
	WithRefreshToken       = auth.WithRefreshToken
	WithOAuth2Config       = auth.WithOAuth2Config
	WritePrompt            = auth.WritePrompt
)

// BaseURL returns the versioned API root for host: http for hosts starting
// with "localhost", https otherwise.
func BaseURL(host string) string {
	return client.BaseURL(host)
}

// StaticToken returns a provider for a token obtained elsewhere.
func StaticToken(token string) kg.TokenProvider {
	return auth.NewStaticTokenProvider(token)
}

// TokenCallback returns a provider calling fn whenever a token is needed.
func TokenCallback(fn func(ctx context.Context) (string, error), opts ...ProviderOption) kg.TokenProvider {
	return auth.NewCallbackTokenProvider(fn, opts...)
}

// ClientCredentials returns a provider for a service account. Its token
// endpoint is discovered from the KG when the client is built.
func ClientCredentials(clientID, clientSecret string, opts ...ProviderOption) kg.TokenProvider {
	return auth.NewClientCredentialsProvider(clientID, clientSecret, opts...)
}

// DeviceFlow returns a provider logging a user in through the OAuth2 device
// authorization grant. An empty clientID selects the default public client.
func DeviceFlow(clientID string, opts []ProviderOption, flowOpts ...DeviceFlowOption) *auth.DeviceFlowProvider {
	return auth.NewDeviceFlowProvider(clientID, opts, flowOpts...)
}

// New creates a new KG client.
func New(ctx context.Context, config *kg.Config) (kg.Client, error) {
	if config == nil {
		return nil, kg.ErrConfigRequired
	}

	c, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a new client authenticated with a fixed token.
func NewWithToken(ctx context.Context, host, token string) (kg.Client, error) {
	return New(ctx, &kg.Config{
		Host:          host,
		TokenProvider: StaticToken(token),
	})
}

// NewWithTokenProvider creates a new client with a custom token provider.
func NewWithTokenProvider(ctx context.Context, host string, provider kg.TokenProvider) (kg.Client, error) {
	return New(ctx, &kg.Config{
		Host:          host,
		TokenProvider: provider,
	})
}

// NewWithClientCredentials creates a new client acting as a service account.
func NewWithClientCredentials(ctx context.Context, host, clientID, clientSecret string) (kg.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, constants.ErrClientSecretRequired
	}

	return New(ctx, &kg.Config{
		Host:          host,
		TokenProvider: ClientCredentials(clientID, clientSecret),
	})
}

// NewWithDeviceFlow creates a new client for an interactive user. The user is
// prompted on stderr the first time a token is needed.
func NewWithDeviceFlow(ctx context.Context, host, clientID string) (kg.Client, error) {
	return New(ctx, &kg.Config{
		Host:          host,
		TokenProvider: DeviceFlow(clientID, nil),
	})
}

// WithClientCredentials makes config additionally authenticate a service
// account, sent as the Client-Authorization header.
func WithClientCredentials(config *kg.Config, clientID, clientSecret string, opts ...ProviderOption) *kg.Config {
	config.ClientTokenProvider = ClientCredentials(clientID, clientSecret, opts...)

	return config
}
