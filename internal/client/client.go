package client

import (
	"context"
	"strings"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/internal/http"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// Client implements the kg.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	stage      kg.Stage
	logger     kg.Logger

	instances *InstancesClient
	types     *TypesClient
	spaces    *SpacesClient
	queries   *QueriesClient
	users     *UsersClient
	jsonld    *JSONLDClient
	admin     *AdminClient
}

// BaseURL returns the versioned API root for host. Hosts starting with
// "localhost" are reached over plain http, everything else over https. A host
// that already carries a scheme is used as is.
func BaseURL(host string) string {
	host = strings.TrimSuffix(host, "/")

	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + "/" + constants.APIVersion + "/"
	}

	scheme := "https"
	if strings.HasPrefix(host, constants.LocalhostPrefix) {
		scheme = "http"
	}

	return scheme + "://" + host + "/" + constants.APIVersion + "/"
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *kg.Config) []http.Option {
	httpOpts := []http.Option{
		http.WithDebug(config.Debug),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.ClientTokenProvider != nil {
		httpOpts = append(httpOpts, http.WithClientTokenProvider(config.ClientTokenProvider))
	}

	if config.IDNamespace != "" {
		httpOpts = append(httpOpts, http.WithIDNamespace(config.IDNamespace))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a KG client. Both token providers are told the API root so they
// can discover their token endpoints before the first request.
func New(ctx context.Context, config *kg.Config) (*Client, error) {
	if config == nil {
		return nil, kg.ErrConfigRequired
	}

	if strings.TrimSpace(config.Host) == "" {
		return nil, constants.ErrHostRequired
	}

	stage := config.Stage
	if stage == "" {
		stage = kg.StageReleased
	}

	baseURL := BaseURL(config.Host)

	if config.TokenProvider != nil {
		config.TokenProvider.DefineEndpoint(ctx, baseURL)
	}

	if config.ClientTokenProvider != nil {
		config.ClientTokenProvider.DefineEndpoint(ctx, baseURL)
	}

	httpClient := http.NewClient(baseURL, config.TokenProvider, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		stage:      stage,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients wires every facade onto the shared executor.
func (c *Client) initializeResourceClients() {
	base := facade{httpClient: c.httpClient, stage: c.stage}

	c.instances = &InstancesClient{facade: base}
	c.types = &TypesClient{facade: base}
	c.spaces = &SpacesClient{facade: base}
	c.queries = &QueriesClient{facade: base}
	c.users = &UsersClient{facade: base}
	c.jsonld = &JSONLDClient{facade: base}
	c.admin = &AdminClient{facade: base}
}

// BaseURL implements kg.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Stage returns the default stage for read operations.
func (c *Client) Stage() kg.Stage {
	return c.stage
}

// Executor returns the executor shared by all facades.
func (c *Client) Executor() kg.Executor {
	return c.httpClient
}

// Instances implements kg.Client.Instances.
func (c *Client) Instances() kg.InstancesClient {
	return c.instances
}

// Types implements kg.Client.Types.
func (c *Client) Types() kg.TypesClient {
	return c.types
}

// Spaces implements kg.Client.Spaces.
func (c *Client) Spaces() kg.SpacesClient {
	return c.spaces
}

// Queries implements kg.Client.Queries.
func (c *Client) Queries() kg.QueriesClient {
	return c.queries
}

// Users implements kg.Client.Users.
func (c *Client) Users() kg.UsersClient {
	return c.users
}

// JSONLD implements kg.Client.JSONLD.
func (c *Client) JSONLD() kg.JSONLDClient {
	return c.jsonld
}

// Admin implements kg.Client.Admin.
func (c *Client) Admin() kg.AdminClient {
	return c.admin
}
