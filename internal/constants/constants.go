package constants

import "time"

// ConfigFilePerm is the permission for configuration files.
const ConfigFilePerm = 0600

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for discovery and token exchange calls.
	ShortHTTPTimeout = 10 * time.Second

	// DeviceFlowTimeout bounds how long a user has to complete a device login.
	DeviceFlowTimeout = 5 * time.Minute
)

// Transport retry settings. Retries only cover connection failures, never status codes.
const (
	// DefaultRetryMax is the default number of transport retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// KG API layout.
const (
	// APIVersion is the fixed version segment of every KG core URL.
	APIVersion = "v3-beta"

	// DefaultHost is the public KG core host.
	DefaultHost = "core.kg.ebrains.eu"

	// DefaultIDNamespace prefixes every fully qualified instance identifier.
	DefaultIDNamespace = "https://kg.ebrains.eu/api/instances/"

	// LocalhostPrefix marks hosts that are reached over plain http.
	LocalhostPrefix = "localhost"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "kg-client-go/1.0"
)

// KG API paths used outside of the resource clients.
const (
	// TokenEndpointPath returns the token endpoint for client credentials.
	TokenEndpointPath = "users/authorization/tokenEndpoint"

	// AuthorizationConfigPath returns the OpenID configuration URL.
	AuthorizationConfigPath = "users/authorization/config"

	// WellKnownSuffix is trimmed from an OpenID configuration URL to get the issuer.
	WellKnownSuffix = "/.well-known/openid-configuration"
)

// HTTP headers.
const (
	// HeaderAuthorization carries the user token.
	HeaderAuthorization = "Authorization"

	// HeaderClientAuthorization carries the service account token.
	HeaderClientAuthorization = "Client-Authorization"

	// BearerPrefix prefixes every token header value.
	BearerPrefix = "Bearer "

	// ContentTypeJSON is used for every payload.
	ContentTypeJSON = "application/json"
)

// Pagination defaults.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 50

	// DefaultStartFrom is the default window offset.
	DefaultStartFrom = 0
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// GrantTypeClientCredentials is the grant used by service accounts.
	GrantTypeClientCredentials = "client_credentials"

	// DefaultDeviceFlowClientID is the public client registered for the device grant.
	DefaultDeviceFlowClientID = "kg-core-python"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
