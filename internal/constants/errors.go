package constants

import "errors"

// Discovery errors.
var (
	ErrTokenEndpointNotFound = errors.New("no token endpoint in discovery response")
	ErrOIDCConfigNotFound    = errors.New("no OpenID configuration URL in discovery response")
	ErrDiscoveryFailed       = errors.New("discovery request failed")
)

// Token exchange errors.
var (
	ErrTokenRequestFailed = errors.New("token request failed")
	ErrNoAccessToken      = errors.New("no access token in token response")
	ErrNoDeviceEndpoint   = errors.New("identity provider does not support device authorization")
)

// Configuration errors.
var (
	ErrHostRequired          = errors.New("KG host is required")
	ErrClientSecretRequired  = errors.New("client secret is required when a client ID is set")
	ErrInvalidStage          = errors.New("invalid stage, expected RELEASED or IN_PROGRESS")
	ErrInvalidOutputFormat   = errors.New("invalid output format, expected table, json or yaml")
	ErrNoCredentials         = errors.New("no credentials configured, set KG_TOKEN or KG_CLIENT_ID and KG_CLIENT_SECRET")
	ErrInstanceIDRequired    = errors.New("instance ID is required")
	ErrQueryIDRequired       = errors.New("query ID is required")
	ErrSpaceNameRequired     = errors.New("space name is required")
	ErrUnsupportedQueryValue = errors.New("unsupported query parameter value")
)
