package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// discoveryResponse is the envelope of the KG authorization discovery endpoints.
type discoveryResponse struct {
	Data struct {
		Endpoint string `json:"endpoint"`
	} `json:"data"`
}

// DiscoverTokenEndpoint asks the KG for the token endpoint used by client credentials.
func DiscoverTokenEndpoint(ctx context.Context, httpClient *http.Client, kgEndpoint string) (string, error) {
	endpoint, err := discoverEndpoint(ctx, httpClient, kgEndpoint, constants.TokenEndpointPath)
	if err != nil {
		return "", err
	}

	if endpoint == "" {
		return "", constants.ErrTokenEndpointNotFound
	}

	return endpoint, nil
}

// DiscoverOpenIDConfigURL asks the KG for the OpenID configuration of its identity provider.
func DiscoverOpenIDConfigURL(ctx context.Context, httpClient *http.Client, kgEndpoint string) (string, error) {
	endpoint, err := discoverEndpoint(ctx, httpClient, kgEndpoint, constants.AuthorizationConfigPath)
	if err != nil {
		return "", err
	}

	if endpoint == "" {
		return "", constants.ErrOIDCConfigNotFound
	}

	return endpoint, nil
}

func discoverEndpoint(ctx context.Context, httpClient *http.Client, kgEndpoint, path string) (string, error) {
	target := strings.TrimSuffix(kgEndpoint, "/") + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", constants.ContentTypeJSON)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getting %s: %w", path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", fmt.Errorf("%w with status %d: %s", constants.ErrDiscoveryFailed, resp.StatusCode, string(body))
	}

	var discovery discoveryResponse

	err = json.NewDecoder(resp.Body).Decode(&discovery)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	return discovery.Data.Endpoint, nil
}
