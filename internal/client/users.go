package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// UsersClient implements kg.UsersClient.
type UsersClient struct {
	facade
}

// AcceptTermsOfUse implements kg.UsersClient.AcceptTermsOfUse.
func (c *UsersClient) AcceptTermsOfUse(ctx context.Context, version string) error {
	return errorOf(c.httpClient.Post(ctx, "users/termsOfUse/"+pathSegment(version)+"/accept", nil, nil))
}

// GetOpenIDConfigURL implements kg.UsersClient.GetOpenIDConfigURL.
func (c *UsersClient) GetOpenIDConfigURL(ctx context.Context) (*kg.Result[kg.JSONLDDocument], error) {
	return result(c.httpClient.Get(ctx, "users/authorization/config", nil), kg.DecodeJSONLD)
}

// GetTermsOfUse implements kg.UsersClient.GetTermsOfUse. The response body is
// the terms themselves rather than a data envelope; nil is returned when the
// server sends no content.
func (c *UsersClient) GetTermsOfUse(ctx context.Context) (*kg.TermsOfUse, error) {
	rc := c.httpClient.Get(ctx, "users/termsOfUse", nil)
	if kgErr := kg.TranslateError(rc); kgErr != nil {
		return nil, kgErr
	}

	if rc.Content == nil {
		return nil, nil
	}

	terms, err := kg.DecodeModel[kg.TermsOfUse](rc.Content, rc.IDNamespace)
	if err != nil {
		return nil, &kg.KGError{Code: rc.StatusCode, Message: err.Error(), Namespace: rc.IDNamespace}
	}

	return &terms, nil
}

// MyInfo implements kg.UsersClient.MyInfo.
func (c *UsersClient) MyInfo(ctx context.Context) (*kg.Result[kg.User], error) {
	return result(c.httpClient.Get(ctx, "users/me", nil), kg.DecodeModel[kg.User])
}
