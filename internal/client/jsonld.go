package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// JSONLDClient implements kg.JSONLDClient.
type JSONLDClient struct {
	facade
}

// NormalizePayload implements kg.JSONLDClient.NormalizePayload.
func (c *JSONLDClient) NormalizePayload(ctx context.Context, payload kg.JSONLDDocument) (*kg.Result[kg.JSONLDDocument], error) {
	return result(c.httpClient.Post(ctx, "jsonld/normalizedPayload", payload, nil), kg.DecodeJSONLD)
}
