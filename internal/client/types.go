package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// TypesClient implements kg.TypesClient.
type TypesClient struct {
	facade
}

func (c *TypesClient) typeParams(opts *kg.TypeOptions) kg.Params {
	if opts == nil {
		opts = &kg.TypeOptions{}
	}

	return kg.Params{
		"stage":             c.stageOr(opts.Stage),
		"space":             optional(opts.Space),
		"withProperties":    opts.WithProperties,
		"withIncomingLinks": opts.WithIncomingLinks,
	}
}

// GetByName implements kg.TypesClient.GetByName.
func (c *TypesClient) GetByName(ctx context.Context, typeNames []string, opts *kg.TypeOptions) (*kg.ResultsByID[kg.TypeInformation], error) {
	rc := c.httpClient.Post(ctx, "typesByName", typeNames, c.typeParams(opts))

	return resultsByID(rc, kg.DecodeModel[kg.TypeInformation])
}

// List implements kg.TypesClient.List.
func (c *TypesClient) List(ctx context.Context, opts *kg.TypeOptions, pagination *kg.Pagination) (*kg.ResultPage[kg.TypeInformation], error) {
	rc := c.httpClient.Get(ctx, "types", withPagination(c.typeParams(opts), pagination))

	return resultPage(rc, kg.DecodeModel[kg.TypeInformation])
}
