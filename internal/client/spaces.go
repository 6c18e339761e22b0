package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// SpacesClient implements kg.SpacesClient.
type SpacesClient struct {
	facade
}

// Get implements kg.SpacesClient.Get.
func (c *SpacesClient) Get(ctx context.Context, space string, permissions bool) (*kg.Result[kg.SpaceInformation], error) {
	rc := c.httpClient.Get(ctx, "spaces/"+pathSegment(space), kg.Params{"permissions": permissions})

	return result(rc, kg.DecodeModel[kg.SpaceInformation])
}

// List implements kg.SpacesClient.List.
func (c *SpacesClient) List(ctx context.Context, permissions bool, pagination *kg.Pagination) (*kg.ResultPage[kg.SpaceInformation], error) {
	params := withPagination(kg.Params{"permissions": permissions}, pagination)
	rc := c.httpClient.Get(ctx, "spaces", params)

	return resultPage(rc, kg.DecodeModel[kg.SpaceInformation])
}
