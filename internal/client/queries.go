package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// QueriesClient implements kg.QueriesClient.
type QueriesClient struct {
	facade
}

// queryParams builds the parameters shared by stored and ad-hoc query
// execution. Additional request parameters become individual query
// parameters; the reserved ones set here take precedence.
func (c *QueriesClient) queryParams(opts *kg.QueryOptions) kg.Params {
	if opts == nil {
		opts = &kg.QueryOptions{}
	}

	params := make(kg.Params, len(opts.AdditionalRequestParams)+6)
	for key, value := range opts.AdditionalRequestParams {
		params[key] = value
	}

	params["stage"] = c.stageOr(opts.Stage)
	params["instanceId"] = optional(c.reduceToUUID(opts.InstanceID))
	params["restrictToSpaces"] = opts.RestrictToSpaces

	return withPagination(params, opts.Pagination)
}

// ExecuteQueryByID implements kg.QueriesClient.ExecuteQueryByID.
func (c *QueriesClient) ExecuteQueryByID(ctx context.Context, queryID string, opts *kg.QueryOptions) (*kg.ResultPage[kg.JSONLDDocument], error) {
	rc := c.httpClient.Get(ctx, "queries/"+c.instanceSegment(queryID)+"/instances", c.queryParams(opts))

	return resultPage(rc, kg.DecodeJSONLD)
}

// GetQuerySpecification implements kg.QueriesClient.GetQuerySpecification.
func (c *QueriesClient) GetQuerySpecification(ctx context.Context, queryID string) (*kg.Result[kg.Instance], error) {
	rc := c.httpClient.Get(ctx, "queries/"+c.instanceSegment(queryID), nil)

	return result(rc, kg.DecodeInstance)
}

// ListPerRootType implements kg.QueriesClient.ListPerRootType.
func (c *QueriesClient) ListPerRootType(ctx context.Context, search, targetType string, pagination *kg.Pagination) (*kg.ResultPage[kg.Instance], error) {
	params := withPagination(kg.Params{
		"search": optional(search),
		"type":   optional(targetType),
	}, pagination)
	rc := c.httpClient.Get(ctx, "queries", params)

	return resultPage(rc, kg.DecodeInstance)
}

// RemoveQuery implements kg.QueriesClient.RemoveQuery.
func (c *QueriesClient) RemoveQuery(ctx context.Context, queryID string) error {
	if queryID == "" {
		return constants.ErrQueryIDRequired
	}

	return errorOf(c.httpClient.Delete(ctx, "queries/"+c.instanceSegment(queryID), nil))
}

// SaveQuery implements kg.QueriesClient.SaveQuery.
func (c *QueriesClient) SaveQuery(ctx context.Context, payload kg.JSONLDDocument, queryID, space string) (*kg.Result[kg.Instance], error) {
	rc := c.httpClient.Put(ctx, "queries/"+c.instanceSegment(queryID), payload, kg.Params{"space": optional(space)})

	return result(rc, kg.DecodeInstance)
}

// TestQuery implements kg.QueriesClient.TestQuery.
func (c *QueriesClient) TestQuery(ctx context.Context, payload kg.JSONLDDocument, opts *kg.QueryOptions) (*kg.ResultPage[kg.JSONLDDocument], error) {
	rc := c.httpClient.Post(ctx, "queries", payload, c.queryParams(opts))

	return resultPage(rc, kg.DecodeJSONLD)
}
