package client

import (
	"net/url"
	"strings"

	"github.com/fivetwenty-io/kg-client/internal/http"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// facade holds what every resource client shares.
type facade struct {
	httpClient *http.Client
	stage      kg.Stage
}

// stageOr returns stage, or the client default when unset.
func (f facade) stageOr(stage kg.Stage) kg.Stage {
	if stage == "" {
		return f.stage
	}

	return stage
}

// instanceSegment reduces an instance IRI to its UUID and escapes it for use in a path.
func (f facade) instanceSegment(instanceID string) string {
	return pathSegment(f.reduceToUUID(instanceID))
}

// reduceToUUID strips the identifier namespace. Bare UUIDs pass through.
func (f facade) reduceToUUID(instanceID string) string {
	return strings.TrimPrefix(instanceID, f.httpClient.IDNamespace())
}

// errorOf translates rc into an error value for operations without data.
func errorOf(rc *kg.ResponseContext) error {
	if kgErr := kg.TranslateError(rc); kgErr != nil {
		return kgErr
	}

	return nil
}

func result[T any](rc *kg.ResponseContext, decode kg.Decoder[T]) (*kg.Result[T], error) {
	res := kg.NewResult(rc, decode)

	return res, res.Err()
}

func resultPage[T any](rc *kg.ResponseContext, decode kg.Decoder[T]) (*kg.ResultPage[T], error) {
	page := kg.NewResultPage(rc, decode)

	return page, page.Err()
}

func resultsByID[T any](rc *kg.ResponseContext, decode kg.Decoder[T]) (*kg.ResultsByID[T], error) {
	res := kg.NewResultsByID(rc, decode)

	return res, res.Err()
}

// withPagination adds from, size and returnTotalResults.
func withPagination(params kg.Params, pagination *kg.Pagination) kg.Params {
	if pagination == nil {
		pagination = kg.DefaultPagination()
	}

	params["from"] = pagination.Start
	params["size"] = pagination.Size
	params["returnTotalResults"] = pagination.ReturnTotalResults

	return params
}

// withResponse adds the projection flags that are set.
func withResponse(params kg.Params, cfg *kg.ResponseConfiguration) kg.Params {
	if cfg == nil {
		return params
	}

	params["returnPayload"] = cfg.ReturnPayload
	params["returnPermissions"] = cfg.ReturnPermissions
	params["returnAlternatives"] = cfg.ReturnAlternatives
	params["returnEmbedded"] = cfg.ReturnEmbedded

	return params
}

func withExtendedResponse(params kg.Params, cfg *kg.ExtendedResponseConfiguration) kg.Params {
	if cfg == nil {
		return params
	}

	params["returnIncomingLinks"] = cfg.ReturnIncomingLinks
	params["incomingLinksPageSize"] = cfg.IncomingLinksPageSize

	return withResponse(params, &cfg.ResponseConfiguration)
}

// optional returns nil for "" so the parameter is omitted.
func optional(value string) any {
	if value == "" {
		return nil
	}

	return value
}

// pathSegment escapes a caller supplied value for use as one path segment.
func pathSegment(value string) string {
	return url.PathEscape(value)
}
