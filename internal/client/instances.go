package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// InstancesClient implements kg.InstancesClient.
type InstancesClient struct {
	facade
}

// ContributeToFullReplacement implements kg.InstancesClient.ContributeToFullReplacement.
func (c *InstancesClient) ContributeToFullReplacement(ctx context.Context, payload kg.JSONLDDocument, instanceID string, cfg *kg.ExtendedResponseConfiguration) (*kg.Result[kg.Instance], error) {
	params := withExtendedResponse(kg.Params{}, cfg)
	rc := c.httpClient.Put(ctx, "instances/"+c.instanceSegment(instanceID), payload, params)

	return result(rc, kg.DecodeInstance)
}

// ContributeToPartialReplacement implements kg.InstancesClient.ContributeToPartialReplacement.
func (c *InstancesClient) ContributeToPartialReplacement(ctx context.Context, payload kg.JSONLDDocument, instanceID string, cfg *kg.ExtendedResponseConfiguration) (*kg.Result[kg.Instance], error) {
	params := withExtendedResponse(kg.Params{}, cfg)
	rc := c.httpClient.Patch(ctx, "instances/"+c.instanceSegment(instanceID), payload, params)

	return result(rc, kg.DecodeInstance)
}

// CreateNew implements kg.InstancesClient.CreateNew.
func (c *InstancesClient) CreateNew(ctx context.Context, payload kg.JSONLDDocument, space string, cfg *kg.ExtendedResponseConfiguration) (*kg.Result[kg.Instance], error) {
	params := withExtendedResponse(kg.Params{"space": space}, cfg)
	rc := c.httpClient.Post(ctx, "instances", payload, params)

	return result(rc, kg.DecodeInstance)
}

// CreateNewWithID implements kg.InstancesClient.CreateNewWithID.
func (c *InstancesClient) CreateNewWithID(ctx context.Context, payload kg.JSONLDDocument, instanceID, space string, cfg *kg.ExtendedResponseConfiguration) (*kg.Result[kg.Instance], error) {
	params := withExtendedResponse(kg.Params{"space": space}, cfg)
	rc := c.httpClient.Post(ctx, "instances/"+c.instanceSegment(instanceID), payload, params)

	return result(rc, kg.DecodeInstance)
}

// Delete implements kg.InstancesClient.Delete.
func (c *InstancesClient) Delete(ctx context.Context, instanceID string) error {
	if instanceID == "" {
		return constants.ErrInstanceIDRequired
	}

	return errorOf(c.httpClient.Delete(ctx, "instances/"+c.instanceSegment(instanceID), nil))
}

// GetByID implements kg.InstancesClient.GetByID.
func (c *InstancesClient) GetByID(ctx context.Context, instanceID string, opts *kg.GetInstanceOptions) (*kg.Result[kg.Instance], error) {
	if opts == nil {
		opts = &kg.GetInstanceOptions{}
	}

	params := withExtendedResponse(kg.Params{"stage": c.stageOr(opts.Stage)}, opts.Response)
	rc := c.httpClient.Get(ctx, "instances/"+c.instanceSegment(instanceID), params)

	return result(rc, kg.DecodeInstance)
}

// GetByIdentifiers implements kg.InstancesClient.GetByIdentifiers.
func (c *InstancesClient) GetByIdentifiers(ctx context.Context, identifiers []string, opts *kg.GetInstanceOptions) (*kg.ResultsByID[kg.Instance], error) {
	if opts == nil {
		opts = &kg.GetInstanceOptions{}
	}

	params := withExtendedResponse(kg.Params{"stage": c.stageOr(opts.Stage)}, opts.Response)
	rc := c.httpClient.Post(ctx, "instancesByIdentifiers", identifiers, params)

	return resultsByID(rc, kg.DecodeInstance)
}

// GetByIDs implements kg.InstancesClient.GetByIDs.
func (c *InstancesClient) GetByIDs(ctx context.Context, instanceIDs []string, opts *kg.GetInstanceOptions) (*kg.ResultsByID[kg.Instance], error) {
	if opts == nil {
		opts = &kg.GetInstanceOptions{}
	}

	params := withExtendedResponse(kg.Params{"stage": c.stageOr(opts.Stage)}, opts.Response)
	rc := c.httpClient.Post(ctx, "instancesByIds", c.reduceAll(instanceIDs), params)

	return resultsByID(rc, kg.DecodeInstance)
}

// GetIncomingLinks implements kg.InstancesClient.GetIncomingLinks.
func (c *InstancesClient) GetIncomingLinks(ctx context.Context, instanceID, property, targetType string, opts *kg.IncomingLinksOptions) (*kg.ResultPage[kg.Instance], error) {
	if opts == nil {
		opts = &kg.IncomingLinksOptions{}
	}

	params := withPagination(kg.Params{
		"stage":    c.stageOr(opts.Stage),
		"property": property,
		"type":     targetType,
	}, opts.Pagination)
	rc := c.httpClient.Get(ctx, "instances/"+c.instanceSegment(instanceID)+"/incomingLinks", params)

	return resultPage(rc, kg.DecodeInstance)
}

// GetReleaseStatus implements kg.InstancesClient.GetReleaseStatus.
func (c *InstancesClient) GetReleaseStatus(ctx context.Context, instanceID string, scope kg.ReleaseTreeScope) (*kg.Result[kg.ReleaseStatus], error) {
	params := kg.Params{"releaseTreeScope": releaseScope(scope)}
	rc := c.httpClient.Get(ctx, "instances/"+c.instanceSegment(instanceID)+"/release/status", params)

	return result(rc, kg.DecodeReleaseStatus)
}

// GetReleaseStatusByIDs implements kg.InstancesClient.GetReleaseStatusByIDs.
func (c *InstancesClient) GetReleaseStatusByIDs(ctx context.Context, instanceIDs []string, scope kg.ReleaseTreeScope) (*kg.ResultsByID[kg.ReleaseStatus], error) {
	params := kg.Params{"releaseTreeScope": releaseScope(scope)}
	rc := c.httpClient.Post(ctx, "instancesByIds/release/status", c.reduceAll(instanceIDs), params)

	return resultsByID(rc, kg.DecodeReleaseStatus)
}

// GetScope implements kg.InstancesClient.GetScope.
func (c *InstancesClient) GetScope(ctx context.Context, instanceID string, opts *kg.ScopeOptions) (*kg.Result[kg.Scope], error) {
	if opts == nil {
		opts = &kg.ScopeOptions{}
	}

	params := kg.Params{
		"stage":             c.stageOr(opts.Stage),
		"returnPermissions": opts.ReturnPermissions,
		"applyRestrictions": opts.ApplyRestrictions,
	}
	rc := c.httpClient.Get(ctx, "instances/"+c.instanceSegment(instanceID)+"/scope", params)

	return result(rc, kg.DecodeModel[kg.Scope])
}

// InviteUserFor implements kg.InstancesClient.InviteUserFor.
func (c *InstancesClient) InviteUserFor(ctx context.Context, instanceID, userID string) error {
	path := "instances/" + c.instanceSegment(instanceID) + "/invitedUsers/" + c.instanceSegment(userID)

	return errorOf(c.httpClient.Put(ctx, path, nil, nil))
}

// List implements kg.InstancesClient.List.
func (c *InstancesClient) List(ctx context.Context, targetType string, opts *kg.ListInstancesOptions) (*kg.ResultPage[kg.Instance], error) {
	if opts == nil {
		opts = &kg.ListInstancesOptions{}
	}

	params := kg.Params{
		"stage":          c.stageOr(opts.Stage),
		"type":           targetType,
		"space":          optional(opts.Space),
		"searchByLabel":  optional(opts.SearchByLabel),
		"filterProperty": optional(opts.FilterProperty),
		"filterValue":    optional(opts.FilterValue),
	}
	params = withPagination(withResponse(params, opts.Response), opts.Pagination)
	rc := c.httpClient.Get(ctx, "instances", params)

	return resultPage(rc, kg.DecodeInstance)
}

// ListInvitations implements kg.InstancesClient.ListInvitations.
func (c *InstancesClient) ListInvitations(ctx context.Context, instanceID string) (*kg.Result[[]kg.ReducedUserInformation], error) {
	rc := c.httpClient.Get(ctx, "instances/"+c.instanceSegment(instanceID)+"/invitedUsers", nil)

	return result(rc, kg.DecodeList(kg.DecodeModel[kg.ReducedUserInformation]))
}

// Move implements kg.InstancesClient.Move.
func (c *InstancesClient) Move(ctx context.Context, instanceID, space string, cfg *kg.ExtendedResponseConfiguration) (*kg.Result[kg.Instance], error) {
	params := withExtendedResponse(kg.Params{}, cfg)
	path := "instances/" + c.instanceSegment(instanceID) + "/spaces/" + pathSegment(space)
	rc := c.httpClient.Put(ctx, path, nil, params)

	return result(rc, kg.DecodeInstance)
}

// Release implements kg.InstancesClient.Release. An empty revision releases the latest one.
func (c *InstancesClient) Release(ctx context.Context, instanceID, revision string) error {
	params := kg.Params{"revision": optional(revision)}

	return errorOf(c.httpClient.Put(ctx, "instances/"+c.instanceSegment(instanceID)+"/release", nil, params))
}

// RevokeUserInvitation implements kg.InstancesClient.RevokeUserInvitation.
func (c *InstancesClient) RevokeUserInvitation(ctx context.Context, instanceID, userID string) error {
	path := "instances/" + c.instanceSegment(instanceID) + "/invitedUsers/" + c.instanceSegment(userID)

	return errorOf(c.httpClient.Delete(ctx, path, nil))
}

// Unrelease implements kg.InstancesClient.Unrelease.
func (c *InstancesClient) Unrelease(ctx context.Context, instanceID string) error {
	return errorOf(c.httpClient.Delete(ctx, "instances/"+c.instanceSegment(instanceID)+"/release", nil))
}

func (c *InstancesClient) reduceAll(instanceIDs []string) []string {
	reduced := make([]string, len(instanceIDs))
	for i, id := range instanceIDs {
		reduced[i] = c.reduceToUUID(id)
	}

	return reduced
}

func releaseScope(scope kg.ReleaseTreeScope) kg.ReleaseTreeScope {
	if scope == "" {
		return kg.ReleaseTreeScopeTopInstanceOnly
	}

	return scope
}
