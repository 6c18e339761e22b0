package client

import (
	"context"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// AdminClient implements kg.AdminClient. A nil global flag lets the server
// decide between the global and the client specific specification.
type AdminClient struct {
	facade
}

// AssignTypeToSpace implements kg.AdminClient.AssignTypeToSpace.
func (c *AdminClient) AssignTypeToSpace(ctx context.Context, space, targetType string) error {
	return errorOf(c.httpClient.Put(ctx, "spaces/"+pathSegment(space)+"/types", nil, kg.Params{"type": targetType}))
}

// CalculateInstanceInvitationScope implements kg.AdminClient.CalculateInstanceInvitationScope.
func (c *AdminClient) CalculateInstanceInvitationScope(ctx context.Context, instanceID string) error {
	return errorOf(c.httpClient.Put(ctx, "instances/"+c.instanceSegment(instanceID)+"/invitationScope", nil, nil))
}

// CreateSpaceDefinition implements kg.AdminClient.CreateSpaceDefinition.
func (c *AdminClient) CreateSpaceDefinition(ctx context.Context, space string, opts *kg.SpaceDefinitionOptions) error {
	if space == "" {
		return constants.ErrSpaceNameRequired
	}

	if opts == nil {
		opts = &kg.SpaceDefinitionOptions{}
	}

	params := kg.Params{
		"autorelease": opts.AutoRelease,
		"clientSpace": opts.ClientSpace,
		"deferCache":  opts.DeferCache,
	}

	return errorOf(c.httpClient.Put(ctx, "spaces/"+pathSegment(space)+"/specification", nil, params))
}

// CreateTypeDefinition implements kg.AdminClient.CreateTypeDefinition.
func (c *AdminClient) CreateTypeDefinition(ctx context.Context, payload kg.JSONLDDocument, targetType string, global *bool) error {
	params := kg.Params{"global": global, "type": targetType}

	return errorOf(c.httpClient.Put(ctx, "types/specification", payload, params))
}

// DefineProperty implements kg.AdminClient.DefineProperty.
func (c *AdminClient) DefineProperty(ctx context.Context, payload kg.JSONLDDocument, property string, global *bool) error {
	params := kg.Params{"global": global, "property": property}

	return errorOf(c.httpClient.Put(ctx, "properties", payload, params))
}

// DefinePropertyForType implements kg.AdminClient.DefinePropertyForType.
func (c *AdminClient) DefinePropertyForType(ctx context.Context, payload kg.JSONLDDocument, property, targetType string, global *bool) error {
	params := kg.Params{"global": global, "property": property, "type": targetType}

	return errorOf(c.httpClient.Put(ctx, "propertiesForType", payload, params))
}

// DeprecateProperty implements kg.AdminClient.DeprecateProperty.
func (c *AdminClient) DeprecateProperty(ctx context.Context, property string, global *bool) error {
	params := kg.Params{"global": global, "property": property}

	return errorOf(c.httpClient.Delete(ctx, "properties", params))
}

// DeprecatePropertyForType implements kg.AdminClient.DeprecatePropertyForType.
func (c *AdminClient) DeprecatePropertyForType(ctx context.Context, property, targetType string, global *bool) error {
	params := kg.Params{"global": global, "property": property, "type": targetType}

	return errorOf(c.httpClient.Delete(ctx, "propertiesForType", params))
}

// GetAllRoleDefinitions implements kg.AdminClient.GetAllRoleDefinitions.
func (c *AdminClient) GetAllRoleDefinitions(ctx context.Context) (*kg.Result[kg.JSONLDDocument], error) {
	return result(c.httpClient.Get(ctx, "setup/permissions", nil), kg.DecodeJSONLD)
}

// GetClaimForRole implements kg.AdminClient.GetClaimForRole.
func (c *AdminClient) GetClaimForRole(ctx context.Context, role, space string) (*kg.Result[kg.JSONLDDocument], error) {
	rc := c.httpClient.Get(ctx, "setup/permissions/"+pathSegment(role), kg.Params{"space": optional(space)})

	return result(rc, kg.DecodeJSONLD)
}

// ListInstancesWithInvitations implements kg.AdminClient.ListInstancesWithInvitations.
func (c *AdminClient) ListInstancesWithInvitations(ctx context.Context) (*kg.Result[[]string], error) {
	return result(c.httpClient.Get(ctx, "instancesWithInvitations", nil), kg.DecodeList(kg.DecodeString))
}

// RegisterTermsOfUse implements kg.AdminClient.RegisterTermsOfUse.
func (c *AdminClient) RegisterTermsOfUse(ctx context.Context, payload kg.JSONLDDocument) error {
	return errorOf(c.httpClient.Put(ctx, "setup/termsOfUse", payload, nil))
}

// RemoveSpaceDefinition implements kg.AdminClient.RemoveSpaceDefinition.
func (c *AdminClient) RemoveSpaceDefinition(ctx context.Context, space string) error {
	if space == "" {
		return constants.ErrSpaceNameRequired
	}

	return errorOf(c.httpClient.Delete(ctx, "spaces/"+pathSegment(space)+"/specification", nil))
}

// RemoveTypeDefinition implements kg.AdminClient.RemoveTypeDefinition.
func (c *AdminClient) RemoveTypeDefinition(ctx context.Context, targetType string, global *bool) error {
	params := kg.Params{"type": optional(targetType), "global": global}

	return errorOf(c.httpClient.Delete(ctx, "types/specification", params))
}

// RemoveTypeFromSpace implements kg.AdminClient.RemoveTypeFromSpace.
func (c *AdminClient) RemoveTypeFromSpace(ctx context.Context, space, targetType string) error {
	return errorOf(c.httpClient.Delete(ctx, "spaces/"+pathSegment(space)+"/types", kg.Params{"type": targetType}))
}

// RerunEvents implements kg.AdminClient.RerunEvents.
func (c *AdminClient) RerunEvents(ctx context.Context, space string) error {
	return errorOf(c.httpClient.Put(ctx, "spaces/"+pathSegment(space)+"/eventHistory", nil, nil))
}

// TriggerInference implements kg.AdminClient.TriggerInference.
func (c *AdminClient) TriggerInference(ctx context.Context, space, identifier string, async bool) error {
	params := kg.Params{"identifier": optional(identifier), "async": async}

	return errorOf(c.httpClient.Post(ctx, "spaces/"+pathSegment(space)+"/inference", nil, params))
}

// UpdateClaimForRole implements kg.AdminClient.UpdateClaimForRole.
func (c *AdminClient) UpdateClaimForRole(ctx context.Context, payload kg.JSONLDDocument, remove bool, role, space string) error {
	params := kg.Params{"space": optional(space), "remove": remove}

	return errorOf(c.httpClient.Patch(ctx, "setup/permissions/"+pathSegment(role), payload, params))
}
