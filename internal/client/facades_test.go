package client_test

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kg-client/internal/client"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

func TestTypesAndSpaces_Requests(t *testing.T) {
	t.Parallel()

	runOperationCases(t, []operationCase{
		{
			name: "types by name",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Types().GetByName(ctx, []string{"https://openminds.ebrains.eu/core/Person"}, &kg.TypeOptions{WithProperties: true}))
			},
			method: http.MethodPost,
			path:   "typesByName",
			query:  url.Values{"stage": {"RELEASED"}, "withProperties": {"true"}, "withIncomingLinks": {"false"}},
			body:   []string{"https://openminds.ebrains.eu/core/Person"},
		},
		{
			name: "types list",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Types().List(ctx, &kg.TypeOptions{Space: "common"}, nil))
			},
			method: http.MethodGet,
			path:   "types",
			query: url.Values{
				"stage": {"RELEASED"}, "space": {"common"},
				"withProperties": {"false"}, "withIncomingLinks": {"false"},
				"from": {"0"}, "size": {"50"}, "returnTotalResults": {"true"},
			},
		},
		{
			name: "space get",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Spaces().Get(ctx, "myspace", true))
			},
			method: http.MethodGet,
			path:   "spaces/myspace",
			query:  url.Values{"permissions": {"true"}},
		},
		{
			name: "space list",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Spaces().List(ctx, false, kg.DefaultPagination().WithSize(5)))
			},
			method: http.MethodGet,
			path:   "spaces",
			query:  url.Values{"permissions": {"false"}, "from": {"0"}, "size": {"5"}, "returnTotalResults": {"true"}},
		},
	})
}

func TestQueries_Requests(t *testing.T) {
	t.Parallel()

	query := kg.JSONLDDocument{"meta": map[string]any{"type": "https://openminds.ebrains.eu/core/Dataset"}}

	runOperationCases(t, []operationCase{
		{
			name: "execute stored query",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Queries().ExecuteQueryByID(ctx, "q1", &kg.QueryOptions{
					InstanceID:              testNamespace + "abc",
					RestrictToSpaces:        []string{"a", "b"},
					AdditionalRequestParams: map[string]string{"name": "smith", "size": "999"},
				}))
			},
			method: http.MethodGet,
			path:   "queries/q1/instances",
			query: url.Values{
				"stage": {"RELEASED"}, "instanceId": {"abc"}, "restrictToSpaces": {"a", "b"}, "name": {"smith"},
				"from": {"0"}, "size": {"50"}, "returnTotalResults": {"true"},
			},
		},
		{
			name: "query specification",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Queries().GetQuerySpecification(ctx, "q1"))
			},
			method: http.MethodGet,
			path:   "queries/q1",
		},
		{
			name: "list per root type",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Queries().ListPerRootType(ctx, "", "https://openminds.ebrains.eu/core/Dataset", nil))
			},
			method: http.MethodGet,
			path:   "queries",
			query: url.Values{
				"type": {"https://openminds.ebrains.eu/core/Dataset"},
				"from": {"0"}, "size": {"50"}, "returnTotalResults": {"true"},
			},
		},
		{
			name: "remove query",
			call: func(ctx context.Context, c *client.Client) error {
				return c.Queries().RemoveQuery(ctx, "q1")
			},
			method: http.MethodDelete,
			path:   "queries/q1",
		},
		{
			name: "save query",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Queries().SaveQuery(ctx, query, "q1", "myspace"))
			},
			method: http.MethodPut,
			path:   "queries/q1",
			query:  url.Values{"space": {"myspace"}},
			body:   query,
		},
		{
			name: "test query",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Queries().TestQuery(ctx, query, &kg.QueryOptions{Stage: kg.StageInProgress}))
			},
			method: http.MethodPost,
			path:   "queries",
			query:  url.Values{"stage": {"IN_PROGRESS"}, "from": {"0"}, "size": {"50"}, "returnTotalResults": {"true"}},
			body:   query,
		},
	})
}

func TestUsersAndJSONLD_Requests(t *testing.T) {
	t.Parallel()

	payload := kg.JSONLDDocument{"name": "x"}

	runOperationCases(t, []operationCase{
		{
			name: "accept terms",
			call: func(ctx context.Context, c *client.Client) error {
				return c.Users().AcceptTermsOfUse(ctx, "v1.2")
			},
			method: http.MethodPost,
			path:   "users/termsOfUse/v1.2/accept",
		},
		{
			name: "openid config",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Users().GetOpenIDConfigURL(ctx))
			},
			method: http.MethodGet,
			path:   "users/authorization/config",
		},
		{
			name: "terms of use",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Users().GetTermsOfUse(ctx))
			},
			method: http.MethodGet,
			path:   "users/termsOfUse",
		},
		{
			name: "me",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.Users().MyInfo(ctx))
			},
			method: http.MethodGet,
			path:   "users/me",
		},
		{
			name: "normalize",
			call: func(ctx context.Context, c *client.Client) error {
				return discard(c.JSONLD().NormalizePayload(ctx, payload))
			},
			method: http.MethodPost,
			path:   "jsonld/normalizedPayload",
			body:   payload,
		},
	})
}

func TestAdmin_Requests(t *testing.T) {
	t.Parallel()

	definition := kg.JSONLDDocument{"https://core.kg.ebrains.eu/vocab/meta/type/label": "Person"}

	runOperationCases(t, []operationCase{
		{
			name:   "assign type",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().AssignTypeToSpace(ctx, "s", "T") },
			method: http.MethodPut, path: "spaces/s/types", query: url.Values{"type": {"T"}},
		},
		{
			name:   "invitation scope",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().CalculateInstanceInvitationScope(ctx, "abc") },
			method: http.MethodPut, path: "instances/abc/invitationScope",
		},
		{
			name: "create space",
			call: func(ctx context.Context, c *client.Client) error {
				return c.Admin().CreateSpaceDefinition(ctx, "s", &kg.SpaceDefinitionOptions{AutoRelease: true})
			},
			method: http.MethodPut, path: "spaces/s/specification",
			query: url.Values{"autorelease": {"true"}, "clientSpace": {"false"}, "deferCache": {"false"}},
		},
		{
			name:   "create type",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().CreateTypeDefinition(ctx, definition, "T", kg.Bool(true)) },
			method: http.MethodPut, path: "types/specification", query: url.Values{"type": {"T"}, "global": {"true"}}, body: definition,
		},
		{
			name:   "define property",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().DefineProperty(ctx, definition, "P", nil) },
			method: http.MethodPut, path: "properties", query: url.Values{"property": {"P"}}, body: definition,
		},
		{
			name:   "define property for type",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().DefinePropertyForType(ctx, definition, "P", "T", nil) },
			method: http.MethodPut, path: "propertiesForType", query: url.Values{"property": {"P"}, "type": {"T"}}, body: definition,
		},
		{
			name:   "deprecate property",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().DeprecateProperty(ctx, "P", kg.Bool(false)) },
			method: http.MethodDelete, path: "properties", query: url.Values{"property": {"P"}, "global": {"false"}},
		},
		{
			name:   "deprecate property for type",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().DeprecatePropertyForType(ctx, "P", "T", nil) },
			method: http.MethodDelete, path: "propertiesForType", query: url.Values{"property": {"P"}, "type": {"T"}},
		},
		{
			name:   "role definitions",
			call:   func(ctx context.Context, c *client.Client) error { return discard(c.Admin().GetAllRoleDefinitions(ctx)) },
			method: http.MethodGet, path: "setup/permissions",
		},
		{
			name:   "claim for role",
			call:   func(ctx context.Context, c *client.Client) error { return discard(c.Admin().GetClaimForRole(ctx, "OWNER", "s")) },
			method: http.MethodGet, path: "setup/permissions/OWNER", query: url.Values{"space": {"s"}},
		},
		{
			name:   "instances with invitations",
			call:   func(ctx context.Context, c *client.Client) error { return discard(c.Admin().ListInstancesWithInvitations(ctx)) },
			method: http.MethodGet, path: "instancesWithInvitations",
		},
		{
			name:   "register terms",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().RegisterTermsOfUse(ctx, definition) },
			method: http.MethodPut, path: "setup/termsOfUse", body: definition,
		},
		{
			name:   "remove space",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().RemoveSpaceDefinition(ctx, "s") },
			method: http.MethodDelete, path: "spaces/s/specification",
		},
		{
			name:   "remove type",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().RemoveTypeDefinition(ctx, "T", nil) },
			method: http.MethodDelete, path: "types/specification", query: url.Values{"type": {"T"}},
		},
		{
			name:   "remove type from space",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().RemoveTypeFromSpace(ctx, "s", "T") },
			method: http.MethodDelete, path: "spaces/s/types", query: url.Values{"type": {"T"}},
		},
		{
			name:   "rerun events",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().RerunEvents(ctx, "s") },
			method: http.MethodPut, path: "spaces/s/eventHistory",
		},
		{
			name:   "trigger inference",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().TriggerInference(ctx, "s", "", true) },
			method: http.MethodPost, path: "spaces/s/inference", query: url.Values{"async": {"true"}},
		},
		{
			name:   "update claim",
			call:   func(ctx context.Context, c *client.Client) error { return c.Admin().UpdateClaimForRole(ctx, definition, true, "OWNER", "") },
			method: http.MethodPatch, path: "setup/permissions/OWNER", query: url.Values{"remove": {"true"}}, body: definition,
		},
	})
}

func TestUsersClient_Decoding(t *testing.T) {
	t.Parallel()

	t.Run("my info", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t, http.StatusOK, map[string]any{
			"data": map[string]any{
				"http://schema.org/name":          "Jane Doe",
				"http://schema.org/alternateName": "jdoe",
				"http://schema.org/email":         "jane@example.org",
				"http://schema.org/identifier":    []any{"u-1", "u-2"},
			},
		})
		c := newTestClient(t, fake)

		res, err := c.Users().MyInfo(context.Background())
		require.NoError(t, err)
		require.NotNil(t, res.Data)
		assert.Equal(t, "Jane Doe", res.Data.Name)
		assert.Equal(t, "jdoe", res.Data.AlternateName)
		assert.Equal(t, []string{"u-1", "u-2"}, res.Data.Identifiers)
	})

	t.Run("terms of use are the content", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t, http.StatusOK, map[string]any{"accepted": true, "version": "1.0", "data": "Be nice"})
		c := newTestClient(t, fake)

		terms, err := c.Users().GetTermsOfUse(context.Background())
		require.NoError(t, err)
		require.NotNil(t, terms)
		assert.True(t, terms.Accepted)
		assert.Equal(t, "1.0", terms.Version)
		assert.Equal(t, "Be nice", terms.Data)
	})

	t.Run("no terms", func(t *testing.T) {
		t.Parallel()

		fake := newFakeKG(t, http.StatusOK, nil)
		c := newTestClient(t, fake)

		terms, err := c.Users().GetTermsOfUse(context.Background())
		require.NoError(t, err)
		assert.Nil(t, terms)
	})
}

func TestSpacesClient_Iterate(t *testing.T) {
	t.Parallel()

	const total = 9

	fake := newFakeKGFunc(t, func(_ http.ResponseWriter, r *http.Request) (int, any) {
		from, _ := strconv.Atoi(r.URL.Query().Get("from"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		data := []any{}
		for i := from; i < from+size && i < total; i++ {
			data = append(data, map[string]any{"http://schema.org/name": "space-" + strconv.Itoa(i)})
		}

		return http.StatusOK, map[string]any{"data": data, "total": total, "from": from, "size": len(data)}
	})
	c := newTestClient(t, fake)

	page, err := c.Spaces().List(context.Background(), false, kg.DefaultPagination().WithSize(3))
	require.NoError(t, err)

	var names []string

	for space, err := range page.Items(context.Background()) {
		require.NoError(t, err)

		names = append(names, space.Name)
	}

	assert.Len(t, names, total)
	assert.Equal(t, "space-0", names[0])
	assert.Equal(t, "space-8", names[8])
	assert.Equal(t, 3, fake.count())
}
