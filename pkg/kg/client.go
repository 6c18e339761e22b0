package kg

import (
	"context"
	"time"
)

// Client is the main interface for the KG core API.
type Client interface {
	// Instances returns the instances client.
	Instances() InstancesClient

	// Types returns the types client.
	Types() TypesClient

	// Spaces returns the spaces client.
	Spaces() SpacesClient

	// Queries returns the queries client.
	Queries() QueriesClient

	// Users returns the users client.
	Users() UsersClient

	// JSONLD returns the JSON-LD helper client.
	JSONLD() JSONLDClient

	// Admin returns the administration client. Most operations require admin rights.
	Admin() AdminClient

	// BaseURL returns the versioned API root the client talks to.
	BaseURL() string
}

// InstancesClient defines operations on KG instances.
type InstancesClient interface {
	ContributeToFullReplacement(ctx context.Context, payload JSONLDDocument, instanceID string, cfg *ExtendedResponseConfiguration) (*Result[Instance], error)
	ContributeToPartialReplacement(ctx context.Context, payload JSONLDDocument, instanceID string, cfg *ExtendedResponseConfiguration) (*Result[Instance], error)
	CreateNew(ctx context.Context, payload JSONLDDocument, space string, cfg *ExtendedResponseConfiguration) (*Result[Instance], error)
	CreateNewWithID(ctx context.Context, payload JSONLDDocument, instanceID, space string, cfg *ExtendedResponseConfiguration) (*Result[Instance], error)
	Delete(ctx context.Context, instanceID string) error
	GetByID(ctx context.Context, instanceID string, opts *GetInstanceOptions) (*Result[Instance], error)
	GetByIdentifiers(ctx context.Context, identifiers []string, opts *GetInstanceOptions) (*ResultsByID[Instance], error)
	GetByIDs(ctx context.Context, instanceIDs []string, opts *GetInstanceOptions) (*ResultsByID[Instance], error)
	GetIncomingLinks(ctx context.Context, instanceID, property, targetType string, opts *IncomingLinksOptions) (*ResultPage[Instance], error)
	GetReleaseStatus(ctx context.Context, instanceID string, scope ReleaseTreeScope) (*Result[ReleaseStatus], error)
	GetReleaseStatusByIDs(ctx context.Context, instanceIDs []string, scope ReleaseTreeScope) (*ResultsByID[ReleaseStatus], error)
	GetScope(ctx context.Context, instanceID string, opts *ScopeOptions) (*Result[Scope], error)
	InviteUserFor(ctx context.Context, instanceID, userID string) error
	List(ctx context.Context, targetType string, opts *ListInstancesOptions) (*ResultPage[Instance], error)
	ListInvitations(ctx context.Context, instanceID string) (*Result[[]ReducedUserInformation], error)
	Move(ctx context.Context, instanceID, space string, cfg *ExtendedResponseConfiguration) (*Result[Instance], error)
	Release(ctx context.Context, instanceID, revision string) error
	RevokeUserInvitation(ctx context.Context, instanceID, userID string) error
	Unrelease(ctx context.Context, instanceID string) error
}

// TypesClient defines operations on types.
type TypesClient interface {
	GetByName(ctx context.Context, typeNames []string, opts *TypeOptions) (*ResultsByID[TypeInformation], error)
	List(ctx context.Context, opts *TypeOptions, pagination *Pagination) (*ResultPage[TypeInformation], error)
}

// SpacesClient defines operations on spaces.
type SpacesClient interface {
	Get(ctx context.Context, space string, permissions bool) (*Result[SpaceInformation], error)
	List(ctx context.Context, permissions bool, pagination *Pagination) (*ResultPage[SpaceInformation], error)
}

// QueriesClient defines operations on stored and ad-hoc queries.
type QueriesClient interface {
	ExecuteQueryByID(ctx context.Context, queryID string, opts *QueryOptions) (*ResultPage[JSONLDDocument], error)
	GetQuerySpecification(ctx context.Context, queryID string) (*Result[Instance], error)
	ListPerRootType(ctx context.Context, search, targetType string, pagination *Pagination) (*ResultPage[Instance], error)
	RemoveQuery(ctx context.Context, queryID string) error
	SaveQuery(ctx context.Context, payload JSONLDDocument, queryID, space string) (*Result[Instance], error)
	TestQuery(ctx context.Context, payload JSONLDDocument, opts *QueryOptions) (*ResultPage[JSONLDDocument], error)
}

// UsersClient defines operations on the authenticated user.
type UsersClient interface {
	AcceptTermsOfUse(ctx context.Context, version string) error
	GetOpenIDConfigURL(ctx context.Context) (*Result[JSONLDDocument], error)
	GetTermsOfUse(ctx context.Context) (*TermsOfUse, error)
	MyInfo(ctx context.Context) (*Result[User], error)
}

// JSONLDClient exposes JSON-LD utilities of the KG.
type JSONLDClient interface {
	NormalizePayload(ctx context.Context, payload JSONLDDocument) (*Result[JSONLDDocument], error)
}

// AdminClient defines administrative operations.
type AdminClient interface {
	AssignTypeToSpace(ctx context.Context, space, targetType string) error
	CalculateInstanceInvitationScope(ctx context.Context, instanceID string) error
	CreateSpaceDefinition(ctx context.Context, space string, opts *SpaceDefinitionOptions) error
	CreateTypeDefinition(ctx context.Context, payload JSONLDDocument, targetType string, global *bool) error
	DefineProperty(ctx context.Context, payload JSONLDDocument, property string, global *bool) error
	DefinePropertyForType(ctx context.Context, payload JSONLDDocument, property, targetType string, global *bool) error
	DeprecateProperty(ctx context.Context, property string, global *bool) error
	DeprecatePropertyForType(ctx context.Context, property, targetType string, global *bool) error
	GetAllRoleDefinitions(ctx context.Context) (*Result[JSONLDDocument], error)
	GetClaimForRole(ctx context.Context, role, space string) (*Result[JSONLDDocument], error)
	ListInstancesWithInvitations(ctx context.Context) (*Result[[]string], error)
	RegisterTermsOfUse(ctx context.Context, payload JSONLDDocument) error
	RemoveSpaceDefinition(ctx context.Context, space string) error
	RemoveTypeDefinition(ctx context.Context, targetType string, global *bool) error
	RemoveTypeFromSpace(ctx context.Context, space, targetType string) error
	RerunEvents(ctx context.Context, space string) error
	TriggerInference(ctx context.Context, space, identifier string, async bool) error
	UpdateClaimForRole(ctx context.Context, payload JSONLDDocument, remove bool, role, space string) error
}

// TokenProvider supplies bearer tokens on demand.
//
// FetchToken returns the cached token unless forceRefresh is set, in which case
// a fresh token is obtained. An empty string means no token is available; the
// request then proceeds unauthenticated. Implementations never return errors.
//
// DefineEndpoint gives the provider the KG API root so it can discover its
// token endpoint. It is called once per client construction and is a no-op
// once an endpoint has been resolved.
type TokenProvider interface {
	FetchToken(ctx context.Context, forceRefresh bool) string
	DefineEndpoint(ctx context.Context, kgEndpoint string)
}

// TokenFunc adapts a plain function to a TokenProvider without caching or discovery.
type TokenFunc func(ctx context.Context, forceRefresh bool) string

// FetchToken calls f.
func (f TokenFunc) FetchToken(ctx context.Context, forceRefresh bool) string {
	return f(ctx, forceRefresh)
}

// DefineEndpoint is a no-op.
func (f TokenFunc) DefineEndpoint(context.Context, string) {}

// Executor sends one request and wraps the outcome in a ResponseContext.
type Executor interface {
	Execute(ctx context.Context, req *Request) *ResponseContext
}

// Logger interface for client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a kg.Client.
//
// # Authentication
//
// TokenProvider authenticates the user and is sent as the Authorization
// header. ClientTokenProvider optionally authenticates a service account on
// behalf of which the user acts and is sent as the Client-Authorization
// header. kgclient offers constructors for the common providers.
//
// # Example
//
//	cfg := &kg.Config{
//	    Host:          "core.kg.ebrains.eu",
//	    TokenProvider: kgclient.StaticToken(os.Getenv("KG_TOKEN")),
//	}
//	client, err := kgclient.New(ctx, cfg)
type Config struct {
	// Host is the KG core host, e.g. "core.kg.ebrains.eu" or "localhost:8000".
	// A full URL is accepted as well; the versioned base URL is derived from it.
	Host string

	// TokenProvider supplies the user token. Optional.
	TokenProvider TokenProvider
	// ClientTokenProvider supplies the service account token. Optional.
	ClientTokenProvider TokenProvider

	// IDNamespace is the prefix stripped from instance IRIs to obtain UUIDs.
	// Defaults to https://kg.ebrains.eu/api/instances/.
	IDNamespace string
	// Stage is the default stage for read operations. Defaults to RELEASED.
	Stage Stage

	// HTTPTimeout bounds every HTTP round trip. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries on connection failures. Responses are
	// never retried based on their status code except for one retry after a 401.
	RetryMax int
	// RetryWaitMin is the minimum backoff between connection retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between connection retries.
	RetryWaitMax time.Duration

	// Debug enables request and response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}
