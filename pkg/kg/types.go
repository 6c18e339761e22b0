package kg

import (
	"encoding/json"
	"strings"

	"github.com/fivetwenty-io/kg-client/internal/constants"
)

// Stage selects between the released and the in-progress view of the graph.
type Stage string

// Stages known to the KG.
const (
	StageReleased   Stage = "RELEASED"
	StageInProgress Stage = "IN_PROGRESS"
)

func (s Stage) String() string { return string(s) }

// ParseStage parses a stage name case-insensitively.
func ParseStage(value string) (Stage, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", string(StageReleased):
		return StageReleased, nil
	case string(StageInProgress):
		return StageInProgress, nil
	default:
		return "", constants.ErrInvalidStage
	}
}

// ReleaseTreeScope selects whether a release status covers children too.
type ReleaseTreeScope string

// Release tree scopes.
const (
	ReleaseTreeScopeTopInstanceOnly ReleaseTreeScope = "TOP_INSTANCE_ONLY"
	ReleaseTreeScopeChildrenOnly    ReleaseTreeScope = "CHILDREN_ONLY"
)

func (s ReleaseTreeScope) String() string { return string(s) }

// ReleaseStatus is the release state of an instance.
type ReleaseStatus string

// Release states.
const (
	ReleaseStatusReleased   ReleaseStatus = "RELEASED"
	ReleaseStatusUnreleased ReleaseStatus = "UNRELEASED"
	ReleaseStatusHasChanged ReleaseStatus = "HAS_CHANGED"
)

func (s ReleaseStatus) String() string { return string(s) }

// Pagination describes the window requested from a paginated endpoint.
type Pagination struct {
	Start              int
	Size               int
	ReturnTotalResults bool
}

// DefaultPagination returns the first window of 50 items with totals.
func DefaultPagination() *Pagination {
	return &Pagination{
		Start:              constants.DefaultStartFrom,
		Size:               constants.DefaultPageSize,
		ReturnTotalResults: true,
	}
}

// WithStart sets the window offset.
func (p *Pagination) WithStart(start int) *Pagination {
	p.Start = start

	return p
}

// WithSize sets the window size.
func (p *Pagination) WithSize(size int) *Pagination {
	p.Size = size

	return p
}

// WithoutTotalResults disables the total count, which is expensive on large types.
func (p *Pagination) WithoutTotalResults() *Pagination {
	p.ReturnTotalResults = false

	return p
}

// ResponseConfiguration controls optional projections of returned documents.
// Nil flags are not sent and the server default applies.
type ResponseConfiguration struct {
	ReturnPayload      *bool
	ReturnPermissions  *bool
	ReturnAlternatives *bool
	ReturnEmbedded     *bool
}

// ExtendedResponseConfiguration adds incoming link projections for single instances.
type ExtendedResponseConfiguration struct {
	ResponseConfiguration

	ReturnIncomingLinks   *bool
	IncomingLinksPageSize *int
}

// GetInstanceOptions configures reads of one or more instances.
type GetInstanceOptions struct {
	Stage    Stage
	Response *ExtendedResponseConfiguration
}

// ListInstancesOptions configures Instances.List.
type ListInstancesOptions struct {
	Stage          Stage
	Space          string
	SearchByLabel  string
	FilterProperty string
	FilterValue    string
	Response       *ResponseConfiguration
	Pagination     *Pagination
}

// IncomingLinksOptions configures Instances.GetIncomingLinks.
type IncomingLinksOptions struct {
	Stage      Stage
	Pagination *Pagination
}

// ScopeOptions configures Instances.GetScope.
type ScopeOptions struct {
	Stage             Stage
	ReturnPermissions bool
	ApplyRestrictions bool
}

// TypeOptions configures type listings.
type TypeOptions struct {
	Stage             Stage
	Space             string
	WithIncomingLinks bool
	WithProperties    bool
}

// QueryOptions configures query execution.
type QueryOptions struct {
	Stage            Stage
	InstanceID       string
	RestrictToSpaces []string
	// AdditionalRequestParams are passed through as individual query parameters
	// and feed the parameters declared in the query specification.
	AdditionalRequestParams map[string]string
	Pagination              *Pagination
}

// SpaceDefinitionOptions configures Admin.CreateSpaceDefinition.
type SpaceDefinitionOptions struct {
	AutoRelease bool
	ClientSpace bool
	DeferCache  bool
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// JSONLDDocument is a raw JSON-LD document keyed by (usually fully qualified) property names.
type JSONLDDocument map[string]any

// ID returns the @id of the document or "".
func (d JSONLDDocument) ID() string {
	id, _ := d["@id"].(string)

	return id
}

// Instance is a JSON-LD document representing one graph node.
type Instance struct {
	Document JSONLDDocument
	// InstanceID is the fully qualified @id.
	InstanceID string
	// UUID is the short identifier derived from InstanceID, empty when
	// the identifier is not under the configured namespace.
	UUID string
}

// Get returns a property of the underlying document.
func (i Instance) Get(key string) any {
	return i.Document[key]
}

// MarshalJSON emits the underlying document.
func (i Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Document)
}

// MarshalYAML emits the underlying document.
func (i Instance) MarshalYAML() (interface{}, error) {
	return map[string]any(i.Document), nil
}

// Scope is the tree of instances reachable from an instance.
type Scope struct {
	UUID        string   `mapstructure:"id"          json:"id"                    yaml:"id"`
	Label       string   `mapstructure:"label"       json:"label,omitempty"       yaml:"label,omitempty"`
	Space       string   `mapstructure:"space"       json:"space,omitempty"       yaml:"space,omitempty"`
	Types       []string `mapstructure:"types"       json:"types,omitempty"       yaml:"types,omitempty"`
	Children    []Scope  `mapstructure:"children"    json:"children,omitempty"    yaml:"children,omitempty"`
	Permissions []string `mapstructure:"permissions" json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// SpaceInformation describes a space.
type SpaceInformation struct {
	Identifier  string   `mapstructure:"http://schema.org/identifier"                     json:"identifier"            yaml:"identifier"`
	Name        string   `mapstructure:"http://schema.org/name"                           json:"name"                  yaml:"name"`
	Permissions []string `mapstructure:"https://core.kg.ebrains.eu/vocab/meta/permissions" json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// TypeInformation describes a type.
type TypeInformation struct {
	Identifier  string `mapstructure:"http://schema.org/identifier"                     json:"identifier"            yaml:"identifier"`
	Description string `mapstructure:"http://schema.org/description"                    json:"description,omitempty" yaml:"description,omitempty"`
	Name        string `mapstructure:"http://schema.org/name"                           json:"name"                  yaml:"name"`
	Occurrences int    `mapstructure:"https://core.kg.ebrains.eu/vocab/meta/occurrences" json:"occurrences"           yaml:"occurrences"`
}

// User is the authenticated user.
type User struct {
	AlternateName string   `mapstructure:"http://schema.org/alternateName" json:"alternateName" yaml:"alternateName"`
	Name          string   `mapstructure:"http://schema.org/name"          json:"name"          yaml:"name"`
	Email         string   `mapstructure:"http://schema.org/email"         json:"email"         yaml:"email"`
	GivenName     string   `mapstructure:"http://schema.org/givenName"     json:"givenName"     yaml:"givenName"`
	FamilyName    string   `mapstructure:"http://schema.org/familyName"    json:"familyName"    yaml:"familyName"`
	Identifiers   []string `mapstructure:"http://schema.org/identifier"    json:"identifiers"   yaml:"identifiers"`
}

// ReducedUserInformation is the public view of a user, e.g. in invitations.
type ReducedUserInformation struct {
	AlternateName string `mapstructure:"http://schema.org/alternateName" json:"alternateName" yaml:"alternateName"`
	Name          string `mapstructure:"http://schema.org/name"          json:"name"          yaml:"name"`
	UUID          string `mapstructure:"@id"                             json:"id"            yaml:"id"`
}

// TermsOfUse is the current terms of use and whether the user accepted them.
type TermsOfUse struct {
	Accepted bool   `mapstructure:"accepted" json:"accepted" yaml:"accepted"`
	Version  string `mapstructure:"version"  json:"version"  yaml:"version"`
	Data     string `mapstructure:"data"     json:"data"     yaml:"data"`
}
