package kg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ToUUID returns the last path segment of iri when it lies under namespace,
// and "" otherwise.
func ToUUID(iri, namespace string) string {
	if namespace == "" || iri == "" || !strings.HasPrefix(iri, namespace) {
		return ""
	}

	return iri[strings.LastIndex(iri, "/")+1:]
}

// UUIDFromAbsoluteID parses an instance identifier given either as a bare
// UUID or as an IRI under namespace.
func UUIDFromAbsoluteID(identifier, namespace string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimPrefix(identifier, namespace))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing instance identifier %q: %w", identifier, err)
	}

	return id, nil
}

// AbsoluteID returns the fully qualified identifier of id under namespace.
func AbsoluteID(id uuid.UUID, namespace string) string {
	return namespace + id.String()
}
