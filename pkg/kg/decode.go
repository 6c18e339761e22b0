package kg

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decoder turns one raw JSON fragment of a response into a T. The namespace
// is the client's identifier namespace; decoders that do not derive short
// identifiers ignore it.
type Decoder[T any] func(raw any, namespace string) (T, error)

var releaseStatuses = map[string]ReleaseStatus{
	string(ReleaseStatusReleased):   ReleaseStatusReleased,
	string(ReleaseStatusUnreleased): ReleaseStatusUnreleased,
	string(ReleaseStatusHasChanged): ReleaseStatusHasChanged,
}

// DecodeJSONLD keeps the fragment as a raw JSON-LD document.
func DecodeJSONLD(raw any, _ string) (JSONLDDocument, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrUnexpectedShape, raw)
	}

	return JSONLDDocument(fields), nil
}

// DecodeInstance decodes a JSON-LD document and derives its UUID from the namespace.
func DecodeInstance(raw any, namespace string) (Instance, error) {
	doc, err := DecodeJSONLD(raw, namespace)
	if err != nil {
		return Instance{}, err
	}

	id := doc.ID()

	return Instance{
		Document:   doc,
		InstanceID: id,
		UUID:       ToUUID(id, namespace),
	}, nil
}

// DecodeReleaseStatus looks the release status up by value.
func DecodeReleaseStatus(raw any, _ string) (ReleaseStatus, error) {
	value, _ := raw.(string)

	status, ok := releaseStatuses[value]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownReleaseStatus, raw)
	}

	return status, nil
}

// DecodeString accepts a plain string fragment.
func DecodeString(raw any, _ string) (string, error) {
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrUnexpectedShape, raw)
	}

	return value, nil
}

// DecodeModel decodes the fragment into T using its mapstructure tags.
func DecodeModel[T any](raw any, _ string) (T, error) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(raw)
	if err != nil {
		return out, fmt.Errorf("decoding %T: %w", out, err)
	}

	return out, nil
}

// DecodeList lifts an item decoder to a decoder of JSON arrays.
func DecodeList[T any](item Decoder[T]) Decoder[[]T] {
	return func(raw any, namespace string) ([]T, error) {
		values, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected array, got %T", ErrUnexpectedShape, raw)
		}

		items := make([]T, 0, len(values))

		for i, value := range values {
			decoded, err := item(value, namespace)
			if err != nil {
				return nil, fmt.Errorf("decoding item %d: %w", i, err)
			}

			items = append(items, decoded)
		}

		return items, nil
	}
}

// isFalsy mirrors the envelope convention where a missing, null, false, zero
// or empty string data field means no data.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case json.Number:
		return v.String() == "0"
	case string:
		return v == ""
	default:
		return false
	}
}

func intField(fields map[string]any, key string) (int, bool) {
	value, ok := int64Field(fields, key)

	return int(value), ok
}

func int64Field(fields map[string]any, key string) (int64, bool) {
	switch v := fields[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()

		return n, err == nil
	default:
		return 0, false
	}
}

func intPtrField(fields map[string]any, key string) *int {
	value, ok := intField(fields, key)
	if !ok {
		return nil
	}

	return &value
}

func int64PtrField(fields map[string]any, key string) *int64 {
	value, ok := int64Field(fields, key)
	if !ok {
		return nil
	}

	return &value
}
