package kg

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Metadata is shared by every result shape.
type Metadata struct {
	Message       string
	StartTime     *int64
	DurationInMs  *int64
	TransactionID *int64
	// Error is set when the response signals a failure. Data is empty whenever Error is set.
	Error *KGError
}

func newMetadata(rc *ResponseContext) Metadata {
	meta := Metadata{Error: TranslateError(rc)}
	if rc == nil {
		return meta
	}

	meta.Message, _ = rc.Content["message"].(string)
	meta.StartTime = int64PtrField(rc.Content, "startTime")
	meta.DurationInMs = int64PtrField(rc.Content, "durationInMs")
	meta.TransactionID = int64PtrField(rc.Content, "transactionId")

	return meta
}

// Err returns Error as an error value, or nil on success.
func (m *Metadata) Err() error {
	if m.Error == nil {
		return nil
	}

	return m.Error
}

// IsSuccessful reports whether the response carried no error.
func (m *Metadata) IsSuccessful() bool {
	return m.Error == nil
}

func decodeFailure(rc *ResponseContext, err error) *KGError {
	return &KGError{
		Code:      rc.StatusCode,
		Message:   fmt.Sprintf("decoding response: %v", err),
		Namespace: rc.IDNamespace,
	}
}

// Result is a single typed result.
type Result[T any] struct {
	Metadata

	// Data is nil when the response has no data or failed.
	Data *T
}

// NewResult decodes the data field of rc with decode.
func NewResult[T any](rc *ResponseContext, decode Decoder[T]) *Result[T] {
	res := &Result[T]{Metadata: newMetadata(rc)}
	if res.Error != nil || rc == nil {
		return res
	}

	raw, ok := rc.Content["data"]
	if !ok || isFalsy(raw) {
		return res
	}

	value, err := decode(raw, rc.IDNamespace)
	if err != nil {
		res.Error = decodeFailure(rc, err)

		return res
	}

	res.Data = &value

	return res
}

// ResultPage is one window of a paginated result.
type ResultPage[T any] struct {
	Metadata

	Data []T
	// Total is the number of items across all pages, nil when not reported.
	Total *int
	// Size is the size of this window, nil when not reported.
	Size *int
	// StartFrom is the offset of this window, nil when not reported.
	StartFrom *int

	rc     *ResponseContext
	decode Decoder[T]
}

// NewResultPage decodes the data array of rc with decode.
func NewResultPage[T any](rc *ResponseContext, decode Decoder[T]) *ResultPage[T] {
	page := &ResultPage[T]{
		Metadata: newMetadata(rc),
		rc:       rc,
		decode:   decode,
	}
	if rc == nil {
		return page
	}

	page.Total = intPtrField(rc.Content, "total")
	page.Size = intPtrField(rc.Content, "size")
	page.StartFrom = intPtrField(rc.Content, "from")

	if page.Error != nil {
		return page
	}

	raw, ok := rc.Content["data"]
	if !ok || isFalsy(raw) {
		return page
	}

	items, err := DecodeList(decode)(raw, rc.IDNamespace)
	if err != nil {
		page.Error = decodeFailure(rc, err)

		return page
	}

	page.Data = items

	return page
}

// HasNextPage reports whether another window exists. known is false when the
// server did not report a total, in which case hasNext is meaningless.
func (p *ResultPage[T]) HasNextPage() (hasNext, known bool) {
	if p.Total == nil || *p.Total == 0 {
		return false, false
	}

	if p.StartFrom == nil || p.Size == nil {
		return false, true
	}

	return *p.StartFrom+*p.Size < *p.Total, true
}

// NextPage fetches the following window. It returns nil without error when
// there is none. When the total is unknown the next window is requested and
// nil is returned if it comes back empty.
func (p *ResultPage[T]) NextPage(ctx context.Context) (*ResultPage[T], error) {
	if p.Error != nil {
		return nil, p.Error
	}

	hasNext, known := p.HasNextPage()
	if known && !hasNext {
		return nil, nil
	}

	if !p.rc.CanReplay() {
		return nil, nil
	}

	from, size := p.window()
	if size <= 0 {
		return nil, nil
	}

	next := NewResultPage(p.rc.NextPage(ctx, from, size), p.decode)
	if !known && next.Error == nil && len(next.Data) == 0 {
		return nil, nil
	}

	return next, next.Err()
}

// window returns the offset and size of this page, falling back to the number
// of items when the server omits them.
func (p *ResultPage[T]) window() (int, int) {
	from := 0
	if p.StartFrom != nil {
		from = *p.StartFrom
	}

	size := len(p.Data)
	if p.Size != nil {
		size = *p.Size
	}

	return from, size
}

// requestedSize returns the size sent with the request that produced this
// page, falling back to the reported window size.
func (p *ResultPage[T]) requestedSize() int {
	if p.rc != nil && p.rc.Request != nil {
		if size, ok := intField(p.rc.Request.Params, "size"); ok {
			return size
		}
	}

	_, size := p.window()

	return size
}

// Iterator returns a lazy iterator over this page and all following pages.
func (p *ResultPage[T]) Iterator(ctx context.Context) *PageIterator[T] {
	return NewPageIterator(ctx, p)
}

// Items ranges over this page and all following pages. Iteration stops after
// the first error, which is yielded together with a zero T.
func (p *ResultPage[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := NewPageIterator(ctx, p)

		for it.HasNext() {
			item, err := it.Next()
			if errors.Is(err, ErrNoMoreItems) {
				return
			}

			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// ResultsByID maps requested identifiers to their individual results.
type ResultsByID[T any] struct {
	Metadata

	// Data is nil when the response failed as a whole.
	Data map[string]*Result[T]
}

// NewResultsByID splits the data object of rc into one Result per key.
func NewResultsByID[T any](rc *ResponseContext, decode Decoder[T]) *ResultsByID[T] {
	res := &ResultsByID[T]{Metadata: newMetadata(rc)}
	if res.Error != nil || rc == nil {
		return res
	}

	raw, ok := rc.Content["data"]
	if !ok || isFalsy(raw) {
		return res
	}

	entries, ok := raw.(map[string]any)
	if !ok {
		res.Error = decodeFailure(rc, fmt.Errorf("%w: expected object, got %T", ErrUnexpectedShape, raw))

		return res
	}

	res.Data = make(map[string]*Result[T], len(entries))
	for key, entry := range entries {
		res.Data[key] = NewResult(rc.CopyContext(entry), decode)
	}

	return res
}

// Get returns the result for id, or nil if the server did not return it.
func (r *ResultsByID[T]) Get(id string) *Result[T] {
	return r.Data[id]
}
