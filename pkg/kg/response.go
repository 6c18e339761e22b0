package kg

import (
	"context"
	"maps"
	"net/http"
)

// Params holds query parameters before encoding. Nil values are dropped by
// the executor, so optional arguments can be set unconditionally.
type Params map[string]any

// Clone returns a copy of p that can be modified independently.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}

	return maps.Clone(p)
}

// Request describes one call relative to the versioned API root. It never
// carries authentication headers, so it can be stored and replayed.
type Request struct {
	Method  string
	Path    string
	Params  Params
	Payload any
	Headers http.Header
}

// Clone returns a copy with independent params and headers. The payload is shared.
func (r *Request) Clone() *Request {
	clone := *r
	clone.Params = r.Params.Clone()

	if r.Headers != nil {
		clone.Headers = r.Headers.Clone()
	}

	return &clone
}

// ResponseContext wraps one HTTP round trip together with the request that
// produced it.
type ResponseContext struct {
	// Content is the parsed JSON object body, nil when the body is empty or not a JSON object.
	Content map[string]any
	// Request echoes the request arguments.
	Request *Request
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// IDNamespace is the identifier namespace of the client.
	IDNamespace string
	// Err is the transport failure, if any.
	Err error

	executor Executor
}

// NewResponseContext is used by executors to report a round trip.
func NewResponseContext(content map[string]any, req *Request, statusCode int, namespace string, err error, executor Executor) *ResponseContext {
	return &ResponseContext{
		Content:     content,
		Request:     req,
		StatusCode:  statusCode,
		IDNamespace: namespace,
		Err:         err,
		executor:    executor,
	}
}

// NextPage re-issues the request for the window following the given one.
func (r *ResponseContext) NextPage(ctx context.Context, originalStartFrom, originalSize int) *ResponseContext {
	req := r.Request.Clone()
	req.Params["from"] = originalStartFrom + originalSize
	req.Params["size"] = originalSize

	return r.executor.Execute(ctx, req)
}

// CopyContext returns a sibling context carrying different content. Non-object
// content becomes nil.
func (r *ResponseContext) CopyContext(content any) *ResponseContext {
	fields, _ := content.(map[string]any)

	return &ResponseContext{
		Content:     fields,
		Request:     r.Request,
		StatusCode:  r.StatusCode,
		IDNamespace: r.IDNamespace,
		Err:         r.Err,
		executor:    r.executor,
	}
}

// CanReplay reports whether the context can fetch follow-up pages.
func (r *ResponseContext) CanReplay() bool {
	return r != nil && r.executor != nil && r.Request != nil
}
