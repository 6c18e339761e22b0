package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/kg-client/internal/constants"
	"github.com/fivetwenty-io/kg-client/pkg/kg"
	"github.com/hashicorp/go-retryablehttp"
)

// Client sends authenticated requests against the versioned KG API root.
//
// Every call issues exactly one request, plus one resend after a 401 once
// both token providers have been force-refreshed. Status codes never trigger
// transport retries; connection failures are retried up to RetryMax times.
type Client struct {
	baseURL             string
	tokenProvider       kg.TokenProvider
	clientTokenProvider kg.TokenProvider
	idNamespace         string
	httpClient          *retryablehttp.Client
	logger              kg.Logger
	debug               bool
	userAgent           string
	interceptors        *kg.InterceptorChain
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger kg.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures retries on connection failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithClientTokenProvider sets the provider for the Client-Authorization header.
func WithClientTokenProvider(provider kg.TokenProvider) Option {
	return func(c *Client) {
		c.clientTokenProvider = provider
	}
}

// WithIDNamespace sets the namespace copied into every ResponseContext.
func WithIDNamespace(namespace string) Option {
	return func(c *Client) {
		c.idNamespace = namespace
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *kg.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client. baseURL is the versioned API root,
// e.g. https://core.kg.ebrains.eu/v3-beta/.
func NewClient(baseURL string, tokenProvider kg.TokenProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = retryConnectionErrors
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/") + "/",
		tokenProvider: tokenProvider,
		idNamespace:   constants.DefaultIDNamespace,
		httpClient:    retryClient,
		userAgent:     constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the versioned API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IDNamespace returns the identifier namespace.
func (c *Client) IDNamespace() string {
	return c.idNamespace
}

// Execute implements kg.Executor.
func (c *Client) Execute(ctx context.Context, req *kg.Request) *kg.ResponseContext {
	req = req.Clone()

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
		if err != nil {
			return kg.NewResponseContext(nil, req, 0, c.idNamespace, err, c)
		}
	}

	token := fetchToken(ctx, c.tokenProvider, false)
	clientToken := fetchToken(ctx, c.clientTokenProvider, false)

	statusCode, content, err := c.send(ctx, req, token, clientToken)
	if err == nil && statusCode == http.StatusUnauthorized {
		c.logDebug("Refreshing tokens after 401", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		token = fetchToken(ctx, c.tokenProvider, true)
		clientToken = fetchToken(ctx, c.clientTokenProvider, true)
		statusCode, content, err = c.send(ctx, req, token, clientToken)
	}

	rc := kg.NewResponseContext(content, req, statusCode, c.idNamespace, err, c)

	if c.interceptors != nil {
		interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, req, rc)
		if interceptErr != nil && c.logger != nil {
			c.logger.Warn("Response interceptor failed", map[string]interface{}{
				"path":  req.Path,
				"error": interceptErr.Error(),
			})
		}
	}

	return rc
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params kg.Params) *kg.ResponseContext {
	return c.Execute(ctx, &kg.Request{Method: http.MethodGet, Path: path, Params: params})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, payload any, params kg.Params) *kg.ResponseContext {
	return c.Execute(ctx, &kg.Request{Method: http.MethodPost, Path: path, Payload: payload, Params: params})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, payload any, params kg.Params) *kg.ResponseContext {
	return c.Execute(ctx, &kg.Request{Method: http.MethodPut, Path: path, Payload: payload, Params: params})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, payload any, params kg.Params) *kg.ResponseContext {
	return c.Execute(ctx, &kg.Request{Method: http.MethodPatch, Path: path, Payload: payload, Params: params})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params kg.Params) *kg.ResponseContext {
	return c.Execute(ctx, &kg.Request{Method: http.MethodDelete, Path: path, Params: params})
}

// send issues one request. A response whose body is not a JSON object yields nil content.
func (c *Client) send(ctx context.Context, req *kg.Request, token, clientToken string) (int, map[string]any, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return 0, nil, err
	}

	var body interface{}

	if req.Payload != nil {
		data, err := json.Marshal(req.Payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Payload != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	if token != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	if clientToken != "" {
		httpReq.Header.Set(constants.HeaderClientAuthorization, constants.BearerPrefix+clientToken)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    target,
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logDebug("Failed to read response body", map[string]interface{}{
			"url":   target,
			"error": err.Error(),
		})
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"status": resp.StatusCode,
		"url":    target,
	})

	return resp.StatusCode, parseContent(data), nil
}

func (c *Client) buildURL(req *kg.Request) (string, error) {
	target := c.baseURL + strings.TrimPrefix(req.Path, "/")

	query, err := EncodeParams(req.Params)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func parseContent(data []byte) map[string]any {
	var content map[string]any

	err := json.Unmarshal(data, &content)
	if err != nil {
		return nil
	}

	return content
}

func fetchToken(ctx context.Context, provider kg.TokenProvider, forceRefresh bool) string {
	if provider == nil {
		return ""
	}

	return provider.FetchToken(ctx, forceRefresh)
}

// retryConnectionErrors retries failed connections only. Responses are
// always handed back to the caller whatever their status.
func retryConnectionErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err == nil {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// EncodeParams turns query params into url.Values. Nil values are omitted,
// string slices become repeated keys and anything that is not a scalar is
// sent as JSON.
func EncodeParams(params kg.Params) (url.Values, error) {
	values := url.Values{}

	for key, raw := range params {
		encoded, ok, err := encodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("encoding query parameter %q: %w", key, err)
		}

		if !ok {
			continue
		}

		values[key] = encoded
	}

	return values, nil
}

func encodeValue(raw any) ([]string, bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, false, nil
	case string:
		return []string{v}, true, nil
	case bool:
		return []string{fmt.Sprint(v)}, true, nil
	case int, int64, int32, float64:
		return []string{fmt.Sprint(v)}, true, nil
	case *string:
		if v == nil {
			return nil, false, nil
		}

		return []string{*v}, true, nil
	case *bool:
		if v == nil {
			return nil, false, nil
		}

		return []string{fmt.Sprint(*v)}, true, nil
	case *int:
		if v == nil {
			return nil, false, nil
		}

		return []string{fmt.Sprint(*v)}, true, nil
	case []string:
		if v == nil {
			return nil, false, nil
		}

		return v, true, nil
	case fmt.Stringer:
		return []string{v.String()}, true, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", constants.ErrUnsupportedQueryValue, err)
		}

		if string(data) == "null" {
			return nil, false, nil
		}

		return []string{string(data)}, true, nil
	}
}

// leveledLogger bridges retryablehttp's logging onto kg.Logger.
type leveledLogger struct {
	logger kg.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
