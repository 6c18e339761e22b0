package kg

import (
	"errors"
	"fmt"
	"net/http"
)

// KGError is the single failure carried by a KG response.
type KGError struct {
	// Code is the HTTP status of the response. It is 0 for transport failures.
	Code int `json:"code" yaml:"code"`
	// Message is the server message or the reason phrase of Code.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// InstanceID is the identifier of the instance the error refers to, if any.
	InstanceID string `json:"instanceId,omitempty" yaml:"instanceId,omitempty"`
	// Namespace is the identifier namespace of the client that received the error.
	Namespace string `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *KGError) Error() string {
	if e.InstanceID != "" {
		return fmt.Sprintf("KG error %d: %s (instance: %s)", e.Code, e.Message, e.InstanceID)
	}

	return fmt.Sprintf("KG error %d: %s", e.Code, e.Message)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrNoMoreItems    = errors.New("no more items")
	ErrNilPage        = errors.New("page is nil")

	ErrUnexpectedShape      = errors.New("unexpected response shape")
	ErrUnknownReleaseStatus = errors.New("unknown release status")
)

// statusText covers the standard codes plus the non-standard ones seen behind
// proxies and load balancers in front of the KG.
var statusText = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	420: "Method Failure",
	421: "Misdirected Request",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	440: "Login Time-out",
	444: "No Response",
	449: "Retry With",
	450: "Blocked by Windows Parental Controls",
	451: "Unavailable For Legal Reasons",
	494: "Request header too large",
	495: "SSL Certificate Error",
	496: "SSL Certificate Required",
	497: "HTTP Request Sent to HTTPS Port",
	498: "Invalid Token",
	499: "Client Closed Request",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	509: "Bandwidth Limit Exceeded",
	510: "Not Extended",
	511: "Network Authentication Required",
	598: "Network read timeout",
	599: "Network Connect Timeout",
}

// StatusText returns the reason phrase for code, falling back to net/http.
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}

	if text := http.StatusText(code); text != "" {
		return text
	}

	return "Unknown Status"
}

// TranslateError extracts the failure carried by a response, or nil on success.
//
// A non-string "error" field in the body is a failure regardless of the
// status code. Otherwise any status >= 400 is a failure. A request that never
// got a response yields an error with code 0.
func TranslateError(rc *ResponseContext) *KGError {
	if rc == nil {
		return nil
	}

	if payload, ok := rc.Content["error"]; ok && payload != nil {
		if _, isString := payload.(string); !isString {
			return errorFromPayload(rc, payload)
		}
	}

	if rc.StatusCode >= http.StatusBadRequest {
		return &KGError{
			Code:      rc.StatusCode,
			Message:   StatusText(rc.StatusCode),
			Namespace: rc.IDNamespace,
		}
	}

	if rc.StatusCode == 0 && rc.Err != nil {
		return &KGError{
			Code:      0,
			Message:   rc.Err.Error(),
			Namespace: rc.IDNamespace,
		}
	}

	return nil
}

func errorFromPayload(rc *ResponseContext, payload any) *KGError {
	kgErr := &KGError{
		Code:      rc.StatusCode,
		Namespace: rc.IDNamespace,
	}

	fields, _ := payload.(map[string]any)

	if rc.StatusCode < http.StatusBadRequest {
		if code, ok := intField(fields, "code"); ok {
			kgErr.Code = code
		}
	}

	if message, ok := fields["message"].(string); ok {
		kgErr.Message = message
	} else {
		kgErr.Message = StatusText(kgErr.Code)
	}

	if instanceID, ok := fields["instanceId"].(string); ok {
		kgErr.InstanceID = instanceID
	}

	return kgErr
}

// AsKGError unwraps err into a KGError.
func AsKGError(err error) (*KGError, bool) {
	kgErr := &KGError{}
	if errors.As(err, &kgErr) {
		return kgErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasCode(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasCode(err, http.StatusForbidden)
}

// IsServerError checks if the error is a 5xx error.
func IsServerError(err error) bool {
	kgErr, ok := AsKGError(err)

	return ok && kgErr.Code >= http.StatusInternalServerError
}

// IsTransportError checks if the request never received a response.
func IsTransportError(err error) bool {
	return hasCode(err, 0)
}

func hasCode(err error, code int) bool {
	kgErr, ok := AsKGError(err)

	return ok && kgErr.Code == code
}
