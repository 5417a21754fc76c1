package ssllabs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoHost is returned when the result of an assessment is read before the
// assessment reached a terminal status.
var ErrNoHost = errors.New("ssllabs: no completed host, drive the assessment to a terminal status first")

// Category and kind sentinels for API error responses. A *ResponseError
// matches exactly one kind and one category with errors.Is.
var (
	ErrClient = errors.New("ssllabs: client error")
	ErrServer = errors.New("ssllabs: server error")

	ErrInvocation          = errors.New("ssllabs: invocation error")
	ErrRequestRate         = errors.New("ssllabs: request rate too high")
	ErrInternal            = errors.New("ssllabs: internal server error")
	ErrServiceNotAvailable = errors.New("ssllabs: service not available")
	ErrServiceOverloaded   = errors.New("ssllabs: service overloaded")
)

// StatusOverloaded is the non-standard code SSL Labs answers with when it
// is overloaded.
const StatusOverloaded = 529

type responseKind struct {
	kind     error
	category error
	message  string
}

var responseKinds = map[int]responseKind{
	http.StatusBadRequest:          {ErrInvocation, ErrClient, "invoked with invalid parameters, this is a library bug, please report it"},
	http.StatusTooManyRequests:     {ErrRequestRate, ErrClient, "request rate is too high, please slow down"},
	http.StatusInternalServerError: {ErrInternal, ErrServer, "internal server error encountered, wait and try again"},
	http.StatusServiceUnavailable:  {ErrServiceNotAvailable, ErrServer, "service not available, may be down for maintenance, wait and try again"},
	StatusOverloaded:               {ErrServiceOverloaded, ErrServer, "service overloaded, wait and try again"},
}

// ResponseError is an API error response with one of the documented status
// codes: 400, 429, 500, 503 or 529.
type ResponseError struct {
	StatusCode int
	Reason     string
}

func (e *ResponseError) Error() string {
	k := responseKinds[e.StatusCode]
	if e.Reason == "" {
		return fmt.Sprintf("ssllabs: %s (HTTP %d)", k.message, e.StatusCode)
	}
	return fmt.Sprintf("ssllabs: %s (HTTP %d): %s", k.message, e.StatusCode, e.Reason)
}

// Is matches the kind and category sentinels for the status code.
func (e *ResponseError) Is(target error) bool {
	k, ok := responseKinds[e.StatusCode]
	if !ok {
		return false
	}
	return target == k.kind || target == k.category
}

// Temporary reports whether backing off and retrying may succeed.
func (e *ResponseError) Temporary() bool {
	return errors.Is(e, ErrServer) || errors.Is(e, ErrRequestRate)
}

// HTTPError is any other non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ssllabs: unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a documented-required field missing from a payload.
type DecodeError struct {
	Entity string
	Field  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ssllabs: decoding %s: required field %q is missing", e.Entity, e.Field)
}

type apiErrorBody struct {
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// responseError maps a non-2xx response to a typed error.
func responseError(statusCode int, body []byte) error {
	reason := errorReason(body)
	if _, ok := responseKinds[statusCode]; ok {
		return &ResponseError{StatusCode: statusCode, Reason: reason}
	}
	return &HTTPError{StatusCode: statusCode, Body: reason}
}

// errorReason extracts the reason from a JSON error body, falling back to
// the plain-text body.
func errorReason(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			if e.Field != "" {
				msgs = append(msgs, e.Field+": "+e.Message)
			} else {
				msgs = append(msgs, e.Message)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(body))
}
