package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a client error.
type Kind int

const (
	// KindConstruction means the request could not be built (bad URL, header or payload).
	KindConstruction Kind = iota + 1
	// KindTransport means no response was received (connection, DNS, timeout, cancellation).
	KindTransport
	// KindStatus means a response arrived with a status outside 200..299.
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindConstruction:
		return "construction"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Client implementations.
type Error struct {
	Kind   Kind
	Method string
	URL    string

	// Set for KindStatus only. The response body is not kept.
	StatusCode int
	Status     string
	Header     http.Header

	Err     error
	timeout bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s %s: http response status %d", e.Method, e.URL, e.StatusCode)
	default:
		if e.Err == nil {
			return fmt.Sprintf("%s %s: %s error", e.Method, e.URL, e.Kind)
		}
		return fmt.Sprintf("%s %s: %s error: %v", e.Method, e.URL, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Timeout reports whether a transport error was caused by a deadline.
func (e *Error) Timeout() bool { return e.timeout }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusCode returns the HTTP status carried by a status error.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.StatusCode, true
	}
	return 0, false
}

func constructionError(method, url string, err error) *Error {
	return &Error{Kind: KindConstruction, Method: method, URL: url, Err: err}
}
