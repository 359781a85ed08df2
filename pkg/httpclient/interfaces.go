package httpclient

import "context"

// Headers maps header names to values for a single request.
type Headers map[string]string

// Query holds GET query parameters.
type Query map[string]string

// Form holds application/x-www-form-urlencoded fields.
type Form map[string]string

// Client abstracts HTTP calls so callers can inject mocks or different transports.
//
// Every operation returns the raw response body on a 2xx status and an *Error otherwise.
// A nil headers map means no extra headers.
type Client interface {
	Get(ctx context.Context, url string, headers Headers, query Query) (string, error)
	Post(ctx context.Context, url string, headers Headers, payload any) (string, error)
	PostForm(ctx context.Context, url string, headers Headers, form Form) (string, error)
	Put(ctx context.Context, url string, headers Headers, payload any) (string, error)
	// Delete always sends payload as a JSON body (nil encodes as null). This keeps
	// compatibility with servers that read a body on DELETE; don't copy it to new endpoints.
	Delete(ctx context.Context, url string, headers Headers, payload any) (string, error)
}

// Logger defines the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
