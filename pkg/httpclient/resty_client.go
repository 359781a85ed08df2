package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/http/httpguts"
)

// DefaultTimeout bounds every request made by a client built without an explicit timeout.
const DefaultTimeout = 10 * time.Second

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeForm   = "application/x-www-form-urlencoded"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
// It holds no mutable state and is safe for concurrent use.
type RestyClient struct {
	client  *resty.Client
	timeout time.Duration
	log     Logger
}

var _ Client = (*RestyClient)(nil)

// NewRestyClient creates a new RestyClient with the specified per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewRestyClient(timeout time.Duration, log Logger) *RestyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RestyClient{
		client:  newRestyBaseClient(timeout),
		timeout: timeout,
		log:     ensureLogger(log),
	}
}

// NewDefaultClient creates a RestyClient using DefaultTimeout.
func NewDefaultClient(log Logger) *RestyClient {
	return NewRestyClient(DefaultTimeout, log)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Timeout returns the per-request timeout the client was built with.
func (r *RestyClient) Timeout() time.Duration { return r.timeout }

// Get performs an HTTP GET, appending query to the URL's query string.
func (r *RestyClient) Get(ctx context.Context, url string, headers Headers, query Query) (string, error) {
	return r.do(ctx, http.MethodGet, url, headers, queryEncoder(query))
}

// Post performs an HTTP POST with payload encoded as JSON.
func (r *RestyClient) Post(ctx context.Context, url string, headers Headers, payload any) (string, error) {
	return r.do(ctx, http.MethodPost, url, headers, jsonEncoder(payload))
}

// PostForm performs an HTTP POST with form encoded as application/x-www-form-urlencoded.
func (r *RestyClient) PostForm(ctx context.Context, url string, headers Headers, form Form) (string, error) {
	return r.do(ctx, http.MethodPost, url, headers, formEncoder(form))
}

// Put performs an HTTP PUT with payload encoded as JSON.
func (r *RestyClient) Put(ctx context.Context, url string, headers Headers, payload any) (string, error) {
	return r.do(ctx, http.MethodPut, url, headers, jsonEncoder(payload))
}

// Delete performs an HTTP DELETE with payload encoded as a JSON body.
func (r *RestyClient) Delete(ctx context.Context, url string, headers Headers, payload any) (string, error) {
	return r.do(ctx, http.MethodDelete, url, headers, jsonEncoder(payload))
}

// payloadEncoder attaches a method-specific payload to the request.
type payloadEncoder func(req *resty.Request) error

func queryEncoder(query Query) payloadEncoder {
	return func(req *resty.Request) error {
		if len(query) > 0 {
			req.SetQueryParams(query)
		}
		return nil
	}
}

func jsonEncoder(payload any) payloadEncoder {
	return func(req *resty.Request) error {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode json body: %w", err)
		}
		req.SetHeader(headerContentType, contentTypeJSON)
		req.SetBody(body)
		return nil
	}
}

func formEncoder(form Form) payloadEncoder {
	return func(req *resty.Request) error {
		values := make(url.Values, len(form))
		for k, v := range form {
			values.Set(k, v)
		}
		req.SetHeader(headerContentType, contentTypeForm)
		req.SetBody(values.Encode())
		return nil
	}
}

// do runs the request lifecycle shared by every operation: validate, encode, dispatch, classify.
func (r *RestyClient) do(ctx context.Context, method, rawURL string, headers Headers, encode payloadEncoder) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", constructionError(method, rawURL, err)
	}
	if err := validateHeaders(headers); err != nil {
		return "", constructionError(method, rawURL, err)
	}

	req := r.client.R().SetContext(ctx)
	if err := encode(req); err != nil {
		return "", constructionError(method, rawURL, err)
	}
	// Caller headers go last so they win over encoder defaults.
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	r.log.InfoObj("making http request", "request", map[string]any{
		"method":  method,
		"url":     rawURL,
		"headers": redactHeaders(req.Header),
	})

	resp, err := req.Execute(method, rawURL)
	if err != nil {
		return "", &Error{
			Kind:    KindTransport,
			Method:  method,
			URL:     rawURL,
			Err:     err,
			timeout: isTimeout(err),
		}
	}
	if !resp.IsSuccess() {
		return "", &Error{
			Kind:       KindStatus,
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Header:     resp.Header(),
		}
	}

	// resty's String() trims whitespace; the body must come back untouched.
	return string(resp.Body()), nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must be absolute with an http or https scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

func validateHeaders(headers Headers) error {
	for name, value := range headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("invalid header name %q", name)
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return fmt.Errorf("invalid value for header %q", name)
		}
	}
	return nil
}

var sensitiveHeaders = map[string]struct{}{
	"Authorization":       {},
	"Proxy-Authorization": {},
	"Cookie":              {},
	"X-Api-Key":           {},
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		if _, ok := sensitiveHeaders[http.CanonicalHeaderKey(k)]; ok {
			out[k] = "[redacted]"
			continue
		}
		out[k] = h.Get(k)
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
