// Package httpclienttest provides an in-memory httpclient.Client for tests.
package httpclienttest

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
)

// Call records one invocation of the fake client.
type Call struct {
	Method  string
	URL     string
	Headers httpclient.Headers
	// Payload is the Query, Form or JSON value passed by the caller.
	Payload any
}

// Reply is a canned response.
type Reply struct {
	Body string
	Err  error
}

// Client is a fake httpclient.Client. It answers from Respond when set, otherwise from the
// Replies queue; with neither it returns an empty body.
type Client struct {
	Respond func(call Call) (string, error)

	mu      sync.Mutex
	replies []Reply
	queued  bool
	calls   []Call
}

var _ httpclient.Client = (*Client)(nil)

// ErrNoReply is returned when the queue runs dry after at least one reply was enqueued.
var ErrNoReply = errors.New("httpclienttest: no reply queued")

// Enqueue appends canned replies consumed in order.
func (c *Client) Enqueue(replies ...Reply) {
	c.mu.Lock()
	c.replies = append(c.replies, replies...)
	c.queued = c.queued || len(replies) > 0
	c.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *Client) Get(ctx context.Context, url string, headers httpclient.Headers, query httpclient.Query) (string, error) {
	return c.handle(ctx, Call{Method: http.MethodGet, URL: url, Headers: headers, Payload: query})
}

func (c *Client) Post(ctx context.Context, url string, headers httpclient.Headers, payload any) (string, error) {
	return c.handle(ctx, Call{Method: http.MethodPost, URL: url, Headers: headers, Payload: payload})
}

func (c *Client) PostForm(ctx context.Context, url string, headers httpclient.Headers, form httpclient.Form) (string, error) {
	return c.handle(ctx, Call{Method: http.MethodPost, URL: url, Headers: headers, Payload: form})
}

func (c *Client) Put(ctx context.Context, url string, headers httpclient.Headers, payload any) (string, error) {
	return c.handle(ctx, Call{Method: http.MethodPut, URL: url, Headers: headers, Payload: payload})
}

func (c *Client) Delete(ctx context.Context, url string, headers httpclient.Headers, payload any) (string, error) {
	return c.handle(ctx, Call{Method: http.MethodDelete, URL: url, Headers: headers, Payload: payload})
}

func (c *Client) handle(ctx context.Context, call Call) (string, error) {
	if len(call.Headers) > 0 {
		copied := make(httpclient.Headers, len(call.Headers))
		for k, v := range call.Headers {
			copied[k] = v
		}
		call.Headers = copied
	}

	c.mu.Lock()
	c.calls = append(c.calls, call)
	respond := c.Respond
	var (
		reply    Reply
		hasReply bool
		drained  bool
	)
	if respond == nil {
		if len(c.replies) > 0 {
			reply, c.replies = c.replies[0], c.replies[1:]
			hasReply = true
		} else {
			drained = c.queued
		}
	}
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &httpclient.Error{Kind: httpclient.KindTransport, Method: call.Method, URL: call.URL, Err: err}
	}

	switch {
	case respond != nil:
		return respond(call)
	case hasReply:
		return reply.Body, reply.Err
	case drained:
		return "", ErrNoReply
	default:
		return "", nil
	}
}

// StatusError builds the error a real client returns for a non-2xx response.
func StatusError(method, url string, code int) error {
	return &httpclient.Error{
		Kind:       httpclient.KindStatus,
		Method:     method,
		URL:        url,
		StatusCode: code,
		Status:     http.StatusText(code),
	}
}
