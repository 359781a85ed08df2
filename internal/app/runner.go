package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-fetcher/internal/logger"
	"github.com/samvad-hq/samvad-fetcher/internal/storage"
	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
	"github.com/samvad-hq/samvad-fetcher/pkg/requests"
	"github.com/tidwall/gjson"
)

// Result is the outcome of executing one request definition.
type Result struct {
	Request   requests.Request
	Body      string
	Extracted string
	Duration  time.Duration
	Err       error
}

// Runner executes request definitions through an httpclient.Client and records history.
type Runner struct {
	client  httpclient.Client
	history storage.History
	log     logger.Logger
}

// NewRunner wires a runner. A nil history or logger disables that concern.
func NewRunner(client httpclient.Client, history storage.History, log logger.Logger) (*Runner, error) {
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if history == nil {
		history, _ = storage.NewHistory("none", "", storage.Options{})
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Runner{client: client, history: history, log: log}, nil
}

// Execute runs req once. Request errors are returned in Result.Err; the returned error
// is only set when the request definition itself is unusable.
func (r *Runner) Execute(ctx context.Context, req requests.Request) (Result, error) {
	req = requests.Sanitize(req)
	if err := requests.Validate(req); err != nil {
		return Result{Request: req}, err
	}

	start := time.Now()
	body, err := r.dispatch(ctx, req)
	res := Result{Request: req, Duration: time.Since(start), Err: err}

	if err == nil {
		res.Body = body
		extracted, xerr := Extract(body, req.Extract)
		if xerr != nil {
			res.Err = xerr
		} else {
			res.Extracted = extracted
		}
	}

	r.record(res)
	return res, nil
}

// RunAll executes reqs in order and keeps going after failures.
func (r *Runner) RunAll(ctx context.Context, reqs []requests.Request) ([]Result, error) {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.Execute(ctx, req)
		if err != nil {
			return results, fmt.Errorf("request %q: %w", req.Name, err)
		}
		if res.Err != nil {
			r.log.WarnObj("request failed", "request_error", map[string]any{
				"name":  req.Name,
				"error": res.Err.Error(),
			})
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) dispatch(ctx context.Context, req requests.Request) (string, error) {
	headers := httpclient.Headers(req.Headers)

	switch req.Method {
	case requests.MethodGet:
		return r.client.Get(ctx, req.URL, headers, httpclient.Query(req.Query))
	case requests.MethodPost:
		return r.client.Post(ctx, req.URL, headers, req.JSON)
	case requests.MethodPostForm:
		return r.client.PostForm(ctx, req.URL, headers, httpclient.Form(req.Form))
	case requests.MethodPut:
		return r.client.Put(ctx, req.URL, headers, req.JSON)
	case requests.MethodDelete:
		return r.client.Delete(ctx, req.URL, headers, req.JSON)
	default:
		return "", fmt.Errorf("unsupported method %q", req.Method)
	}
}

func (r *Runner) record(res Result) {
	entry := storage.Entry{
		Name:       res.Request.Name,
		Method:     strings.ToUpper(res.Request.Method),
		URL:        res.Request.URL,
		DurationMs: res.Duration.Milliseconds(),
		OK:         res.Err == nil,
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
		var herr *httpclient.Error
		if errors.As(res.Err, &herr) {
			entry.ErrorKind = herr.Kind.String()
			entry.StatusCode = herr.StatusCode
		}
	}

	if err := r.history.Record(entry); err != nil {
		r.log.WarnObj("failed to record history", "error", err)
	}
}

// ErrNoMatch is returned by Extract when the path matches nothing.
var ErrNoMatch = errors.New("extract path matched nothing")

// Extract applies a gjson path to body. An empty path returns body unchanged.
func Extract(body, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return body, nil
	}
	if !gjson.Valid(body) {
		return "", fmt.Errorf("extract %q: response is not valid json", path)
	}
	res := gjson.Get(body, path)
	if !res.Exists() {
		return "", fmt.Errorf("extract %q: %w", path, ErrNoMatch)
	}
	if res.Type == gjson.JSON {
		return res.Raw, nil
	}
	return res.String(), nil
}
