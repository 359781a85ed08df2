package httpclienttest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
)

func TestClientRecordsCallsAndReplaysQueue(t *testing.T) {
	fake := &Client{}
	fake.Enqueue(Reply{Body: "first"}, Reply{Err: StatusError(http.MethodPost, "http://x", 500)})

	headers := httpclient.Headers{"X-Test": "1"}
	body, err := fake.Get(context.Background(), "http://x/a", headers, httpclient.Query{"q": "1"})
	if err != nil || body != "first" {
		t.Fatalf("first reply: body=%q err=%v", body, err)
	}
	headers["X-Test"] = "changed"

	_, err = fake.Post(context.Background(), "http://x/b", nil, map[string]any{"k": "v"})
	if code, ok := httpclient.StatusCode(err); !ok || code != 500 {
		t.Fatalf("expected status 500, got %v", err)
	}

	if _, err := fake.Delete(context.Background(), "http://x/c", nil, nil); !errors.Is(err, ErrNoReply) {
		t.Fatalf("expected ErrNoReply, got %v", err)
	}

	calls := fake.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	if calls[0].Method != http.MethodGet || calls[0].Headers["X-Test"] != "1" {
		t.Fatalf("unexpected first call %+v", calls[0])
	}
	if calls[2].Method != http.MethodDelete {
		t.Fatalf("unexpected third call %+v", calls[2])
	}
}

func TestClientRespondFunc(t *testing.T) {
	fake := &Client{Respond: func(call Call) (string, error) {
		return call.Method + " " + call.URL, nil
	}}

	body, err := fake.PostForm(context.Background(), "http://x/form", nil, httpclient.Form{"a": "b"})
	if err != nil {
		t.Fatalf("PostForm: %v", err)
	}
	if body != "POST http://x/form" {
		t.Fatalf("unexpected body %q", body)
	}
	if form, ok := fake.Calls()[0].Payload.(httpclient.Form); !ok || form["a"] != "b" {
		t.Fatalf("form payload not recorded: %+v", fake.Calls()[0])
	}
}

func TestClientHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Client{}).Put(ctx, "http://x", nil, 1)
	if !httpclient.IsKind(err, httpclient.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
