package httpclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	statusErr := &Error{Kind: KindStatus, Method: "GET", URL: "http://x/test", StatusCode: 404}
	if got := statusErr.Error(); !strings.Contains(got, "404") || !strings.Contains(got, "http://x/test") {
		t.Fatalf("unexpected status error message %q", got)
	}

	transportErr := &Error{Kind: KindTransport, Method: "POST", URL: "http://x", Err: context.DeadlineExceeded}
	if got := transportErr.Error(); !strings.Contains(got, "transport error") {
		t.Fatalf("unexpected transport error message %q", got)
	}
	if !errors.Is(transportErr, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
}

func TestKindHelpersSeeThroughWrapping(t *testing.T) {
	base := &Error{Kind: KindStatus, StatusCode: 503}
	wrapped := fmt.Errorf("fetch feed: %w", base)

	if !IsKind(wrapped, KindStatus) {
		t.Fatalf("expected status kind through wrapping")
	}
	if IsKind(wrapped, KindTransport) {
		t.Fatalf("status error reported as transport")
	}
	if code, ok := StatusCode(wrapped); !ok || code != 503 {
		t.Fatalf("expected 503, got %d (ok=%v)", code, ok)
	}
	if _, ok := StatusCode(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no status")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindConstruction: "construction",
		KindTransport:    "transport",
		KindStatus:       "status",
		Kind(0):          "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("kind %d: want %q, got %q", kind, want, got)
		}
	}
}
