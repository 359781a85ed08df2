package requests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
requests:
  - name: health
    url: https://api.example.com/health
    query:
      verbose: "1"
  - name: create
    method: POST
    url: https://api.example.com/items
    headers:
      Authorization: Bearer token
    json:
      data: example
      tags: [a, b]
    extract: id
  - name: login
    method: post-form
    url: https://api.example.com/login
    form:
      user: ana
`

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reqs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	if reqs[0].Method != MethodGet || reqs[0].Query["verbose"] != "1" {
		t.Fatalf("unexpected first request %+v", reqs[0])
	}
	if reqs[1].Method != MethodPost || reqs[1].Extract != "id" {
		t.Fatalf("unexpected second request %+v", reqs[1])
	}
	body, ok := reqs[1].JSON.(map[string]any)
	if !ok || body["data"] != "example" {
		t.Fatalf("json payload not decoded: %#v", reqs[1].JSON)
	}
	if reqs[2].Method != MethodPostForm || reqs[2].Form["user"] != "ana" {
		t.Fatalf("unexpected third request %+v", reqs[2])
	}

	if r, ok := Find(reqs, "login"); !ok || r.URL != "https://api.example.com/login" {
		t.Fatalf("Find login: %+v ok=%v", r, ok)
	}
	if _, ok := Find(reqs, "missing"); ok {
		t.Fatalf("Find should not match missing name")
	}
}

func TestParseJSON(t *testing.T) {
	raw := `{"requests":[{"method":"delete","url":"https://api.example.com/items/1","json":{"reason":"cleanup"}}]}`

	reqs, err := Parse([]byte(raw), ".json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if reqs[0].Name != "request-1" || reqs[0].Method != MethodDelete {
		t.Fatalf("unexpected request %+v", reqs[0])
	}
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	cases := map[string]string{
		"empty":          `requests: []`,
		"missing url":    "requests:\n  - name: a\n",
		"bad method":     "requests:\n  - url: http://x\n    method: patch\n",
		"get with form":  "requests:\n  - url: http://x\n    form: {a: b}\n",
		"post with qs":   "requests:\n  - url: http://x\n    method: post\n    query: {a: b}\n",
		"form with json": "requests:\n  - url: http://x\n    method: post_form\n    json: {a: b}\n",
		"duplicate":      "requests:\n  - name: a\n    url: http://x\n  - name: a\n    url: http://y\n",
		"not yaml":       "requests: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw), ".yaml"); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "open requests file") {
		t.Fatalf("expected open error, got %v", err)
	}
	if _, err := LoadFile(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
