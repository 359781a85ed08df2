package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package requests loads named request definitions from YAML or JSON files.

// Supported methods, one per httpclient.Client operation.
const (
	MethodGet      = "get"
	MethodPost     = "post"
	MethodPostForm = "post_form"
	MethodPut      = "put"
	MethodDelete   = "delete"
)

// Request is a single request definition.
type Request struct {
	Name    string            `json:"name" yaml:"name"`
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers" yaml:"headers"`
	Query   map[string]string `json:"query" yaml:"query"`
	Form    map[string]string `json:"form" yaml:"form"`
	JSON    any               `json:"json" yaml:"json"`
	// Extract is an optional gjson path applied to the response body.
	Extract string `json:"extract" yaml:"extract"`
}

type file struct {
	Requests []Request `json:"requests" yaml:"requests"`
}

// LoadFile reads and validates request definitions from path.
func LoadFile(path string) ([]Request, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("requests file path is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read requests file: %w", err)
	}

	return Parse(raw, filepath.Ext(path))
}

// Parse decodes request definitions; ext selects the format (".yaml", ".yml", ".json"),
// an empty ext tries each in turn.
func Parse(data []byte, ext string) ([]Request, error) {
	parsed, err := decode(data, ext)
	if err != nil {
		return nil, err
	}
	if len(parsed.Requests) == 0 {
		return nil, errors.New("requests file contains no requests entries")
	}

	seen := make(map[string]struct{}, len(parsed.Requests))
	out := make([]Request, len(parsed.Requests))
	for i := range parsed.Requests {
		r := Sanitize(parsed.Requests[i])
		if r.Name == "" {
			r.Name = fmt.Sprintf("request-%d", i+1)
		}
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("request[%d]: %w", i, err)
		}
		if _, exists := seen[r.Name]; exists {
			return nil, fmt.Errorf("duplicate request name %q", r.Name)
		}
		seen[r.Name] = struct{}{}
		out[i] = r
	}
	return out, nil
}

// Find returns the request named name.
func Find(reqs []Request, name string) (Request, bool) {
	name = strings.TrimSpace(name)
	for _, r := range reqs {
		if r.Name == name {
			return r, true
		}
	}
	return Request{}, false
}

type unmarshalFn func([]byte, any) error

func decode(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f file
		if err := d.fn(data, &f); err != nil {
			lastErr = fmt.Errorf("decode %s requests: %w", d.name, err)
			continue
		}
		return f, nil
	}
	if lastErr != nil {
		return file{}, lastErr
	}
	return file{}, errors.New("requests file format not recognized (expected YAML or JSON)")
}

// Sanitize trims fields and normalizes the method name ("POST-FORM" → "post_form").
func Sanitize(r Request) Request {
	r.Name = strings.TrimSpace(r.Name)
	r.URL = strings.TrimSpace(r.URL)
	r.Extract = strings.TrimSpace(r.Extract)
	r.Method = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.Method)), "-", "_")
	if r.Method == "" {
		r.Method = MethodGet
	}
	return r
}

// Validate checks that the payload fields match the method.
func Validate(r Request) error {
	if r.URL == "" {
		return fmt.Errorf("url is required for request %q", r.Name)
	}

	switch r.Method {
	case MethodGet:
		if len(r.Form) > 0 || r.JSON != nil {
			return fmt.Errorf("request %q: get takes query parameters only", r.Name)
		}
	case MethodPostForm:
		if len(r.Query) > 0 || r.JSON != nil {
			return fmt.Errorf("request %q: post_form takes form fields only", r.Name)
		}
	case MethodPost, MethodPut, MethodDelete:
		if len(r.Query) > 0 || len(r.Form) > 0 {
			return fmt.Errorf("request %q: %s takes a json body only", r.Name, r.Method)
		}
	default:
		return fmt.Errorf("request %q: unsupported method %q", r.Name, r.Method)
	}
	return nil
}
