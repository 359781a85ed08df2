package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a local history of executed requests.

// Entry describes one executed request.
type Entry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	OK         bool      `json:"ok"`
	StatusCode int       `json:"status_code,omitempty"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// History records executed requests.
type History interface {
	Close() error
	Record(e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
}

// Options controls retention characteristics for concrete history implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewHistory creates the configured history backend.
func NewHistory(typ, path string, opts Options) (History, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopHistory{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt history requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported history store %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopHistory struct{}

func (noopHistory) Close() error                { return nil }
func (noopHistory) Record(Entry) error          { return nil }
func (noopHistory) Recent(int) ([]Entry, error) { return nil, nil }
