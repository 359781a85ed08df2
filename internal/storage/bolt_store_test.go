package storage

import (
	"testing"
	"time"
)

func TestBoltHistoryRecordsNewestFirst(t *testing.T) {
	raw, err := openBolt(t.TempDir()+"/history.db", normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer raw.Close()

	for _, u := range []string{"http://x/1", "http://x/2", "http://x/3"} {
		if err := raw.Record(Entry{Method: "GET", URL: u, StatusCode: 200}); err != nil {
			t.Fatalf("Record %s: %v", u, err)
		}
	}

	got, err := raw.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].URL != "http://x/3" || got[1].URL != "http://x/2" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].ID == "" || got[0].At.IsZero() {
		t.Fatalf("expected id and timestamp to be assigned: %+v", got[0])
	}

	all, err := raw.Recent(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 entries, got %d err=%v", len(all), err)
	}
}

func TestBoltHistoryExpiresEntries(t *testing.T) {
	opts := Options{
		EntryTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	raw, err := openBolt(t.TempDir()+"/history.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := raw.(*boltHistory)
	defer store.Close()

	if err := store.Record(Entry{Method: "DELETE", URL: "http://x/old"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired entry to be hidden, got %+v", got)
	}

	if err := store.Record(Entry{Method: "GET", URL: "http://x/new"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err = store.Recent(10)
	if err != nil || len(got) != 1 || got[0].URL != "http://x/new" {
		t.Fatalf("expected only the new entry, got %+v err=%v", got, err)
	}
}

func TestNewHistorySupportsNoop(t *testing.T) {
	h, err := NewHistory("none", "", Options{})
	if err != nil {
		t.Fatalf("NewHistory none: %v", err)
	}
	if err := h.Record(Entry{URL: "x"}); err != nil {
		t.Fatalf("noop Record: %v", err)
	}
	if got, _ := h.Recent(5); len(got) != 0 {
		t.Fatalf("noop history should be empty")
	}
}

func TestNewHistoryRejectsUnknownType(t *testing.T) {
	if _, err := NewHistory("redis", "x", Options{}); err == nil {
		t.Fatalf("expected error for unknown store")
	}
	if _, err := NewHistory("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
