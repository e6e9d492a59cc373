package main

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestArchive(t *testing.T) *HistoryArchive {
	t.Helper()
	archive, err := NewHistoryArchive(filepath.Join(t.TempDir(), "interactions.db"))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchiveAppendAndCount(t *testing.T) {
	archive := newTestArchive(t)

	records := []CommandRecord{
		{Command: "open firefox", Action: "open_app", Success: true,
			Timestamp: 1700000000, DateTime: time.Now().Format(time.RFC3339)},
		{Command: "take a screenshot", Action: "screenshot", Success: false,
			Timestamp: 1700000001, DateTime: time.Now().Format(time.RFC3339)},
	}
	for _, rec := range records {
		if err := archive.Append(rec); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	count, err := archive.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 archived interactions, got %d", count)
	}
}

func TestArchiveSearch(t *testing.T) {
	archive := newTestArchive(t)

	now := time.Now().Format(time.RFC3339)
	for i, cmd := range []string{"open firefox", "open chrome", "close firefox"} {
		rec := CommandRecord{
			Command: cmd, Action: "open_app", Success: true,
			Timestamp: float64(1700000000 + i), DateTime: now,
			Metadata: map[string]interface{}{"pattern_matched": true},
		}
		if err := archive.Append(rec); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	results, err := archive.Search("firefox", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for 'firefox', got %d", len(results))
	}
	// Most recent first
	if results[0].Command != "close firefox" {
		t.Errorf("expected newest match first, got %q", results[0].Command)
	}
	if results[0].Metadata == nil {
		t.Error("expected metadata restored from archive")
	}

	limited, err := archive.Search("open", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to cap results at 1, got %d", len(limited))
	}
}
