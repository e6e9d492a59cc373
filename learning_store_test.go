package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLearningStoreRoundTrip(t *testing.T) {
	store, err := NewLearningStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	history := []CommandRecord{
		{Command: "open firefox", Action: "open_app", Success: true, Timestamp: 1700000000.5},
		{Command: "close firefox", Action: "close_app", Success: false, Timestamp: 1700000001.5},
	}
	patterns := map[string]*LearnedPattern{
		"open firefox": {Action: "open_app", Frequency: 3, SuccessRate: 0.75, Examples: []string{"open firefox"}},
	}

	if err := store.Save(history, patterns); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	gotHistory, gotPatterns, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(gotHistory) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(gotHistory))
	}
	if gotHistory[0].Command != "open firefox" || !gotHistory[0].Success {
		t.Errorf("unexpected first record %+v", gotHistory[0])
	}
	if gotHistory[1].Success {
		t.Error("expected second record to be a failure")
	}

	p, ok := gotPatterns["open firefox"]
	if !ok {
		t.Fatal("pattern missing after round trip")
	}
	if p.Frequency != 3 || p.SuccessRate != 0.75 || p.Action != "open_app" {
		t.Errorf("unexpected pattern after round trip: %+v", p)
	}
}

func TestLearningStoreLoadMissing(t *testing.T) {
	store, err := NewLearningStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	history, patterns, err := store.Load()
	if err != nil {
		t.Errorf("expected no error for missing files, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d records", len(history))
	}
	if patterns == nil {
		t.Error("expected non-nil empty pattern map")
	}
}

// A corrupt document yields empty state plus an error the caller can log;
// it never aborts startup
func TestLearningStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLearningStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "command_history.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	history, patterns, err := store.Load()
	if err == nil {
		t.Error("expected an error for the corrupt document")
	}
	if len(history) != 0 {
		t.Errorf("expected empty history from corrupt document, got %d", len(history))
	}
	if patterns == nil {
		t.Error("expected usable empty pattern map despite corruption")
	}

	// The learner built on top starts empty rather than failing
	learner := NewCommandLearner(store)
	if learner.HistoryLen() != 0 {
		t.Errorf("expected learner to start empty, got %d records", learner.HistoryLen())
	}
}

func TestLearningStoreSaveNil(t *testing.T) {
	store, err := NewLearningStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.Save(nil, nil); err != nil {
		t.Fatalf("save of empty state failed: %v", err)
	}

	history, patterns, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(history) != 0 || len(patterns) != 0 {
		t.Errorf("expected empty state, got %d records and %d patterns", len(history), len(patterns))
	}
}
