package main

import (
	"testing"
)

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()

	settings := DefaultSettings()
	settings.App.DataDir = t.TempDir()
	settings.AI.Enabled = false

	assistant, err := NewAssistant(settings)
	if err != nil {
		t.Fatalf("failed to construct assistant: %v", err)
	}
	t.Cleanup(assistant.Close)
	return assistant
}

// The full loop: classify, execute, learn
func TestHandleUtterance(t *testing.T) {
	assistant := newTestAssistant(t)

	result, output := assistant.HandleUtterance("hello")
	if result.Action != "respond" {
		t.Errorf("expected respond action, got %q", result.Action)
	}
	if output != "" {
		t.Errorf("expected no executor output for respond, got %q", output)
	}
	if assistant.Learner().HistoryLen() != 1 {
		t.Errorf("expected the interaction to be learned, got %d records", assistant.Learner().HistoryLen())
	}

	assistant.HandleUtterance("what can you do")
	if assistant.Learner().HistoryLen() != 2 {
		t.Errorf("expected 2 learned records, got %d", assistant.Learner().HistoryLen())
	}
}

func TestHandleUtteranceArchives(t *testing.T) {
	assistant := newTestAssistant(t)
	if assistant.Archive() == nil {
		t.Fatal("expected archive to be enabled")
	}

	assistant.HandleUtterance("hello")
	assistant.HandleUtterance("good morning")
	assistant.Learner().Wait()

	count, err := assistant.Archive().Count()
	if err != nil {
		t.Fatalf("archive count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 archived interactions, got %d", count)
	}
}

func TestHandleUtteranceLearningDisabled(t *testing.T) {
	settings := DefaultSettings()
	settings.App.DataDir = t.TempDir()
	settings.AI.Enabled = false
	settings.Learning.Enabled = false
	settings.Learning.ArchiveEnabled = false

	assistant, err := NewAssistant(settings)
	if err != nil {
		t.Fatalf("failed to construct assistant: %v", err)
	}
	defer assistant.Close()

	assistant.HandleUtterance("hello")
	if assistant.Learner().HistoryLen() != 0 {
		t.Errorf("expected nothing learned while disabled, got %d", assistant.Learner().HistoryLen())
	}
}
