package main

import (
	"errors"
	"strings"
	"testing"
)

// Test classification of utterances that match the intent table
func TestProcessCommandIntents(t *testing.T) {
	manager := NewAIManager(nil)

	tests := []struct {
		input      string
		action     string
		target     string
		confidence float64
	}{
		{"hello", "respond", "", 0.95},
		{"Hey there", "respond", "", 0.95},
		{"good morning", "respond", "", 0.95},
		{"open calculator", "open_app", "calculator", 0.9},
		{"Launch Firefox", "open_app", "firefox", 0.9},
		{"close spotify", "close_app", "spotify", 0.9},
		{"search for report.pdf", "search", "report.pdf", 0.9},
		{"where is my resume", "search", "my resume", 0.9},
		{"take a screenshot", "screenshot", "", 0.9},
		{"system status", "system_info", "", 0.9},
		{"what can you do", "help", "", 0.9},
	}

	for _, test := range tests {
		result := manager.ProcessCommand(test.input)

		if result.Action != test.action {
			t.Errorf("ProcessCommand(%q) action = %q, expected %q", test.input, result.Action, test.action)
		}
		if result.Target != test.target {
			t.Errorf("ProcessCommand(%q) target = %q, expected %q", test.input, result.Target, test.target)
		}
		if result.Confidence != test.confidence {
			t.Errorf("ProcessCommand(%q) confidence = %v, expected %v", test.input, result.Confidence, test.confidence)
		}
	}
}

// Earlier categories in the intent table win over later ones
func TestProcessCommandPriority(t *testing.T) {
	manager := NewAIManager(nil)

	// Matches both greeting and open_app; greeting is listed first
	result := manager.ProcessCommand("hey, open calculator")

	if result.Action != "respond" {
		t.Errorf("expected greeting to win, got action %q", result.Action)
	}
	if result.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", result.Confidence)
	}
}

// Open/close with a missing or degenerate target asks for clarification
// instead of acting
func TestProcessCommandClarification(t *testing.T) {
	manager := NewAIManager(nil)

	for _, input := range []string{"open", "open a", "close", "launch x"} {
		result := manager.ProcessCommand(input)

		if result.Action != "respond" {
			t.Errorf("ProcessCommand(%q) action = %q, expected clarification respond", input, result.Action)
		}
		if result.Confidence != 0.7 {
			t.Errorf("ProcessCommand(%q) confidence = %v, expected 0.7", input, result.Confidence)
		}
		if !strings.Contains(result.Response, "Which application") {
			t.Errorf("ProcessCommand(%q) response = %q, expected clarification message", input, result.Response)
		}
	}
}

// Without a responder, unmatched utterances get the canned fallbacks
func TestProcessCommandFallback(t *testing.T) {
	manager := NewAIManager(nil)

	tests := []struct {
		input      string
		action     string
		confidence float64
	}{
		{"oh hi mark", "respond", 0.8},
		{"tell me a joke", "respond", 0.5},
	}

	for _, test := range tests {
		result := manager.ProcessCommand(test.input)

		if result.Action != test.action {
			t.Errorf("ProcessCommand(%q) action = %q, expected %q", test.input, result.Action, test.action)
		}
		if result.Confidence != test.confidence {
			t.Errorf("ProcessCommand(%q) confidence = %v, expected %v", test.input, result.Confidence, test.confidence)
		}
	}
}

// Responder output is classified by keyword scan plus target extraction
func TestParseResponderOutput(t *testing.T) {
	manager := NewAIManager(nil)

	tests := []struct {
		response string
		action   string
		target   string
	}{
		{`I will open "Firefox" for you`, "open_app", "Firefox"},
		{"Let me launch notepad now", "open_app", "notepad now"},
		{"You should quit that application", "close_app", ""},
		{"I can search for vacation photos", "search", "vacation photos"},
		{"Taking a screenshot of the desktop", "screenshot", ""},
		{"Here is the system info you asked about", "system_info", ""},
		{"The weather is nice today", "respond", ""},
	}

	for _, test := range tests {
		result := manager.parseResponderOutput(test.response)

		if result.Action != test.action {
			t.Errorf("parseResponderOutput(%q) action = %q, expected %q", test.response, result.Action, test.action)
		}
		if result.Target != test.target {
			t.Errorf("parseResponderOutput(%q) target = %q, expected %q", test.response, result.Target, test.target)
		}
		if result.Confidence != 0.7 {
			t.Errorf("parseResponderOutput(%q) confidence = %v, expected 0.7", test.response, result.Confidence)
		}
		if generated, ok := result.Metadata["llm_generated"].(bool); !ok || !generated {
			t.Errorf("parseResponderOutput(%q) missing llm_generated metadata", test.response)
		}
	}
}

func TestErrorResult(t *testing.T) {
	result := errorResult(errors.New("boom"))

	if result.Action != "error" {
		t.Errorf("expected action error, got %q", result.Action)
	}
	if result.Confidence != 0.0 {
		t.Errorf("expected confidence 0.0, got %v", result.Confidence)
	}
}
