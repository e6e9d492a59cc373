package main

import (
	"fmt"
	"regexp"
	"strings"
)

// CommandResult is what classification produces: a spoken response, a
// resolved action tag, an optional target and a confidence score. The
// caller executes the action and reports the outcome back to the learner.
type CommandResult struct {
	Response   string                 `json:"response"`
	Action     string                 `json:"action"`
	Target     string                 `json:"target,omitempty"`
	Confidence float64                `json:"confidence"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// intentCategory pairs an action tag with its ordered match patterns
type intentCategory struct {
	action   string
	patterns []*regexp.Regexp
}

// newIntentTable builds the ordered intent table. Order is a deliberate
// priority: categories are evaluated top to bottom and the first matching
// pattern wins, so greeting beats open_app for "hey, open calculator".
func newIntentTable() []intentCategory {
	return []intentCategory{
		{action: "greeting", patterns: compilePatterns(
			`^(hi|hello|hey)\b`,
			`good\s+(morning|afternoon|evening)`,
		)},
		{action: "open_app", patterns: compilePatterns(
			`\bopen\b(?:\s+(.+))?`,
			`\blaunch\b(?:\s+(.+))?`,
			`\bstart\b(?:\s+(.+))?`,
			`\brun\b(?:\s+(.+))?`,
		)},
		{action: "close_app", patterns: compilePatterns(
			`\bclose\b(?:\s+(.+))?`,
			`\bquit\b(?:\s+(.+))?`,
			`\bexit\b(?:\s+(.+))?`,
			`\bstop\b(?:\s+(.+))?`,
		)},
		{action: "search", patterns: compilePatterns(
			`search\s+for\s+(.+)`,
			`find\s+(.+)`,
			`where\s+is\s+(.+)`,
			`locate\s+(.+)`,
		)},
		{action: "screenshot", patterns: compilePatterns(
			`take\s+a\s+screenshot`,
			`screenshot`,
			`capture\s+screen`,
		)},
		{action: "system_info", patterns: compilePatterns(
			`system\s+info`,
			`pc\s+status`,
			`system\s+status`,
			`computer\s+info`,
		)},
		{action: "help", patterns: compilePatterns(
			`help`,
			`what\s+can\s+you\s+do`,
			`commands`,
			`capabilities`,
		)},
	}
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// AIManager turns free-form utterances into classified actions. Pattern
// matching is pure and synchronous; only the Ollama fallback performs I/O,
// bounded by the client timeout.
type AIManager struct {
	ollamaClient *OllamaClient
	intents      []intentCategory
	systemPrompt string
}

// NewAIManager creates a command classifier. The Ollama client may be nil,
// in which case unmatched utterances get canned fallback responses.
func NewAIManager(client *OllamaClient) *AIManager {
	return &AIManager{
		ollamaClient: client,
		intents:      newIntentTable(),
		systemPrompt: "You are an AI assistant that helps manage a PC. You can open and close applications, search for files, take screenshots, and provide system information. Answer in one short sentence.",
	}
}

// ProcessCommand classifies an utterance. It never returns an error and
// never panics: responder failures degrade to canned responses, and the
// worst case is an action "error" result with zero confidence.
func (m *AIManager) ProcessCommand(command string) CommandResult {
	normalized := strings.ToLower(strings.TrimSpace(command))

	if result, ok := m.matchIntent(normalized); ok {
		return result
	}

	if m.ollamaClient != nil {
		response, err := m.ollamaClient.Generate(m.buildPrompt(normalized), m.systemPrompt)
		if err == nil && strings.TrimSpace(response) != "" {
			return m.parseResponderOutput(response)
		}
		if err != nil {
			fmt.Printf("Warning: responder unavailable, using fallback: %v\n", err)
		}
	}

	return m.fallbackResponse(normalized)
}

// matchIntent evaluates the ordered intent table against the normalized
// utterance and returns the first match
func (m *AIManager) matchIntent(command string) (CommandResult, bool) {
	for _, category := range m.intents {
		for _, pattern := range category.patterns {
			match := pattern.FindStringSubmatch(command)
			if match == nil {
				continue
			}

			if category.action == "greeting" {
				return CommandResult{
					Response:   "Hello! How can I help you?",
					Action:     "respond",
					Confidence: 0.95,
					Metadata:   map[string]interface{}{"pattern_matched": pattern.String()},
				}, true
			}

			target := ""
			if pattern.NumSubexp() > 0 {
				target = strings.TrimSpace(match[1])
			}

			// Launching or killing with a degenerate target would be
			// worse than asking again
			if (category.action == "open_app" || category.action == "close_app") && len(target) < 2 {
				return CommandResult{
					Response:   "Which application? Please say, for example, 'open calculator'.",
					Action:     "respond",
					Confidence: 0.7,
					Metadata:   map[string]interface{}{"pattern_matched": pattern.String()},
				}, true
			}

			return CommandResult{
				Response:   fmt.Sprintf("I'll %s for you.", strings.ReplaceAll(category.action, "_", " ")),
				Action:     category.action,
				Target:     target,
				Confidence: 0.9,
				Metadata:   map[string]interface{}{"pattern_matched": pattern.String()},
			}, true
		}
	}
	return CommandResult{}, false
}

func (m *AIManager) buildPrompt(command string) string {
	return fmt.Sprintf("User command: %s\nAssistant:", command)
}

// parseResponderOutput heuristically classifies the free-text output of
// the natural-language responder
func (m *AIManager) parseResponderOutput(response string) CommandResult {
	responseLower := strings.ToLower(response)

	action := "respond"
	target := ""

	switch {
	case containsAny(responseLower, "open", "launch", "start"):
		action = "open_app"
		target = extractAppTarget(response)
	case containsAny(responseLower, "close", "quit", "exit"):
		action = "close_app"
		target = extractAppTarget(response)
	case containsAny(responseLower, "search", "find", "locate"):
		action = "search"
		target = extractSearchTerm(response)
	case strings.Contains(responseLower, "screenshot"):
		action = "screenshot"
	case containsAny(responseLower, "system", "status", "info"):
		action = "system_info"
	}

	return CommandResult{
		Response:   response,
		Action:     action,
		Target:     target,
		Confidence: 0.7,
		Metadata:   map[string]interface{}{"llm_generated": true},
	}
}

// fallbackResponse produces the canned responses used when the responder
// is unavailable
func (m *AIManager) fallbackResponse(command string) CommandResult {
	switch {
	case containsAny(command, "hello", "hi", "hey"):
		return CommandResult{
			Response:   "Hello! I'm your assistant. How can I help you today?",
			Action:     "respond",
			Confidence: 0.8,
		}
	case strings.Contains(command, "help"):
		return CommandResult{
			Response:   "I can help you open applications, search for files, take screenshots, and manage your PC. What would you like me to do?",
			Action:     "help",
			Confidence: 0.9,
		}
	default:
		return CommandResult{
			Response:   "I understand you want me to help with something, but I'm having trouble processing that specific request. Could you try rephrasing it?",
			Action:     "respond",
			Confidence: 0.5,
		}
	}
}

// errorResult wraps an unexpected failure into a degraded-but-valid
// classification; nothing inside the engine is allowed to escalate
func errorResult(err error) CommandResult {
	return CommandResult{
		Response:   fmt.Sprintf("I encountered an error processing your command: %v", err),
		Action:     "error",
		Confidence: 0.0,
		Metadata:   map[string]interface{}{"error": err.Error()},
	}
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

var quotedTextPattern = regexp.MustCompile(`"([^"]+)"`)

var appTargetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)open\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)launch\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)start\s+([a-zA-Z0-9\s]+)`),
}

var searchTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)search\s+for\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)find\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)locate\s+([a-zA-Z0-9\s]+)`),
}

// extractAppTarget pulls an application name out of responder text:
// quoted text first, then open/launch/start phrases
func extractAppTarget(text string) string {
	if m := quotedTextPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, re := range appTargetPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractSearchTerm pulls a search term out of responder text
func extractSearchTerm(text string) string {
	for _, re := range searchTermPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
