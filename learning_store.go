package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LearningStore serializes the interaction history and the pattern table
// to two independent JSON documents under the data directory. A missing or
// corrupt document is never fatal on load.
type LearningStore struct {
	dataDir      string
	historyPath  string
	patternsPath string
}

type exportPreferences struct {
	PreferredApps      map[string]int `json:"preferred_apps"`
	CommandPreferences map[string]int `json:"command_preferences"`
	ActionPreferences  map[string]int `json:"action_preferences"`
}

// ExportData is the superset dump written by Export: everything the
// learner holds, including the counters the normal documents omit
type ExportData struct {
	CommandHistory   []CommandRecord            `json:"command_history"`
	LearnedPatterns  map[string]*LearnedPattern `json:"learned_patterns"`
	CommandFrequency map[string]int             `json:"command_frequency"`
	SuccessRates     map[string][]bool          `json:"success_rates"`
	UserPreferences  exportPreferences          `json:"user_preferences"`
	ExportTimestamp  float64                    `json:"export_timestamp"`
	ExportDatetime   string                     `json:"export_datetime"`
}

// NewLearningStore creates a store rooted at dataDir, creating the
// directory if needed
func NewLearningStore(dataDir string) (*LearningStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	return &LearningStore{
		dataDir:      dataDir,
		historyPath:  filepath.Join(dataDir, "command_history.json"),
		patternsPath: filepath.Join(dataDir, "learned_patterns.json"),
	}, nil
}

// Save writes a full snapshot of both documents. It is idempotent; callers
// serialize access.
func (ls *LearningStore) Save(history []CommandRecord, patterns map[string]*LearnedPattern) error {
	if history == nil {
		history = []CommandRecord{}
	}
	historyData, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %v", err)
	}
	if err := os.WriteFile(ls.historyPath, historyData, 0644); err != nil {
		return fmt.Errorf("failed to save history: %v", err)
	}

	if patterns == nil {
		patterns = map[string]*LearnedPattern{}
	}
	patternsData, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal patterns: %v", err)
	}
	if err := os.WriteFile(ls.patternsPath, patternsData, 0644); err != nil {
		return fmt.Errorf("failed to save patterns: %v", err)
	}

	return nil
}

// Load reads both documents. Missing files yield empty state; a corrupt
// file yields empty state for that document plus a non-nil error the
// caller may log. Startup must never abort on this.
func (ls *LearningStore) Load() ([]CommandRecord, map[string]*LearnedPattern, error) {
	var history []CommandRecord
	var patterns map[string]*LearnedPattern
	var loadErr error

	if data, err := os.ReadFile(ls.historyPath); err == nil {
		if err := json.Unmarshal(data, &history); err != nil {
			history = nil
			loadErr = fmt.Errorf("corrupt history document: %v", err)
		}
	}

	if data, err := os.ReadFile(ls.patternsPath); err == nil {
		if err := json.Unmarshal(data, &patterns); err != nil {
			patterns = nil
			loadErr = fmt.Errorf("corrupt patterns document: %v", err)
		}
	}

	if patterns == nil {
		patterns = make(map[string]*LearnedPattern)
	}
	return history, patterns, loadErr
}

// Export writes the superset dump to path
func (ls *LearningStore) Export(path string, data ExportData) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export data: %v", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %v", err)
	}
	return nil
}

// Import reads a superset dump previously written by Export
func (ls *LearningStore) Import(path string) (ExportData, error) {
	var data ExportData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("failed to read import file: %v", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("failed to parse import file: %v", err)
	}
	return data, nil
}
