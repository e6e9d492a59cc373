package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Assistant wires the classifier, the learner and the action executor
// together. One instance per process, passed explicitly; there is no
// ambient singleton.
type Assistant struct {
	settings   *Settings
	aiManager  *AIManager
	learner    *CommandLearner
	controller *SystemController
	archive    *HistoryArchive
}

// NewAssistant constructs the full engine from settings. Persistence and
// archive failures degrade to in-memory operation with a warning.
func NewAssistant(settings *Settings) (*Assistant, error) {
	if settings == nil {
		settings = DefaultSettings()
	}

	store, err := NewLearningStore(settings.App.DataDir)
	if err != nil {
		fmt.Printf("Warning: learning data will not be persisted: %v\n", err)
		store = nil
	}

	learner := NewCommandLearner(store)
	learner.SetLearningEnabled(settings.Learning.Enabled)

	var archive *HistoryArchive
	if settings.Learning.ArchiveEnabled {
		archive, err = NewHistoryArchive(filepath.Join(settings.App.DataDir, "interactions.db"))
		if err != nil {
			fmt.Printf("Warning: interaction archive disabled: %v\n", err)
		} else {
			learner.SetArchive(archive)
		}
	}

	var client *OllamaClient
	if settings.AI.Enabled {
		client = NewOllamaClient(settings.AI.OllamaURL, settings.AI.Model,
			time.Duration(settings.AI.TimeoutSeconds)*time.Second)
		if !client.IsAvailable() {
			fmt.Printf("Warning: Ollama not reachable at %s, using built-in responses only\n",
				settings.AI.OllamaURL)
		} else if ok, err := client.CheckModelAvailability(); err == nil && !ok {
			fmt.Printf("Warning: model %s not found on the Ollama server\n", settings.AI.Model)
		}
	}

	return &Assistant{
		settings:  settings,
		aiManager: NewAIManager(client),
		learner:   learner,
		controller: NewSystemController(settings.System.SearchDepth,
			time.Duration(settings.System.SearchTimeoutSeconds)*time.Second),
		archive: archive,
	}, nil
}

// HandleUtterance runs the full loop for one utterance: classify, execute
// the resolved action, learn from the outcome, and return what to show
// the user. It never returns an error; failures become degraded results.
func (a *Assistant) HandleUtterance(input string) (CommandResult, string) {
	result := a.aiManager.ProcessCommand(input)

	output, err := a.controller.Execute(result.Action, result.Target)
	success := err == nil

	if err != nil {
		if errors.Is(err, errUnknownAction) {
			result = errorResult(err)
		}
		output = fmt.Sprintf("Sorry, that didn't work: %v", err)
	}

	a.learner.LearnFromCommand(input, result.Action, success, result.Response, result.Metadata)

	return result, output
}

// Learner exposes the learning engine for suggestion/statistics queries
func (a *Assistant) Learner() *CommandLearner {
	return a.learner
}

// AIManager exposes the classifier
func (a *Assistant) AIManager() *AIManager {
	return a.aiManager
}

// Archive exposes the long-term interaction archive; may be nil
func (a *Assistant) Archive() *HistoryArchive {
	return a.archive
}

// Close flushes learning state and releases resources
func (a *Assistant) Close() {
	a.learner.Cleanup()
	if a.archive != nil {
		a.archive.Close()
	}
}
