package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// MaxHistorySize bounds the in-memory interaction history
	MaxHistorySize = 1000

	// Commands longer than this many words are skipped by the pattern miner
	maxPatternWords = 50

	// Minimum similarity ratio for history-based suggestions
	similarityThreshold = 0.7

	// Number of history records kept by ClearLearningData(keepRecent=true)
	recentHistorySize = 100

	// Every saveInterval-th learned record triggers a persistence flush
	saveInterval = 10
)

// CommandRecord is one observed interaction: what the user said, what was
// done about it, and whether it worked
type CommandRecord struct {
	Command   string                 `json:"command"`
	Action    string                 `json:"action"`
	Success   bool                   `json:"success"`
	Response  string                 `json:"response,omitempty"`
	Timestamp float64                `json:"timestamp"`
	DateTime  string                 `json:"datetime"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// LearnedPattern holds the statistics for one n-gram mined from
// successful commands
type LearnedPattern struct {
	Action       string   `json:"action"`
	Frequency    int      `json:"frequency"`
	SuccessRate  float64  `json:"success_rate"`
	Examples     []string `json:"examples"`
	CreatedAt    float64  `json:"created_at"`
	LastModified float64  `json:"last_modified,omitempty"`
}

// CommandSuggestion is a single ranked suggestion for partial input
type CommandSuggestion struct {
	Command       string  `json:"command"`
	Action        string  `json:"action,omitempty"`
	Confidence    float64 `json:"confidence"`
	Type          string  `json:"type"`
	Frequency     int     `json:"frequency,omitempty"`
	SuccessRate   float64 `json:"success_rate,omitempty"`
	Success       bool    `json:"success,omitempty"`
	RecentSuccess bool    `json:"recent_success,omitempty"`
}

// CountEntry pairs a counted key with its frequency, ordered most
// frequent first in the views that use it
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ActionStats summarizes outcomes for one resolved action
type ActionStats struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	SuccessRate float64 `json:"success_rate"`
}

// PatternSummary is a pattern with its frequency, for statistics views
type PatternSummary struct {
	Pattern   string `json:"pattern"`
	Frequency int    `json:"frequency"`
}

// CommandStatistics is the aggregate view over everything learned so far
type CommandStatistics struct {
	TotalCommands       int                    `json:"total_commands"`
	SuccessfulCommands  int                    `json:"successful_commands"`
	OverallSuccessRate  float64                `json:"overall_success_rate"`
	ActionStatistics    map[string]ActionStats `json:"action_statistics"`
	MostUsedCommands    []CountEntry           `json:"most_used_commands"`
	MostLearnedPatterns []PatternSummary       `json:"most_learned_patterns"`
	TotalPatterns       int                    `json:"total_patterns"`
	LearningEnabled     bool                   `json:"learning_enabled"`
}

// UserPreferences holds the frequency-ranked preference views, top 10 each
type UserPreferences struct {
	PreferredApps      []CountEntry `json:"preferred_apps"`
	CommandPreferences []CountEntry `json:"command_preferences"`
	ActionPreferences  []CountEntry `json:"action_preferences"`
}

// appNamePatterns extract an application name from a successful open_app
// command for the preference counters
var appNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)open\s+(.+)`),
	regexp.MustCompile(`(?i)launch\s+(.+)`),
	regexp.MustCompile(`(?i)start\s+(.+)`),
	regexp.MustCompile(`(?i)run\s+(.+)`),
}

// CommandLearner owns the interaction history, the mined pattern table and
// the user preference counters. All mutations go through its mutex; the
// periodic persistence flush runs off the caller's path.
type CommandLearner struct {
	history          []CommandRecord
	patterns         map[string]*LearnedPattern
	commandFrequency map[string]int
	successRates     map[string][]bool
	preferredApps    map[string]int
	commandPrefs     map[string]int
	actionPrefs      map[string]int

	store   *LearningStore
	archive *HistoryArchive

	learningEnabled bool
	mutex           sync.RWMutex
	saveMutex       sync.Mutex
	saveGroup       sync.WaitGroup
}

// NewCommandLearner creates a learner backed by the given store and loads
// any previously persisted state. A corrupt or missing store is not fatal:
// the learner starts empty.
func NewCommandLearner(store *LearningStore) *CommandLearner {
	cl := &CommandLearner{
		patterns:         make(map[string]*LearnedPattern),
		commandFrequency: make(map[string]int),
		successRates:     make(map[string][]bool),
		preferredApps:    make(map[string]int),
		commandPrefs:     make(map[string]int),
		actionPrefs:      make(map[string]int),
		store:            store,
		learningEnabled:  true,
	}

	if store != nil {
		history, patterns, err := store.Load()
		if err != nil {
			fmt.Printf("Warning: failed to load learning data: %v\n", err)
		}
		cl.history = history
		if patterns != nil {
			cl.patterns = patterns
		}

		// Rebuild the counters the persisted documents do not carry
		for _, rec := range cl.history {
			cl.commandFrequency[strings.ToLower(rec.Command)]++
			cl.successRates[rec.Action] = append(cl.successRates[rec.Action], rec.Success)
		}
	}

	return cl
}

// SetArchive attaches a long-term interaction archive. Records are appended
// to it as they are learned, so they outlive the bounded in-memory history.
func (cl *CommandLearner) SetArchive(archive *HistoryArchive) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.archive = archive
}

// SetLearningEnabled toggles learning without discarding state
func (cl *CommandLearner) SetLearningEnabled(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.learningEnabled = enabled
}

// LearnFromCommand records one observed (command, action, success) triple,
// updates the frequency counters and preferences, mines n-gram patterns
// from successful commands, and flushes state every 10th record.
func (cl *CommandLearner) LearnFromCommand(command string, action string, success bool, response string, metadata map[string]interface{}) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	if !cl.learningEnabled {
		return
	}

	now := time.Now()
	record := CommandRecord{
		Command:   command,
		Action:    action,
		Success:   success,
		Response:  response,
		Timestamp: float64(now.UnixNano()) / 1e9,
		DateTime:  now.Format(time.RFC3339),
		Metadata:  metadata,
	}

	cl.history = append(cl.history, record)
	cl.commandFrequency[strings.ToLower(command)]++
	cl.successRates[action] = append(cl.successRates[action], success)

	// Patterns only come into existence from successful commands
	if success {
		cl.extractPatterns(command, action)
	}

	cl.updatePreferences(command, action, success)

	if len(cl.history) > MaxHistorySize {
		cl.history = cl.history[len(cl.history)-MaxHistorySize:]
	}

	if cl.archive != nil {
		rec := record
		cl.saveGroup.Add(1)
		go func() {
			defer cl.saveGroup.Done()
			if err := cl.archive.Append(rec); err != nil {
				fmt.Printf("Warning: failed to archive interaction: %v\n", err)
			}
		}()
	}

	if len(cl.history)%saveInterval == 0 {
		cl.scheduleSaveLocked()
	}
}

// extractPatterns mines every 2..5-word n-gram from the command and
// recomputes each touched pattern's success rate over the full history.
// Containment is substring-based, not token-based; that matches how the
// rates were defined originally and the persisted values depend on it.
func (cl *CommandLearner) extractPatterns(command string, action string) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(command)))
	if len(words) < 2 || len(words) > maxPatternWords {
		return
	}

	now := float64(time.Now().UnixNano()) / 1e9

	for n := 2; n <= 5 && n <= len(words); n++ {
		for i := 0; i+n <= len(words); i++ {
			key := strings.Join(words[i:i+n], " ")

			pattern, exists := cl.patterns[key]
			if !exists {
				pattern = &LearnedPattern{
					Action:    action,
					Examples:  make([]string, 0),
					CreatedAt: now,
				}
				cl.patterns[key] = pattern
			}

			pattern.Frequency++
			pattern.Examples = append(pattern.Examples, command)
			if len(pattern.Examples) > 10 {
				pattern.Examples = pattern.Examples[len(pattern.Examples)-10:]
			}

			successes, total := 0, 0
			for _, rec := range cl.history {
				if strings.Contains(strings.ToLower(rec.Command), key) {
					total++
					if rec.Success {
						successes++
					}
				}
			}
			if total > 0 {
				pattern.SuccessRate = float64(successes) / float64(total)
			}
		}
	}
}

// updatePreferences maintains the three preference counters
func (cl *CommandLearner) updatePreferences(command string, action string, success bool) {
	if action == "open_app" && success {
		if app := extractAppName(command); app != "" {
			cl.preferredApps[app]++
		}
	}
	cl.commandPrefs[strings.ToLower(command)]++
	cl.actionPrefs[action]++
}

// extractAppName pulls an application name out of an open/launch/start/run
// command; empty string when none is found
func extractAppName(command string) string {
	for _, re := range appNamePatterns {
		if m := re.FindStringSubmatch(command); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// SuggestCommands returns up to limit ranked suggestions for partial input.
// Empty input yields the popularity view; otherwise learned patterns
// containing the input and historically similar commands are merged and
// sorted by (confidence, frequency) descending.
func (cl *CommandLearner) SuggestCommands(partial string, limit int) []CommandSuggestion {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	if strings.TrimSpace(partial) == "" {
		return cl.popularCommandsLocked(limit)
	}

	partialLower := strings.ToLower(strings.TrimSpace(partial))
	suggestions := make([]CommandSuggestion, 0)

	for key, data := range cl.patterns {
		if strings.Contains(key, partialLower) {
			suggestions = append(suggestions, CommandSuggestion{
				Command:     key,
				Action:      data.Action,
				Confidence:  patternConfidence(data),
				Type:        "pattern_match",
				Frequency:   data.Frequency,
				SuccessRate: data.SuccessRate,
			})
		}
	}

	for _, rec := range cl.history {
		cmdLower := strings.ToLower(rec.Command)
		if cmdLower == "" || cmdLower == partialLower {
			continue
		}
		ratio := sequenceRatio(partialLower, cmdLower)
		if ratio >= similarityThreshold {
			suggestions = append(suggestions, CommandSuggestion{
				Command:    rec.Command,
				Action:     rec.Action,
				Confidence: ratio,
				Type:       "similarity_match",
				Success:    rec.Success,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Frequency > suggestions[j].Frequency
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// popularCommandsLocked builds the popularity view: the most frequent
// commands used more than once, flagged with whether the last 50 records
// contain a successful run. Caller holds at least a read lock.
func (cl *CommandLearner) popularCommandsLocked(limit int) []CommandSuggestion {
	ranked := rankCounts(cl.commandFrequency, limit)

	recent := cl.history
	if len(recent) > 50 {
		recent = recent[len(recent)-50:]
	}

	popular := make([]CommandSuggestion, 0, len(ranked))
	for _, entry := range ranked {
		if entry.Count <= 1 {
			continue
		}
		recentSuccess := false
		for _, rec := range recent {
			if strings.ToLower(rec.Command) == entry.Key && rec.Success {
				recentSuccess = true
				break
			}
		}
		popular = append(popular, CommandSuggestion{
			Command:       entry.Key,
			Frequency:     entry.Count,
			Confidence:    min(float64(entry.Count)/10.0, 1.0),
			Type:          "popular",
			RecentSuccess: recentSuccess,
		})
	}
	return popular
}

// patternConfidence blends frequency and success rate into a [0,1] score
func patternConfidence(p *LearnedPattern) float64 {
	return min(float64(p.Frequency)*0.3+p.SuccessRate*0.7, 1.0)
}

// rankCounts returns the top entries of a counter, highest count first.
// Ties break lexicographically so the ordering is deterministic.
func rankCounts(counts map[string]int, limit int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, CountEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// GetStatistics returns the aggregate learning statistics view
func (cl *CommandLearner) GetStatistics() CommandStatistics {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	total := len(cl.history)
	successful := 0
	for _, rec := range cl.history {
		if rec.Success {
			successful++
		}
	}

	overallRate := 0.0
	if total > 0 {
		overallRate = roundTo(float64(successful)/float64(total)*100, 2)
	}

	actionStats := make(map[string]ActionStats, len(cl.successRates))
	for action, outcomes := range cl.successRates {
		wins := 0
		for _, ok := range outcomes {
			if ok {
				wins++
			}
		}
		rate := 0.0
		if len(outcomes) > 0 {
			rate = float64(wins) / float64(len(outcomes)) * 100
		}
		actionStats[action] = ActionStats{
			Total:       len(outcomes),
			Successful:  wins,
			SuccessRate: rate,
		}
	}

	type patternFreq struct {
		key  string
		freq int
	}
	ranked := make([]patternFreq, 0, len(cl.patterns))
	for key, p := range cl.patterns {
		ranked = append(ranked, patternFreq{key, p.Frequency})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].freq != ranked[j].freq {
			return ranked[i].freq > ranked[j].freq
		}
		return ranked[i].key < ranked[j].key
	})
	topPatterns := make([]PatternSummary, 0, 10)
	for i, pf := range ranked {
		if i >= 10 {
			break
		}
		topPatterns = append(topPatterns, PatternSummary{Pattern: pf.key, Frequency: pf.freq})
	}

	return CommandStatistics{
		TotalCommands:       total,
		SuccessfulCommands:  successful,
		OverallSuccessRate:  overallRate,
		ActionStatistics:    actionStats,
		MostUsedCommands:    rankCounts(cl.commandFrequency, 10),
		MostLearnedPatterns: topPatterns,
		TotalPatterns:       len(cl.patterns),
		LearningEnabled:     cl.learningEnabled,
	}
}

// GetUserPreferences returns the frequency-ranked preference views
func (cl *CommandLearner) GetUserPreferences() UserPreferences {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	return UserPreferences{
		PreferredApps:      rankCounts(cl.preferredApps, 10),
		CommandPreferences: rankCounts(cl.commandPrefs, 10),
		ActionPreferences:  rankCounts(cl.actionPrefs, 10),
	}
}

// ImprovePattern nudges a pattern's success rate by user feedback:
// "good" adds 0.1, "bad" subtracts 0.1, both clamped to [0,1]. Returns
// false when the pattern does not exist.
func (cl *CommandLearner) ImprovePattern(pattern string, feedback string) bool {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	data, exists := cl.patterns[pattern]
	if !exists {
		return false
	}

	switch feedback {
	case "good":
		data.SuccessRate = min(data.SuccessRate+0.1, 1.0)
	case "bad":
		data.SuccessRate = max(data.SuccessRate-0.1, 0.0)
	}
	data.LastModified = float64(time.Now().UnixNano()) / 1e9

	cl.scheduleSaveLocked()
	return true
}

// ClearLearningData drops patterns, counters and preferences. With
// keepRecent it retains the last 100 history records, otherwise everything
// goes. The cleared state is persisted before returning.
func (cl *CommandLearner) ClearLearningData(keepRecent bool) bool {
	cl.mutex.Lock()

	if keepRecent && len(cl.history) > recentHistorySize {
		cl.history = cl.history[len(cl.history)-recentHistorySize:]
	} else if !keepRecent {
		cl.history = nil
	}

	cl.patterns = make(map[string]*LearnedPattern)
	cl.commandFrequency = make(map[string]int)
	cl.successRates = make(map[string][]bool)
	cl.preferredApps = make(map[string]int)
	cl.commandPrefs = make(map[string]int)
	cl.actionPrefs = make(map[string]int)

	history, patterns := cl.snapshotLocked()
	cl.mutex.Unlock()

	if cl.store != nil {
		cl.saveMutex.Lock()
		defer cl.saveMutex.Unlock()
		if err := cl.store.Save(history, patterns); err != nil {
			fmt.Printf("Warning: failed to save cleared learning data: %v\n", err)
		}
	}
	return true
}

// Save flushes a full snapshot synchronously; false when the write failed
func (cl *CommandLearner) Save() bool {
	if cl.store == nil {
		return false
	}

	cl.mutex.RLock()
	history, patterns := cl.snapshotLocked()
	cl.mutex.RUnlock()

	cl.saveMutex.Lock()
	defer cl.saveMutex.Unlock()
	if err := cl.store.Save(history, patterns); err != nil {
		fmt.Printf("Warning: failed to save learning data: %v\n", err)
		return false
	}
	return true
}

// Export writes the superset dump (history, patterns, counters,
// preferences) used for backup and migration
func (cl *CommandLearner) Export(path string) error {
	cl.mutex.RLock()
	history, patterns := cl.snapshotLocked()
	frequency := make(map[string]int, len(cl.commandFrequency))
	for k, v := range cl.commandFrequency {
		frequency[k] = v
	}
	rates := make(map[string][]bool, len(cl.successRates))
	for k, v := range cl.successRates {
		rates[k] = append([]bool(nil), v...)
	}
	prefs := exportPreferences{
		PreferredApps:      copyCounts(cl.preferredApps),
		CommandPreferences: copyCounts(cl.commandPrefs),
		ActionPreferences:  copyCounts(cl.actionPrefs),
	}
	cl.mutex.RUnlock()

	if cl.store == nil {
		return fmt.Errorf("no learning store configured")
	}
	return cl.store.Export(path, ExportData{
		CommandHistory:   history,
		LearnedPatterns:  patterns,
		CommandFrequency: frequency,
		SuccessRates:     rates,
		UserPreferences:  prefs,
		ExportTimestamp:  float64(time.Now().UnixNano()) / 1e9,
		ExportDatetime:   time.Now().Format(time.RFC3339),
	})
}

// Import restores a superset dump produced by Export, replacing the
// current in-memory state
func (cl *CommandLearner) Import(path string) error {
	if cl.store == nil {
		return fmt.Errorf("no learning store configured")
	}
	data, err := cl.store.Import(path)
	if err != nil {
		return err
	}

	cl.mutex.Lock()
	cl.history = data.CommandHistory
	if len(cl.history) > MaxHistorySize {
		cl.history = cl.history[len(cl.history)-MaxHistorySize:]
	}
	cl.patterns = data.LearnedPatterns
	if cl.patterns == nil {
		cl.patterns = make(map[string]*LearnedPattern)
	}
	cl.commandFrequency = data.CommandFrequency
	if cl.commandFrequency == nil {
		cl.commandFrequency = make(map[string]int)
	}
	cl.successRates = data.SuccessRates
	if cl.successRates == nil {
		cl.successRates = make(map[string][]bool)
	}
	cl.preferredApps = data.UserPreferences.PreferredApps
	if cl.preferredApps == nil {
		cl.preferredApps = make(map[string]int)
	}
	cl.commandPrefs = data.UserPreferences.CommandPreferences
	if cl.commandPrefs == nil {
		cl.commandPrefs = make(map[string]int)
	}
	cl.actionPrefs = data.UserPreferences.ActionPreferences
	if cl.actionPrefs == nil {
		cl.actionPrefs = make(map[string]int)
	}
	cl.scheduleSaveLocked()
	cl.mutex.Unlock()
	return nil
}

// HistoryLen returns the current number of in-memory history records
func (cl *CommandLearner) HistoryLen() int {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()
	return len(cl.history)
}

// PatternCount returns the current number of learned patterns
func (cl *CommandLearner) PatternCount() int {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()
	return len(cl.patterns)
}

// Pattern returns a copy of one learned pattern, if present
func (cl *CommandLearner) Pattern(key string) (LearnedPattern, bool) {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()
	p, ok := cl.patterns[key]
	if !ok {
		return LearnedPattern{}, false
	}
	out := *p
	out.Examples = append([]string(nil), p.Examples...)
	return out, true
}

// Wait blocks until all background flushes have completed
func (cl *CommandLearner) Wait() {
	cl.saveGroup.Wait()
}

// Cleanup flushes outstanding state; call on shutdown
func (cl *CommandLearner) Cleanup() {
	cl.Save()
	cl.Wait()
}

// snapshotLocked copies the history and pattern table so serialization
// never observes a torn write. Caller holds the mutex.
func (cl *CommandLearner) snapshotLocked() ([]CommandRecord, map[string]*LearnedPattern) {
	history := append([]CommandRecord(nil), cl.history...)
	patterns := make(map[string]*LearnedPattern, len(cl.patterns))
	for key, p := range cl.patterns {
		cp := *p
		cp.Examples = append([]string(nil), p.Examples...)
		patterns[key] = &cp
	}
	return history, patterns
}

// scheduleSaveLocked dispatches a snapshot flush to a background goroutine
// so learning never stalls on disk latency. Caller holds the mutex.
func (cl *CommandLearner) scheduleSaveLocked() {
	if cl.store == nil {
		return
	}
	history, patterns := cl.snapshotLocked()
	cl.saveGroup.Add(1)
	go func() {
		defer cl.saveGroup.Done()
		cl.saveMutex.Lock()
		defer cl.saveMutex.Unlock()
		if err := cl.store.Save(history, patterns); err != nil {
			fmt.Printf("Warning: failed to save learning data: %v\n", err)
		}
	}()
}

func copyCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func roundTo(value float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(value*shift+0.5)) / shift
}
