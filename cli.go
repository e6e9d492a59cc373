package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runREPL drives the interactive assistant loop: read an utterance,
// classify it, execute the action, speak the response, learn from the
// outcome
func runREPL(assistant *Assistant) error {
	fmt.Printf("Welcome to %s %s. Type 'help' to see what I can do.\n\n",
		assistant.settings.App.Name, GetVersionShort())

	historyFile := filepath.Join(assistant.settings.App.DataDir, "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "aura> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryLimit:      500,
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %v", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C at the prompt just clears the line
				continue
			}
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				break
			}
			fmt.Println("Error reading input:", err)
			continue
		}

		command := strings.TrimSpace(input)
		if command == "" {
			continue
		}

		if command == "exit" || command == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		// Shell-internal commands are prefixed with ':' and bypass
		// classification
		if strings.HasPrefix(command, ":") {
			handleInternalCommand(assistant, command)
			continue
		}

		result, output := assistant.HandleUtterance(command)
		fmt.Println(result.Response)
		if output != "" {
			fmt.Println(output)
		}
		if result.Action == "help" {
			showAssistantHelp()
		}
	}

	assistant.Close()
	return nil
}

// handleInternalCommand dispatches the ':' commands of the REPL
func handleInternalCommand(assistant *Assistant, command string) {
	parts := strings.Fields(command)

	switch parts[0] {
	case ":help":
		showAssistantHelp()
	case ":stats":
		printStatistics(assistant.Learner().GetStatistics())
	case ":suggest":
		partial := strings.TrimSpace(strings.TrimPrefix(command, ":suggest"))
		printSuggestions(assistant.Learner().SuggestCommands(partial, 10))
	case ":prefs":
		printPreferences(assistant.Learner().GetUserPreferences())
	case ":history":
		term := strings.TrimSpace(strings.TrimPrefix(command, ":history"))
		printArchivedHistory(assistant, term)
	case ":version":
		fmt.Println(GetVersionInfo())
	default:
		fmt.Printf("Unknown command %s. Try :help.\n", parts[0])
	}
}

func printStatistics(stats CommandStatistics) {
	fmt.Printf("Commands learned:   %d (%d successful, %.2f%% overall)\n",
		stats.TotalCommands, stats.SuccessfulCommands, stats.OverallSuccessRate)
	fmt.Printf("Patterns learned:   %d\n", stats.TotalPatterns)

	if len(stats.ActionStatistics) > 0 {
		fmt.Println("Per-action:")
		for action, as := range stats.ActionStatistics {
			fmt.Printf("  %-12s %d/%d (%.1f%%)\n", action, as.Successful, as.Total, as.SuccessRate)
		}
	}

	if len(stats.MostUsedCommands) > 0 {
		fmt.Println("Most used commands:")
		for _, entry := range stats.MostUsedCommands {
			fmt.Printf("  %3dx %s\n", entry.Count, entry.Key)
		}
	}
}

func printSuggestions(suggestions []CommandSuggestion) {
	if len(suggestions) == 0 {
		fmt.Println("No suggestions yet. Aura learns as you use it.")
		return
	}
	for i, s := range suggestions {
		extra := ""
		if s.Type == "pattern_match" {
			extra = fmt.Sprintf(" (used %dx, %.0f%% success)", s.Frequency, s.SuccessRate*100)
		}
		fmt.Printf("%2d. [%.2f] %s%s\n", i+1, s.Confidence, s.Command, extra)
	}
}

// printArchivedHistory searches the long-term interaction archive
func printArchivedHistory(assistant *Assistant, term string) {
	archive := assistant.Archive()
	if archive == nil {
		fmt.Println("The interaction archive is disabled.")
		return
	}
	records, err := archive.Search(term, 20)
	if err != nil {
		fmt.Println("Error searching archive:", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("No archived interactions match.")
		return
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "failed"
		}
		fmt.Printf("  %s  [%s/%s] %s\n", rec.DateTime, rec.Action, status, rec.Command)
	}
}

func printPreferences(prefs UserPreferences) {
	printCountSection := func(title string, entries []CountEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Println(title)
		for _, entry := range entries {
			fmt.Printf("  %3dx %s\n", entry.Count, entry.Key)
		}
	}
	printCountSection("Preferred applications:", prefs.PreferredApps)
	printCountSection("Frequent commands:", prefs.CommandPreferences)
	printCountSection("Frequent actions:", prefs.ActionPreferences)
}
