package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newRootCommand builds the aura command tree. The bare command runs the
// interactive REPL; subcommands expose the engine for one-shot use and
// scripting.
func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "aura",
		Short:         "Aura - a voice/text command assistant that learns from you",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := NewAssistant(LoadSettings(configPath))
			if err != nil {
				return err
			}
			return runREPL(assistant)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	newEngine := func() (*Assistant, error) {
		return NewAssistant(LoadSettings(configPath))
	}

	rootCmd.AddCommand(newAskCommand(newEngine))
	rootCmd.AddCommand(newSuggestCommand(newEngine))
	rootCmd.AddCommand(newStatsCommand(newEngine))
	rootCmd.AddCommand(newPatternsCommand(newEngine))
	rootCmd.AddCommand(newPreferencesCommand(newEngine))
	rootCmd.AddCommand(newFeedbackCommand(newEngine))
	rootCmd.AddCommand(newHistoryCommand(newEngine))
	rootCmd.AddCommand(newResetCommand(newEngine))
	rootCmd.AddCommand(newExportCommand(newEngine))
	rootCmd.AddCommand(newImportCommand(newEngine))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

type engineFactory func() (*Assistant, error)

func newAskCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <utterance>",
		Short: "Classify and execute a single utterance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			result, output := assistant.HandleUtterance(strings.Join(args, " "))
			fmt.Println(result.Response)
			if output != "" {
				fmt.Println(output)
			}
			fmt.Printf("(action=%s target=%q confidence=%.2f)\n",
				result.Action, result.Target, result.Confidence)
			return nil
		},
	}
}

func newSuggestCommand(newEngine engineFactory) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest [partial input]",
		Short: "Suggest commands for partial input",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			printSuggestions(assistant.Learner().SuggestCommands(strings.Join(args, " "), limit))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of suggestions")
	return cmd
}

func newStatsCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			printStatistics(assistant.Learner().GetStatistics())
			if archive := assistant.Archive(); archive != nil {
				if count, err := archive.Count(); err == nil {
					fmt.Printf("Archived interactions: %d\n", count)
				}
			}
			return nil
		},
	}
}

func newPatternsCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the most frequently learned patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			stats := assistant.Learner().GetStatistics()
			if len(stats.MostLearnedPatterns) == 0 {
				fmt.Println("No patterns learned yet.")
				return nil
			}
			for _, p := range stats.MostLearnedPatterns {
				fmt.Printf("  %3dx %q\n", p.Frequency, p.Pattern)
			}
			return nil
		},
	}
}

func newPreferencesCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "preferences",
		Short: "Show learned user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			printPreferences(assistant.Learner().GetUserPreferences())
			return nil
		},
	}
}

func newFeedbackCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <pattern> <good|bad>",
		Short: "Adjust a learned pattern by feedback",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			feedback := args[1]
			if feedback != "good" && feedback != "bad" {
				return fmt.Errorf("feedback must be 'good' or 'bad', got %q", feedback)
			}

			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			if !assistant.Learner().ImprovePattern(args[0], feedback) {
				return fmt.Errorf("no such pattern: %q", args[0])
			}
			fmt.Printf("Pattern %q updated.\n", args[0])
			return nil
		},
	}
}

func newHistoryCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "history [term]",
		Short: "Search the long-term interaction archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			printArchivedHistory(assistant, strings.Join(args, " "))
			return nil
		},
	}
}

func newResetCommand(newEngine engineFactory) *cobra.Command {
	var keepRecent bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear learned patterns, counters and preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			assistant.Learner().ClearLearningData(keepRecent)
			fmt.Println("Learning data cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepRecent, "keep-recent", true, "retain the last 100 history records")
	return cmd
}

func newExportCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export learning data for backup or migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			if err := assistant.Learner().Export(args[0]); err != nil {
				return err
			}
			fmt.Printf("Learning data exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import learning data from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := newEngine()
			if err != nil {
				return err
			}
			defer assistant.Close()

			if err := assistant.Learner().Import(args[0]); err != nil {
				return err
			}
			fmt.Printf("Learning data imported from %s\n", args[0])
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(GetVersionInfo())
		},
	}
}
