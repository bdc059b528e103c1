package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"daylog/internal/app"
	"daylog/internal/apperr"
	"daylog/internal/config"
	"daylog/internal/journal"
	"daylog/internal/mcpserver"
	"daylog/internal/storage"
	"daylog/internal/timeline"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	app.SetupLogging(cfg)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// userError replaces err with its user-facing message.
func userError(err error) error {
	return fmt.Errorf("%s", apperr.Message(err))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var rootCmd = &cobra.Command{
	Use:          "daylog",
	Short:        "Personal daily journal: health metrics, daily notes and categorized entries",
	SilenceUsage: true,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync health metrics for the last N days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Journal.SyncMetrics(cmd.Context(), days)
		if err != nil {
			return userError(err)
		}
		fmt.Printf("Synced %d of %d days (%d failed)\n", report.Synced, report.Days, report.Failed)
		return nil
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [YYYY-MM-DD]",
	Short: "Import a daily note (today by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var note *storage.NoteRecord
		if len(args) == 0 {
			note, err = a.Journal.IngestToday(cmd.Context())
		} else {
			day, parseErr := journal.ParseDateKey(args[0])
			if parseErr != nil {
				return parseErr
			}
			note, err = a.Journal.IngestDay(cmd.Context(), day)
		}
		if err != nil {
			return userError(err)
		}
		fmt.Printf("Imported %s (%d characters)\n", note.Filename, len(note.RawText))
		return nil
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Import every daily note in the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := optionalDay(cmd, "from")
		if err != nil {
			return err
		}
		to, err := optionalDay(cmd, "to")
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Journal.Backfill(cmd.Context(), from, to)
		if err != nil {
			return userError(err)
		}
		fmt.Printf("Imported %d of %d notes (%d failed)\n", report.Ingested, report.Days, report.Failed)
		return nil
	},
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize today's note into journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Journal.CategorizeLastNote(cmd.Context())
		if err != nil {
			return userError(err)
		}
		fmt.Printf("Parsed %d categories.\n", result.Parsed)
		if result.Skipped > 0 {
			fmt.Printf("Skipped %d unknown categories.\n", result.Skipped)
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show categorized entries by week",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *journal.Category
		if raw, _ := cmd.Flags().GetString("category"); raw != "" {
			category, err := journal.ParseCategory(raw)
			if err != nil {
				return err
			}
			filter = &category
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		weeks, err := a.Journal.Timeline(cmd.Context(), filter)
		if err != nil {
			return userError(err)
		}
		printTimeline(weeks)
		return nil
	},
}

func printTimeline(weeks []timeline.WeekGroup) {
	if len(weeks) == 0 {
		fmt.Println("No entries found.")
		return
	}
	for _, w := range weeks {
		fmt.Println(w.DisplayRange())
		for _, d := range w.Days {
			fmt.Printf("  %s\n", d.DisplayDate())
			for _, e := range d.Entries {
				fmt.Printf("    %-8s %s\n", e.Category.DisplayName(), e.Content)
			}
		}
	}
}

var dayCmd = &cobra.Command{
	Use:   "day YYYY-MM-DD",
	Short: "Show everything recorded for one day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := journal.ParseDateKey(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		detail, err := a.Journal.DayDetail(cmd.Context(), day)
		if err != nil {
			return userError(err)
		}
		return printJSON(detail)
	},
}

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check the categorization API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Journal.ValidateCredentials(cmd.Context()); err != nil {
			return userError(err)
		}
		fmt.Println("API key is valid.")
		return nil
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the journal tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return mcpserver.New(a.Journal, version).ServeStdio()
	},
}

func optionalDay(cmd *cobra.Command, name string) (journal.DateKey, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return journal.DateKey{}, nil
	}
	day, err := journal.ParseDateKey(raw)
	if err != nil {
		return journal.DateKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return day, nil
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().IntP("days", "d", 0, "Window size in days (0 uses SYNC_WINDOW_DAYS)")

	rootCmd.AddCommand(ingestCmd)

	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().String("from", "", "First day to import (YYYY-MM-DD)")
	backfillCmd.Flags().String("to", "", "Last day to import (YYYY-MM-DD)")

	rootCmd.AddCommand(categorizeCmd)

	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().StringP("category", "c", "", "Only show one category")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(validateKeyCmd)
	rootCmd.AddCommand(mcpCmd)
}
