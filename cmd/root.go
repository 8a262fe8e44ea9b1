// Package cmd defines the vocab-app command tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nosakar/vocab-app/internal/app"
	"github.com/nosakar/vocab-app/internal/config"
	"github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/reminder"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/vocab"
)

var rootCmd = &cobra.Command{
	Use:   "vocab-app",
	Short: "Terminal vocabulary drill with spaced-repetition reminders",
	Long: "Vocab drills a word list in the terminal, keeps a persistent queue of " +
		"words you got wrong, and reminds you to review them on a spaced schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VOCAB_APP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().String("words", "", "Word list CSV path or URL")

	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VOCAB_APP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the TOML config named by --config, falling back to the
// default XDG location.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// resolveWordSource returns the word list source: flag, then config, then
// the default XDG path.
func resolveWordSource(cmd *cobra.Command, cfg config.FileConfig) string {
	if s, _ := cmd.Flags().GetString("words"); s != "" {
		return s
	}
	if cfg.Quiz.Words != nil && *cfg.Quiz.Words != "" {
		return *cfg.Quiz.Words
	}
	return config.DefaultWordListPath()
}

func resolveSettleDelay(cfg config.FileConfig) time.Duration {
	if cfg.Quiz.SettleDelayMs != nil && *cfg.Quiz.SettleDelayMs > 0 {
		return time.Duration(*cfg.Quiz.SettleDelayMs) * time.Millisecond
	}
	return quiz.DefaultSettleDelay
}

func resolveBatchSize(cfg config.FileConfig) int {
	if cfg.Quiz.BatchSize != nil && *cfg.Quiz.BatchSize > 0 {
		return *cfg.Quiz.BatchSize
	}
	return quiz.DefaultBatchSize
}

func resolveFormat(cfg config.FileConfig) quiz.Format {
	if cfg.Quiz.Format == nil {
		return quiz.FormatPickTranslation
	}
	switch *cfg.Quiz.Format {
	case "pick-source":
		return quiz.FormatPickSource
	case "type-source":
		return quiz.FormatTypeSource
	default:
		return quiz.FormatPickTranslation
	}
}

// openRecords opens the SQLite store, degrading to an empty in-memory store
// when the database cannot be opened. The returned warning is non-empty in
// the degraded case; close is always safe to call.
func openRecords(cmd *cobra.Command) (records store.RecordStore, cleanup func() error, warning string) {
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			return st, st.Close, ""
		}
	}
	slog.Warn("record store unavailable, progress will not be saved", "error", err)
	return store.NewMemory(), func() error { return nil }, "Storage unavailable: progress will not be saved this run."
}

// runApp resolves configuration, opens the store, loads the word list, arms
// review reminders for the lifetime of the process, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	records, closeStore, warning := openRecords(cmd)
	defer closeStore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	words, err := vocab.Load(ctx, resolveWordSource(cmd, cfg))
	if err != nil {
		slog.Warn("word list unavailable", "error", err)
		words = nil
	}

	// Reminders run alongside the TUI so a long-open session still gets its
	// review nudges. Failures here never block the drill.
	if entries, err := records.ListReviewEntries(ctx); err == nil {
		armer := reminder.NewArmer(records, reminder.Desktop{})
		armer.Arm(ctx, reminder.Schedule(entries, time.Now()))
	}

	return app.Run(app.Options{
		Records:     records,
		Words:       words,
		SettleDelay: resolveSettleDelay(cfg),
		Warning:     warning,
		BatchSize:   resolveBatchSize(cfg),
		Format:      resolveFormat(cfg),
	})
}
