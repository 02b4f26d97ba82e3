// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Loads config and logger, and manages the storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/history"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	repo      storage.Repository
	appConfig *config.Config

	dbPath    string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Bad habit tracker with daily limits",
	Long: `Habits is a CLI tool for logging occurrences of habits you want to cut down on.

Each habit has a daily limit. Every logged occurrence (a "trigger") gets a
sequence number for its day, and days over the limit show up red in the
calendar.

QUICK START:

  $ habits habit list                       # Starter habits are created on first run
  $ habits log                              # Log one occurrence of the current habit
  $ habits log --note "after lunch"         # ...with a note
  $ habits today                            # Count vs. limit for today
  $ habits calendar                         # Month heat-map
  $ habits chart --yearly                   # Per-month bar chart
  $ habits history                          # Interactive calendar (mouse + keys)

HABITS:

  $ habits habit add "Snacking" --limit 2   # Track a new habit
  $ habits habit use snacking-id            # Make it the current habit
  $ habits habit limit abc123 3             # Change a daily limit

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/habits/habits.db.
  Settings live in ~/.config/habits/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		if err := logger.Init(logger.Config{Debug: debugMode, DataDir: cfg.GetDataDir()}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		var db *storage.DB
		if dbPath != "" {
			db, err = storage.Open(config.ExpandPath(dbPath))
		} else {
			db, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		repo = db

		if db.Fresh() {
			logger.Info("new database, seeding default habits", "path", db.Path())
			if err := db.SeedDefaultHabits(); err != nil {
				return fmt.Errorf("failed to seed habits: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: <data_dir>/habits.db)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to stderr")
}

// historyService builds the history views over the open store.
func historyService() *history.Service {
	return history.New(repo, appConfig.GetLocale())
}

// resolveHabit picks the habit a command acts on: the flag value, then the
// configured current habit, then the first active habit.
func resolveHabit(flag string) (*models.Habit, error) {
	configured := ""
	if appConfig != nil {
		configured = appConfig.CurrentHabit
	}
	h, err := storage.ResolveHabit(repo, flag, configured)
	if errors.Is(err, storage.ErrNoActiveHabit) {
		return nil, errors.New("no active habits; add one with 'habits habit add <name>'")
	}
	return h, err
}
