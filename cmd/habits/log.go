// ABOUTME: CLI command for logging a habit occurrence.
// ABOUTME: Stores a trigger event and reports its sequence and today's count against the limit.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/spf13/cobra"
)

var (
	logHabit string
	logAt    string
	logNote  string
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"trigger", "t"},
	Short:   "Log one occurrence of a habit",
	Long: `Log one occurrence (a trigger) of a habit.

Without --habit the current habit is used. Each trigger is numbered within its
day: the first of the day is #1, the next #2, and so on. Numbers are assigned
once and are not changed when earlier triggers are deleted.

TIME FORMATS for --at:

  HH:MM              Today at that time
  YYYY-MM-DD         That day at midnight
  YYYY-MM-DD HH:MM   That day and time
  RFC3339            e.g. 2025-01-31T08:30:00+01:00

EXAMPLES:

  habits log                               # Now, current habit
  habits log --note "after coffee"
  habits log --habit abc123 --at 14:30
  habits log --at "2025-01-06 08:15"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(logHabit)
		if err != nil {
			return err
		}

		e := models.NewTriggerEvent(h.ID)
		if logAt != "" {
			at, err := calendar.ParseTimestamp(logAt, time.Now())
			if err != nil {
				return err
			}
			e.WithTriggeredAt(at)
		}
		if logNote != "" {
			e.WithDescription(logNote)
		}

		if err := repo.CreateTrigger(e); err != nil {
			return fmt.Errorf("failed to log trigger: %w", err)
		}

		count, err := repo.CountByDate(h.ID, e.Date)
		if err != nil {
			return fmt.Errorf("failed to count triggers: %w", err)
		}
		day := stats.NewDailyBucket(e.Date, count, h.DailyLimit)

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s #%d", h.Name, e.Sequence)
		fmt.Fprintf(out, " %s\n", color.New(color.Faint).Sprintf("%s %s %s", e.ShortID(), e.Date, e.Time))
		fmt.Fprintf(out, "  %s\n", statusLine(h, day))
		if day.Exceeded {
			color.New(color.FgRed).Fprintln(out, "  Over the daily limit.")
		}
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logHabit, "habit", "", "habit ID or prefix (default: current habit)")
	logCmd.Flags().StringVar(&logAt, "at", "", "when it happened (default: now)")
	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "optional description")
	rootCmd.AddCommand(logCmd)
}
