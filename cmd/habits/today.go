// ABOUTME: CLI commands for viewing a single day.
// ABOUTME: today shows counts against limits, day lists the triggers logged on a date.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/spf13/cobra"
)

var (
	todayHabit string
	todayAll   bool
	dayHabit   string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's count against the daily limit",
	Long: `Show how many times a habit was logged today, compared to its daily limit.

Use --all to show every active habit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var habits []*models.Habit
		if todayAll {
			all, err := repo.ListHabits(false)
			if err != nil {
				return fmt.Errorf("failed to list habits: %w", err)
			}
			habits = all
		} else {
			h, err := resolveHabit(todayHabit)
			if err != nil {
				return err
			}
			habits = []*models.Habit{h}
		}

		out := cmd.OutOrStdout()
		now := time.Now()
		svc := historyService()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(now.Format("Monday, 2006-01-02")))
		for _, h := range habits {
			b, err := svc.Today(h.ID, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s\n", statusLine(h, b))
		}
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "List the triggers logged on a day",
	Long: `List the triggers logged on a day, in time order.

Without a date, or with a date that cannot be parsed, today is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(dayHabit)
		if err != nil {
			return err
		}

		date := ""
		if len(args) == 1 {
			date = args[0]
		}
		d, events, err := historyService().Day(h.ID, date)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		b := stats.NewDailyBucket(d.String(), len(events), h.DailyLimit)
		fmt.Fprintln(out, color.New(color.Bold).Sprint(d.String()))
		fmt.Fprintf(out, "  %s\n", statusLine(h, b))
		if len(events) == 0 {
			fmt.Fprintln(out, "  No triggers logged.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range events {
			fmt.Fprintf(out, "  %s #%-2d %s%s\n",
				faint.Sprint(e.ShortID()),
				e.Sequence,
				e.Time,
				describe(e))
		}
		return nil
	},
}

func init() {
	todayCmd.Flags().StringVar(&todayHabit, "habit", "", "habit ID or prefix (default: current habit)")
	todayCmd.Flags().BoolVarP(&todayAll, "all", "a", false, "show every active habit")
	dayCmd.Flags().StringVar(&dayHabit, "habit", "", "habit ID or prefix (default: current habit)")
	rootCmd.AddCommand(todayCmd, dayCmd)
}
