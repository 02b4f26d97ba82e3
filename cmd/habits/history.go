// ABOUTME: CLI command for the interactive history screen.
// ABOUTME: Starts the TUI and saves view toggles back to the config file.
package main

import (
	"time"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/stats"
	"github.com/harperreed/habits/internal/tui"
	"github.com/spf13/cobra"
)

var (
	historyHabit string
	historyMonth string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ui"},
	Short:   "Browse history interactively",
	Long: `Open an interactive calendar and chart of a habit's history.

KEYS:

  ←/h  →/l     Previous / next month (mouse wheel works too)
  v            Toggle month / week calendar
  c            Toggle weekly / monthly chart
  click        Show the triggers of a day
  q / esc      Quit

View toggles are remembered between sessions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(historyHabit)
		if err != nil {
			return err
		}
		year, month, err := monthOrCurrent(historyMonth, time.Now())
		if err != nil {
			return err
		}

		return tui.Run(historyService(), h, tui.Options{
			Year:      year,
			Month:     month,
			View:      appConfig.GetCalendarView(),
			Chart:     appConfig.GetChartView(),
			SavePrefs: savePrefs,
		})
	},
}

// savePrefs stores the history screen's view toggles in the config file.
func savePrefs(view calendar.ViewMode, chart stats.ChartMode) error {
	appConfig.SetCalendarView(view)
	appConfig.SetChartView(chart)
	return appConfig.Save()
}

func init() {
	historyCmd.Flags().StringVar(&historyHabit, "habit", "", "habit ID or prefix (default: current habit)")
	historyCmd.Flags().StringVarP(&historyMonth, "month", "m", "", "month to open (YYYY-MM)")
	rootCmd.AddCommand(historyCmd)
}
