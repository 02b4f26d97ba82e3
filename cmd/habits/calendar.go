// ABOUTME: CLI commands for the calendar heat-map and bar charts.
// ABOUTME: Renders a month (or its first weeks) and weekly or monthly totals to the terminal.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/render"
	"github.com/harperreed/habits/internal/stats"
	"github.com/spf13/cobra"
)

var (
	calendarHabit string
	calendarMonth string
	calendarWeek  bool

	chartHabit  string
	chartMonth  string
	chartYearly bool
	chartWidth  int
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Show a month calendar colored by daily limit",
	Long: `Show a month calendar with the number of triggers on each day.

Days within the limit are green, days over it red. Weeks start on Monday.
--week shows only the first two rows of the month. Without --week the view
saved by the history screen is used.

EXAMPLES:

  habits calendar
  habits calendar --month 2025-01
  habits calendar --week`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(calendarHabit)
		if err != nil {
			return err
		}
		year, month, err := monthOrCurrent(calendarMonth, time.Now())
		if err != nil {
			return err
		}

		mode := appConfig.GetCalendarView()
		if cmd.Flags().Changed("week") {
			mode = calendar.MonthView
			if calendarWeek {
				mode = calendar.WeekView
			}
		}

		svc := historyService()
		m, err := svc.Calendar(h.ID, year, month, mode)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.Title.Render(h.Name))
		fmt.Fprintln(out, render.Calendar(m, svc.Locale()))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show weekly or monthly trigger totals",
	Long: `Show a bar chart of trigger totals.

By default bars are the weeks of one month. With --yearly bars are the twelve
months of the year containing --month.

EXAMPLES:

  habits chart
  habits chart --month 2025-01
  habits chart --yearly`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(chartHabit)
		if err != nil {
			return err
		}
		year, month, err := monthOrCurrent(chartMonth, time.Now())
		if err != nil {
			return err
		}

		mode := appConfig.GetChartView()
		if cmd.Flags().Changed("yearly") {
			mode = stats.ChartMonthly
			if chartYearly {
				mode = stats.ChartYearly
			}
		}

		svc := historyService()
		series, err := svc.Chart(h.ID, year, month, mode)
		if err != nil {
			return err
		}

		title := svc.Locale().MonthTitle(year, month)
		if mode == stats.ChartYearly {
			title = fmt.Sprintf("%d", year)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.Title.Render(h.Name)+render.Muted.Render("  "+title))
		fmt.Fprintln(out, render.BarChart(series, chartWidth))
		fmt.Fprintln(out, render.Muted.Render(fmt.Sprintf("total %d", stats.Total(series))))
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarHabit, "habit", "", "habit ID or prefix (default: current habit)")
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month to show (YYYY-MM)")
	calendarCmd.Flags().BoolVarP(&calendarWeek, "week", "w", false, "show only the first two weeks")

	chartCmd.Flags().StringVar(&chartHabit, "habit", "", "habit ID or prefix (default: current habit)")
	chartCmd.Flags().StringVarP(&chartMonth, "month", "m", "", "month to chart (YYYY-MM)")
	chartCmd.Flags().BoolVarP(&chartYearly, "yearly", "y", false, "chart the twelve months of the year")
	chartCmd.Flags().IntVar(&chartWidth, "width", 60, "chart width in columns")

	rootCmd.AddCommand(calendarCmd, chartCmd)
}
