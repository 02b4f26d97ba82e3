// ABOUTME: CLI commands for editing and deleting logged triggers.
// ABOUTME: Edits change time of day and note; the day and sequence number stay fixed.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	editTime string
	editNote string
)

var editCmd = &cobra.Command{
	Use:   "edit <trigger-id>",
	Short: "Change a trigger's time or note",
	Long: `Change the time of day or the note of a logged trigger.

The trigger stays on its original day and keeps its sequence number.

EXAMPLES:

  habits edit 1a2b3c4d --time 09:45
  habits edit 1a2b3c4d --note "stressful meeting"
  habits edit 1a2b3c4d --note ""              # Clear the note`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("time") && !cmd.Flags().Changed("note") {
			return fmt.Errorf("nothing to change; pass --time and/or --note")
		}

		e, err := repo.GetTrigger(args[0])
		if err != nil {
			return fmt.Errorf("trigger not found: %s", args[0])
		}

		if cmd.Flags().Changed("time") {
			clock, err := time.Parse(models.TimeFormat, editTime)
			if err != nil {
				return fmt.Errorf("invalid time: %s (use HH:MM)", editTime)
			}
			day, err := calendar.ParseDate(e.Date)
			if err != nil {
				return err
			}
			e.WithTriggeredAt(time.Date(day.Year, time.Month(day.Month), day.Day,
				clock.Hour(), clock.Minute(), 0, 0, time.Local))
		}
		if cmd.Flags().Changed("note") {
			if editNote == "" {
				e.Description = nil
			} else {
				e.WithDescription(editNote)
			}
		}

		if err := repo.UpdateTrigger(e); err != nil {
			return fmt.Errorf("failed to update trigger: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s #%d %s %s%s\n",
			e.ShortID(), e.Sequence, e.Date, e.Time, describe(e))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <trigger-id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a logged trigger",
	Long: `Delete a logged trigger by ID or ID prefix.

Other triggers on the same day keep their sequence numbers.

EXAMPLES:

  habits day                  # Find the ID
  habits delete 1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteTrigger(args[0]); err != nil {
			return fmt.Errorf("failed to delete trigger: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted trigger %s\n", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTime, "time", "", "new time of day (HH:MM)")
	editCmd.Flags().StringVarP(&editNote, "note", "n", "", "new note (empty clears it)")
	rootCmd.AddCommand(editCmd, deleteCmd)
}
