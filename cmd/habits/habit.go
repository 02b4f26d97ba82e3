// ABOUTME: CLI commands for managing habits.
// ABOUTME: Add, list, rename, set limits, enable/disable, delete, and choose the current habit.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	habitAddLimit   int
	habitListAll    bool
	habitDeleteHard bool
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Manage tracked habits",
	Long: `Manage the habits you track.

Each habit has a name and a daily limit. Days with more occurrences than the
limit are marked as exceeded; reaching the limit exactly is fine.

EXAMPLES:

  habits habit list                   # Active habits
  habits habit list --all             # Include disabled habits
  habits habit add "Snacking" -l 2    # New habit with limit 2
  habits habit rename abc123 "Sweets"
  habits habit limit abc123 4
  habits habit disable abc123         # Hide but keep history
  habits habit delete abc123 --permanent
  habits habit use abc123             # Default habit for log/today/calendar`,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := models.NewHabit(args[0], habitAddLimit)
		if err != nil {
			return err
		}
		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added habit %s\n", h.Name)
		fmt.Fprintf(out, "  %s limit %d/day\n", color.New(color.Faint).Sprint(h.ShortID()), h.DailyLimit)
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	Long: `List habits.

OUTPUT FORMAT:

  Each line shows: ID  NAME  LIMIT  (disabled)

  The current habit is marked with *.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := repo.ListHabits(habitListAll)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(habits) == 0 {
			fmt.Fprintln(out, "No habits found.")
			return nil
		}

		current, _ := resolveHabit("")
		faint := color.New(color.Faint)
		for _, h := range habits {
			marker := " "
			if current != nil && current.ID == h.ID {
				marker = "*"
			}
			suffix := ""
			if !h.Active {
				suffix = faint.Sprint(" (disabled)")
			}
			fmt.Fprintf(out, "%s %s %s limit %d%s\n",
				marker,
				faint.Sprint(h.ShortID()),
				padRight(h.Name, 24),
				h.DailyLimit,
				suffix)
		}
		return nil
	},
}

var habitRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a habit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateHabit(cmd, args[0], func(h *models.Habit) error {
			return h.Rename(args[1])
		})
	},
}

var habitLimitCmd = &cobra.Command{
	Use:   "limit <id> <daily-limit>",
	Short: "Change a habit's daily limit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit: %s", args[1])
		}
		return updateHabit(cmd, args[0], func(h *models.Habit) error {
			return h.SetLimit(limit)
		})
	},
}

var habitEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Re-enable a disabled habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateHabit(cmd, args[0], func(h *models.Habit) error {
			h.Active = true
			return nil
		})
	},
}

var habitDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a habit, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}
		if err := repo.DeactivateHabit(h.ID.String()); err != nil {
			return fmt.Errorf("failed to disable habit: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Disabled %s\n", h.Name)
		return nil
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a habit",
	Long: `Delete a habit.

By default the habit is disabled and its history kept. With --permanent the
habit and every logged occurrence are removed. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		out := cmd.OutOrStdout()
		if !habitDeleteHard {
			if err := repo.DeactivateHabit(h.ID.String()); err != nil {
				return fmt.Errorf("failed to disable habit: %w", err)
			}
			color.New(color.FgYellow).Fprintf(out, "✗ Disabled %s (use --permanent to erase history)\n", h.Name)
			return nil
		}

		if err := repo.DeleteHabit(h.ID.String()); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		if appConfig != nil && appConfig.CurrentHabit == h.ID.String() {
			appConfig.CurrentHabit = ""
			if err := appConfig.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s and its history\n", h.Name)
		return nil
	},
}

var habitUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Set the current habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		appConfig.CurrentHabit = h.ID.String()
		if err := appConfig.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Current habit: %s\n", h.Name)
		return nil
	},
}

func updateHabit(cmd *cobra.Command, idOrPrefix string, change func(h *models.Habit) error) error {
	h, err := repo.GetHabit(idOrPrefix)
	if err != nil {
		return fmt.Errorf("habit not found: %s", idOrPrefix)
	}
	if err := change(h); err != nil {
		return err
	}
	if err := repo.UpdateHabit(h); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", h.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "  %s limit %d/day\n", color.New(color.Faint).Sprint(h.ShortID()), h.DailyLimit)
	return nil
}

func init() {
	habitAddCmd.Flags().IntVarP(&habitAddLimit, "limit", "l", models.DefaultDailyLimit, "daily limit")
	habitListCmd.Flags().BoolVarP(&habitListAll, "all", "a", false, "include disabled habits")
	habitDeleteCmd.Flags().BoolVar(&habitDeleteHard, "permanent", false, "erase the habit and all its history")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitRenameCmd, habitLimitCmd,
		habitEnableCmd, habitDisableCmd, habitDeleteCmd, habitUseCmd)
	rootCmd.AddCommand(habitCmd)
}
