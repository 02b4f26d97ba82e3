// ABOUTME: CLI command for exporting a habit's yearly report.
// ABOUTME: Supports JSON, YAML, and Markdown formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportHabit  string
	exportYear   int
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export a habit's yearly report",
	Long: `Export a habit's statistics for one year.

The report holds the yearly total, per-month summaries (total, logged days,
days over the limit, peak day) and the monthly chart series.

FORMATS:

  json       Machine-readable report
  yaml       Human-readable report
  markdown   Table of months (for notes and sharing)

EXAMPLES:

  habits export json                        # Current habit, this year
  habits export yaml --year 2024
  habits export markdown -o smoking.md`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		if format != "json" && format != "yaml" && format != "markdown" {
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		h, err := resolveHabit(exportHabit)
		if err != nil {
			return err
		}
		year := exportYear
		if year == 0 {
			year = time.Now().Year()
		}

		svc := historyService()
		report, err := svc.Report(h.ID.String(), year)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = report.ExportJSON()
		case "yaml":
			data, err = report.ExportYAML()
		case "markdown":
			data = []byte(report.ExportMarkdown(svc.Locale()))
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportHabit, "habit", "", "habit ID or prefix (default: current habit)")
	exportCmd.Flags().IntVarP(&exportYear, "year", "y", 0, "year to export (default: this year)")
	rootCmd.AddCommand(exportCmd)
}
