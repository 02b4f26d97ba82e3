// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants log triggers and read your habit history through a
standardized protocol. The server communicates via stdin/stdout.

DESKTOP CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_habits      List tracked habits with their limits
  add_habit        Create a habit
  log_trigger      Record one occurrence
  list_triggers    Occurrences on one day
  delete_trigger   Delete an occurrence
  month_stats      Daily counts, weekly chart and summary for a month
  year_stats       Monthly chart and summaries for a year

AVAILABLE RESOURCES:

  habits://today     Today's count vs. limit per habit
  habits://summary   This month's summary per habit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, appConfig.GetLocale(), appConfig.CurrentHabit)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
