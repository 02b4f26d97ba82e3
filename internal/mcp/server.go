// ABOUTME: MCP server setup for the habits tracker.
// ABOUTME: Wraps MCP server with storage Repository and history views.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/habits/internal/history"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/harperreed/habits/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer    *mcp.Server
	repo         storage.Repository
	history      *history.Service
	defaultHabit string
}

// NewServer creates a new MCP server with the given storage.
// defaultHabit is the habit ID used when a tool call names none; empty means the first active habit.
func NewServer(repo storage.Repository, locale stats.Locale, defaultHabit string) (*Server, error) {
	if repo == nil {
		return nil, errors.New("mcp server requires a repository")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "habits",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:    mcpServer,
		repo:         repo,
		history:      history.New(repo, locale),
		defaultHabit: defaultHabit,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// resolveHabit returns the named habit, the configured default, or the first active habit.
func (s *Server) resolveHabit(idOrPrefix string) (*models.Habit, error) {
	return storage.ResolveHabit(s.repo, idOrPrefix, s.defaultHabit)
}
