// ABOUTME: MCP resource implementations for the habits tracker.
// ABOUTME: Provides habits://today and habits://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "habits://today"
	summaryURI = "habits://summary"
)

func (s *Server) registerResources() {
	// habits://today - Each active habit's count against its limit today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Habit Status",
		Description: "Occurrences logged today for each active habit, with limits",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// habits://summary - Current month summary per active habit
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Habit Summary Dashboard",
		Description: "This month's totals, over-limit days and weekly chart for each active habit",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

type todayEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	stats.DailyBucket
	Remaining int `json:"remaining"`
}

type summaryEntry struct {
	ID      string              `json:"id"`
	Name    string              `json:"name"`
	Summary stats.MonthSummary  `json:"summary"`
	Weeks   []stats.ChartBucket `json:"weeks"`
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return s.todayResource(time.Now())
}

func (s *Server) todayResource(now time.Time) (*mcp.ReadResourceResult, error) {
	habits, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	entries := make([]todayEntry, 0, len(habits))
	exceeded := 0
	for _, h := range habits {
		b, err := s.history.Today(h.ID, now)
		if err != nil {
			return nil, err
		}
		if b.Exceeded {
			exceeded++
		}
		entries = append(entries, todayEntry{ID: h.ShortID(), Name: h.Name, DailyBucket: b, Remaining: b.Remaining()})
	}

	result := map[string]interface{}{
		"date":   now.Format("2006-01-02"),
		"habits": entries,
		"counts": map[string]int{
			"habits":   len(entries),
			"exceeded": exceeded,
		},
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return s.summaryResource(time.Now())
}

func (s *Server) summaryResource(now time.Time) (*mcp.ReadResourceResult, error) {
	habits, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	year, month := now.Year(), int(now.Month())
	entries := make([]summaryEntry, 0, len(habits))
	for _, h := range habits {
		sum, err := s.history.MonthSummary(h.ID, year, month)
		if err != nil {
			return nil, err
		}
		weeks, err := s.history.Chart(h.ID, year, month, stats.ChartMonthly)
		if err != nil {
			return nil, err
		}
		if weeks == nil {
			weeks = []stats.ChartBucket{}
		}
		entries = append(entries, summaryEntry{ID: h.ShortID(), Name: h.Name, Summary: sum, Weeks: weeks})
	}

	result := map[string]interface{}{
		"generated_at": now.Format(time.RFC3339),
		"month":        fmt.Sprintf("%04d-%02d", year, month),
		"habits":       entries,
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
