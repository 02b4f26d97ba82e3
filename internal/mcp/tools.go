// ABOUTME: MCP tool implementations for habits and trigger events.
// ABOUTME: Provides habit management, trigger logging, and month/year statistics.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List tracked habits with their daily limits",
	}, s.handleListHabits)

	// add_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a new habit to track with a daily limit",
	}, s.handleAddHabit)

	// log_trigger
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_trigger",
		Description: "Record one occurrence of a habit, now or at a given time",
	}, s.handleLogTrigger)

	// list_triggers
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_triggers",
		Description: "List a habit's occurrences on one day, or from date through to",
	}, s.handleListTriggers)

	// delete_trigger
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_trigger",
		Description: "Delete an occurrence by ID or ID prefix",
	}, s.handleDeleteTrigger)

	// month_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "month_stats",
		Description: "Daily counts, weekly chart and summary for one month",
	}, s.handleMonthStats)

	// year_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "year_stats",
		Description: "Monthly chart and per-month summaries for one year",
	}, s.handleYearStats)
}

// Tool input/output types

type listHabitsInput struct {
	IncludeInactive bool `json:"include_inactive,omitempty" jsonschema:"Also list disabled habits"`
}

type habitOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DailyLimit int    `json:"daily_limit"`
	Active     bool   `json:"active"`
}

type listHabitsOutput struct {
	Habits []habitOutput `json:"habits"`
}

type addHabitInput struct {
	Name       string `json:"name" jsonschema:"Habit name, e.g. Smoking"`
	DailyLimit int    `json:"daily_limit,omitempty" jsonschema:"Maximum occurrences per day (default 5)"`
}

type logTriggerInput struct {
	Habit string `json:"habit,omitempty" jsonschema:"Habit ID or prefix (defaults to the current habit)"`
	At    string `json:"at,omitempty" jsonschema:"When it happened: RFC3339, YYYY-MM-DD HH:MM or HH:MM (defaults to now)"`
	Note  string `json:"note,omitempty" jsonschema:"Optional description of the trigger"`
}

type triggerOutput struct {
	ID       string `json:"id"`
	Habit    string `json:"habit"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Sequence int    `json:"sequence"`
	Count    int    `json:"count"`
	Limit    int    `json:"limit"`
	Exceeded bool   `json:"exceeded"`
	Message  string `json:"message"`
}

type listTriggersInput struct {
	Habit string `json:"habit,omitempty" jsonschema:"Habit ID or prefix (defaults to the current habit)"`
	Date  string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD (defaults to today)"`
	To    string `json:"to,omitempty" jsonschema:"Last day of a range as YYYY-MM-DD; requires date"`
}

type listTriggersOutput struct {
	Date     string                 `json:"date"`
	Count    int                    `json:"count"`
	Limit    int                    `json:"limit"`
	Exceeded bool                   `json:"exceeded"`
	Triggers []*models.TriggerEvent `json:"triggers"`
}

type triggerRangeOutput struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Count    int                    `json:"count"`
	Days     []stats.DailyBucket    `json:"days"`
	Triggers []*models.TriggerEvent `json:"triggers"`
}

type deleteTriggerInput struct {
	ID string `json:"id" jsonschema:"Trigger ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type monthStatsInput struct {
	Habit string `json:"habit,omitempty" jsonschema:"Habit ID or prefix (defaults to the current habit)"`
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM (defaults to the current month)"`
}

type monthStatsOutput struct {
	Habit   string              `json:"habit"`
	Summary stats.MonthSummary  `json:"summary"`
	Days    []stats.DailyBucket `json:"days"`
	Weeks   []stats.ChartBucket `json:"weeks"`
}

type yearStatsInput struct {
	Habit string `json:"habit,omitempty" jsonschema:"Habit ID or prefix (defaults to the current habit)"`
	Year  int    `json:"year,omitempty" jsonschema:"Year (defaults to the current year)"`
}

// Tool handlers

func toHabitOutput(h *models.Habit) habitOutput {
	return habitOutput{ID: h.ShortID(), Name: h.Name, DailyLimit: h.DailyLimit, Active: h.Active}
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	habits, err := s.repo.ListHabits(input.IncludeInactive)
	if err != nil {
		return nil, listHabitsOutput{}, fmt.Errorf("failed to list habits: %w", err)
	}

	out := listHabitsOutput{Habits: make([]habitOutput, 0, len(habits))}
	for _, h := range habits {
		out.Habits = append(out.Habits, toHabitOutput(h))
	}
	return nil, out, nil
}

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	limit := input.DailyLimit
	if limit == 0 {
		limit = models.DefaultDailyLimit
	}

	h, err := models.NewHabit(input.Name, limit)
	if err != nil {
		return nil, habitOutput{}, err
	}
	if err := s.repo.CreateHabit(h); err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to create habit: %w", err)
	}
	return nil, toHabitOutput(h), nil
}

func (s *Server) handleLogTrigger(ctx context.Context, req *mcp.CallToolRequest, input logTriggerInput) (*mcp.CallToolResult, triggerOutput, error) {
	h, err := s.resolveHabit(input.Habit)
	if err != nil {
		return nil, triggerOutput{}, err
	}

	e := models.NewTriggerEvent(h.ID)
	if input.At != "" {
		at, err := calendar.ParseTimestamp(input.At, time.Now())
		if err != nil {
			return nil, triggerOutput{}, err
		}
		e.WithTriggeredAt(at)
	}
	if input.Note != "" {
		e.WithDescription(input.Note)
	}

	if err := s.repo.CreateTrigger(e); err != nil {
		return nil, triggerOutput{}, fmt.Errorf("failed to log trigger: %w", err)
	}

	count, err := s.repo.CountByDate(h.ID, e.Date)
	if err != nil {
		return nil, triggerOutput{}, fmt.Errorf("failed to count triggers: %w", err)
	}
	day := stats.NewDailyBucket(e.Date, count, h.DailyLimit)

	msg := fmt.Sprintf("Logged %s #%d on %s at %s (%d/%d)", h.Name, e.Sequence, e.Date, e.Time, count, h.DailyLimit)
	if day.Exceeded {
		msg += " - over the daily limit"
	}

	return nil, triggerOutput{
		ID:       e.ShortID(),
		Habit:    h.Name,
		Date:     e.Date,
		Time:     e.Time,
		Sequence: e.Sequence,
		Count:    count,
		Limit:    h.DailyLimit,
		Exceeded: day.Exceeded,
		Message:  msg,
	}, nil
}

func (s *Server) handleListTriggers(ctx context.Context, req *mcp.CallToolRequest, input listTriggersInput) (*mcp.CallToolResult, any, error) {
	h, err := s.resolveHabit(input.Habit)
	if err != nil {
		return nil, nil, err
	}

	if input.To != "" {
		return s.listTriggerRange(h, input.Date, input.To)
	}

	d, events, err := s.history.Day(h.ID, input.Date)
	if err != nil {
		return nil, nil, err
	}
	if events == nil {
		events = []*models.TriggerEvent{}
	}

	day := stats.NewDailyBucket(d.String(), len(events), h.DailyLimit)
	return nil, listTriggersOutput{
		Date:     day.Date,
		Count:    day.Count,
		Limit:    day.Limit,
		Exceeded: day.Exceeded,
		Triggers: events,
	}, nil
}

func (s *Server) listTriggerRange(h *models.Habit, from, to string) (*mcp.CallToolResult, any, error) {
	if from == "" {
		return nil, nil, fmt.Errorf("date is required when to is set")
	}
	events, err := s.history.Range(h.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	if events == nil {
		events = []*models.TriggerEvent{}
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Date]++
	}
	return nil, triggerRangeOutput{
		From:     from,
		To:       to,
		Count:    len(events),
		Days:     stats.DailyBuckets(counts, h.DailyLimit),
		Triggers: events,
	}, nil
}

func (s *Server) handleDeleteTrigger(ctx context.Context, req *mcp.CallToolRequest, input deleteTriggerInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteTrigger(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete trigger: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted trigger: %s", input.ID),
	}, nil
}

func (s *Server) handleMonthStats(ctx context.Context, req *mcp.CallToolRequest, input monthStatsInput) (*mcp.CallToolResult, monthStatsOutput, error) {
	h, err := s.resolveHabit(input.Habit)
	if err != nil {
		return nil, monthStatsOutput{}, err
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if input.Month != "" {
		year, month, err = calendar.ParseMonth(input.Month)
		if err != nil {
			return nil, monthStatsOutput{}, err
		}
	}

	counts, err := s.repo.DailyCounts(h.ID, year, month)
	if err != nil {
		return nil, monthStatsOutput{}, fmt.Errorf("failed to load counts: %w", err)
	}
	weeks, err := s.history.Chart(h.ID, year, month, stats.ChartMonthly)
	if err != nil {
		return nil, monthStatsOutput{}, err
	}
	if weeks == nil {
		weeks = []stats.ChartBucket{}
	}

	return nil, monthStatsOutput{
		Habit:   h.Name,
		Summary: stats.Summarize(counts, year, month, h.DailyLimit),
		Days:    stats.DailyBuckets(counts, h.DailyLimit),
		Weeks:   weeks,
	}, nil
}

func (s *Server) handleYearStats(ctx context.Context, req *mcp.CallToolRequest, input yearStatsInput) (*mcp.CallToolResult, any, error) {
	h, err := s.resolveHabit(input.Habit)
	if err != nil {
		return nil, nil, err
	}

	year := input.Year
	if year == 0 {
		year = time.Now().Year()
	}

	r, err := s.history.Report(h.ID.String(), year)
	if err != nil {
		return nil, nil, err
	}
	return nil, r, nil
}
