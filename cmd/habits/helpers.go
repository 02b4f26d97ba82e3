// ABOUTME: Shared formatting and parsing helpers for CLI commands.
// ABOUTME: Width-aware padding, month flag parsing, and today status lines.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
)

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// padRight pads by display width so CJK habit names line up.
func padRight(s string, length int) string {
	w := lipgloss.Width(s)
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}

// monthOrCurrent parses a YYYY-MM flag, defaulting to the month of now.
func monthOrCurrent(s string, now time.Time) (year, month int, err error) {
	if s == "" {
		return now.Year(), int(now.Month()), nil
	}
	return calendar.ParseMonth(s)
}

// statusLine renders "name  count/limit" colored by whether the limit is exceeded.
func statusLine(h *models.Habit, b stats.DailyBucket) string {
	c := color.New(color.FgGreen)
	note := fmt.Sprintf("%d left", b.Remaining())
	switch {
	case b.Exceeded:
		c = color.New(color.FgRed, color.Bold)
		note = fmt.Sprintf("%d over", b.Count-b.Limit)
	case b.Remaining() == 0:
		c = color.New(color.FgYellow)
		note = "at limit"
	}
	return fmt.Sprintf("%s %s %s",
		padRight(h.Name, 16),
		c.Sprintf("%d/%d", b.Count, b.Limit),
		color.New(color.Faint).Sprintf("(%s)", note))
}

func describe(e *models.TriggerEvent) string {
	if e.Description == nil || *e.Description == "" {
		return ""
	}
	return color.New(color.Faint).Sprintf(" (%s)", truncate(*e.Description, 40))
}
