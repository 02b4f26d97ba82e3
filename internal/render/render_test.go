// ABOUTME: Tests for calendar and bar chart rendering.
// ABOUTME: Checks layout geometry against hit-testing and the empty-chart placeholder.
package render

import (
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestCalendarLayout(t *testing.T) {
	counts := map[string]int{"2025-01-06": 3, "2025-01-20": 7}
	for _, mode := range []calendar.ViewMode{calendar.MonthView, calendar.WeekView} {
		t.Run(string(mode), func(t *testing.T) {
			m := calendar.NewModel(2025, 1, mode, counts, 5)
			lines := plainLines(CalendarWith(m, stats.LocaleEN, CalendarOptions{}))

			require.Len(t, lines, HeaderHeight+m.Rows()*CellHeight+1)
			assert.Contains(t, lines[0], "January 2025")
			for _, dow := range []string{"Mo", "We", "Su"} {
				assert.Contains(t, lines[1], dow)
			}
			for i := HeaderHeight; i < HeaderHeight+m.Rows()*CellHeight; i++ {
				assert.Equal(t, calendar.Columns*CellWidth, lipgloss.Width(lines[i]), "line %d", i)
			}
		})
	}
}

func TestCalendarCellsMatchHitTest(t *testing.T) {
	m := calendar.NewModel(2025, 1, calendar.MonthView, map[string]int{"2025-01-06": 3}, 5)
	lines := plainLines(CalendarWith(m, stats.LocaleZH, CalendarOptions{}))

	for day := 1; day <= m.DaysInMonth(); day++ {
		row, col, ok := m.Position(day)
		require.True(t, ok)

		top := lines[HeaderHeight+row*CellHeight]
		cell := strings.TrimSpace(top[col*CellWidth : (col+1)*CellWidth])
		assert.Equal(t, strconv.Itoa(day), cell, "day %d", day)

		x, y := calendar.CellCenter(row, col, Geometry)
		d, ok := m.HitTest(x, y, Geometry)
		require.True(t, ok)
		assert.Equal(t, day, d.Day)
	}
}

func TestCalendarCounts(t *testing.T) {
	m := calendar.NewModel(2025, 1, calendar.MonthView, map[string]int{"2025-01-06": 3, "2025-01-20": 7}, 5)
	lines := plainLines(CalendarWith(m, stats.LocaleZH, CalendarOptions{Selected: 6}))

	row, col, _ := m.Position(6)
	countLine := lines[HeaderHeight+row*CellHeight+1]
	assert.Equal(t, "3", strings.TrimSpace(countLine[col*CellWidth:(col+1)*CellWidth]))

	assert.Contains(t, lines[0], "2025年01月")
	assert.Contains(t, lines[len(lines)-1], "total 10")
}

func TestCalendarWeekViewTruncates(t *testing.T) {
	m := calendar.NewModel(2025, 1, calendar.WeekView, nil, 5)
	out := ansi.Strip(CalendarWith(m, stats.LocaleEN, CalendarOptions{}))
	assert.Contains(t, out, " 12 ")
	assert.NotContains(t, out, " 13 ")
}

func TestBarChart(t *testing.T) {
	series := []stats.ChartBucket{
		{Label: "Week 2", Value: 3, Key: 2},
		{Label: "Week 4", Value: 6, Key: 4},
	}
	lines := plainLines(BarChart(series, 40))
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "Week 2")
	assert.True(t, strings.HasSuffix(lines[1], " 6"))
	full := strings.Count(lines[1], "█")
	half := strings.Count(lines[0], "█")
	assert.Greater(t, full, 0)
	assert.Equal(t, full/2, half)
}

func TestBarChartEmpty(t *testing.T) {
	assert.Contains(t, ansi.Strip(BarChart(nil, 40)), NoData)
	assert.Contains(t, ansi.Strip(BarChart([]stats.ChartBucket{{Label: "1月", Value: 0, Key: 1}}, 40)), NoData)
}

func TestBarChartNarrowWidth(t *testing.T) {
	lines := plainLines(BarChart([]stats.ChartBucket{{Label: "1月", Value: 1, Key: 1}}, 0))
	require.Len(t, lines, 1)
	assert.Equal(t, minBarWidth, strings.Count(lines[0], "█"))
}
