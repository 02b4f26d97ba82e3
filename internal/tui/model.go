// ABOUTME: Interactive history screen: calendar heat-map, chart, and day details.
// ABOUTME: Keyboard navigation by month, view toggles, and mouse clicks resolved through hit-testing.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/history"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/render"
	"github.com/harperreed/habits/internal/stats"
)

// Rows above the calendar: the habit header and a blank line.
const (
	calendarTop  = 2
	calendarLeft = 0
)

const chartWidth = 48

// Prefs persists view toggles between sessions.
type Prefs func(view calendar.ViewMode, chart stats.ChartMode) error

// Options configure the history screen.
type Options struct {
	Year      int
	Month     int
	View      calendar.ViewMode
	Chart     stats.ChartMode
	SavePrefs Prefs
}

type historyModel struct {
	svc   *history.Service
	habit *models.Habit
	save  Prefs

	year      int
	month     int
	viewMode  calendar.ViewMode
	chartMode stats.ChartMode

	cal     *calendar.Model
	series  []stats.ChartBucket
	summary stats.MonthSummary

	selected  int
	dayEvents []*models.TriggerEvent

	width   int
	height  int
	lastLog string
	err     error
}

// loadedMsg and dayLoadedMsg carry the request they answer so results that
// arrive after the user has moved on are dropped.
type loadedMsg struct {
	year    int
	month   int
	view    calendar.ViewMode
	chart   stats.ChartMode
	cal     *calendar.Model
	series  []stats.ChartBucket
	summary stats.MonthSummary
	err     error
}

type dayLoadedMsg struct {
	date   calendar.Date
	events []*models.TriggerEvent
	err    error
}

func newHistoryModel(svc *history.Service, habit *models.Habit, opts Options) historyModel {
	if opts.Year == 0 || opts.Month == 0 {
		now := time.Now()
		opts.Year, opts.Month = now.Year(), int(now.Month())
	}
	return historyModel{
		svc:       svc,
		habit:     habit,
		save:      opts.SavePrefs,
		year:      opts.Year,
		month:     opts.Month,
		viewMode:  calendar.ParseViewMode(string(opts.View)),
		chartMode: stats.ParseChartMode(string(opts.Chart)),
		lastLog:   "←/→ month  v view  c chart  click a day  q quit",
	}
}

func (m historyModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m historyModel) loadCmd() tea.Cmd {
	svc, id := m.svc, m.habit.ID
	year, month, view, chart := m.year, m.month, m.viewMode, m.chartMode
	return func() tea.Msg {
		msg := loadedMsg{year: year, month: month, view: view, chart: chart}
		cal, err := svc.Calendar(id, year, month, view)
		if err != nil {
			msg.err = err
			return msg
		}
		series, err := svc.Chart(id, year, month, chart)
		if err != nil {
			msg.err = err
			return msg
		}
		summary, err := svc.MonthSummary(id, year, month)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.cal, msg.series, msg.summary = cal, series, summary
		return msg
	}
}

func (m historyModel) dayCmd(d calendar.Date) tea.Cmd {
	svc, id := m.svc, m.habit.ID
	return func() tea.Msg {
		_, events, err := svc.Day(id, d.String())
		return dayLoadedMsg{date: d, events: events, err: err}
	}
}

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		if msg.year != m.year || msg.month != m.month || msg.view != m.viewMode || msg.chart != m.chartMode {
			logger.Debug("dropping stale history load", "year", msg.year, "month", msg.month)
			return m, nil
		}
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			logger.Error("history load failed", "error", msg.err)
			return m, nil
		}
		m.cal = msg.cal
		m.series = msg.series
		m.summary = msg.summary
		return m, nil
	case dayLoadedMsg:
		if msg.date.Year != m.year || msg.date.Month != m.month {
			logger.Debug("dropping stale day load", "date", msg.date.String())
			return m, nil
		}
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.selected = msg.date.Day
		m.dayEvents = msg.events
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			return m.stepMonth(-1)
		case "right", "l":
			return m.stepMonth(1)
		case "v":
			m.viewMode = m.viewMode.Toggle()
			m.persist()
			return m, m.loadCmd()
		case "c":
			m.chartMode = m.chartMode.Toggle()
			m.persist()
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m historyModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		return m.stepMonth(-1)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		return m.stepMonth(1)
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress:
		return m, nil
	}
	if m.cal == nil {
		return m, nil
	}

	x := float64(msg.X - calendarLeft)
	y := float64(msg.Y - calendarTop)
	d, ok := m.cal.HitTest(x, y, render.Geometry)
	if !ok {
		return m, nil
	}
	logger.Debug("calendar click", "x", msg.X, "y", msg.Y, "date", d.String())
	return m, m.dayCmd(d)
}

func (m historyModel) stepMonth(delta int) (tea.Model, tea.Cmd) {
	if delta < 0 {
		m.year, m.month = calendar.PreviousMonth(m.year, m.month)
	} else {
		m.year, m.month = calendar.NextMonth(m.year, m.month)
	}
	m.selected = 0
	m.dayEvents = nil
	return m, m.loadCmd()
}

func (m *historyModel) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.viewMode, m.chartMode); err != nil {
		logger.Warn("save view preferences failed", "error", err)
		m.lastLog = "Could not save preferences: " + err.Error()
	}
}

func (m historyModel) View() string {
	var b strings.Builder

	b.WriteString(render.Title.Render(m.habit.Name))
	b.WriteString(render.Muted.Render(fmt.Sprintf("  %s view · %s chart", m.viewMode, m.chartMode)))
	b.WriteString("\n\n")

	if m.cal == nil {
		if m.err != nil {
			b.WriteString(render.Bad.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(render.Muted.Render("Loading…"))
		}
		b.WriteString("\n\n" + render.Muted.Render(m.lastLog) + "\n")
		return b.String()
	}

	locale := m.svc.Locale()
	b.WriteString(render.CalendarWith(m.cal, locale, render.CalendarOptions{
		Today:    calendar.Today(),
		Selected: m.selected,
	}))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%d logged days · %d over limit", m.summary.LoggedDays, m.summary.ExceededDays))
	if m.summary.PeakDate != "" {
		b.WriteString(fmt.Sprintf(" · peak %s (%d)", m.summary.PeakDate, m.summary.PeakCount))
	}
	b.WriteString("\n\n")

	b.WriteString(render.BarChart(m.series, chartWidth))
	b.WriteString("\n")

	if m.selected > 0 && m.cal.Year() == m.year && m.cal.Month() == m.month {
		b.WriteString("\n")
		b.WriteString(m.dayView())
	}

	b.WriteString("\n" + render.Muted.Render(m.lastLog) + "\n")
	return b.String()
}

func (m historyModel) dayView() string {
	var b strings.Builder
	date := m.cal.DateString(m.selected)
	count, exceeded := m.cal.Status(m.selected)

	status := render.Good.Render(fmt.Sprintf("%d/%d", count, m.cal.Limit()))
	if exceeded {
		status = render.Bad.Render(fmt.Sprintf("%d/%d", count, m.cal.Limit()))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", date, status))

	if len(m.dayEvents) == 0 {
		b.WriteString(render.Muted.Render("  no events") + "\n")
		return b.String()
	}
	for _, e := range m.dayEvents {
		line := fmt.Sprintf("  #%d %s", e.Sequence, e.Time)
		if e.Description != nil && *e.Description != "" {
			line += "  " + *e.Description
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Run starts the interactive history screen for habit.
func Run(svc *history.Service, habit *models.Habit, opts Options) error {
	p := tea.NewProgram(newHistoryModel(svc, habit, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
