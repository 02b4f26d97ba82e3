// ABOUTME: Tests for the history service and yearly report export.
// ABOUTME: Uses an in-memory store so view logic is tested without SQLite.
package history

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var errMissing = errors.New("missing")

type memStore struct {
	habits map[uuid.UUID]*models.Habit
	events []*models.TriggerEvent
	fail   error
}

func newMemStore() *memStore {
	return &memStore{habits: make(map[uuid.UUID]*models.Habit)}
}

func (m *memStore) addHabit(t *testing.T, name string, limit int) *models.Habit {
	t.Helper()
	h, err := models.NewHabit(name, limit)
	require.NoError(t, err)
	m.habits[h.ID] = h
	return h
}

func (m *memStore) log(habitID uuid.UUID, date string, n int) {
	for i := 0; i < n; i++ {
		m.events = append(m.events, &models.TriggerEvent{ID: uuid.New(), HabitID: habitID, Date: date, Time: "12:00"})
	}
}

func (m *memStore) of(habitID uuid.UUID) []*models.TriggerEvent {
	var out []*models.TriggerEvent
	for _, e := range m.events {
		if e.HabitID == habitID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) GetHabit(idOrPrefix string) (*models.Habit, error) {
	for id, h := range m.habits {
		if strings.HasPrefix(id.String(), idOrPrefix) {
			return h, nil
		}
	}
	return nil, errMissing
}

func (m *memStore) LimitFor(habitID uuid.UUID) int {
	if h, ok := m.habits[habitID]; ok {
		return h.DailyLimit
	}
	return models.DefaultDailyLimit
}

func (m *memStore) CountByDate(habitID uuid.UUID, date string) (int, error) {
	n := 0
	for _, e := range m.of(habitID) {
		if e.Date == date {
			n++
		}
	}
	return n, m.fail
}

func (m *memStore) DailyCounts(habitID uuid.UUID, year, month int) (map[string]int, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return stats.DailyStatistics(m.of(habitID), year, month), nil
}

func (m *memStore) MonthlyCounts(habitID uuid.UUID, year int) (map[string]int, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return stats.MonthlyStatistics(m.of(habitID), year), nil
}

func (m *memStore) ListTriggersByDate(habitID uuid.UUID, date string) ([]*models.TriggerEvent, error) {
	var out []*models.TriggerEvent
	for _, e := range m.of(habitID) {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, m.fail
}

func (m *memStore) ListTriggersInRange(habitID uuid.UUID, startDate, endDate string) ([]*models.TriggerEvent, error) {
	var out []*models.TriggerEvent
	for _, e := range m.of(habitID) {
		if e.Date >= startDate && e.Date <= endDate {
			out = append(out, e)
		}
	}
	return out, m.fail
}

func seeded(t *testing.T) (*memStore, *models.Habit) {
	t.Helper()
	store := newMemStore()
	h := store.addHabit(t, "Smoking", 5)
	store.log(h.ID, "2025-01-06", 3)
	store.log(h.ID, "2025-01-13", 2)
	store.log(h.ID, "2025-01-20", 7)
	store.log(h.ID, "2025-07-04", 4)
	return store, h
}

func TestCalendar(t *testing.T) {
	store, h := seeded(t)
	svc := New(store, stats.LocaleZH)

	model, err := svc.Calendar(h.ID, 2025, 1, calendar.MonthView)
	require.NoError(t, err)

	assert.Equal(t, 5, model.Limit())
	assert.Equal(t, 12, model.Total())

	count, exceeded := model.Status(20)
	assert.Equal(t, 7, count)
	assert.True(t, exceeded)

	count, exceeded = model.Status(6)
	assert.Equal(t, 3, count)
	assert.False(t, exceeded)

	count, _ = model.Status(7)
	assert.Zero(t, count)
}

func TestCalendarUnknownHabitUsesDefaultLimit(t *testing.T) {
	svc := New(newMemStore(), stats.LocaleZH)
	model, err := svc.Calendar(uuid.New(), 2025, 1, calendar.WeekView)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDailyLimit, model.Limit())
	assert.Equal(t, 2, model.Rows())
}

func TestChart(t *testing.T) {
	store, h := seeded(t)
	svc := New(store, stats.LocaleZH)

	monthly, err := svc.Chart(h.ID, 2025, 1, stats.ChartMonthly)
	require.NoError(t, err)
	assert.Equal(t, []stats.ChartBucket{
		{Label: "第2周", Value: 3, Key: 2},
		{Label: "第3周", Value: 2, Key: 3},
		{Label: "第4周", Value: 7, Key: 4},
	}, monthly)

	yearly, err := svc.Chart(h.ID, 2025, 1, stats.ChartYearly)
	require.NoError(t, err)
	assert.Equal(t, []stats.ChartBucket{
		{Label: "1月", Value: 12, Key: 1},
		{Label: "7月", Value: 4, Key: 7},
	}, yearly)

	en := New(store, stats.LocaleEN)
	yearly, err = en.Chart(h.ID, 2025, 1, stats.ChartYearly)
	require.NoError(t, err)
	assert.Equal(t, "July", yearly[1].Label)
}

func TestChartEmpty(t *testing.T) {
	store, h := seeded(t)
	svc := New(store, stats.LocaleZH)

	series, err := svc.Chart(h.ID, 2025, 3, stats.ChartMonthly)
	require.NoError(t, err)
	assert.True(t, stats.IsEmptySeries(series))
}

func TestStoreErrorsPropagate(t *testing.T) {
	store, h := seeded(t)
	store.fail = errors.New("disk gone")
	svc := New(store, stats.LocaleZH)

	_, err := svc.Calendar(h.ID, 2025, 1, calendar.MonthView)
	assert.ErrorIs(t, err, store.fail)
	_, err = svc.Chart(h.ID, 2025, 1, stats.ChartYearly)
	assert.ErrorIs(t, err, store.fail)
	_, err = svc.MonthSummary(h.ID, 2025, 1)
	assert.ErrorIs(t, err, store.fail)
}

func TestToday(t *testing.T) {
	store := newMemStore()
	h := store.addHabit(t, "Phone", 3)
	now := time.Date(2025, 3, 9, 22, 15, 0, 0, time.Local)
	store.log(h.ID, "2025-03-09", 3)

	b, err := New(store, stats.LocaleZH).Today(h.ID, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", b.Date)
	assert.Equal(t, 3, b.Count)
	assert.False(t, b.Exceeded, "reaching the limit is compliant")
	assert.Zero(t, b.Remaining())

	store.log(h.ID, "2025-03-09", 1)
	b, err = New(store, stats.LocaleZH).Today(h.ID, now)
	require.NoError(t, err)
	assert.True(t, b.Exceeded)
}

func TestDay(t *testing.T) {
	store, h := seeded(t)
	svc := New(store, stats.LocaleZH)

	d, events, err := svc.Day(h.ID, "2025-01-13")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-13", d.String())
	assert.Len(t, events, 2)

	d, _, err = svc.Day(h.ID, "not-a-date")
	require.NoError(t, err)
	assert.Equal(t, calendar.Today(), d)
}

func TestRange(t *testing.T) {
	store, h := seeded(t)
	svc := New(store, stats.LocaleZH)

	events, err := svc.Range(h.ID, "2025-01-06", "2025-01-13")
	require.NoError(t, err)
	assert.Len(t, events, 5)

	events, err = svc.Range(h.ID, "2025-01-20", "2025-01-20")
	require.NoError(t, err)
	assert.Len(t, events, 7)

	_, err = svc.Range(h.ID, "2025-01-20", "2025-01-06")
	assert.Error(t, err)

	_, err = svc.Range(h.ID, "bad", "2025-01-06")
	var dfe *calendar.DateFormatError
	assert.True(t, errors.As(err, &dfe))
}

func TestMonthSummary(t *testing.T) {
	store, h := seeded(t)
	s, err := New(store, stats.LocaleZH).MonthSummary(h.ID, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, 12, s.Total)
	assert.Equal(t, 3, s.LoggedDays)
	assert.Equal(t, 1, s.ExceededDays)
	assert.Equal(t, "2025-01-20", s.PeakDate)
	assert.Equal(t, 7, s.PeakCount)
}

func TestReport(t *testing.T) {
	store, h := seeded(t)
	store.log(h.ID, "2024-12-31", 9)
	svc := New(store, stats.LocaleZH)

	r, err := svc.Report(h.ShortID(), 2025)
	require.NoError(t, err)

	assert.Equal(t, "Smoking", r.Habit.Name)
	assert.Equal(t, 16, r.Total)
	assert.Equal(t, 4, r.LoggedDays)
	assert.Equal(t, 1, r.ExceededDays)
	require.Len(t, r.Months, 2)
	assert.Equal(t, 1, r.Months[0].Month)
	assert.Equal(t, 7, r.Months[1].Month)
	assert.Len(t, r.Chart, 2)

	_, err = svc.Report("ffffffff-nope", 2025)
	assert.Error(t, err)
}

func TestReportExports(t *testing.T) {
	store, h := seeded(t)
	r, err := New(store, stats.LocaleEN).Report(h.ID.String(), 2025)
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		data, err := r.ExportJSON()
		require.NoError(t, err)

		var parsed Report
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, ReportVersion, parsed.Version)
		assert.Equal(t, "habits", parsed.Tool)
		assert.Equal(t, 16, parsed.Total)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := r.ExportYAML()
		require.NoError(t, err)

		var parsed map[string]interface{}
		require.NoError(t, yaml.Unmarshal(data, &parsed))
		assert.Equal(t, ReportVersion, parsed["version"])
		chart, ok := parsed["chart"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 4, chart["2025-07"])
	})

	t.Run("markdown", func(t *testing.T) {
		md := r.ExportMarkdown(stats.LocaleEN)
		assert.Contains(t, md, "# Smoking - 2025")
		assert.Contains(t, md, "| January | 12 | 3 | 1 | 2025-01-20 (7) |")
		assert.Contains(t, md, "| July | 4 | 1 | 0 | 2025-07-04 (4) |")
	})
}

func TestReportMarkdownEmpty(t *testing.T) {
	store := newMemStore()
	h := store.addHabit(t, "Phone", 3)
	r, err := New(store, stats.LocaleZH).Report(h.ShortID(), 2025)
	require.NoError(t, err)

	assert.Empty(t, r.Months)
	assert.Contains(t, r.ExportMarkdown(stats.LocaleZH), "No events recorded.")
}
