// ABOUTME: History service joining the event store with calendar and chart models.
// ABOUTME: Produces immutable calendar snapshots, chart series, today status and month summaries.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
)

// Store is the subset of storage the history views read from.
type Store interface {
	GetHabit(idOrPrefix string) (*models.Habit, error)
	LimitFor(habitID uuid.UUID) int
	CountByDate(habitID uuid.UUID, date string) (int, error)
	DailyCounts(habitID uuid.UUID, year, month int) (map[string]int, error)
	MonthlyCounts(habitID uuid.UUID, year int) (map[string]int, error)
	ListTriggersByDate(habitID uuid.UUID, date string) ([]*models.TriggerEvent, error)
	ListTriggersInRange(habitID uuid.UUID, startDate, endDate string) ([]*models.TriggerEvent, error)
}

// Service builds history views for one store and label locale.
type Service struct {
	store  Store
	locale stats.Locale
}

// New creates a Service.
func New(store Store, locale stats.Locale) *Service {
	return &Service{store: store, locale: locale}
}

// Locale returns the label locale.
func (s *Service) Locale() stats.Locale {
	return s.locale
}

// Calendar returns the calendar snapshot of (year, month) for the habit.
func (s *Service) Calendar(habitID uuid.UUID, year, month int, mode calendar.ViewMode) (*calendar.Model, error) {
	counts, err := s.store.DailyCounts(habitID, year, month)
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}
	return calendar.NewModel(year, month, mode, counts, s.store.LimitFor(habitID)), nil
}

// Chart returns week buckets of (year, month) for ChartMonthly, or month buckets of year for ChartYearly.
func (s *Service) Chart(habitID uuid.UUID, year, month int, mode stats.ChartMode) ([]stats.ChartBucket, error) {
	if mode == stats.ChartYearly {
		monthly, err := s.store.MonthlyCounts(habitID, year)
		if err != nil {
			return nil, fmt.Errorf("load yearly chart: %w", err)
		}
		return s.locale.MonthBucketedSeries(monthly, year), nil
	}

	daily, err := s.store.DailyCounts(habitID, year, month)
	if err != nil {
		return nil, fmt.Errorf("load monthly chart: %w", err)
	}
	return s.locale.WeekBucketedSeries(daily, year, month), nil
}

// Today returns the habit's count and limit status for the calendar day of now.
func (s *Service) Today(habitID uuid.UUID, now time.Time) (stats.DailyBucket, error) {
	date := calendar.DateOf(now).String()
	n, err := s.store.CountByDate(habitID, date)
	if err != nil {
		return stats.DailyBucket{}, fmt.Errorf("load today: %w", err)
	}
	return stats.NewDailyBucket(date, n, s.store.LimitFor(habitID)), nil
}

// Day returns the events of a day. Malformed dates fall back to today.
func (s *Service) Day(habitID uuid.UUID, date string) (calendar.Date, []*models.TriggerEvent, error) {
	d := calendar.ParseDateOrToday(date)
	events, err := s.store.ListTriggersByDate(habitID, d.String())
	if err != nil {
		return d, nil, fmt.Errorf("load day: %w", err)
	}
	return d, events, nil
}

// Range returns the events from one day through another, inclusive, in chronological order.
// Unlike Day, malformed dates are errors.
func (s *Service) Range(habitID uuid.UUID, from, to string) ([]*models.TriggerEvent, error) {
	start, err := calendar.ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if end.String() < start.String() {
		return nil, fmt.Errorf("load range: %s is before %s", end, start)
	}
	events, err := s.store.ListTriggersInRange(habitID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("load range: %w", err)
	}
	return events, nil
}

// MonthSummary condenses one month of the habit's history.
func (s *Service) MonthSummary(habitID uuid.UUID, year, month int) (stats.MonthSummary, error) {
	counts, err := s.store.DailyCounts(habitID, year, month)
	if err != nil {
		return stats.MonthSummary{}, fmt.Errorf("load month summary: %w", err)
	}
	return stats.Summarize(counts, year, month, s.store.LimitFor(habitID)), nil
}
