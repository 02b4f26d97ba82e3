// ABOUTME: Tests for aggregation and chart series.
// ABOUTME: Covers week/month bucketing, omission of empty buckets, exceeded flags and summaries.
package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(habitID uuid.UUID, date, clock string) *models.TriggerEvent {
	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		panic(err)
	}
	return models.NewTriggerEvent(habitID).WithTriggeredAt(at)
}

func TestWeekBucketedSeriesMalformedKeyUsesToday(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Logger
	logger.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	t.Cleanup(func() { logger.Logger = prev })

	today := calendar.Today()
	series := WeekBucketedSeries(map[string]int{"garbage": 2}, today.Year, today.Month)

	require.Len(t, series, 1)
	assert.Equal(t, WeekIndex(today.Day, today.Year, today.Month)+1, series[0].Key)
	assert.Equal(t, 2, series[0].Value)
	assert.Equal(t, 1, strings.Count(buf.String(), "malformed"), buf.String())
}

func TestWeekBucketedSeriesJanuary2025(t *testing.T) {
	daily := map[string]int{"2025-01-06": 3, "2025-01-13": 2, "2025-01-20": 7}

	require.Equal(t, 3, calendar.FirstWeekdayOffset(2025, 1))
	assert.Equal(t, 1, WeekIndex(6, 2025, 1))
	assert.Equal(t, 2, WeekIndex(13, 2025, 1))
	assert.Equal(t, 3, WeekIndex(20, 2025, 1))

	got := WeekBucketedSeries(daily, 2025, 1)
	want := []ChartBucket{
		{Label: "第2周", Value: 3, Key: 2},
		{Label: "第3周", Value: 2, Key: 3},
		{Label: "第4周", Value: 7, Key: 4},
	}
	assert.Equal(t, want, got)

	buckets := DailyBuckets(daily, 5)
	require.Len(t, buckets, 3)
	assert.False(t, buckets[0].Exceeded, "2025-01-06 has 3 <= 5")
	assert.False(t, buckets[1].Exceeded, "2025-01-13 has 2 <= 5")
	assert.True(t, buckets[2].Exceeded, "2025-01-20 has 7 > 5")
}

func TestWeekBucketedSeriesSumsWithinWeek(t *testing.T) {
	// January 2025: days 1..5 share the first bucket, 6..12 the second.
	daily := map[string]int{"2025-01-01": 1, "2025-01-05": 2, "2025-01-06": 4, "2025-01-12": 1}

	got := LocaleEN.WeekBucketedSeries(daily, 2025, 1)
	assert.Equal(t, []ChartBucket{
		{Label: "Week 1", Value: 3, Key: 1},
		{Label: "Week 2", Value: 5, Key: 2},
	}, got)
}

func TestWeekBucketedSeriesSixthWeek(t *testing.T) {
	// March 2025 starts on a Saturday, so the 31st lands in the sixth bucket.
	daily := map[string]int{"2025-03-31": 2}
	got := WeekBucketedSeries(daily, 2025, 3)
	assert.Equal(t, []ChartBucket{{Label: "第6周", Value: 2, Key: 6}}, got)
}

func TestWeekBucketedSeriesEmpty(t *testing.T) {
	assert.Empty(t, WeekBucketedSeries(nil, 2025, 1))
	assert.Empty(t, WeekBucketedSeries(map[string]int{"2025-01-06": 0}, 2025, 1))
}

func TestMonthBucketedSeriesCalendarOrder(t *testing.T) {
	monthly := map[string]int{"2025-03": 0, "2025-07": 4, "2025-01": 2}

	got := MonthBucketedSeries(monthly, 2025)
	assert.Equal(t, []ChartBucket{
		{Label: "1月", Value: 2, Key: 1},
		{Label: "7月", Value: 4, Key: 7},
	}, got)

	en := LocaleEN.MonthBucketedSeries(monthly, 2025)
	require.Len(t, en, 2)
	assert.Equal(t, "January", en[0].Label)
	assert.Equal(t, "July", en[1].Label)
}

func TestMonthBucketedSeriesIgnoresOtherYears(t *testing.T) {
	monthly := map[string]int{"2024-12": 9, "2025-02": 1}
	got := MonthBucketedSeries(monthly, 2025)
	assert.Equal(t, []ChartBucket{{Label: "2月", Value: 1, Key: 2}}, got)
}

func TestSeriesIdempotent(t *testing.T) {
	daily := map[string]int{"2025-01-06": 3, "2025-01-13": 2, "2025-01-20": 7, "2025-01-31": 1}
	monthly := map[string]int{"2025-01": 13, "2025-05": 2}

	assert.Equal(t, WeekBucketedSeries(daily, 2025, 1), WeekBucketedSeries(daily, 2025, 1))
	assert.Equal(t, MonthBucketedSeries(monthly, 2025), MonthBucketedSeries(monthly, 2025))
	assert.Equal(t, DailyBuckets(daily, 5), DailyBuckets(daily, 5))
}

func TestIsEmptySeries(t *testing.T) {
	assert.True(t, IsEmptySeries(nil))
	assert.True(t, IsEmptySeries([]ChartBucket{}))
	assert.True(t, IsEmptySeries([]ChartBucket{{Label: "x", Value: 0}}))
	assert.False(t, IsEmptySeries([]ChartBucket{{Label: "x", Value: 0}, {Label: "y", Value: 1}}))

	series := []ChartBucket{{Value: 3}, {Value: 8}, {Value: 1}}
	assert.Equal(t, 8, MaxValue(series))
	assert.Equal(t, 12, Total(series))
}

func TestExceededIsStrict(t *testing.T) {
	assert.False(t, Exceeded(5, 5))
	assert.True(t, Exceeded(6, 5))
	assert.False(t, Exceeded(0, 5))

	b := NewDailyBucket("2025-01-06", 3, 5)
	assert.Equal(t, 2, b.Remaining())
	assert.Equal(t, 0, NewDailyBucket("2025-01-06", 7, 5).Remaining())
}

func TestDailyAndMonthlyStatistics(t *testing.T) {
	habit := uuid.New()
	events := []*models.TriggerEvent{
		eventAt(habit, "2025-01-06", "08:00"),
		eventAt(habit, "2025-01-06", "12:30"),
		eventAt(habit, "2025-01-20", "22:10"),
		eventAt(habit, "2025-02-01", "07:00"),
		eventAt(habit, "2024-01-06", "07:00"),
		nil,
	}

	daily := DailyStatistics(events, 2025, 1)
	assert.Equal(t, map[string]int{"2025-01-06": 2, "2025-01-20": 1}, daily)

	monthly := MonthlyStatistics(events, 2025)
	assert.Equal(t, map[string]int{"2025-01": 3, "2025-02": 1}, monthly)

	assert.Empty(t, DailyStatistics(nil, 2025, 1))
	assert.Empty(t, MonthlyStatistics(nil, 2025))
}

func TestSummarize(t *testing.T) {
	daily := map[string]int{"2025-01-06": 3, "2025-01-13": 7, "2025-01-20": 7, "2025-01-21": 0}

	s := Summarize(daily, 2025, 1, 5)
	assert.Equal(t, 17, s.Total)
	assert.Equal(t, 3, s.LoggedDays)
	assert.Equal(t, 2, s.ExceededDays)
	assert.Equal(t, "2025-01-13", s.PeakDate)
	assert.Equal(t, 7, s.PeakCount)

	empty := Summarize(nil, 2025, 1, 5)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.PeakDate)
}

func TestLocaleLabels(t *testing.T) {
	assert.Equal(t, LocaleZH, ParseLocale(""))
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, "一", LocaleZH.WeekdayLabel(1))
	assert.Equal(t, "Su", LocaleEN.WeekdayLabel(7))
	assert.Equal(t, "", LocaleEN.WeekdayLabel(8))
	assert.Equal(t, "", LocaleZH.MonthLabel(13))
	assert.Equal(t, "2025年01月", LocaleZH.MonthTitle(2025, 1))
	assert.Equal(t, "January 2025", LocaleEN.MonthTitle(2025, 1))
}

func TestChartMode(t *testing.T) {
	assert.Equal(t, ChartMonthly, ParseChartMode(""))
	assert.Equal(t, ChartMonthly, ParseChartMode("weekly"))
	assert.Equal(t, ChartYearly, ParseChartMode("yearly"))
	assert.Equal(t, ChartYearly, ChartMonthly.Toggle())
	assert.Equal(t, ChartMonthly, ChartYearly.Toggle())
}
