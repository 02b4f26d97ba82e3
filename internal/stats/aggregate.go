// ABOUTME: Aggregation of trigger events into sparse per-day and per-month counts.
// ABOUTME: Also derives daily buckets with the exceeded-limit flag and monthly summaries.
package stats

import (
	"sort"
	"strings"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
)

// DailyBucket is one day's count compared against the habit's limit.
type DailyBucket struct {
	Date     string `json:"date" yaml:"date"`
	Count    int    `json:"count" yaml:"count"`
	Limit    int    `json:"limit" yaml:"limit"`
	Exceeded bool   `json:"exceeded" yaml:"exceeded"`
}

// Exceeded reports whether count is strictly over limit. Reaching the limit is compliant.
func Exceeded(count, limit int) bool {
	return count > limit
}

// NewDailyBucket builds a bucket with its exceeded flag set.
func NewDailyBucket(date string, count, limit int) DailyBucket {
	return DailyBucket{Date: date, Count: count, Limit: limit, Exceeded: Exceeded(count, limit)}
}

// Remaining returns how many more events fit under the limit, never negative.
func (b DailyBucket) Remaining() int {
	if b.Count >= b.Limit {
		return 0
	}
	return b.Limit - b.Count
}

// DailyStatistics counts events by exact date for the given month.
// Days without events are absent from the result.
func DailyStatistics(events []*models.TriggerEvent, year, month int) map[string]int {
	prefix := calendar.FormatMonth(year, month) + "-"
	out := make(map[string]int)
	for _, e := range events {
		if e == nil || !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		out[e.Date]++
	}
	return out
}

// MonthlyStatistics counts events by YYYY-MM for the given year.
// Months without events are absent from the result.
func MonthlyStatistics(events []*models.TriggerEvent, year int) map[string]int {
	out := make(map[string]int)
	for _, e := range events {
		if e == nil || len(e.Date) < 7 {
			continue
		}
		key := e.Date[:7]
		if y, _, err := calendar.ParseMonth(key); err != nil || y != year {
			continue
		}
		out[key]++
	}
	return out
}

// DailyBuckets converts sparse counts to buckets sorted by date.
func DailyBuckets(counts map[string]int, limit int) []DailyBucket {
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyBucket, 0, len(dates))
	for _, d := range dates {
		out = append(out, NewDailyBucket(d, counts[d], limit))
	}
	return out
}

// MonthSummary condenses one month of daily counts.
type MonthSummary struct {
	Year         int    `json:"year" yaml:"year"`
	Month        int    `json:"month" yaml:"month"`
	Total        int    `json:"total" yaml:"total"`
	LoggedDays   int    `json:"logged_days" yaml:"logged_days"`
	ExceededDays int    `json:"exceeded_days" yaml:"exceeded_days"`
	PeakDate     string `json:"peak_date,omitempty" yaml:"peak_date,omitempty"`
	PeakCount    int    `json:"peak_count" yaml:"peak_count"`
	Limit        int    `json:"limit" yaml:"limit"`
}

// Summarize builds a MonthSummary. Ties for the peak go to the earliest date.
func Summarize(counts map[string]int, year, month, limit int) MonthSummary {
	s := MonthSummary{Year: year, Month: month, Limit: limit}
	for _, b := range DailyBuckets(counts, limit) {
		if b.Count <= 0 {
			continue
		}
		s.Total += b.Count
		s.LoggedDays++
		if b.Exceeded {
			s.ExceededDays++
		}
		if b.Count > s.PeakCount {
			s.PeakCount = b.Count
			s.PeakDate = b.Date
		}
	}
	return s
}
