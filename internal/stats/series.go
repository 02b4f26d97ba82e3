// ABOUTME: Chart series built from sparse counts: week buckets of a month, month buckets of a year.
// ABOUTME: Empty buckets are dropped and order is always chronological, never by value.
package stats

import (
	"fmt"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/logger"
)

// WeeksPerMonth is the number of Monday-start week buckets a month can touch.
const WeeksPerMonth = 6

// ChartBucket is one labeled bar of a chart series.
type ChartBucket struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
	// Key orders buckets: week index (1..6) or month number (1..12).
	Key int `json:"key" yaml:"key"`
}

// ChartMode selects the granularity of the history chart.
type ChartMode string

const (
	// ChartMonthly shows week buckets of one month.
	ChartMonthly ChartMode = "monthly"
	// ChartYearly shows month buckets of one year.
	ChartYearly ChartMode = "yearly"
)

// Toggle switches between monthly and yearly charts.
func (c ChartMode) Toggle() ChartMode {
	if c == ChartYearly {
		return ChartMonthly
	}
	return ChartYearly
}

// ParseChartMode maps a config string to a ChartMode, defaulting to ChartMonthly.
func ParseChartMode(s string) ChartMode {
	if ChartMode(s) == ChartYearly {
		return ChartYearly
	}
	return ChartMonthly
}

// Locale selects chart and calendar labels.
type Locale string

const (
	// LocaleZH uses 第N周 / N月 labels and 一..日 weekday headers.
	LocaleZH Locale = "zh"
	// LocaleEN uses Week N / month names and Mo..Su weekday headers.
	LocaleEN Locale = "en"
)

var (
	monthNamesZH = [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"}
	monthNamesEN = [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	weekdaysZH = [7]string{"一", "二", "三", "四", "五", "六", "日"}
	weekdaysEN = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
)

// ParseLocale maps a config value to a Locale, defaulting to LocaleZH.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEN {
		return LocaleEN
	}
	return LocaleZH
}

// WeekLabel returns the label for the 1-based week ordinal.
func (l Locale) WeekLabel(week int) string {
	if l == LocaleEN {
		return fmt.Sprintf("Week %d", week)
	}
	return fmt.Sprintf("第%d周", week)
}

// MonthLabel returns the label for month 1..12.
func (l Locale) MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	if l == LocaleEN {
		return monthNamesEN[month-1]
	}
	return monthNamesZH[month-1]
}

// WeekdayLabel returns the header for dayOfWeek, Monday=1 .. Sunday=7.
func (l Locale) WeekdayLabel(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return ""
	}
	if l == LocaleEN {
		return weekdaysEN[dayOfWeek-1]
	}
	return weekdaysZH[dayOfWeek-1]
}

// MonthTitle returns a heading such as "2025年01月" or "January 2025".
func (l Locale) MonthTitle(year, month int) string {
	if l == LocaleEN {
		return fmt.Sprintf("%s %d", l.MonthLabel(month), year)
	}
	return fmt.Sprintf("%04d年%02d月", year, month)
}

// WeekIndex returns the zero-based Monday-start week bucket for day of (year, month).
func WeekIndex(day, year, month int) int {
	return (day + calendar.FirstWeekdayOffset(year, month) - 2) / 7
}

// WeekBucketedSeries sums daily counts into week buckets using Chinese labels.
func WeekBucketedSeries(daily map[string]int, year, month int) []ChartBucket {
	return LocaleZH.WeekBucketedSeries(daily, year, month)
}

// WeekBucketedSeries sums daily counts into week buckets of (year, month).
//
// Only the day-of-month of each key is used. Malformed keys count toward
// today's day-of-month. Bucket indexes outside 0..5 are dropped, not reported.
func (l Locale) WeekBucketedSeries(daily map[string]int, year, month int) []ChartBucket {
	var weeks [WeeksPerMonth]int
	for key, count := range daily {
		d := calendar.ParseDateOrToday(key)
		idx := WeekIndex(d.Day, year, month)
		if idx < 0 || idx >= len(weeks) {
			logger.Debug("week bucket out of range, dropping", "key", key, "index", idx)
			continue
		}
		weeks[idx] += count
	}

	var out []ChartBucket
	for i, total := range weeks {
		if total > 0 {
			out = append(out, ChartBucket{Label: l.WeekLabel(i + 1), Value: total, Key: i + 1})
		}
	}
	return out
}

// MonthBucketedSeries orders monthly counts of year by calendar month using Chinese labels.
func MonthBucketedSeries(monthly map[string]int, year int) []ChartBucket {
	return LocaleZH.MonthBucketedSeries(monthly, year)
}

// MonthBucketedSeries orders monthly counts of year by calendar month, skipping zero or missing months.
func (l Locale) MonthBucketedSeries(monthly map[string]int, year int) []ChartBucket {
	var out []ChartBucket
	for m := 1; m <= 12; m++ {
		count := monthly[calendar.FormatMonth(year, m)]
		if count > 0 {
			out = append(out, ChartBucket{Label: l.MonthLabel(m), Value: count, Key: m})
		}
	}
	return out
}

// MaxValue returns the largest bucket value, or 0 for an empty series.
func MaxValue(series []ChartBucket) int {
	peak := 0
	for _, b := range series {
		if b.Value > peak {
			peak = b.Value
		}
	}
	return peak
}

// Total returns the sum of all bucket values.
func Total(series []ChartBucket) int {
	total := 0
	for _, b := range series {
		total += b.Value
	}
	return total
}

// IsEmptySeries reports whether there is nothing to draw: no buckets, or every value zero.
func IsEmptySeries(series []ChartBucket) bool {
	return len(series) == 0 || MaxValue(series) == 0
}
