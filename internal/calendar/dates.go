// ABOUTME: Pure date arithmetic for month-oriented calendar views.
// ABOUTME: Days in month, Monday-based first weekday offset, month stepping, YYYY-MM-DD parsing.
package calendar

import (
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/logger"
)

// DateFormatError reports an unparseable YYYY-MM-DD string.
type DateFormatError struct {
	Input string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Input)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// Date is a calendar day without time or zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return FormatDate(d.Year, d.Month, d.Day)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysInMonth returns the number of days in month (1..12) of year.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOffset returns the weekday of day 1 of the month, Monday=1 .. Sunday=7.
func FirstWeekdayOffset(year, month int) int {
	wd := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// PreviousMonth steps back one month, wrapping January to December of the prior year.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth steps forward one month, wrapping December to January of the next year.
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// FormatDate builds a YYYY-MM-DD string.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// FormatMonth builds a YYYY-MM key.
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FormatTime builds an HH:MM string.
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseDate parses a YYYY-MM-DD string. Invalid input yields a *DateFormatError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &DateFormatError{Input: s, Err: err}
	}
	return DateOf(t), nil
}

// ParseDateOrToday parses s, falling back to today when s is malformed.
func ParseDateOrToday(s string) Date {
	return parseDateOr(s, time.Now())
}

func parseDateOr(s string, now time.Time) Date {
	d, err := ParseDate(s)
	if err != nil {
		logger.Debug("malformed date, using today", "input", s)
		return DateOf(now)
	}
	return d
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses a point in time given as RFC3339, "YYYY-MM-DD HH:MM",
// "YYYY-MM-DD" (midnight), or "HH:MM" (that time on the day of now).
// Layouts without a zone are read in now's location.
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return time.Time{}, &DateFormatError{Input: s, Err: fmt.Errorf("unrecognized timestamp")}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (year, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, &DateFormatError{Input: s, Err: err}
	}
	return t.Year(), int(t.Month()), nil
}
