// ABOUTME: Yearly statistics report for a habit.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/stats"
	"gopkg.in/yaml.v3"
)

// ReportVersion is the version of the report format.
const ReportVersion = "1.0"

// ReportHabit identifies the habit a report covers.
type ReportHabit struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	DailyLimit int    `json:"daily_limit" yaml:"daily_limit"`
}

// Report is a year of statistics for one habit.
type Report struct {
	Version      string               `json:"version" yaml:"version"`
	ExportedAt   time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool         string               `json:"tool" yaml:"tool"`
	Habit        ReportHabit          `json:"habit" yaml:"habit"`
	Year         int                  `json:"year" yaml:"year"`
	Total        int                  `json:"total" yaml:"total"`
	LoggedDays   int                  `json:"logged_days" yaml:"logged_days"`
	ExceededDays int                  `json:"exceeded_days" yaml:"exceeded_days"`
	Months       []stats.MonthSummary `json:"months" yaml:"months"`
	Chart        []stats.ChartBucket  `json:"chart" yaml:"chart"`
}

// Report builds the yearly report. Months without events are omitted.
func (s *Service) Report(habitIDOrPrefix string, year int) (*Report, error) {
	h, err := s.store.GetHabit(habitIDOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("load habit: %w", err)
	}

	r := &Report{
		Version:    ReportVersion,
		ExportedAt: time.Now(),
		Tool:       "habits",
		Habit:      ReportHabit{ID: h.ID.String(), Name: h.Name, DailyLimit: h.DailyLimit},
		Year:       year,
		Months:     []stats.MonthSummary{},
	}

	for m := 1; m <= 12; m++ {
		ms, err := s.MonthSummary(h.ID, year, m)
		if err != nil {
			return nil, err
		}
		if ms.Total == 0 {
			continue
		}
		r.Months = append(r.Months, ms)
		r.Total += ms.Total
		r.LoggedDays += ms.LoggedDays
		r.ExceededDays += ms.ExceededDays
	}

	r.Chart, err = s.Chart(h.ID, year, 1, stats.ChartYearly)
	if err != nil {
		return nil, err
	}
	if r.Chart == nil {
		r.Chart = []stats.ChartBucket{}
	}
	return r, nil
}

// ExportJSON renders the report as indented JSON.
func (r *Report) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ExportYAML renders the report as YAML.
func (r *Report) ExportYAML() ([]byte, error) {
	yamlData := struct {
		Version    string               `yaml:"version"`
		ExportedAt string               `yaml:"exported_at"`
		Tool       string               `yaml:"tool"`
		Habit      ReportHabit          `yaml:"habit"`
		Year       int                  `yaml:"year"`
		Total      int                  `yaml:"total"`
		LoggedDays int                  `yaml:"logged_days"`
		Exceeded   int                  `yaml:"exceeded_days"`
		Months     []stats.MonthSummary `yaml:"months"`
		Chart      map[string]int       `yaml:"chart"`
	}{
		Version:    r.Version,
		ExportedAt: r.ExportedAt.Format(time.RFC3339),
		Tool:       r.Tool,
		Habit:      r.Habit,
		Year:       r.Year,
		Total:      r.Total,
		LoggedDays: r.LoggedDays,
		Exceeded:   r.ExceededDays,
		Months:     r.Months,
		Chart:      make(map[string]int, len(r.Chart)),
	}
	for _, b := range r.Chart {
		yamlData.Chart[fmt.Sprintf("%04d-%02d", r.Year, b.Key)] = b.Value
	}
	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders the report as a Markdown document.
func (r *Report) ExportMarkdown(locale stats.Locale) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s - %d\n\n", r.Habit.Name, r.Year))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.ExportedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Daily limit: %d\n", r.Habit.DailyLimit))
	sb.WriteString(fmt.Sprintf("- Total: %d\n", r.Total))
	sb.WriteString(fmt.Sprintf("- Logged days: %d\n", r.LoggedDays))
	sb.WriteString(fmt.Sprintf("- Days over limit: %d\n\n", r.ExceededDays))

	if len(r.Months) == 0 {
		sb.WriteString("No events recorded.\n")
		return sb.String()
	}

	sb.WriteString("## Months\n\n")
	sb.WriteString("| Month | Total | Days | Over limit | Peak |\n")
	sb.WriteString("|-------|-------|------|------------|------|\n")
	for _, m := range r.Months {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %s (%d) |\n",
			locale.MonthLabel(m.Month), m.Total, m.LoggedDays, m.ExceededDays, m.PeakDate, m.PeakCount))
	}
	return sb.String()
}
