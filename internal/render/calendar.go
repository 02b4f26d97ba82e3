// ABOUTME: Terminal heat-map rendering of a calendar.Model.
// ABOUTME: Cell geometry here is the same geometry mouse hit-testing inverts.
package render

import (
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/stats"
)

// Fixed layout of a rendered calendar, in terminal cells.
const (
	CellWidth    = 6
	CellHeight   = 2
	HeaderHeight = 2
)

// Geometry is the layout Calendar draws with, for use with Model.HitTest.
var Geometry = calendar.Geometry{
	CellWidth:    CellWidth,
	CellHeight:   CellHeight,
	HeaderHeight: HeaderHeight,
}

// CalendarOptions controls highlighting.
type CalendarOptions struct {
	// Today is underlined when it falls in the rendered month.
	Today calendar.Date
	// Selected is a day of month drawn highlighted, 0 for none.
	Selected int
}

// Calendar renders the model with today highlighted.
func Calendar(m *calendar.Model, locale stats.Locale) string {
	return CalendarWith(m, locale, CalendarOptions{Today: calendar.Today()})
}

// CalendarWith renders the model: a title line, a weekday header, then
// CellHeight lines per grid row. Days within the limit are green, days over it
// red, and days without events plain.
func CalendarWith(m *calendar.Model, locale stats.Locale, opts CalendarOptions) string {
	lines := make([]string, 0, HeaderHeight+m.Rows()*CellHeight+1)

	lines = append(lines, Title.Render(locale.MonthTitle(m.Year(), m.Month()))+
		Muted.Render(fmt.Sprintf("  limit %d", m.Limit())))

	var header strings.Builder
	for dow := 1; dow <= calendar.Columns; dow++ {
		header.WriteString(headerStyle.Render(" " + locale.WeekdayLabel(dow)))
	}
	lines = append(lines, header.String())

	for _, row := range m.Grid(m.Rows()) {
		var top, bottom strings.Builder
		for _, day := range row {
			t, b := renderCell(m, day, opts)
			top.WriteString(t)
			bottom.WriteString(b)
		}
		lines = append(lines, top.String(), bottom.String())
	}

	lines = append(lines, Muted.Render(fmt.Sprintf("total %d", m.Total())))
	return strings.Join(lines, "\n")
}

func renderCell(m *calendar.Model, day int, opts CalendarOptions) (string, string) {
	if day == 0 {
		return cellStyle.Render(""), cellStyle.Render("")
	}

	count, exceeded := m.Status(day)
	style := cellStyle
	switch {
	case exceeded:
		style = badCellStyle
	case count > 0:
		style = goodCellStyle
	}
	if day == opts.Selected {
		style = style.Inherit(selectedStyle)
	}

	dayStyle := style
	if opts.Today == (calendar.Date{Year: m.Year(), Month: m.Month(), Day: day}) {
		dayStyle = style.Inherit(todayStyle)
	}

	countText := ""
	if count > 0 {
		countText = "  " + formatCount(count)
	}
	return dayStyle.Render(fmt.Sprintf(" %2d", day)), style.Render(countText)
}

func formatCount(n int) string {
	if n > 999 {
		return "999+"
	}
	return fmt.Sprintf("%d", n)
}
