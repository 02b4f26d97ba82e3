// ABOUTME: Calendar grid model placing month days under Monday-first weekday columns.
// ABOUTME: Forward layout, hit-testing from cell geometry back to a date, and per-day status lookup.
package calendar

import "math"

// Columns is the number of weekday columns in the grid.
const Columns = 7

// ViewMode selects how many grid rows are shown.
type ViewMode string

const (
	// MonthView reserves six rows, enough for any month.
	MonthView ViewMode = "month"
	// WeekView shows only the first two rows of the month.
	WeekView ViewMode = "week"
)

// Rows returns the number of grid rows for the mode.
func (v ViewMode) Rows() int {
	if v == WeekView {
		return 2
	}
	return 6
}

// Toggle switches between month and week view.
func (v ViewMode) Toggle() ViewMode {
	if v == WeekView {
		return MonthView
	}
	return WeekView
}

// ParseViewMode maps a config string to a ViewMode, defaulting to MonthView.
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == WeekView {
		return WeekView
	}
	return MonthView
}

// Geometry is the cell layout of a drawn calendar in any unit (pixels, terminal cells).
type Geometry struct {
	CellWidth    float64
	CellHeight   float64
	HeaderHeight float64
}

// Model is an immutable snapshot of one month of a habit's calendar.
type Model struct {
	year        int
	month       int
	mode        ViewMode
	counts      map[string]int
	limit       int
	daysInMonth int
	offset      int
}

// NewModel builds a calendar snapshot. counts maps YYYY-MM-DD to event counts and is copied.
func NewModel(year, month int, mode ViewMode, counts map[string]int, limit int) *Model {
	cp := make(map[string]int, len(counts))
	for k, v := range counts {
		cp[k] = v
	}
	return &Model{
		year:        year,
		month:       month,
		mode:        mode,
		counts:      cp,
		limit:       limit,
		daysInMonth: DaysInMonth(year, month),
		offset:      FirstWeekdayOffset(year, month),
	}
}

// Year returns the model's year.
func (m *Model) Year() int { return m.year }

// Month returns the model's month (1..12).
func (m *Model) Month() int { return m.month }

// Mode returns the view mode.
func (m *Model) Mode() ViewMode { return m.mode }

// Limit returns the daily limit used for exceeded flags.
func (m *Model) Limit() int { return m.limit }

// DaysInMonth returns the number of days in the model's month.
func (m *Model) DaysInMonth() int { return m.daysInMonth }

// Offset returns the first weekday offset, Monday=1 .. Sunday=7.
func (m *Model) Offset() int { return m.offset }

// Rows returns the number of rows for the model's view mode.
func (m *Model) Rows() int { return m.mode.Rows() }

// Grid lays the month out in rows x 7 cells. Zero marks an empty cell.
//
// Row 0 leaves the first offset-1 cells empty, then days run left to right and
// top to bottom until the month is exhausted. Rows past the last day stay empty.
func (m *Model) Grid(rows int) [][]int {
	grid := make([][]int, rows)
	day := 1
	for row := 0; row < rows; row++ {
		grid[row] = make([]int, Columns)
		for col := 0; col < Columns; col++ {
			if row == 0 && col < m.offset-1 {
				continue
			}
			if day > m.daysInMonth {
				continue
			}
			grid[row][col] = day
			day++
		}
	}
	return grid
}

// DayAt returns the day drawn at (row, col), or 0 when the cell is empty or out of range.
// It is the algebraic inverse of Grid.
func (m *Model) DayAt(row, col int) int {
	if row < 0 || row >= m.Rows() || col < 0 || col >= Columns {
		return 0
	}
	day := row*Columns + col - (m.offset - 2)
	if day < 1 || day > m.daysInMonth {
		return 0
	}
	return day
}

// Position returns the (row, col) where day is drawn. ok is false for days outside the month.
func (m *Model) Position(day int) (row, col int, ok bool) {
	if day < 1 || day > m.daysInMonth {
		return 0, 0, false
	}
	idx := day + m.offset - 2
	return idx / Columns, idx % Columns, true
}

// HitTest resolves a point in the drawn calendar to the date underneath it.
// Points in the header, outside the grid, or over empty cells return false.
func (m *Model) HitTest(x, y float64, g Geometry) (Date, bool) {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return Date{}, false
	}
	if x < 0 || y < g.HeaderHeight {
		return Date{}, false
	}
	col := int(math.Floor(x / g.CellWidth))
	row := int(math.Floor((y - g.HeaderHeight) / g.CellHeight))
	day := m.DayAt(row, col)
	if day == 0 {
		return Date{}, false
	}
	return Date{Year: m.year, Month: m.month, Day: day}, true
}

// CellCenter returns the center point of (row, col) under g.
func CellCenter(row, col int, g Geometry) (x, y float64) {
	x = float64(col)*g.CellWidth + g.CellWidth/2
	y = g.HeaderHeight + float64(row)*g.CellHeight + g.CellHeight/2
	return x, y
}

// DateString returns the YYYY-MM-DD string for day of the model's month.
func (m *Model) DateString(day int) string {
	return FormatDate(m.year, m.month, day)
}

// Status returns the event count for day and whether it exceeds the limit.
// Days without events report (0, false).
func (m *Model) Status(day int) (count int, exceeded bool) {
	count = m.counts[m.DateString(day)]
	return count, count > m.limit
}

// Total returns the sum of all counts in the snapshot.
func (m *Model) Total() int {
	total := 0
	for _, c := range m.counts {
		total += c
	}
	return total
}
