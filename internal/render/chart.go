// ABOUTME: Horizontal bar chart rendering of chart series.
// ABOUTME: Falls back to a placeholder when the series has nothing to draw.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/habits/internal/stats"
)

// NoData is shown in place of an empty chart.
const NoData = "No data"

const minBarWidth = 4

// BarChart renders one line per bucket: label, bar scaled to the largest value, value.
// width is the total line width available.
func BarChart(series []stats.ChartBucket, width int) string {
	if stats.IsEmptySeries(series) {
		return Muted.Render("  " + NoData)
	}

	labelW := 0
	valueW := 0
	for _, b := range series {
		if w := lipgloss.Width(b.Label); w > labelW {
			labelW = w
		}
		if w := len(fmt.Sprintf("%d", b.Value)); w > valueW {
			valueW = w
		}
	}

	barW := width - labelW - valueW - 6
	if barW < minBarWidth {
		barW = minBarWidth
	}
	peak := stats.MaxValue(series)

	lines := make([]string, 0, len(series))
	for _, b := range series {
		filled := b.Value * barW / peak
		if filled < 1 && b.Value > 0 {
			filled = 1
		}
		if filled < 0 {
			filled = 0
		}

		bar := Good.Render(strings.Repeat("█", filled))
		track := lipgloss.NewStyle().Foreground(cTrack).Render(strings.Repeat("░", barW-filled))
		label := labelStyle.Width(labelW).Render(b.Label)

		lines = append(lines, fmt.Sprintf("  %s %s%s %*d", label, bar, track, valueW, b.Value))
	}
	return strings.Join(lines, "\n")
}
