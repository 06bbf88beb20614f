package trend

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DateFormat is how row dates are shown.
const DateFormat = "2006-01-02 15:04"

const dateWidth = len(DateFormat)

// Render writes the table with a "Date" column followed by the metric
// columns, every cell right-aligned. width is the minimum column width; a
// column grows to fit its widest label or cell. Dates are shown in loc.
func Render(w io.Writer, t *Table, loc *time.Location, width int) error {
	if loc == nil {
		loc = time.Local
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = max(width, lipgloss.Width(c))
	}
	for _, row := range t.Rows {
		for i, c := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	r := lipgloss.NewRenderer(w)
	dateCell := r.NewStyle().Width(max(width, dateWidth)).Align(lipgloss.Right)
	cell := func(i int) lipgloss.Style {
		if i >= len(widths) {
			return r.NewStyle()
		}
		return r.NewStyle().Width(widths[i]).Align(lipgloss.Right)
	}

	header := []string{dateCell.Bold(true).Render("Date")}
	for i, c := range t.Columns {
		header = append(header, cell(i).Bold(true).Render(c))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, " ")); err != nil {
		return err
	}

	for _, row := range t.Rows {
		line := []string{dateCell.Render(row.Date.In(loc).Format(DateFormat))}
		for i, c := range row.Cells {
			line = append(line, cell(i).Render(c))
		}
		if _, err := fmt.Fprintln(w, strings.Join(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
