package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/trellis/internal/domain"
)

const boardColumnWidth = 28

var (
	boardColumnStyle = lipgloss.NewStyle().
				Width(boardColumnWidth).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDim)

	boardColumnTitle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true)
)

// FormatBoard renders one column per status side by side, each column's tasks
// in display order.
func FormatBoard(columns []*domain.TaskStatus, tasksByColumn map[string][]*domain.Task) string {
	if len(columns) == 0 {
		return Dim("No columns.")
	}

	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		var b strings.Builder
		title := col.Name
		if col.IsTerminal {
			title += " ✓"
		}
		b.WriteString(boardColumnTitle.Render(title))
		b.WriteString(Dim(fmt.Sprintf(" (%d)", len(tasksByColumn[col.ID]))))
		b.WriteString("\n")

		for _, t := range tasksByColumn[col.ID] {
			b.WriteString("\n")
			b.WriteString(truncate(t.Title, boardColumnWidth-4))
			b.WriteString("\n")
			b.WriteString(Dim(shortID(t.ID)))
			if t.Priority != domain.PriorityNone {
				b.WriteString("  " + PriorityBadge(t.Priority))
			}
			b.WriteString("\n")
		}
		rendered = append(rendered, boardColumnStyle.Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func truncate(s string, max int) string {
	if max < 1 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
