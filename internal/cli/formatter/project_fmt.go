package formatter

import (
	"strconv"

	"github.com/alexanderramin/trellis/internal/domain"
)

// FormatProjectTable renders the project list as an aligned table.
func FormatProjectTable(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects. Create one with: trellis project add --name <name>")
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(shortID(p.ID)),
			Bold(p.Name),
			Dim(p.CreatedAt.Format("2006-01-02")),
		})
	}
	return RenderTable([]string{"ID", "Name", "Created"}, rows)
}

// FormatStatusTable renders a project's columns in board order.
func FormatStatusTable(statuses []*domain.TaskStatus, countByColumn map[string]int) string {
	if len(statuses) == 0 {
		return Dim("No columns.")
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		terminal := ""
		if s.IsTerminal {
			terminal = StyleGreen.Render("terminal")
		}
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			Bold(s.Name),
			Dim(strconv.Itoa(countByColumn[s.ID])),
			terminal,
		})
	}
	return RenderTable([]string{"ID", "Column", "Tasks", ""}, rows)
}
