package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trellis/internal/domain"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatTaskTable renders a list of tasks as an aligned table.
func FormatTaskTable(tasks []*domain.Task, statusNames map[string]string) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		assignee := Dim("-")
		if t.AssigneeID != nil {
			assignee = StyleFg.Render(*t.AssigneeID)
		}
		title := t.Title
		if t.IsSubtask() {
			title = Dim("└ ") + title
		}
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			title,
			StyleBlue.Render(statusNames[t.StatusID]),
			PriorityBadge(t.Priority),
			assignee,
		})
	}
	return RenderTable([]string{"ID", "Title", "Status", "Priority", "Assignee"}, rows)
}

// FormatTaskDetail renders the full view of a single task.
func FormatTaskDetail(t *domain.Task, statusName string, labels []*domain.Label, blockedBy, blocking []*domain.Task) string {
	var b strings.Builder

	b.WriteString(Header(t.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), t.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), StyleBlue.Render(statusName)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Priority:"), PriorityBadge(t.Priority)))

	if t.AssigneeID != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Assignee:"), *t.AssigneeID))
	}
	if t.StartDate != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Start:"), t.StartDate.Format("2006-01-02")))
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		if !t.DatesOrdered() {
			due += " " + StyleYellow.Render("(before start)")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Due:"), due))
	}
	if t.ParentTaskID != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Parent:"), shortID(*t.ParentTaskID)))
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}

	if len(labels) > 0 {
		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = StylePurple.Render(l.Name)
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Labels:"), strings.Join(names, " ")))
	}

	if len(blockedBy) > 0 {
		b.WriteString("\n" + StyleRed.Render("Blocked by:") + "\n")
		for _, blocker := range blockedBy {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(shortID(blocker.ID)), blocker.Title))
		}
	}
	if len(blocking) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Blocking:") + "\n")
		for _, blocked := range blocking {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(shortID(blocked.ID)), blocked.Title))
		}
	}

	return b.String()
}
