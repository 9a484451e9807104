package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID accepts a full UUID or a unique UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	return singleMatch("project", input, matches)
}

// resolveTaskID accepts a full UUID or a unique UUID prefix, scoped to one
// project.
func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	return singleMatch("task", input, matches)
}

// resolveStatusID accepts a status ID, a unique ID prefix, or a column name
// (case-insensitive), scoped to one project.
func resolveStatusID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("status is required")
	}

	statuses, err := app.Statuses.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, s := range statuses {
		if s.ID == input || strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range statuses {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	return singleMatch("status", input, matches)
}

// resolveLabelID accepts a label name (case-insensitive) or an ID prefix.
func resolveLabelID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("label is required")
	}

	labels, err := app.Labels.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, l := range labels {
		if l.ID == input || strings.EqualFold(l.Name, input) {
			return l.ID, nil
		}
	}

	var matches []string
	for _, l := range labels {
		if strings.HasPrefix(l.ID, input) {
			matches = append(matches, l.ID)
		}
	}
	return singleMatch("label", input, matches)
}

func singleMatch(kind, input string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
