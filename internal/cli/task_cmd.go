package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
	"github.com/alexanderramin/trellis/internal/domain"
)

// patchFromFlags builds a TaskPatch from the update command's flags. A flag
// set to the empty string clears the field; an unset flag leaves it alone.
func patchFromFlags(flags *pflag.FlagSet) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		patch.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p := domain.Priority(v)
		patch.Priority = &p
	}
	if flags.Changed("assignee") {
		v, _ := flags.GetString("assignee")
		if v == "" {
			patch.ClearAssignee = true
		} else {
			patch.AssigneeID = &v
		}
	}
	if flags.Changed("start") {
		v, _ := flags.GetString("start")
		if v == "" {
			patch.ClearStartDate = true
		} else {
			d, err := parseOptionalDate("start", v)
			if err != nil {
				return patch, err
			}
			patch.StartDate = d
		}
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		if v == "" {
			patch.ClearDueDate = true
		} else {
			d, err := parseOptionalDate("due", v)
			if err != nil {
				return patch, err
			}
			patch.DueDate = d
		}
	}

	return patch, nil
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskReorderCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func parseOptionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: %w", flag, value, err)
	}
	return &d, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, title, description, priority, assignee, parent, status, start, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Long:  "Create a task. Without --title an interactive form opens on a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if title == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--title is required in non-interactive mode")
				}
				if err := runTaskForm(&title, &description, &priority, &due); err != nil {
					return err
				}
			}

			statuses, err := app.Statuses.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				return fmt.Errorf("project has no columns")
			}
			statusID := statuses[0].ID
			if status != "" {
				statusID, err = resolveStatusID(ctx, app, projectID, status)
				if err != nil {
					return err
				}
			}

			startDate, err := parseOptionalDate("start", start)
			if err != nil {
				return err
			}
			dueDate, err := parseOptionalDate("due", due)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID:   projectID,
				StatusID:    statusID,
				Title:       title,
				Description: description,
				Priority:    domain.Priority(priority),
				StartDate:   startDate,
				DueDate:     dueDate,
			}
			if assignee != "" {
				t.AssigneeID = &assignee
			}
			if parent != "" {
				parentID, err := resolveTaskID(ctx, app, projectID, parent)
				if err != nil {
					return err
				}
				t.ParentTaskID = &parentID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			if !t.DatesOrdered() {
				fmt.Println(formatter.StyleYellow.Render("Warning: due date is before start date."))
			}
			fmt.Printf("Created task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "none", "Priority: none, low, medium, high, urgent")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee user ID (must be a project member)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID or prefix")
	cmd.Flags().StringVar(&status, "column", "", "Target column (defaults to the board's first column)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, column string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			statuses, err := app.Statuses.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(statuses))
			for _, s := range statuses {
				names[s.ID] = s.Name
			}

			var tasks []*domain.Task
			if column != "" {
				statusID, err := resolveStatusID(ctx, app, projectID, column)
				if err != nil {
					return err
				}
				tasks, err = app.Tasks.ListByColumn(ctx, statusID)
				if err != nil {
					return err
				}
			} else {
				tasks, err = app.Tasks.ListByProject(ctx, projectID)
				if err != nil {
					return err
				}
			}

			fmt.Println(formatter.FormatTaskTable(tasks, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&column, "column", "", "Only tasks in this column, in board order")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "show <task>",
		Short: "Show a task with its labels and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			status, err := app.Statuses.GetByID(ctx, t.StatusID)
			if err != nil {
				return err
			}
			labels, err := app.Labels.ListByTask(ctx, t.ID)
			if err != nil {
				return err
			}
			blockedBy, err := app.Tasks.BlockedBy(ctx, t.ID)
			if err != nil {
				return err
			}
			blocking, err := app.Tasks.Blocking(ctx, t.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatTaskDetail(t, status.Name, labels, blockedBy, blocking))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			patch, err := patchFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			t, err := app.Tasks.Update(ctx, taskID, patch)
			if err != nil {
				return err
			}
			if !t.DatesOrdered() {
				fmt.Println(formatter.StyleYellow.Render("Warning: due date is before start date."))
			}
			fmt.Printf("Updated task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "New priority")
	cmd.Flags().String("assignee", "", "New assignee (empty to unassign)")
	cmd.Flags().String("start", "", "New start date (empty to clear)")
	cmd.Flags().String("due", "", "New due date (empty to clear)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "move <task> <column>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			statusID, err := resolveStatusID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			var rank *float64
			if cmd.Flags().Changed("rank") {
				raw, _ := cmd.Flags().GetString("rank")
				r, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("invalid rank %q: %w", raw, err)
				}
				rank = &r
			}

			t, err := app.Tasks.ChangeStatus(ctx, taskID, statusID, rank)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %s.\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().String("rank", "", "Position in the target column (appends when omitted)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskReorderCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "reorder <task> <rank>",
		Short: "Move a task within its column",
		Long:  "Move a task to the position implied by the given rank. Tasks with lower ranks stay above it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			rank, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid rank %q: %w", args[1], err)
			}

			t, err := app.Tasks.Reorder(ctx, taskID, rank)
			if err != nil {
				return err
			}
			fmt.Printf("Reordered %s.\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <task>",
		Short: "Delete a task, its subtasks, and its dependency edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Println("Task removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
