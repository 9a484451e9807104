package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
	"github.com/alexanderramin/trellis/internal/domain"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}

	cmd.AddCommand(
		newStatusAddCmd(app),
		newStatusListCmd(app),
		newStatusRemoveCmd(app),
	)

	return cmd
}

func newStatusAddCmd(app *App) *cobra.Command {
	var project, name string
	var terminal bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a column to a project's board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			status := &domain.TaskStatus{ProjectID: projectID, Name: name, IsTerminal: terminal}
			if err := app.Statuses.Create(ctx, status); err != nil {
				return err
			}
			fmt.Printf("Added column %s (%s)\n", status.Name, status.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Column name")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "Mark the column as terminal (e.g. Done)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStatusListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's columns",
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
			counts := make(map[string]int, len(statuses))
			for _, s := range statuses {
				tasks, err := app.Tasks.ListByColumn(ctx, s.ID)
				if err != nil {
					return err
				}
				counts[s.ID] = len(tasks)
			}
			fmt.Println(formatter.FormatStatusTable(statuses, counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newStatusRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <column>",
		Short: "Remove an empty column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			statusID, err := resolveStatusID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Statuses.Delete(ctx, statusID); err != nil {
				return err
			}
			fmt.Println("Column removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
