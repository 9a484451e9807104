package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newBulkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Atomic multi-task operations",
		Long:  "Move or delete several tasks in one transaction. If any task is missing, nothing changes.",
	}

	cmd.AddCommand(
		newBulkMoveCmd(app),
		newBulkDeleteCmd(app),
	)

	return cmd
}

func newBulkMoveCmd(app *App) *cobra.Command {
	var project, column string
	var ids []string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move several tasks to one column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			statusID, err := resolveStatusID(ctx, app, projectID, column)
			if err != nil {
				return err
			}

			taskIDs := make([]string, 0, len(ids))
			for _, id := range ids {
				resolved, err := resolveTaskID(ctx, app, projectID, id)
				if err != nil {
					return err
				}
				taskIDs = append(taskIDs, resolved)
			}

			res, err := app.Bulk.MoveTasks(ctx, taskIDs, statusID)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %d tasks.\n", res.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&column, "column", "", "Target column")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Task IDs or prefixes (comma-separated or repeated)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func newBulkDeleteCmd(app *App) *cobra.Command {
	var project string
	var ids []string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete several tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			taskIDs := make([]string, 0, len(ids))
			for _, id := range ids {
				resolved, err := resolveTaskID(ctx, app, projectID, id)
				if err != nil {
					return err
				}
				taskIDs = append(taskIDs, resolved)
			}

			res, err := app.Bulk.DeleteTasks(ctx, taskIDs)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d tasks.\n", res.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Task IDs or prefixes (comma-separated or repeated)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}
