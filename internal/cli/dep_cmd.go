package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add <task> <blocker>",
		Short: "Mark a task as blocked by another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			blockedID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			blockingID, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if _, err := app.Tasks.AddDependency(ctx, blockedID, blockingID); err != nil {
				return err
			}
			fmt.Println("Dependency added.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <task> <blocker>",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			blockedID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			blockingID, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if err := app.Tasks.RemoveDependency(ctx, blockedID, blockingID); err != nil {
				return err
			}
			fmt.Println("Dependency removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list <task>",
		Short: "Show what blocks a task and what it blocks",
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

			blockedBy, err := app.Tasks.BlockedBy(ctx, taskID)
			if err != nil {
				return err
			}
			blocking, err := app.Tasks.Blocking(ctx, taskID)
			if err != nil {
				return err
			}

			if len(blockedBy) == 0 && len(blocking) == 0 {
				fmt.Println(formatter.Dim("No dependencies."))
				return nil
			}
			if len(blockedBy) > 0 {
				fmt.Println(formatter.Header("Blocked by"))
				for _, t := range blockedBy {
					fmt.Printf("  %s\n", t.Title)
				}
			}
			if len(blocking) > 0 {
				fmt.Println(formatter.Header("Blocking"))
				for _, t := range blocking {
					fmt.Printf("  %s\n", t.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
