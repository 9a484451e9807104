package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
	"github.com/alexanderramin/trellis/internal/domain"
)

func newLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage labels",
	}

	cmd.AddCommand(
		newLabelAddCmd(app),
		newLabelListCmd(app),
		newLabelAttachCmd(app),
		newLabelDetachCmd(app),
	)

	return cmd
}

func newLabelAddCmd(app *App) *cobra.Command {
	var project, name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a label",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			l := &domain.Label{ProjectID: projectID, Name: name, Color: color}
			if err := app.Labels.Create(ctx, l); err != nil {
				return err
			}
			fmt.Printf("Created label %s (%s)\n", l.Name, l.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Label name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #d73a4a")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLabelListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			labels, err := app.Labels.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(labels) == 0 {
				fmt.Println(formatter.Dim("No labels."))
				return nil
			}
			for _, l := range labels {
				fmt.Printf("%s  %s\n", formatter.StylePurple.Render(l.Name), formatter.Dim(l.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newLabelAttachCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "attach <task> <label-name>",
		Short: "Attach a label to a task",
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
			labelID, err := resolveLabelID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.AttachLabel(ctx, taskID, labelID); err != nil {
				return err
			}
			fmt.Println("Label attached.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newLabelDetachCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "detach <task> <label-name>",
		Short: "Detach a label from a task",
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
			labelID, err := resolveLabelID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.DetachLabel(ctx, taskID, labelID); err != nil {
				return err
			}
			fmt.Println("Label detached.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
