package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
)

func newBoardCmd(app *App) *cobra.Command {
	var project string
	var static bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a project's board",
		Long:  "Show the board. On a terminal this opens an interactive view; use --static for plain output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			interactive := app.IsInteractive != nil && app.IsInteractive()
			if static || !interactive {
				return printStaticBoard(ctx, app, projectID)
			}
			return runBoard(app, projectID)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().BoolVar(&static, "static", false, "Print the board without the interactive view")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func printStaticBoard(ctx context.Context, app *App, projectID string) error {
	columns, err := app.Statuses.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	tasksByColumn, err := loadBoardTasks(ctx, app, columns)
	if err != nil {
		return err
	}
	fmt.Println(formatter.FormatBoard(columns, tasksByColumn))
	return nil
}
