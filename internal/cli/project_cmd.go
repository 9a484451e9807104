package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
	"github.com/alexanderramin/trellis/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectRemoveCmd(app),
		newProjectMemberCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project with default columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Name: name}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProjectTable(projects))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project and everything on its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Project removed.")
			return nil
		},
	}
}

func newProjectMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project members",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <project> <user>",
			Short: "Add a member to a project",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveProjectID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Projects.AddMember(ctx, id, args[1]); err != nil {
					return err
				}
				fmt.Printf("Added %s.\n", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <project> <user>",
			Short: "Remove a member from a project",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveProjectID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Projects.RemoveMember(ctx, id, args[1]); err != nil {
					return err
				}
				fmt.Printf("Removed %s.\n", args[1])
				return nil
			},
		},
	)

	return cmd
}
