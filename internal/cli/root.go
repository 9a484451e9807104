package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/trellis/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Statuses service.StatusService
	Tasks    service.TaskService
	Bulk     service.BulkService
	Labels   service.LabelService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are only offered when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "trellis" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "trellis",
		Short: "Kanban board with dependency-aware task tracking",
	}

	root.AddCommand(
		newProjectCmd(app),
		newStatusCmd(app),
		newTaskCmd(app),
		newDepCmd(app),
		newBulkCmd(app),
		newBoardCmd(app),
		newLabelCmd(app),
	)

	return root
}
