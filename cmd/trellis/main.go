package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/trellis/internal/cli"
	"github.com/alexanderramin/trellis/internal/db"
	"github.com/alexanderramin/trellis/internal/repository"
	"github.com/alexanderramin/trellis/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.trellis/trellis.db
	dbPath := os.Getenv("TRELLIS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".trellis", "trellis.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	statusRepo := repository.NewSQLiteStatusRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	labelRepo := repository.NewSQLiteLabelRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Change events go to stderr as structured log lines when requested.
	var publisher service.Publisher = service.NoopPublisher{}
	if os.Getenv("TRELLIS_LOG_EVENTS") != "" {
		publisher = service.NewLogPublisher(os.Stderr)
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, uow),
		Statuses: service.NewStatusService(statusRepo, projectRepo, uow),
		Tasks:    service.NewTaskService(taskRepo, statusRepo, projectRepo, depRepo, labelRepo, uow, publisher),
		Bulk:     service.NewBulkService(uow, publisher),
		Labels:   service.NewLabelService(labelRepo, projectRepo),
	}

	// Interactive forms and the live board need a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
