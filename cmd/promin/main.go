package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/aka1453/promin/internal/cli"
	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/repository"
	"github.com/aka1453/promin/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.promin/promin.db
	dbPath := os.Getenv("PROMIN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".promin", "promin.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	deliverableRepo := repository.NewSQLiteDeliverableRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Rollup telemetry goes to stderr when PROMIN_DEBUG is set.
	var observer service.CascadeObserver = service.NoopCascadeObserver{}
	if os.Getenv("PROMIN_DEBUG") != "" {
		observer = service.NewLogCascadeObserver(os.Stderr)
	}

	rollup := service.NewRollupService(projectRepo, milestoneRepo, taskRepo, deliverableRepo, observer)

	app := &cli.App{
		Projects:     service.NewProjectService(projectRepo),
		Milestones:   service.NewMilestoneService(milestoneRepo, rollup),
		Tasks:        service.NewTaskService(taskRepo, deliverableRepo, rollup),
		Deliverables: service.NewDeliverableService(deliverableRepo, rollup),
		Status:       service.NewStatusService(projectRepo, milestoneRepo, taskRepo, deliverableRepo),
		Import:       service.NewPlanImportService(uow, observer),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
