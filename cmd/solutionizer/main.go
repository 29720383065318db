package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/solutionizer/internal/cli"
	"github.com/alexanderramin/solutionizer/internal/config"
	"github.com/alexanderramin/solutionizer/internal/db"
	"github.com/alexanderramin/solutionizer/internal/repository"
	"github.com/alexanderramin/solutionizer/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	database, err := db.OpenDB(settings.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	var logger *slog.Logger
	if settings.LogCalls {
		observer = service.NewLogUseCaseObserver(os.Stderr)
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, observer),
		Import:   service.NewImportService(uow, observer),
		Solution: service.NewSolutionService(projectRepo, logger, observer),
		Settings: settings,
	}

	// Only offer the interactive picker on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
