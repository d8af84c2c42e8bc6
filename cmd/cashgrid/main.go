package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/cashgrid/internal/cli"
	"github.com/alexanderramin/cashgrid/internal/db"
	"github.com/alexanderramin/cashgrid/internal/forecast"
	"github.com/alexanderramin/cashgrid/internal/repository"
	"github.com/alexanderramin/cashgrid/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.cashgrid/cashgrid.db
	dbPath := os.Getenv("CASHGRID_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".cashgrid", "cashgrid.db")
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional saves.
	modelRepo := repository.NewSQLiteModelRepo(database)
	versionRepo := repository.NewSQLiteVersionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// The forecast client talks to the external forecasting service; calls
	// are observed on stderr when logging is enabled.
	forecastCfg := forecast.LoadConfig()
	var observer forecast.Observer = forecast.NoopObserver{}
	if forecastCfg.LogCalls {
		observer = forecast.NewLogObserver(os.Stderr)
	}
	forecastClient := forecast.NewHTTPClient(forecastCfg, observer)

	app := &cli.App{
		Models:   service.NewModelService(modelRepo, uow),
		Versions: service.NewVersionService(versionRepo),
		Forecast: service.NewForecastService(forecastClient, forecastCfg),
	}

	// Detect interactive terminal for the grid editor and confirm prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
