package cli

import (
	"github.com/alexanderramin/cashgrid/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Models   service.ModelService
	Versions service.VersionService
	Forecast service.ForecastService

	// IsInteractive reports whether stdin is a terminal; it gates the grid
	// editor and confirmation prompts.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cashgrid" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cashgrid",
		Short: "Hierarchical cash-flow grid: build, edit and forecast time-bucketed models",
	}

	root.AddCommand(
		newBuildCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newRemoveCmd(app),
		newEditCmd(app),
		newLabelCmd(app),
		newAddCmd(app),
		newDelCmd(app),
		newUndoCmd(app),
		newRedoCmd(app),
		newForecastCmd(app),
		newVersionsCmd(app),
		newRollbackCmd(app),
		newExportCmd(app),
		newGridCmd(app),
	)

	return root
}
