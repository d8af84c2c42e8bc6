package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grid <model>",
		Short: "Open the interactive grid editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the grid editor needs an interactive terminal")
			}

			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rec, m, err := app.Models.Load(ctx, id)
			if err != nil {
				return err
			}

			editor := newGridModel(app, id, rec.Name, session.New(m))
			_, err = tea.NewProgram(editor, tea.WithAltScreen()).Run()
			return err
		},
	}
}
