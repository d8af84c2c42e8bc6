package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/alexanderramin/cashgrid/internal/export"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Models.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModelList(records))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var monthly bool

	cmd := &cobra.Command{
		Use:   "show <model>",
		Short: "Print a model's grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rec, m, err := app.Models.Load(ctx, id)
			if err != nil {
				return err
			}

			var groups []export.Group
			if monthly {
				groups = export.MonthlyGroups(m.StartDate, m.BucketCount())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", rec.Name, rec.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModel(m, groups))
			return nil
		},
	}

	cmd.Flags().BoolVar(&monthly, "monthly", false, "Aggregate weekly buckets by calendar month")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <model>",
		Short: "Delete a stored model and its version history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --force in a non-interactive session")
				}
				var confirmed bool
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete model %s?", args[0])).
					Description("This removes the model and every saved version.").
					Value(&confirmed).
					Run()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := app.Models.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted model %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}
