package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVersionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <model>",
		Short: "List a model's saved versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}
			infos, err := app.Versions.List(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderVersionList(infos))
			return nil
		},
	}

	cmd.AddCommand(newVersionLabelCmd(app))
	return cmd
}

func newVersionLabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "label <version-id> <label>",
		Short: "Pin a version with a label so pruning keeps it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Versions.Label(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Labeled version %s as %q\n", args[0], args[1])
			return nil
		},
	}
}

func newRollbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <model> <version-id>",
		Short: "Restore a model to a saved version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Versions.Rollback(ctx, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Models.Save(ctx, id, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back to version %s\n\n", args[1])
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModel(m, nil))
			return nil
		},
	}
}
