package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/alexanderramin/cashgrid/internal/forecast"
	"github.com/spf13/cobra"
)

func newForecastCmd(app *App) *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "forecast <model>",
		Short: "Extend a model with forecast buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}

			if err := app.Forecast.Generate(ctx, sess, horizon); err != nil {
				if errors.Is(err, forecast.ErrUnavailable) {
					return fmt.Errorf("forecast service is unreachable; is it running? (%w)", err)
				}
				return err
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}

	cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast bucket count (default: configured horizon)")
	cmd.AddCommand(newForecastClearCmd(app), newForecastStatusCmd(app))
	return cmd
}

func newForecastClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <model>",
		Short: "Drop forecast buckets and unlock the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !sess.Model().HasForecast() {
				fmt.Fprintln(cmd.OutOrStdout(), "No forecast to clear.")
				return nil
			}
			if err := app.Forecast.Clear(ctx, sess, id); err != nil {
				return err
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}
}

func newForecastStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the forecast service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Forecast.Available(context.Background()) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Forecast service is available."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleRed.Render("Forecast service is unreachable."))
			return nil
		},
	}
}
