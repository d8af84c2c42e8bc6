package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cashgrid/internal/classify"
	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/alexanderramin/cashgrid/internal/domain"
	gridpkg "github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBuildCmd(app *App) *cobra.Command {
	var name, start, width, method, threshold string
	var buckets int

	cmd := &cobra.Command{
		Use:   "build <summary.json>",
		Short: "Build a new model from a classification summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := classify.LoadSummary(args[0])
			if err != nil {
				return fmt.Errorf("loading summary: %w", err)
			}
			for _, issue := range classify.Validate(summary) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", issue)
			}

			opts := gridpkg.BuildOptions{
				Buckets:     buckets,
				BucketWidth: domain.BucketWidth(width),
			}
			if start != "" {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				opts.StartDate = d
			}
			if method != "" {
				if !domain.ValidForecastMethods[method] {
					return fmt.Errorf("invalid forecast method %q", method)
				}
				opts.DefaultMethod = domain.ForecastMethod(method)
			}
			if threshold != "" {
				v, err := decimal.NewFromString(threshold)
				if err != nil {
					return fmt.Errorf("invalid threshold %q: %w", threshold, err)
				}
				opts.MinCashThreshold = v
			}

			m := gridpkg.Build(summary, opts)
			rec, err := app.Models.Create(context.Background(), name, m)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created model %s (%s)\n\n", rec.Name, rec.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModel(m, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Model name")
	cmd.Flags().IntVar(&buckets, "buckets", 0, "Actual bucket count (default: from summary)")
	cmd.Flags().StringVar(&start, "start", "", "First bucket date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&width, "width", "", "Bucket width: weekly or monthly")
	cmd.Flags().StringVar(&method, "method", "", "Default forecast method")
	cmd.Flags().StringVar(&threshold, "threshold", "", "Minimum cash threshold")
	cmd.MarkFlagRequired("name")

	return cmd
}
