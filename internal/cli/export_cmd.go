package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/cashgrid/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string
	var monthly bool

	cmd := &cobra.Command{
		Use:   "export <model>",
		Short: "Export a model's grid to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveModelID(ctx, app, args[0])
			if err != nil {
				return err
			}
			_, m, err := app.Models.Load(ctx, id)
			if err != nil {
				return err
			}

			var groups []export.Group
			if monthly {
				groups = export.MonthlyGroups(m.StartDate, m.BucketCount())
			}
			table := export.BuildTable(m, groups)

			if out == "" {
				if format == "xlsx" {
					return fmt.Errorf("--out is required for xlsx export")
				}
				return export.WriteCSV(cmd.OutOrStdout(), table)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()

			switch format {
			case "csv":
				err = export.WriteCSV(f, table)
			case "xlsx":
				err = export.WriteXLSX(f, table)
			default:
				return fmt.Errorf("invalid format %q: expected csv or xlsx", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", format, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file (csv defaults to stdout)")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "Aggregate weekly buckets by calendar month")
	return cmd
}
