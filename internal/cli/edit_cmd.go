package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/session"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// loadSession loads a model into an edit session for a one-shot mutation.
func loadSession(ctx context.Context, app *App, input string) (string, *session.Session, error) {
	id, err := resolveModelID(ctx, app, input)
	if err != nil {
		return "", nil, err
	}
	_, m, err := app.Models.Load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, session.New(m), nil
}

// saveSession persists the session's model and prints the updated grid.
func saveSession(ctx context.Context, app *App, cmd *cobra.Command, id string, sess *session.Session) error {
	if _, err := app.Models.Save(ctx, id, sess.Model()); err != nil {
		return err
	}
	sess.MarkSaved()
	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModel(sess.Model(), nil))
	return nil
}

// parseBucket converts a 1-based bucket argument to a 0-based index.
func parseBucket(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid bucket %q: expected a 1-based bucket number", arg)
	}
	return n - 1, nil
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <model> <row> <bucket> <value>",
		Short: "Edit one cell and recalculate",
		Long: "Edits a single cell. The bucket is 1-based; the value accepts " +
			"accountant formatting such as \"1,250.50\" or \"(300)\".",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			rowIdx, err := rowIndexByLabel(sess.Model(), args[1])
			if err != nil {
				return err
			}
			bucket, err := parseBucket(args[2])
			if err != nil {
				return err
			}
			if err := sess.CommitCellEdit(rowIdx, bucket, args[3]); err != nil {
				return err
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}
}

func newLabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "label <model> <row> <new-label>",
		Short: "Rename a line item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			rowIdx, err := rowIndexByLabel(sess.Model(), args[1])
			if err != nil {
				return err
			}
			if err := sess.CommitLabelEdit(rowIdx, args[2]); err != nil {
				return err
			}
			if !sess.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No change.")
				return nil
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var sectionStr, parent, label string

	cmd := &cobra.Command{
		Use:   "add <model>",
		Short: "Add a line item to a section, or a sub-item under a parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}

			var added *domain.Row
			if parent != "" {
				idx, err := rowIndexByLabel(sess.Model(), parent)
				if err != nil {
					return err
				}
				added = sess.AddSubItem(sess.Model().Rows[idx].ID)
				if added == nil {
					return fmt.Errorf("%q cannot take sub-items", parent)
				}
			} else {
				section := domain.Section(sectionStr)
				if section != domain.SectionInflow && section != domain.SectionOutflow {
					return fmt.Errorf("invalid section %q: expected inflow or outflow", sectionStr)
				}
				added = sess.AddLineItem(section)
				if added == nil {
					return fmt.Errorf("section %q has no total row to anchor on", sectionStr)
				}
			}

			if label != "" {
				idx := sess.Model().IndexOf(added)
				if err := sess.CommitLabelEdit(idx, label); err != nil {
					return err
				}
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}

	cmd.Flags().StringVar(&sectionStr, "section", "", "Target section: inflow or outflow")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent row label (adds a sub-item instead)")
	cmd.Flags().StringVar(&label, "label", "", "Label for the new row")
	return cmd
}

func newDelCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "del <model> <row>",
		Short: "Delete a line item and its children",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, sess, err := loadSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			rowIdx, err := rowIndexByLabel(sess.Model(), args[1])
			if err != nil {
				return err
			}
			row := sess.Model().Rows[rowIdx]
			if row.ID == "" {
				return fmt.Errorf("%q is a fixed row and cannot be deleted", row.Label)
			}

			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --force in a non-interactive session")
				}
				var confirmed bool
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q?", row.Label)).
					Description("Child rows are deleted with it.").
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
			sess.DeleteLineItem(rowIdx)
			if !sess.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No change.")
				return nil
			}
			return saveSession(ctx, app, cmd, id, sess)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}

// newUndoCmd walks the save history back one step: the second-newest version
// becomes the live model (and the save writes a fresh version, so redo can
// walk forward again). In-memory undo with full granularity lives in the
// grid editor.
func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <model>",
		Short: "Revert the model to its previous saved version",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return stepVersion(app, cmd, args[0], "undo") },
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo <model>",
		Short: "Reapply the version that the last undo reverted",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return stepVersion(app, cmd, args[0], "redo") },
	}
}

func stepVersion(app *App, cmd *cobra.Command, input, verb string) error {
	ctx := context.Background()
	id, err := resolveModelID(ctx, app, input)
	if err != nil {
		return err
	}
	infos, err := app.Versions.List(ctx, id)
	if err != nil {
		return err
	}
	// infos[0] is the current state's snapshot; infos[1] is the step target.
	if len(infos) < 2 {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to %s.\n", verb)
		return nil
	}
	m, err := app.Versions.Rollback(ctx, infos[1].VersionID)
	if err != nil {
		return err
	}
	if _, err := app.Models.Save(ctx, id, m); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderModel(m, nil))
	return nil
}
