package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type gridMode int

const (
	modeNav gridMode = iota
	modeEditCell
	modeEditLabel
	modeConfirmDelete
)

// Messages from async service calls back into the editor.
type savedMsg struct{ err error }
type forecastMsg struct {
	cleared bool
	err     error
}

// gridModel is the full-screen grid editor. All tree mutations go through
// the edit session; the editor only owns cursor state and input widgets.
type gridModel struct {
	app     *App
	modelID string
	name    string
	sess    *session.Session

	cursorRow int
	cursorCol int
	width     int
	height    int

	mode    gridMode
	input   textinput.Model
	confirm *huh.Form
	// confirmed is bound into the delete confirmation form.
	confirmed  bool
	pendingRow int

	monthly  bool
	status   string
	quitting bool
	// quitArmed is set after the first quit press with unsaved changes.
	quitArmed bool
}

func newGridModel(app *App, modelID, name string, sess *session.Session) gridModel {
	ti := textinput.New()
	ti.CharLimit = 64
	return gridModel{
		app:     app,
		modelID: modelID,
		name:    name,
		sess:    sess,
		input:   ti,
	}
}

func (g gridModel) Init() tea.Cmd {
	return nil
}

func (g gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		return g, nil

	case savedMsg:
		if msg.err != nil {
			g.status = "save failed: " + msg.err.Error()
			return g, nil
		}
		g.sess.MarkSaved()
		g.status = "saved"
		return g, nil

	case forecastMsg:
		switch {
		case msg.err != nil:
			g.status = "forecast: " + msg.err.Error()
		case msg.cleared:
			g.status = "forecast cleared"
		default:
			g.status = fmt.Sprintf("forecast extended to %d buckets", g.sess.Model().BucketCount())
		}
		g.clampCursor()
		return g, nil

	case tea.KeyMsg:
		switch g.mode {
		case modeEditCell, modeEditLabel:
			return g.updateInput(msg)
		case modeConfirmDelete:
			return g.updateConfirm(msg)
		default:
			return g.updateNav(msg)
		}
	}

	if g.mode == modeConfirmDelete {
		return g.updateConfirm(msg)
	}
	return g, nil
}

func (g gridModel) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m := g.sess.Model()
	g.status = ""

	switch {
	case key.Matches(msg, gridKeys.Quit):
		if g.sess.Dirty() && !g.quitArmed {
			g.quitArmed = true
			g.status = "unsaved changes — press q again to discard, s to save"
			return g, nil
		}
		g.quitting = true
		return g, tea.Quit

	case key.Matches(msg, gridKeys.Up):
		if g.cursorRow > 0 {
			g.cursorRow--
		}
	case key.Matches(msg, gridKeys.Down):
		if g.cursorRow < len(m.Rows)-1 {
			g.cursorRow++
		}
	case key.Matches(msg, gridKeys.Left):
		if g.cursorCol > 0 {
			g.cursorCol--
		}
	case key.Matches(msg, gridKeys.Right):
		if g.cursorCol < m.BucketCount()-1 {
			g.cursorCol++
		}

	case key.Matches(msg, gridKeys.Monthly):
		g.monthly = !g.monthly

	case key.Matches(msg, gridKeys.EditCell):
		if g.monthly {
			g.status = "aggregated view is read-only — press m to return"
			return g, nil
		}
		row := m.Rows[g.cursorRow]
		if !row.Editable {
			g.status = "row is not editable"
			return g, nil
		}
		if g.sess.CellLocked(g.cursorRow, g.cursorCol) {
			g.status = "cell is locked while a forecast is active"
			return g, nil
		}
		g.mode = modeEditCell
		g.input.SetValue(row.Values[g.cursorCol].String())
		g.input.CursorEnd()
		return g, g.input.Focus()

	case key.Matches(msg, gridKeys.EditLabel):
		if m.Rows[g.cursorRow].IsStructural() {
			g.status = "fixed rows cannot be renamed"
			return g, nil
		}
		g.mode = modeEditLabel
		g.input.SetValue(m.Rows[g.cursorRow].Label)
		g.input.CursorEnd()
		return g, g.input.Focus()

	case key.Matches(msg, gridKeys.AddItem):
		section := m.Rows[g.cursorRow].Section
		added := g.sess.AddLineItem(section)
		if added == nil {
			g.status = "add a line item from an inflow or outflow row"
			return g, nil
		}
		g.cursorRow = g.sess.Model().IndexOf(added)
		g.mode = modeEditLabel
		g.input.SetValue("")
		return g, g.input.Focus()

	case key.Matches(msg, gridKeys.AddSub):
		added := g.sess.AddSubItem(m.Rows[g.cursorRow].ID)
		if added == nil {
			g.status = "this row cannot take sub-items"
			return g, nil
		}
		g.cursorRow = g.sess.Model().IndexOf(added)
		g.mode = modeEditLabel
		g.input.SetValue("")
		return g, g.input.Focus()

	case key.Matches(msg, gridKeys.Delete):
		row := m.Rows[g.cursorRow]
		if row.ID == "" {
			g.status = "fixed rows cannot be deleted"
			return g, nil
		}
		g.pendingRow = g.cursorRow
		g.confirmed = false
		g.confirm = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", row.Label)).
				Description("Child rows are deleted with it.").
				Value(&g.confirmed),
		)).WithShowHelp(false)
		g.mode = modeConfirmDelete
		return g, g.confirm.Init()

	case key.Matches(msg, gridKeys.Undo):
		g.sess.Undo()
		g.clampCursor()
	case key.Matches(msg, gridKeys.Redo):
		g.sess.Redo()
		g.clampCursor()

	case key.Matches(msg, gridKeys.Save):
		g.quitArmed = false
		g.status = "saving..."
		return g, g.saveCmd()

	case key.Matches(msg, gridKeys.Forecast):
		g.status = "generating forecast..."
		return g, g.forecastCmd()

	case key.Matches(msg, gridKeys.ClearForecast):
		if !m.HasForecast() {
			g.status = "no forecast to clear"
			return g, nil
		}
		return g, g.clearForecastCmd()
	}

	return g, nil
}

func (g gridModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		g.mode = modeNav
		g.input.Blur()
		return g, nil
	case tea.KeyEnter:
		value := g.input.Value()
		g.input.Blur()
		if g.mode == modeEditCell {
			if err := g.sess.CommitCellEdit(g.cursorRow, g.cursorCol, value); err != nil {
				g.status = err.Error()
			}
		} else {
			if err := g.sess.CommitLabelEdit(g.cursorRow, value); err != nil {
				g.status = err.Error()
			}
		}
		g.mode = modeNav
		return g, nil
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g gridModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		g.mode = modeNav
		g.confirm = nil
		return g, nil
	}

	form, cmd := g.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.confirm = f
	}

	if g.confirm.State == huh.StateCompleted {
		if g.confirmed {
			g.sess.DeleteLineItem(g.pendingRow)
			g.clampCursor()
			g.status = "deleted"
		}
		g.mode = modeNav
		g.confirm = nil
	}
	return g, cmd
}

func (g *gridModel) clampCursor() {
	m := g.sess.Model()
	if g.cursorRow >= len(m.Rows) {
		g.cursorRow = len(m.Rows) - 1
	}
	if g.cursorRow < 0 {
		g.cursorRow = 0
	}
	if g.cursorCol >= m.BucketCount() {
		g.cursorCol = m.BucketCount() - 1
	}
	if g.cursorCol < 0 {
		g.cursorCol = 0
	}
}

func (g gridModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := g.app.Models.Save(context.Background(), g.modelID, g.sess.Model())
		return savedMsg{err: err}
	}
}

func (g gridModel) forecastCmd() tea.Cmd {
	return func() tea.Msg {
		err := g.app.Forecast.Generate(context.Background(), g.sess, 0)
		return forecastMsg{err: err}
	}
}

func (g gridModel) clearForecastCmd() tea.Cmd {
	return func() tea.Msg {
		err := g.app.Forecast.Clear(context.Background(), g.sess, g.modelID)
		return forecastMsg{cleared: true, err: err}
	}
}
