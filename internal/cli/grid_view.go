package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cashgrid/internal/cli/formatter"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/export"
	"github.com/charmbracelet/lipgloss"
)

const (
	gridLabelWidth = 26
	gridCellWidth  = 12
	gridCellGap    = 2
	// Rows consumed by title, header, input line, status and help.
	gridChromeLines = 6
)

var (
	styleCursor   = lipgloss.NewStyle().Reverse(true)
	styleForecast = formatter.StylePurple
)

func (g gridModel) View() string {
	if g.quitting {
		return ""
	}
	m := g.sess.Model()

	var b strings.Builder
	b.WriteString(g.titleLine())
	b.WriteString("\n\n")

	if g.monthly {
		groups := export.MonthlyGroups(m.StartDate, m.BucketCount())
		b.WriteString(formatter.RenderModel(m, groups))
	} else {
		b.WriteString(g.renderGrid())
	}

	b.WriteString("\n")
	b.WriteString(g.bottomLines())
	return b.String()
}

func (g gridModel) titleLine() string {
	dirty := ""
	if g.sess.Dirty() {
		dirty = formatter.StyleYellow.Render(" ●")
	}
	depths := formatter.Dim(fmt.Sprintf("  undo %d · redo %d", g.sess.UndoDepth(), g.sess.RedoDepth()))
	return formatter.StyleHeader.Render(g.name) + dirty + depths
}

// visibleWindow returns the first index and count of a scrolled window that
// keeps the cursor in view.
func visibleWindow(cursor, total, visible int) (int, int) {
	if visible <= 0 {
		visible = 1
	}
	if visible >= total {
		return 0, total
	}
	start := cursor - visible + 1
	if start < 0 {
		start = 0
	}
	if cursor < start {
		start = cursor
	}
	return start, visible
}

func (g gridModel) renderGrid() string {
	m := g.sess.Model()
	table := export.BuildTable(m, nil)

	visibleCols := 6
	if g.width > 0 {
		visibleCols = (g.width - gridLabelWidth) / (gridCellWidth + gridCellGap)
	}
	colStart, colCount := visibleWindow(g.cursorCol, m.BucketCount(), visibleCols)

	visibleRows := len(m.Rows)
	if g.height > 0 {
		visibleRows = g.height - gridChromeLines - 1 // header line
	}
	rowStart, rowCount := visibleWindow(g.cursorRow, len(m.Rows), visibleRows)

	var b strings.Builder

	// Header: bucket labels, forecast buckets in the forecast color.
	b.WriteString(pad("", gridLabelWidth))
	for c := colStart; c < colStart+colCount; c++ {
		label := table.Headers[c+1]
		style := formatter.StyleHeader
		if c >= m.ActualBuckets {
			style = styleForecast
		}
		b.WriteString(strings.Repeat(" ", gridCellGap))
		b.WriteString(style.Render(padLeft(label, gridCellWidth)))
	}
	b.WriteString("\n")

	for i := rowStart; i < rowStart+rowCount; i++ {
		r := m.Rows[i]
		label := truncate(table.Rows[i].Label, gridLabelWidth)
		labelStyled := formatter.RowStyle(r.Kind).Render(pad(label, gridLabelWidth))
		if i == g.cursorRow {
			labelStyled = styleCursor.Render(pad(label, gridLabelWidth))
		}
		b.WriteString(labelStyled)

		for c := colStart; c < colStart+colCount; c++ {
			b.WriteString(strings.Repeat(" ", gridCellGap))
			cell := padLeft(g.cellText(r, c), gridCellWidth)
			switch {
			case i == g.cursorRow && c == g.cursorCol:
				b.WriteString(styleCursor.Render(cell))
			case r.Kind == domain.KindRunningBalance:
				b.WriteString(formatter.BalanceStyle(r.Values[c], m.MinCashThreshold).Render(cell))
			case c >= m.ActualBuckets:
				b.WriteString(styleForecast.Render(cell))
			default:
				b.WriteString(formatter.RowStyle(r.Kind).Render(cell))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (g gridModel) cellText(r *domain.Row, c int) string {
	if r.Kind == domain.KindSectionHeader {
		return ""
	}
	return formatter.FormatMoney(r.Values[c])
}

func (g gridModel) bottomLines() string {
	var b strings.Builder

	switch g.mode {
	case modeEditCell:
		row := g.sess.Model().Rows[g.cursorRow]
		fmt.Fprintf(&b, "Edit %s @ bucket %d: %s\n", row.Label, g.cursorCol+1, g.input.View())
	case modeEditLabel:
		fmt.Fprintf(&b, "Label: %s\n", g.input.View())
	case modeConfirmDelete:
		if g.confirm != nil {
			b.WriteString(g.confirm.View())
			b.WriteString("\n")
		}
	default:
		b.WriteString("\n")
	}

	if g.status != "" {
		b.WriteString(formatter.StyleYellow.Render(g.status))
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(
		"enter edit · r rename · a/A add · d delete · u/ctrl+r undo/redo · f forecast · c clear · m monthly · s save · q quit"))
	return b.String()
}

func pad(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padLeft(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	return string(runes[:w-1]) + "…"
}
