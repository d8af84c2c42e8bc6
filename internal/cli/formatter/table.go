package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment selects per-column alignment in RenderTable.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders an aligned table with a header separator line. Headers
// use the Header style. Columns are padded to the maximum visible width
// found in each column; aligns selects per-column alignment (nil means all
// left). Numeric columns read better right-aligned.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Max visible width per column; lipgloss.Width ignores ANSI escapes.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(i int) Alignment {
		if i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}

	const colGap = 2
	var b strings.Builder

	writeCell := func(styled string, visible, col int, last bool) {
		pad := widths[col] - visible
		if pad < 0 {
			pad = 0
		}
		if align(col) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(styled)
		} else {
			b.WriteString(styled)
			if !last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range headers {
		writeCell(StyleHeader.Render(h), lipgloss.Width(h), i, i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(cell, lipgloss.Width(cell), i, i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
