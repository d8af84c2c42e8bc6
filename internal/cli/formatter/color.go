package formatter

import (
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders a string in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// RowStyle returns the label style for a grid row by its kind.
func RowStyle(kind domain.RowKind) lipgloss.Style {
	switch kind {
	case domain.KindSectionHeader:
		return StyleBlue
	case domain.KindSectionTotal:
		return StyleBold
	case domain.KindNetFlow:
		return StylePurple
	case domain.KindRunningBalance:
		return StyleBold
	default:
		return StyleFg
	}
}

// BalanceStyle colors a running-balance value: red when negative, yellow
// when at or below the minimum cash threshold.
func BalanceStyle(v, threshold decimal.Decimal) lipgloss.Style {
	switch {
	case v.IsNegative():
		return StyleRed
	case threshold.IsPositive() && v.LessThanOrEqual(threshold):
		return StyleYellow
	default:
		return StyleBold
	}
}
