// Package tuistyles holds the colour palette and lipgloss styles shared by the
// TUI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FAFFF"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007A3D", Dark: "#5FD787"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#BCBCBC", Dark: "#4E4E4E"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	ActiveBorderStyle = BorderStyle.BorderForeground(ColorSuccess)

	FieldLabelStyle        = lipgloss.NewStyle().Width(22)
	FocusedFieldLabelStyle = FieldLabelStyle.Bold(true).Foreground(ColorPrimary)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
)

// FormatCurrency renders an amount as ₹ with Indian digit grouping
func FormatCurrency(d decimal.Decimal) string {
	return "₹" + domain.FormatRupees(d)
}
