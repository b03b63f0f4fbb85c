package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jusliketht/bbofficial-sub003/internal/tui/tuistyles"
)

// MetricCard displays a titled block of label/value rows
type MetricCard struct {
	Title       string
	Rows        [][2]string
	Description string
	Highlight   bool
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(title string) *MetricCard {
	return &MetricCard{
		Title: title,
		Width: 34,
	}
}

// AddRow appends a label/value row
func (m *MetricCard) AddRow(label, value string) *MetricCard {
	m.Rows = append(m.Rows, [2]string{label, value})
	return m
}

// WithDescription adds a footer line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight marks the card with the success border
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled card
func (m *MetricCard) Render() string {
	lines := []string{tuistyles.MetricValueStyle.Render(m.Title)}

	labelWidth := 0
	for _, r := range m.Rows {
		if w := lipgloss.Width(r[0]); w > labelWidth {
			labelWidth = w
		}
	}
	for _, r := range m.Rows {
		label := tuistyles.MetricLabelStyle.Width(labelWidth + 2).Render(r[0])
		lines = append(lines, label+r[1])
	}
	if m.Description != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Description))
	}

	style := tuistyles.BorderStyle
	if m.Highlight {
		style = tuistyles.ActiveBorderStyle
	}
	return style.Width(m.Width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricGrid renders cards side by side, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = len(cards)
	}

	rows := []string{}
	currentRow := []string{}
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
