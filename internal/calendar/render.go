package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cellStyle   = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
)

var dayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderMonth draws the grid as text. Complete days are filled with color,
// today is underlined, and the cell at index cursor (if >= 0) is reversed.
func RenderMonth(m Month, cells []Cell, color string, cursor int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.Title()))
	b.WriteString("\n")

	labels := make([]string, len(dayLabels))
	for i, l := range dayLabels {
		labels[i] = cellStyle.Render(labelStyle.Render(l))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	b.WriteString("\n")

	row := make([]string, 0, len(dayLabels))
	for i, c := range cells {
		row = append(row, renderCell(c, color, i == cursor))
		if len(row) == len(dayLabels) {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c Cell, color string, selected bool) string {
	if c.Blank {
		return cellStyle.Render("")
	}
	text := fmt.Sprintf("%d", c.Day)
	style := lipgloss.NewStyle()
	switch {
	case c.IsComplete:
		style = style.Background(lipgloss.Color(color)).Foreground(lipgloss.Color("#ffffff")).Bold(true)
	case c.Count > 0:
		style = style.Foreground(lipgloss.Color(color))
	case c.IsPast:
		style = style.Foreground(lipgloss.Color("245"))
	}
	if c.IsToday {
		style = style.Underline(true)
	}
	if selected {
		style = style.Reverse(true)
	}
	return cellStyle.Render(style.Render(text))
}

// RenderHeatmap draws the rolling window with one column per week.
func RenderHeatmap(weeks []Week) string {
	var b strings.Builder
	for row := 0; row < len(Week{}); row++ {
		for _, w := range weeks {
			d := w[row]
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render("■"))
		}
		b.WriteString("\n")
	}
	if len(weeks) > 0 {
		first := weeks[0][0].DateKey
		last := weeks[len(weeks)-1][len(Week{})-1].DateKey
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s → %s", first, last)))
		b.WriteString("\n")
	}
	return b.String()
}
