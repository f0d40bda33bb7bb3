package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default terminal size used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// renderLayout frames a screen: a title bar with right-aligned status, the
// body, and a footer pinned to the last line(s). A zero height lets the body
// take its natural size.
func renderLayout(title, status, body, footer string, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}

	header := TitleStyle.Render(title)
	if status != "" {
		padding := width - lipgloss.Width(header) - lipgloss.Width(status) - 1
		if padding < 1 {
			padding = 1
		}
		header += strings.Repeat(" ", padding) + dimStyle.Render(status)
	}

	if height <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
	}

	bodyHeight := height - lipgloss.Height(header) - 1 - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

// footerLine renders a flash/error message on the left and help on the right.
func footerLine(left, right string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}
