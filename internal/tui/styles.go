package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/derive"
)

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// SuccessStyle is used for confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // Green

	// WarningStyle is used for confirmation prompts.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	// PromptStyle is used for prompt text.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")) // Light blue

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	draftStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Italic(true)

	cardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardBorderStyle = cardBorderStyle.
				BorderForeground(lipgloss.Color("205"))

	formBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("228")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)
)

// variantColors maps a status variant to its badge background.
var variantColors = map[derive.Variant]lipgloss.Color{
	derive.VariantActive:     lipgloss.Color("33"),  // Blue
	derive.VariantInProgress: lipgloss.Color("214"), // Amber
	derive.VariantCompleted:  lipgloss.Color("34"),  // Green
	derive.VariantOnHold:     lipgloss.Color("244"), // Gray
}

// tierColors maps a progress tier to its bar colour.
var tierColors = map[derive.Tier]lipgloss.Color{
	derive.TierLow:  lipgloss.Color("196"),
	derive.TierMid:  lipgloss.Color("214"),
	derive.TierHigh: lipgloss.Color("34"),
}

// urgencyStyles colour a due date by how close it is.
var urgencyStyles = map[derive.Urgency]lipgloss.Style{
	derive.UrgencyOverdue: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	derive.UrgencySoon:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	derive.UrgencyNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	derive.UrgencyNone:    dimStyle,
}
