package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/derive"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// projectCardHeight is the number of lines renderProjectCard produces.
const projectCardHeight = 3

const progressBarWidth = 12

// renderProjectCard renders one project as exactly projectCardHeight lines.
func renderProjectCard(p domain.Project, today domain.Date, width int, selected bool) string {
	if width < 20 {
		width = 20
	}
	inner := width - 2

	badge := statusBadge(string(p.Status))
	nameWidth := inner - lipgloss.Width(badge) - 1
	if nameWidth < 1 {
		nameWidth = 1
	}
	nameStyle := NormalItemStyle.Bold(true)
	prefix := "  "
	if selected {
		nameStyle = SelectedItemStyle
		prefix = SelectedItemStyle.Render("> ")
	}
	name := nameStyle.Render(truncate.StringWithTail(p.Name, uint(nameWidth), "…"))
	line1 := prefix + name + " " + badge

	desc := dimStyle.Render("No description")
	if p.Description != "" {
		first := strings.SplitN(p.Description, "\n", 2)[0]
		desc = valueStyle.Render(truncate.StringWithTail(first, uint(inner), "…"))
	}
	line2 := "  " + desc

	progress := derive.ProjectProgress(p)
	stats := fmt.Sprintf(" %d/%d tasks %d%%", progress.Done, progress.Total, progress.Percent)
	line3 := "  " + progressBar(progress.Percent, progressBarWidth) + dimStyle.Render(stats)
	if due := dueLabel(p.DueDate, derive.ProjectDueUrgency(p, today)); due != "" {
		line3 += dimStyle.Render(" · ") + due
	}

	return strings.Join([]string{line1, line2, line3}, "\n")
}

// renderTaskCard renders a task with its comments inside a bordered box.
// draft is the pending comment text for the task, shown when non-empty.
func renderTaskCard(t domain.Task, today domain.Date, now time.Time, width int, selected bool, draft string) string {
	if width < 24 {
		width = 24
	}
	border := cardBorderStyle
	titleStyle := NormalItemStyle.Bold(true)
	if selected {
		border = selectedCardBorderStyle
		titleStyle = SelectedItemStyle
	}
	inner := width - border.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(statusBadge(string(t.Status)))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(wordwrap.String(t.Title, inner-lipgloss.Width(statusBadge(string(t.Status)))-1)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Assignee: "))
	b.WriteString(valueStyle.Render(t.AssigneeEmail))
	if due := dueLabel(t.DueDate, derive.DueUrgency(t.DueDate, t.Status, today)); due != "" {
		b.WriteString(labelStyle.Render("  Due: "))
		b.WriteString(due)
	}

	if t.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(valueStyle.Render(wordwrap.String(t.Description, inner)))
	}

	if len(t.Comments) > 0 {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Comments (%d)", len(t.Comments))))
		for _, c := range t.Comments {
			b.WriteString("\n")
			b.WriteString(authorStyle.Render(c.AuthorEmail))
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(formatTimeAgo(c.CreatedAt, now)))
			b.WriteString("\n")
			b.WriteString(valueStyle.Render(wordwrap.String(c.Content, inner)))
		}
	}

	if strings.TrimSpace(draft) != "" {
		b.WriteString("\n\n")
		b.WriteString(draftStyle.Render(truncate.StringWithTail("Draft: "+strings.ReplaceAll(draft, "\n", " "), uint(inner), "…")))
	}

	return border.Width(inner).Render(b.String())
}

// statusBadge renders a status string as a coloured badge.
func statusBadge(raw string) string {
	variant := derive.StatusVariant(raw)
	label := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), "_", " ")
	if label == "" {
		label = strings.ReplaceAll(string(variant), "_", " ")
	}
	return badgeStyle.
		Background(variantColors[variant]).
		Foreground(lipgloss.Color("0")).
		Render(label)
}

// progressBar renders pct as a bar coloured by its tier.
func progressBar(pct, width int) string {
	if width <= 0 {
		return ""
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	style := lipgloss.NewStyle().Foreground(tierColors[derive.ProgressTier(pct)])
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// dueLabel formats a due date with its urgency. Nil dates render empty.
func dueLabel(due *domain.Date, urgency derive.Urgency) string {
	if due == nil {
		return ""
	}
	text := due.String()
	switch urgency {
	case derive.UrgencyOverdue:
		text += " (overdue)"
	case derive.UrgencySoon:
		text += " (due soon)"
	}
	return urgencyStyles[urgency].Render(text)
}

// formatTimeAgo converts a timestamp to relative time.
func formatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		return fmt.Sprintf("%dm ago", int(duration.Minutes()))
	case duration < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(duration.Hours()))
	case duration < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(duration.Hours()/24))
	case duration < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(duration.Hours()/24/7))
	case duration < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(duration.Hours()/24/30))
	default:
		return fmt.Sprintf("%dy ago", int(duration.Hours()/24/365))
	}
}
