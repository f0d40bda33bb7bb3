package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/derive"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderProjectCard(t *testing.T) {
	today := domain.DateOf(testNow)
	due := domain.NewDate(2026, time.March, 1)
	p := domain.Project{
		ID:             "p1",
		Name:           "Website relaunch",
		Status:         domain.ProjectActive,
		DueDate:        &due,
		TaskCount:      domain.IntPtr(4),
		CompletedTasks: domain.IntPtr(1),
	}

	card := renderProjectCard(p, today, 80, false)

	assert.Equal(t, projectCardHeight, lipgloss.Height(card))
	assert.Contains(t, card, "Website relaunch")
	assert.Contains(t, card, "ACTIVE")
	assert.Contains(t, card, "No description")
	assert.Contains(t, card, "1/4 tasks 25%")
	assert.Contains(t, card, "2026-03-01 (overdue)")
}

func TestRenderProjectCard_CompletedFromCounters(t *testing.T) {
	p := domain.Project{
		Name:           "Done deal",
		Status:         domain.ProjectStatus("completed"),
		TaskCount:      domain.IntPtr(5),
		CompletedTasks: domain.IntPtr(5),
	}

	card := renderProjectCard(p, domain.DateOf(testNow), 80, false)

	assert.Equal(t, derive.VariantCompleted, derive.StatusVariant(string(p.Status)))
	assert.Contains(t, card, "5/5 tasks 100%")
	assert.Contains(t, card, "COMPLETED")
}

func TestRenderProjectCard_Truncation(t *testing.T) {
	p := domain.Project{
		Name:        strings.Repeat("Very long project name ", 10),
		Description: strings.Repeat("word ", 50) + "\nsecond line",
		Status:      domain.ProjectOnHold,
	}

	card := renderProjectCard(p, domain.DateOf(testNow), 40, true)

	for i, line := range strings.Split(card, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, "line %d too wide", i)
	}
	assert.Contains(t, card, "…")
	assert.NotContains(t, card, "second line", "only the first description line is shown")
	assert.Contains(t, card, "> ")
}

func TestRenderTaskCard(t *testing.T) {
	today := domain.DateOf(testNow)
	due := domain.NewDate(2026, time.March, 11)
	task := domain.Task{
		ID:            "t1",
		Title:         "Build pages",
		Description:   "Home and pricing",
		Status:        domain.TaskInProgress,
		AssigneeEmail: "ana@example.com",
		DueDate:       &due,
		Comments: []domain.Comment{{
			Content:     "Started on home",
			AuthorEmail: "bo@example.com",
			CreatedAt:   testNow.Add(-3 * time.Hour),
		}},
	}

	card := renderTaskCard(task, today, testNow, 60, false, "")

	assert.Contains(t, card, "IN PROGRESS")
	assert.Contains(t, card, "Assignee: ana@example.com")
	assert.Contains(t, card, "2026-03-11 (due soon)")
	assert.Contains(t, card, "Home and pricing")
	assert.Contains(t, card, "Comments (1)")
	assert.Contains(t, card, "bo@example.com 3h ago")
	assert.NotContains(t, card, "Draft:")

	withDraft := renderTaskCard(task, today, testNow, 60, true, "almost\ndone")
	assert.Contains(t, withDraft, "Draft: almost done")

	blank := renderTaskCard(task, today, testNow, 60, false, "   ")
	assert.NotContains(t, blank, "Draft:")
}

func TestRenderTaskCard_DoneIsNeverUrgent(t *testing.T) {
	due := domain.NewDate(2026, time.January, 1)
	task := domain.Task{Title: "Old", Status: domain.TaskDone, AssigneeEmail: "a@example.com", DueDate: &due}

	card := renderTaskCard(task, domain.DateOf(testNow), testNow, 60, false, "")

	assert.Contains(t, card, "2026-01-01")
	assert.NotContains(t, card, "overdue")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct    int
		filled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.pct, 10)
		assert.Equal(t, 10, lipgloss.Width(bar), "pct %d", tt.pct)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "pct %d", tt.pct)
	}
	assert.Empty(t, progressBar(50, 0))
}

func TestDueLabel(t *testing.T) {
	d := domain.NewDate(2026, time.April, 2)

	assert.Empty(t, dueLabel(nil, derive.UrgencyNone))
	assert.Equal(t, "2026-04-02", dueLabel(&d, derive.UrgencyNormal))
	assert.Equal(t, "2026-04-02 (due soon)", dueLabel(&d, derive.UrgencySoon))
	assert.Equal(t, "2026-04-02 (overdue)", dueLabel(&d, derive.UrgencyOverdue))
}

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{14 * 24 * time.Hour, "2w ago"},
		{60 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2y ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTimeAgo(testNow.Add(-tt.ago), testNow))
	}
	assert.Empty(t, formatTimeAgo(time.Time{}, testNow))
}
