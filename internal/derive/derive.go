// Package derive computes presentation values from domain entities.
// Every function is pure: inputs are never modified and no state is kept.
package derive

import (
	"math"
	"strings"
	"time"

	"github.com/h0rv/pmboard/internal/domain"
)

// Urgency classifies how close a due date is.
type Urgency string

const (
	UrgencyNone    Urgency = "NONE"
	UrgencyOverdue Urgency = "OVERDUE"
	UrgencySoon    Urgency = "SOON"
	UrgencyNormal  Urgency = "NORMAL"
)

// soonWindowDays is the inclusive look-ahead for UrgencySoon.
const soonWindowDays = 2

// Variant is the visual class used to render a status badge.
type Variant string

const (
	VariantActive     Variant = "ACTIVE"
	VariantInProgress Variant = "IN_PROGRESS"
	VariantCompleted  Variant = "COMPLETED"
	VariantOnHold     Variant = "ON_HOLD"
)

// Tier buckets a completion percentage for colouring progress bars.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// CompletionPercentage returns round(100*done/total) clamped to [0, 100].
// A zero or negative total yields 0.
func CompletionPercentage(total, done int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(done) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DueUrgency classifies due against today. Both are calendar dates so the
// comparison ignores time-of-day. Completed tasks and missing dates are
// UrgencyNone.
func DueUrgency(due *domain.Date, status domain.TaskStatus, today domain.Date) Urgency {
	if due == nil || status == domain.TaskDone {
		return UrgencyNone
	}
	switch {
	case due.Before(today):
		return UrgencyOverdue
	case today.DaysUntil(*due) <= soonWindowDays:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// DueUrgencyNow is DueUrgency against the local calendar date.
func DueUrgencyNow(due *domain.Date, status domain.TaskStatus) Urgency {
	return DueUrgency(due, status, domain.DateOf(time.Now()))
}

// ProjectDueUrgency applies the due-date rules to a project. Completed
// projects are never urgent.
func ProjectDueUrgency(p domain.Project, today domain.Date) Urgency {
	if StatusVariant(string(p.Status)) == VariantCompleted {
		return UrgencyNone
	}
	return DueUrgency(p.DueDate, "", today)
}

// StatusVariant maps a free-form status string onto a badge variant.
// Matching is case-insensitive and unknown values fall back to VariantActive.
func StatusVariant(raw string) Variant {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "COMPLETED", "COMPLETE", "DONE":
		return VariantCompleted
	case "IN_PROGRESS", "INPROGRESS":
		return VariantInProgress
	case "ON_HOLD", "ONHOLD", "PAUSED":
		return VariantOnHold
	default:
		return VariantActive
	}
}

// Progress is the task aggregate for one project.
type Progress struct {
	Total   int
	Done    int
	Percent int
}

// ProjectProgress derives task totals from whichever shape the project
// carries. Aggregate counters win when present, then the embedded task
// list, and a project with neither counts as empty. The cache only hands
// out counters that are at least as recent as the task list.
func ProjectProgress(p domain.Project) Progress {
	var total, done int
	switch {
	case p.TaskCount != nil:
		total = *p.TaskCount
		if p.CompletedTasks != nil {
			done = *p.CompletedTasks
		}
	case p.HasTasks:
		total = len(p.Tasks)
		for _, t := range p.Tasks {
			if t.Status == domain.TaskDone {
				done++
			}
		}
	}
	if total < 0 {
		total = 0
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return Progress{Total: total, Done: done, Percent: CompletionPercentage(total, done)}
}

// ProgressTier buckets a percentage into thirds.
func ProgressTier(pct int) Tier {
	switch {
	case pct >= 66:
		return TierHigh
	case pct >= 33:
		return TierMid
	default:
		return TierLow
	}
}
