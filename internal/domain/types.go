// Package domain defines the normalized domain types for the project service.
// These types represent the core concepts independent of the GraphQL API structure.
package domain

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

// ProjectStatuses lists project statuses in display order.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted}

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// TaskStatuses lists task statuses in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// ParseProjectStatus normalizes a status string case-insensitively.
// Unknown values are returned upper-cased rather than rejected.
func ParseProjectStatus(s string) ProjectStatus {
	return ProjectStatus(normalizeEnum(s))
}

// ParseTaskStatus normalizes a status string case-insensitively.
func ParseTaskStatus(s string) TaskStatus {
	return TaskStatus(normalizeEnum(s))
}

func normalizeEnum(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToUpper(s)
}

// Label returns the status in human-readable form ("ON HOLD").
func (s ProjectStatus) Label() string { return strings.ReplaceAll(string(s), "_", " ") }

// Label returns the status in human-readable form ("IN PROGRESS").
func (s TaskStatus) Label() string { return strings.ReplaceAll(string(s), "_", " ") }

// Next returns the following status in workflow order, wrapping around.
func (s TaskStatus) Next() TaskStatus {
	for i, st := range TaskStatuses {
		if st == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return TaskTodo
}

// Project represents a project owned by the organization.
type Project struct {
	ID          string        // Server-assigned identifier
	Name        string        // Display name, never empty
	Description string        // Optional description
	Status      ProjectStatus // ACTIVE, ON_HOLD or COMPLETED
	DueDate     *Date         // Optional due date

	// Tasks holds the embedded task list when the query requested it.
	// HasTasks distinguishes "not requested" from "requested and empty".
	Tasks    []Task
	HasTasks bool

	// Aggregate counters, nil when the query did not request them.
	TaskCount      *int
	CompletedTasks *int
}

// Task represents a unit of work inside a project.
type Task struct {
	ID            string     // Server-assigned identifier
	ProjectID     string     // Owning project, empty when unknown
	Title         string     // Display title, never empty
	Description   string     // Optional description
	Status        TaskStatus // TODO, IN_PROGRESS or DONE
	AssigneeEmail string     // Required assignee
	DueDate       *Date      // Optional due date
	Comments      []Comment  // Chronological order
}

// Comment represents an append-only note on a task.
type Comment struct {
	ID          string    // Server-assigned identifier
	TaskID      string    // Owning task
	Content     string    // Comment text
	AuthorEmail string    // Author address
	CreatedAt   time.Time // Creation timestamp
}

// IntPtr is a convenience for populating optional counters.
func IntPtr(n int) *int { return &n }
