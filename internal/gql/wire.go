package gql

import (
	"time"

	"github.com/h0rv/pmboard/internal/domain"
)

// Wire shapes shared by queries and mutation payloads. Optional parts are
// pointers or nil slices so decoding tells "absent" from "empty".

type commentNode struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	AuthorEmail string `json:"authorEmail"`
	CreatedAt   string `json:"createdAt"`
}

type taskNode struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   *string        `json:"description"`
	Status        string         `json:"status"`
	AssigneeEmail string         `json:"assigneeEmail"`
	DueDate       *domain.Date   `json:"dueDate"`
	Comments      []*commentNode `json:"comments"`
}

type projectNode struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    *string      `json:"description"`
	Status         string       `json:"status"`
	DueDate        *domain.Date `json:"dueDate"`
	TaskCount      *int         `json:"taskCount"`
	CompletedTasks *int         `json:"completedTasks"`
	Tasks          []*taskNode  `json:"tasks"`
}

func (n *commentNode) toDomain(taskID string) domain.Comment {
	c := domain.Comment{
		ID:          n.ID,
		TaskID:      taskID,
		Content:     n.Content,
		AuthorEmail: n.AuthorEmail,
	}
	if t, err := time.Parse(time.RFC3339, n.CreatedAt); err == nil {
		c.CreatedAt = t
	}
	return c
}

func (n *taskNode) toDomain(projectID string) domain.Task {
	t := domain.Task{
		ID:            n.ID,
		ProjectID:     projectID,
		Title:         n.Title,
		Status:        domain.ParseTaskStatus(n.Status),
		AssigneeEmail: n.AssigneeEmail,
		DueDate:       dueDate(n.DueDate),
	}
	if n.Description != nil {
		t.Description = *n.Description
	}
	if n.Comments != nil {
		t.Comments = make([]domain.Comment, 0, len(n.Comments))
		for _, c := range n.Comments {
			// Null list entries are skipped rather than rendered.
			if c == nil {
				continue
			}
			t.Comments = append(t.Comments, c.toDomain(n.ID))
		}
	}
	return t
}

func (n *projectNode) toDomain() domain.Project {
	p := domain.Project{
		ID:             n.ID,
		Name:           n.Name,
		Status:         domain.ParseProjectStatus(n.Status),
		DueDate:        dueDate(n.DueDate),
		TaskCount:      n.TaskCount,
		CompletedTasks: n.CompletedTasks,
	}
	if n.Description != nil {
		p.Description = *n.Description
	}
	if n.Tasks != nil {
		p.HasTasks = true
		p.Tasks = make([]domain.Task, 0, len(n.Tasks))
		for _, t := range n.Tasks {
			if t == nil {
				continue
			}
			p.Tasks = append(p.Tasks, t.toDomain(n.ID))
		}
	}
	return p
}

// dueDate drops zero dates sent as empty strings.
func dueDate(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

// optionalString maps "" to nil so the service stores NULL.
func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// optionalDate maps nil to a GraphQL null.
func optionalDate(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
