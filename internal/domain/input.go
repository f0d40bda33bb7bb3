package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a required field that is missing or malformed.
// It is raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func email(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if !strings.Contains(value, "@") {
		return &ValidationError{Field: field, Message: "must be an email address"}
	}
	return nil
}

// NewProject holds the fields for creating a project.
type NewProject struct {
	Name        string
	Description string
	Status      ProjectStatus // Defaults to ACTIVE when empty
	DueDate     *Date
}

// Validate checks required fields.
func (in NewProject) Validate() error {
	return required("name", in.Name)
}

// NewTask holds the fields for creating a task.
type NewTask struct {
	ProjectID     string
	Title         string
	Description   string
	Status        TaskStatus // Defaults to TODO when empty
	AssigneeEmail string
	DueDate       *Date
}

// Validate checks required fields.
func (in NewTask) Validate() error {
	if err := required("project", in.ProjectID); err != nil {
		return err
	}
	if err := required("title", in.Title); err != nil {
		return err
	}
	return email("assignee email", in.AssigneeEmail)
}

// NewComment holds the fields for adding a comment to a task.
type NewComment struct {
	TaskID      string
	Content     string
	AuthorEmail string
}

// Validate checks required fields.
func (in NewComment) Validate() error {
	if err := required("task", in.TaskID); err != nil {
		return err
	}
	if err := required("comment", in.Content); err != nil {
		return err
	}
	return email("author email", in.AuthorEmail)
}
