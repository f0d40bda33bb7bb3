package gql

import (
	"context"

	"github.com/h0rv/pmboard/internal/domain"
	"github.com/machinebox/graphql"
)

// CreateProject creates a project and returns it as the service stored it.
func (c *Client) CreateProject(ctx context.Context, in domain.NewProject) (domain.Project, error) {
	req := graphql.NewRequest(`
		mutation CreateProject($name: String!, $description: String, $status: String, $dueDate: Date) {
			createProject(name: $name, description: $description, status: $status, dueDate: $dueDate) {
				project {
					id
					name
					description
					status
					dueDate
					taskCount
					completedTasks
				}
			}
		}
	`)

	status := in.Status
	if status == "" {
		status = domain.ProjectActive
	}
	req.Var("name", in.Name)
	req.Var("description", optionalString(in.Description))
	req.Var("status", string(status))
	req.Var("dueDate", optionalDate(in.DueDate))

	var resp struct {
		CreateProject struct {
			Project *projectNode `json:"project"`
		} `json:"createProject"`
	}

	if err := c.makeRequest(ctx, "CreateProject", req, &resp); err != nil {
		return domain.Project{}, err
	}
	if resp.CreateProject.Project == nil {
		return domain.Project{}, &ServiceError{Op: "CreateProject", Message: "no project returned"}
	}
	return resp.CreateProject.Project.toDomain(), nil
}

// CreateTask creates a task inside a project.
func (c *Client) CreateTask(ctx context.Context, in domain.NewTask) (domain.Task, error) {
	req := graphql.NewRequest(`
		mutation CreateTask(
			$projectId: ID!
			$title: String!
			$description: String
			$status: String
			$assigneeEmail: String!
			$dueDate: Date
		) {
			createTask(
				projectId: $projectId
				title: $title
				description: $description
				status: $status
				assigneeEmail: $assigneeEmail
				dueDate: $dueDate
			) {
				task {
					id
					title
					description
					status
					assigneeEmail
					dueDate
					comments {
						id
						content
						authorEmail
						createdAt
					}
				}
			}
		}
	`)

	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	req.Var("projectId", in.ProjectID)
	req.Var("title", in.Title)
	req.Var("description", optionalString(in.Description))
	req.Var("status", string(status))
	req.Var("assigneeEmail", in.AssigneeEmail)
	req.Var("dueDate", optionalDate(in.DueDate))

	var resp struct {
		CreateTask struct {
			Task *taskNode `json:"task"`
		} `json:"createTask"`
	}

	if err := c.makeRequest(ctx, "CreateTask", req, &resp); err != nil {
		return domain.Task{}, err
	}
	if resp.CreateTask.Task == nil {
		return domain.Task{}, &ServiceError{Op: "CreateTask", Message: "no task returned"}
	}
	return resp.CreateTask.Task.toDomain(in.ProjectID), nil
}

// UpdateTaskStatus moves a task to a new status. Only id and status come
// back, so callers must not assume other fields were refreshed.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.TaskStatus, error) {
	req := graphql.NewRequest(`
		mutation UpdateTaskStatus($taskId: ID!, $status: String!) {
			updateTaskStatus(taskId: $taskId, status: $status) {
				task {
					id
					status
				}
			}
		}
	`)

	req.Var("taskId", taskID)
	req.Var("status", string(status))

	var resp struct {
		UpdateTaskStatus struct {
			Task *struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"task"`
		} `json:"updateTaskStatus"`
	}

	if err := c.makeRequest(ctx, "UpdateTaskStatus", req, &resp); err != nil {
		return "", err
	}
	if resp.UpdateTaskStatus.Task == nil {
		return "", &NotFoundError{Kind: "Task", ID: taskID}
	}
	return domain.ParseTaskStatus(resp.UpdateTaskStatus.Task.Status), nil
}

// AddTaskComment appends a comment to a task.
func (c *Client) AddTaskComment(ctx context.Context, in domain.NewComment) (domain.Comment, error) {
	req := graphql.NewRequest(`
		mutation AddTaskComment($taskId: ID!, $content: String!, $authorEmail: String!) {
			addTaskComment(taskId: $taskId, content: $content, authorEmail: $authorEmail) {
				comment {
					id
					content
					authorEmail
					createdAt
				}
			}
		}
	`)

	req.Var("taskId", in.TaskID)
	req.Var("content", in.Content)
	req.Var("authorEmail", in.AuthorEmail)

	var resp struct {
		AddTaskComment struct {
			Comment *commentNode `json:"comment"`
		} `json:"addTaskComment"`
	}

	if err := c.makeRequest(ctx, "AddTaskComment", req, &resp); err != nil {
		return domain.Comment{}, err
	}
	if resp.AddTaskComment.Comment == nil {
		return domain.Comment{}, &ServiceError{Op: "AddTaskComment", Message: "no comment returned"}
	}
	return resp.AddTaskComment.Comment.toDomain(in.TaskID), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	req := graphql.NewRequest(`
		mutation DeleteTask($taskId: ID!) {
			deleteTask(taskId: $taskId) {
				ok
			}
		}
	`)
	req.Var("taskId", taskID)

	var resp struct {
		DeleteTask struct {
			OK bool `json:"ok"`
		} `json:"deleteTask"`
	}

	if err := c.makeRequest(ctx, "DeleteTask", req, &resp); err != nil {
		return err
	}
	if !resp.DeleteTask.OK {
		return &ServiceError{Op: "DeleteTask", Message: "task was not deleted"}
	}
	return nil
}

// DeleteProject deletes a project. Removing its tasks is the service's job.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	req := graphql.NewRequest(`
		mutation DeleteProject($projectId: ID!) {
			deleteProject(projectId: $projectId) {
				ok
			}
		}
	`)
	req.Var("projectId", projectID)

	var resp struct {
		DeleteProject struct {
			OK bool `json:"ok"`
		} `json:"deleteProject"`
	}

	if err := c.makeRequest(ctx, "DeleteProject", req, &resp); err != nil {
		return err
	}
	if !resp.DeleteProject.OK {
		return &ServiceError{Op: "DeleteProject", Message: "project was not deleted"}
	}
	return nil
}
