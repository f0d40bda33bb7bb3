package gql

import (
	"context"

	"github.com/h0rv/pmboard/internal/domain"
	"github.com/machinebox/graphql"
)

const projectsAggregateQuery = `
	query GetProjects {
		projects {
			id
			name
			description
			status
			dueDate
			taskCount
			completedTasks
		}
	}
`

const projectsEmbeddedQuery = `
	query GetProjects {
		projects {
			id
			name
			description
			status
			dueDate
			tasks {
				id
				title
				status
			}
		}
	}
`

const projectDetailQuery = `
	query GetProjectDetail($id: ID!) {
		project(id: $id) {
			id
			name
			description
			status
			dueDate
			tasks {
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
`

// Projects lists the organization's projects. The list shape decides
// whether counters or an embedded task list come back; null entries are
// dropped.
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	query := projectsAggregateQuery
	if c.listShape == ListShapeEmbedded {
		query = projectsEmbeddedQuery
	}
	req := graphql.NewRequest(query)

	var resp struct {
		Projects []*projectNode `json:"projects"`
	}

	if err := c.makeRequest(ctx, "GetProjects", req, &resp); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(resp.Projects))
	for _, node := range resp.Projects {
		if node == nil || node.ID == "" {
			continue
		}
		projects = append(projects, node.toDomain())
	}
	return projects, nil
}

// ProjectDetail fetches one project with its tasks and their comments.
// A project that does not exist yields *NotFoundError.
func (c *Client) ProjectDetail(ctx context.Context, id string) (domain.Project, error) {
	req := graphql.NewRequest(projectDetailQuery)
	req.Var("id", id)

	var resp struct {
		Project *projectNode `json:"project"`
	}

	if err := c.makeRequest(ctx, "GetProjectDetail", req, &resp); err != nil {
		if IsNotFound(err) {
			return domain.Project{}, &NotFoundError{Kind: "Project", ID: id}
		}
		return domain.Project{}, err
	}

	if resp.Project == nil || resp.Project.ID == "" {
		return domain.Project{}, &NotFoundError{Kind: "Project", ID: id}
	}

	p := resp.Project.toDomain()
	if !p.HasTasks {
		// The detail shape always carries tasks; null means none.
		p.HasTasks = true
		p.Tasks = []domain.Task{}
	}
	return p, nil
}
