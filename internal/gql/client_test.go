package gql

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/h0rv/pmboard/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsOrgAndRequestHeaders(t *testing.T) {
	f := newFakeServer(t)
	f.on("GetProjects", projectsPayload)
	client, _ := newTestClient(f, ListShapeAggregate)

	_, err := client.Projects(context.Background())
	require.NoError(t, err)
	_, err = client.Projects(context.Background())
	require.NoError(t, err)

	calls := f.calls("GetProjects")
	require.Len(t, calls, 2)
	assert.Equal(t, "acme", calls[0].Header.Get(OrgHeader))
	assert.NotEmpty(t, calls[0].Header.Get(RequestIDHeader))
	assert.NotEqual(t, calls[0].Header.Get(RequestIDHeader), calls[1].Header.Get(RequestIDHeader))
}

func TestClient_Projects_Aggregate(t *testing.T) {
	f := newFakeServer(t)
	f.on("GetProjects", projectsPayload)
	client, _ := newTestClient(f, ListShapeAggregate)

	projects, err := client.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2, "null entries are dropped")

	p := projects[0]
	assert.Equal(t, "Website", p.Name)
	assert.Equal(t, "", p.Description)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, "2030-01-15", p.DueDate.String())
	require.NotNil(t, p.TaskCount)
	assert.Equal(t, 5, *p.TaskCount)
	assert.False(t, p.HasTasks)

	assert.Equal(t, domain.ProjectOnHold, projects[1].Status)
	assert.Nil(t, projects[1].DueDate)
}

func TestClient_Projects_Embedded(t *testing.T) {
	f := newFakeServer(t)
	f.on("GetProjects", `{"data":{"projects":[
		{"id":"1","name":"Website","status":"ACTIVE","tasks":[{"id":"10","title":"A","status":"DONE"},{"id":"11","title":"B","status":"TODO"}]}
	]}}`)
	client, _ := newTestClient(f, ListShapeEmbedded)

	projects, err := client.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.True(t, projects[0].HasTasks)
	assert.Nil(t, projects[0].TaskCount)
	require.Len(t, projects[0].Tasks, 2)
	assert.Equal(t, "1", projects[0].Tasks[0].ProjectID)
}

func TestClient_ProjectDetail(t *testing.T) {
	f := newFakeServer(t)
	f.on("GetProjectDetail", detailPayload)
	client, _ := newTestClient(f, ListShapeAggregate)

	p, err := client.ProjectDetail(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Marketing site", p.Description)
	require.Len(t, p.Tasks, 2)

	task := p.Tasks[0]
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, "1", task.ProjectID)
	require.Len(t, task.Comments, 1)
	assert.Equal(t, "10", task.Comments[0].TaskID)
	assert.Equal(t, 2024, task.Comments[0].CreatedAt.Year())
	assert.NotNil(t, p.Tasks[1].Comments)
	assert.Empty(t, p.Tasks[1].Comments)

	calls := f.calls("GetProjectDetail")
	require.Len(t, calls, 1)
	assert.Equal(t, "1", calls[0].Variables["id"])
}

func TestClient_ProjectDetail_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"null project", `{"data":{"project":null}}`},
		{"service does-not-exist", `{"data":{"project":null},"errors":[{"message":"Project matching query does not exist."}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t)
			f.on("GetProjectDetail", tt.payload)
			client, _ := newTestClient(f, ListShapeAggregate)

			_, err := client.ProjectDetail(context.Background(), "99")
			var nf *NotFoundError
			require.True(t, errors.As(err, &nf), "got %v", err)
			assert.Equal(t, "99", nf.ID)
		})
	}
}

func TestClient_ProjectDetail_NoTasks(t *testing.T) {
	f := newFakeServer(t)
	f.on("GetProjectDetail", `{"data":{"project":{"id":"3","name":"Empty","status":"ACTIVE","tasks":[]}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	p, err := client.ProjectDetail(context.Background(), "3")
	require.NoError(t, err)
	assert.True(t, p.HasTasks)
	assert.Empty(t, p.Tasks)
}

func TestClient_ServiceError(t *testing.T) {
	f := newFakeServer(t)
	f.on("CreateProject", `{"data":{"createProject":null},"errors":[{"message":"Invalid organization."}]}`)
	client, hook := newTestClient(f, ListShapeAggregate)

	_, err := client.CreateProject(context.Background(), domain.NewProject{Name: "X"})
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Invalid organization.", se.Message)
	assert.Equal(t, "Invalid organization.", UserMessage(err))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "CreateProject", hook.LastEntry().Data["op"])
}

func TestClient_NetworkErrors(t *testing.T) {
	t.Run("non-200 without body", func(t *testing.T) {
		f := newFakeServer(t)
		f.onFunc("GetProjects", func(map[string]interface{}) (int, string) {
			return http.StatusBadGateway, "upstream down"
		})
		client, _ := newTestClient(f, ListShapeAggregate)

		_, err := client.Projects(context.Background())
		var ne *NetworkError
		assert.True(t, errors.As(err, &ne), "got %v", err)
	})

	t.Run("connection refused", func(t *testing.T) {
		f := newFakeServer(t)
		f.srv.Close()
		client, _ := newTestClient(f, ListShapeAggregate)

		_, err := client.Projects(context.Background())
		var ne *NetworkError
		require.True(t, errors.As(err, &ne), "got %v", err)
		assert.Contains(t, UserMessage(err), "Could not reach server")
	})

	t.Run("timeout", func(t *testing.T) {
		f := newFakeServer(t)
		f.onFunc("GetProjects", func(map[string]interface{}) (int, string) {
			time.Sleep(200 * time.Millisecond)
			return http.StatusOK, projectsPayload
		})
		client, _ := newTestClient(f, ListShapeAggregate)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := client.Projects(ctx)
		var ne *NetworkError
		assert.True(t, errors.As(err, &ne), "got %v", err)
	})
}

func TestClient_CreateProject_Variables(t *testing.T) {
	f := newFakeServer(t)
	f.on("CreateProject", `{"data":{"createProject":{"project":{"id":"7","name":"Docs","description":null,"status":"ACTIVE","dueDate":"2030-02-01","taskCount":0,"completedTasks":0}}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	due := domain.NewDate(2030, time.February, 1)
	p, err := client.CreateProject(context.Background(), domain.NewProject{Name: "Docs", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)

	vars := f.calls("CreateProject")[0].Variables
	assert.Equal(t, "Docs", vars["name"])
	assert.Nil(t, vars["description"])
	assert.Equal(t, "ACTIVE", vars["status"], "status defaults to ACTIVE")
	assert.Equal(t, "2030-02-01", vars["dueDate"])
}

func TestClient_CreateTask(t *testing.T) {
	f := newFakeServer(t)
	f.on("CreateTask", `{"data":{"createTask":{"task":{"id":"12","title":"Blog","description":null,"status":"TODO","assigneeEmail":"a@b.co","dueDate":null,"comments":[]}}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	task, err := client.CreateTask(context.Background(), domain.NewTask{ProjectID: "1", Title: "Blog", AssigneeEmail: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "12", task.ID)
	assert.Equal(t, "1", task.ProjectID)

	vars := f.calls("CreateTask")[0].Variables
	assert.Equal(t, "TODO", vars["status"])
	assert.Equal(t, "1", vars["projectId"])
}

func TestClient_UpdateTaskStatus(t *testing.T) {
	f := newFakeServer(t)
	f.on("UpdateTaskStatus", `{"data":{"updateTaskStatus":{"task":{"id":"10","status":"DONE"}}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	status, err := client.UpdateTaskStatus(context.Background(), "10", domain.TaskDone)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, status)
}

func TestClient_AddTaskComment(t *testing.T) {
	f := newFakeServer(t)
	f.on("AddTaskComment", `{"data":{"addTaskComment":{"comment":{"id":"101","content":"Ship it","authorEmail":"a@b.co","createdAt":"2024-05-02T09:00:00Z"}}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	c, err := client.AddTaskComment(context.Background(), domain.NewComment{TaskID: "10", Content: "Ship it", AuthorEmail: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "10", c.TaskID)
	assert.Equal(t, "Ship it", c.Content)
}

func TestClient_Deletes(t *testing.T) {
	f := newFakeServer(t)
	f.on("DeleteTask", `{"data":{"deleteTask":{"ok":true}}}`)
	f.on("DeleteProject", `{"data":{"deleteProject":{"ok":false}}}`)
	client, _ := newTestClient(f, ListShapeAggregate)

	assert.NoError(t, client.DeleteTask(context.Background(), "10"))

	err := client.DeleteProject(context.Background(), "1")
	var se *ServiceError
	assert.True(t, errors.As(err, &se))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "name is required", UserMessage(&domain.ValidationError{Field: "name", Message: "is required"}))
	assert.Equal(t, "project 4 not found", UserMessage(&NotFoundError{Kind: "Project", ID: "4"}))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
