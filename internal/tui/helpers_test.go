package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// fakeAPI is an in-memory project service.
type fakeAPI struct {
	mu       sync.Mutex
	projects []domain.Project
	seq      int
	calls    []string
	errs     map[string]error
}

func newFakeAPI(projects ...domain.Project) *fakeAPI {
	return &fakeAPI{projects: projects, errs: make(map[string]error)}
}

func (f *fakeAPI) fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// record notes a call and returns the error configured for op. Callers
// hold f.mu.
func (f *fakeAPI) record(op string) error {
	f.calls = append(f.calls, op)
	return f.errs[op]
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, 100+f.seq)
}

func (f *fakeAPI) projectIndex(id string) int {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) taskRef(id string) *domain.Task {
	for i := range f.projects {
		for j := range f.projects[i].Tasks {
			if f.projects[i].Tasks[j].ID == id {
				return &f.projects[i].Tasks[j]
			}
		}
	}
	return nil
}

func copyProject(p domain.Project) domain.Project {
	tasks := make([]domain.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		t.Comments = append([]domain.Comment(nil), t.Comments...)
		tasks[i] = t
	}
	p.Tasks = tasks
	return p
}

func (f *fakeAPI) Projects(_ context.Context) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetProjects"); err != nil {
		return nil, err
	}
	out := make([]domain.Project, len(f.projects))
	for i, p := range f.projects {
		done := 0
		for _, t := range p.Tasks {
			if t.Status == domain.TaskDone {
				done++
			}
		}
		p.TaskCount = domain.IntPtr(len(p.Tasks))
		p.CompletedTasks = domain.IntPtr(done)
		p.Tasks, p.HasTasks = nil, false
		out[i] = p
	}
	return out, nil
}

func (f *fakeAPI) ProjectDetail(_ context.Context, id string) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetProjectDetail"); err != nil {
		return domain.Project{}, err
	}
	i := f.projectIndex(id)
	if i < 0 {
		return domain.Project{}, &gql.NotFoundError{Kind: "Project", ID: id}
	}
	p := copyProject(f.projects[i])
	p.HasTasks = true
	p.TaskCount, p.CompletedTasks = nil, nil
	return p, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, in domain.NewProject) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateProject"); err != nil {
		return domain.Project{}, err
	}
	status := in.Status
	if status == "" {
		status = domain.ProjectActive
	}
	p := domain.Project{
		ID:          f.nextID("p"),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
	}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeAPI) CreateTask(_ context.Context, in domain.NewTask) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateTask"); err != nil {
		return domain.Task{}, err
	}
	i := f.projectIndex(in.ProjectID)
	if i < 0 {
		return domain.Task{}, &gql.ServiceError{Op: "CreateTask", Message: "Project matching query does not exist."}
	}
	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	t := domain.Task{
		ID:            f.nextID("t"),
		ProjectID:     in.ProjectID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        status,
		AssigneeEmail: in.AssigneeEmail,
		DueDate:       in.DueDate,
	}
	f.projects[i].Tasks = append(f.projects[i].Tasks, t)
	return t, nil
}

func (f *fakeAPI) UpdateTaskStatus(_ context.Context, taskID string, status domain.TaskStatus) (domain.TaskStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateTaskStatus"); err != nil {
		return "", err
	}
	t := f.taskRef(taskID)
	if t == nil {
		return "", &gql.ServiceError{Op: "UpdateTaskStatus", Message: "Task matching query does not exist."}
	}
	t.Status = status
	return status, nil
}

func (f *fakeAPI) AddTaskComment(_ context.Context, in domain.NewComment) (domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AddTaskComment"); err != nil {
		return domain.Comment{}, err
	}
	t := f.taskRef(in.TaskID)
	if t == nil {
		return domain.Comment{}, &gql.ServiceError{Op: "AddTaskComment", Message: "Task matching query does not exist."}
	}
	c := domain.Comment{
		ID:          f.nextID("c"),
		TaskID:      in.TaskID,
		Content:     in.Content,
		AuthorEmail: in.AuthorEmail,
		CreatedAt:   testNow,
	}
	t.Comments = append(t.Comments, c)
	return c, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteTask"); err != nil {
		return err
	}
	for i := range f.projects {
		tasks := f.projects[i].Tasks[:0]
		for _, t := range f.projects[i].Tasks {
			if t.ID != taskID {
				tasks = append(tasks, t)
			}
		}
		f.projects[i].Tasks = tasks
	}
	return nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteProject"); err != nil {
		return err
	}
	if i := f.projectIndex(projectID); i >= 0 {
		f.projects = append(f.projects[:i], f.projects[i+1:]...)
	}
	return nil
}

var _ gql.API = (*fakeAPI)(nil)

// sampleProjects returns a project with two tasks and an empty one.
func sampleProjects() []domain.Project {
	due := domain.NewDate(2026, time.March, 12)
	return []domain.Project{
		{
			ID:          "p1",
			Name:        "Website relaunch",
			Description: "New marketing site",
			Status:      domain.ProjectActive,
			DueDate:     &due,
			Tasks: []domain.Task{
				{
					ID: "t1", ProjectID: "p1", Title: "Design mockups", Status: domain.TaskDone,
					AssigneeEmail: "ana@example.com",
					Comments: []domain.Comment{{
						ID: "c1", TaskID: "t1", Content: "Approved by marketing",
						AuthorEmail: "bo@example.com", CreatedAt: testNow.Add(-2 * time.Hour),
					}},
				},
				{ID: "t2", ProjectID: "p1", Title: "Build pages", Status: domain.TaskTodo, AssigneeEmail: "ana@example.com"},
			},
		},
		{ID: "p2", Name: "Archive cleanup", Status: domain.ProjectOnHold},
	}
}

type testEnv struct {
	api  *fakeAPI
	gw   *gql.Gateway
	deps Deps
	hook *test.Hook

	mu     sync.Mutex
	opened []string
}

func newTestEnv(t *testing.T, projects ...domain.Project) *testEnv {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	env := &testEnv{api: newFakeAPI(projects...), hook: hook}
	env.gw = gql.NewGateway(env.api, store.New(store.WithClock(func() time.Time { return testNow })), time.Minute, logger)
	env.deps = Deps{
		Gateway:     env.gw,
		Log:         logger,
		AuthorEmail: "me@example.com",
		ProjectURL:  func(id string) string { return "https://pm.example.com/projects/" + id },
		OpenURL: func(url string) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.opened = append(env.opened, url)
			return nil
		},
		Now: func() time.Time { return testNow },
	}
	return env
}

// newApp mounts the app at path, sizes it and settles its startup fetches.
func (e *testEnv) newApp(t *testing.T, path string) tea.Model {
	t.Helper()
	var m tea.Model = NewAppModel(context.Background(), e.deps, path)
	m = drive(t, m, m.Init())
	m, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return drive(t, m, cmd)
}

// cmdTimeout bounds how long collect waits for one command. Cursor blink
// and spinner ticks outlast it and are dropped.
const cmdTimeout = 200 * time.Millisecond

// collect runs cmd, flattening batches, and keeps the messages this
// package defines.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case mountedMsg, NavigateMsg, BackMsg, QuitMsg:
		return []tea.Msg{msg}
	}
	return nil
}

// drive feeds the results of cmd back into m until nothing is pending.
func drive(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := collect(cmd)
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 50, "message loop did not settle")
		msg := queue[0]
		queue = queue[1:]

		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and settles the commands it starts.
func press(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(k))
		m = drive(t, m, cmd)
	}
	return m
}

// typeText types s one rune at a time. Typing only starts cursor blinks,
// so the commands are discarded.
func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func appOf(t *testing.T, m tea.Model) AppModel {
	t.Helper()
	app, ok := m.(AppModel)
	require.True(t, ok, "got %T", m)
	return app
}

func detailOf(t *testing.T, m tea.Model) DetailModel {
	t.Helper()
	d, ok := appOf(t, m).current.(DetailModel)
	require.True(t, ok, "mounted %T", appOf(t, m).current)
	return d
}

func listOf(t *testing.T, m tea.Model) ListModel {
	t.Helper()
	l, ok := appOf(t, m).current.(ListModel)
	require.True(t, ok, "mounted %T", appOf(t, m).current)
	return l
}
