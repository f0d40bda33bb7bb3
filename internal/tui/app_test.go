package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/route"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppModel_StartsOnProjectList(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/")

	app := appOf(t, m)
	assert.Equal(t, route.ProjectList, app.Route().Kind)
	assert.Equal(t, "/projects", app.Route().Path)
	assert.Len(t, listOf(t, m).projects, 2)
	assert.Equal(t, 1, env.api.count("GetProjects"))
	assert.Contains(t, m.View(), "Website relaunch")
}

func TestAppModel_OpenDetailAndBack(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects")

	m = press(t, m, "enter")
	app := appOf(t, m)
	require.Equal(t, route.ProjectDetail, app.Route().Kind)
	assert.Equal(t, "p1", app.Route().ProjectID)
	assert.Equal(t, detailReady, detailOf(t, m).state)

	m = press(t, m, "esc")
	assert.Equal(t, route.ProjectList, appOf(t, m).Route().Kind)
}

func TestAppModel_BackWithoutHistoryGoesToList(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects/p1")

	m = press(t, m, "esc")
	assert.Equal(t, route.ProjectList, appOf(t, m).Route().Kind)

	// Back on the list has nowhere to go.
	mount := appOf(t, m).mount
	m, _ = m.Update(BackMsg{})
	assert.Equal(t, mount, appOf(t, m).mount)
}

func TestAppModel_DropsResultsForUnmountedView(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	var m tea.Model = NewAppModel(context.Background(), env.deps, "/projects/p1")
	pending := m.Init()

	// Leave before the detail fetch lands.
	m, cmd := m.Update(BackMsg{})
	m = drive(t, m, cmd)
	require.Equal(t, route.ProjectList, appOf(t, m).Route().Kind)

	m = drive(t, m, pending)
	listOf(t, m)

	var dropped bool
	for _, e := range env.hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Message == "dropping result for unmounted view" {
			dropped = true
			assert.Equal(t, "tui.detailLoadedMsg", e.Data["msg"])
		}
	}
	assert.True(t, dropped)
}

func TestAppModel_SamePathPushIsIgnored(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects")
	mount := appOf(t, m).mount

	m, cmd := m.Update(NavigateMsg{Path: "/projects"})
	assert.Nil(t, cmd)
	assert.Equal(t, mount, appOf(t, m).mount)
}

func TestAppModel_UnknownPath(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects/p1/tasks")

	_, ok := appOf(t, m).current.(NotFoundModel)
	require.True(t, ok)
	assert.Contains(t, m.View(), "404")

	m = press(t, m, "enter")
	assert.Equal(t, route.ProjectList, appOf(t, m).Route().Kind)
}

func TestAppModel_Quit(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects")

	_, cmd := m.Update(QuitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_CreatePageNavigatesToNewProject(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects")

	m = press(t, m, "c")
	require.Equal(t, route.ProjectCreate, appOf(t, m).Route().Kind)

	m = typeText(m, "Mobile app")
	m = press(t, m, "ctrl+s")

	app := appOf(t, m)
	require.Equal(t, route.ProjectDetail, app.Route().Kind)
	assert.Equal(t, "p101", app.Route().ProjectID)
	assert.Equal(t, "Mobile app", detailOf(t, m).project.Name)

	// The create page was replaced, so back returns to the list.
	m = press(t, m, "esc")
	assert.Equal(t, route.ProjectList, appOf(t, m).Route().Kind)
}

func TestCreateModel_ShowsServiceError(t *testing.T) {
	env := newTestEnv(t, sampleProjects()...)
	m := env.newApp(t, "/projects/create")

	m = press(t, m, "ctrl+s")
	create, ok := appOf(t, m).current.(CreateModel)
	require.True(t, ok)
	assert.Equal(t, "name is required", create.errMsg)
	assert.Equal(t, 0, env.api.count("CreateProject"))
}
