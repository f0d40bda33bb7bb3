package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/route"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators shared by every container.
type Deps struct {
	Gateway     *gql.Gateway
	Log         *logrus.Logger
	AuthorEmail string // Prefills assignee and comment author fields

	// ProjectURL returns the web page of a project, or "" when unknown.
	ProjectURL func(id string) string
	// OpenURL opens a page in the browser.
	OpenURL func(url string) error
	// Now is the clock used for due-date urgency and comment ages.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.ProjectURL == nil {
		d.ProjectURL = func(string) string { return "" }
	}
	if d.OpenURL == nil {
		d.OpenURL = browser.OpenURL
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) today() domain.Date { return domain.DateOf(d.Now()) }

// openURLCmd opens url in the browser and reports the outcome as a flash.
func (d Deps) openURLCmd(mount int, url string) tea.Cmd {
	if url == "" {
		return func() tea.Msg {
			return flashMsg{mounted: mounted{mount}, err: fmt.Errorf("no web_url configured")}
		}
	}
	return func() tea.Msg {
		if err := d.OpenURL(url); err != nil {
			return flashMsg{mounted: mounted{mount}, err: fmt.Errorf("open browser: %w", err)}
		}
		return flashMsg{mounted: mounted{mount}, text: "Opened " + url}
	}
}

// flashMsg is a transient footer message for the issuing container.
type flashMsg struct {
	mounted
	text string
	err  error
}

// AppModel is the root Bubble Tea model. It owns navigation history and
// the mounted container, and routes every message to it.
type AppModel struct {
	ctx     context.Context
	deps    Deps
	history *route.History

	current tea.Model
	mount   int

	width  int
	height int
}

// NewAppModel creates the app at the given initial path.
func NewAppModel(ctx context.Context, deps Deps, path string) AppModel {
	m := AppModel{
		ctx:     ctx,
		deps:    deps.withDefaults(),
		history: route.NewHistory(path),
	}
	m.current = m.build(m.history.Current())
	return m
}

// Route returns the active route.
func (m AppModel) Route() route.Route { return m.history.Current() }

// Init initializes the mounted container.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.current.Init(), tea.WindowSize())
}

// Update handles navigation and forwards everything else to the container.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case QuitMsg:
		return m, tea.Quit

	case NavigateMsg:
		if msg.Replace {
			m.history.Replace(msg.Path)
			return m.remount()
		}
		if _, changed := m.history.Push(msg.Path); !changed {
			return m, nil
		}
		return m.remount()

	case BackMsg:
		if _, ok := m.history.Back(); ok {
			return m.remount()
		}
		if m.history.Current().Kind == route.ProjectList {
			return m, nil
		}
		m.history.Replace(route.Projects)
		return m.remount()

	case mountedMsg:
		if msg.mountID() != m.mount {
			m.deps.Log.WithFields(logrus.Fields{
				"msg":   fmt.Sprintf("%T", msg),
				"mount": msg.mountID(),
			}).Debug("dropping result for unmounted view")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// View renders the mounted container.
func (m AppModel) View() string {
	return m.current.View()
}

// remount replaces the container with the one for the current route.
// Results still in flight for the old container carry its mount id and
// are discarded on arrival.
func (m AppModel) remount() (tea.Model, tea.Cmd) {
	r := m.history.Current()
	m.current = m.build(r)
	m.deps.Log.WithFields(logrus.Fields{"path": r.Path, "view": r.Kind.String(), "mount": m.mount}).Debug("mount")

	cmds := []tea.Cmd{m.current.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *AppModel) build(r route.Route) tea.Model {
	m.mount++
	switch r.Kind {
	case route.ProjectList:
		return NewListModel(m.ctx, m.deps, m.mount)
	case route.ProjectCreate:
		return NewCreateModel(m.ctx, m.deps, m.mount)
	case route.ProjectDetail:
		return NewDetailModel(m.ctx, m.deps, m.mount, r.ProjectID)
	default:
		return NewNotFoundModel(r.Path)
	}
}
