package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/derive"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/route"
	"github.com/h0rv/pmboard/internal/store"
)

// statusFilter narrows the project list to one status.
type statusFilter int

const (
	filterAll statusFilter = iota
	filterActive
	filterOnHold
	filterCompleted
	filterCount
)

func (f statusFilter) next() statusFilter { return (f + 1) % filterCount }

func (f statusFilter) String() string {
	switch f {
	case filterActive:
		return "ACTIVE"
	case filterOnHold:
		return "ON HOLD"
	case filterCompleted:
		return "COMPLETED"
	default:
		return "ALL"
	}
}

func (f statusFilter) match(p domain.Project) bool {
	variant := derive.StatusVariant(string(p.Status))
	switch f {
	case filterActive:
		return variant == derive.VariantActive || variant == derive.VariantInProgress
	case filterOnHold:
		return variant == derive.VariantOnHold
	case filterCompleted:
		return variant == derive.VariantCompleted
	default:
		return true
	}
}

// projectItem wraps a domain.Project for use in bubbles/list.
type projectItem struct {
	project domain.Project
}

func (i projectItem) FilterValue() string { return i.project.Name }

// projectDelegate renders project cards.
type projectDelegate struct {
	today func() domain.Date
}

func (d projectDelegate) Height() int                             { return projectCardHeight }
func (d projectDelegate) Spacing() int                            { return 1 }
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(projectItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderProjectCard(i.project, d.today(), m.Width(), index == m.Index()))
}

// ListModel is the project list container.
type ListModel struct {
	// Dependencies
	ctx   context.Context
	deps  Deps
	mount int

	// UI components
	list    list.Model
	keymap  ListKeyMap
	help    HelpModel
	spinner spinner.Model

	// Data
	projects []domain.Project
	filter   statusFilter
	loaded   bool // Some list, cached or fetched, has been shown
	loading  bool
	err      error

	// Quick-create form
	form       form
	formOpen   bool
	submitting bool
	formErr    string

	// View state
	flash    string
	flashErr bool
	showHelp bool
	width    int
	height   int
}

// NewListModel creates the list container, seeded from the cache.
func NewListModel(ctx context.Context, deps Deps, mount int) ListModel {
	deps = deps.withDefaults()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	l := list.New(nil, projectDelegate{today: deps.today}, defaultWidth, defaultHeight-4)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("project", "projects")
	l.DisableQuitKeybindings()

	m := ListModel{
		ctx:     ctx,
		deps:    deps,
		mount:   mount,
		list:    l,
		keymap:  DefaultListKeyMap(),
		help:    NewHelpModel(DefaultListKeyMap()),
		spinner: sp,
		form:    newProjectForm("Quick create"),
		loading: true,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if cached, ok := deps.Gateway.CachedProjects(); ok {
		m.projects = cached
		m.loaded = true
		m.applyFilter()
	}
	return m
}

// Init renders the cached list and fetches a fresh one.
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(gql.CacheAndNetwork))
}

// Update handles messages.
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.projects = msg.projects
		m.loaded = true
		m.applyFilter()
		return m, nil

	case projectCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.formErr = gql.UserMessage(msg.err)
			return m, nil
		}
		m.form.Reset()
		m.form.Blur()
		m.formOpen = false
		m.formErr = ""
		m.flash, m.flashErr = fmt.Sprintf("Created %q", msg.project.Name), false
		m.reloadFromCache()
		m.resize()
		// The list was invalidated by the create; reload it now that the
		// result has been handled.
		return m, m.fetch(gql.NetworkOnly)

	case CacheChangedMsg:
		if msg.Change.Touches(store.ProjectsQuery()) || msg.Change.TouchesKind(store.KindProject) {
			m.reloadFromCache()
		}
		return m, nil

	case flashMsg:
		if msg.err != nil {
			m.flash, m.flashErr = msg.err.Error(), true
		} else {
			m.flash, m.flashErr = msg.text, false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.formOpen {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formOpen {
		return m.handleFormKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	m.flash = ""
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, func() tea.Msg { return QuitMsg{} }
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.Open):
		if p, ok := m.selected(); ok {
			return m, navigateCmd(route.DetailPath(p.ID), false)
		}
		return m, nil
	case key.Matches(msg, m.keymap.New):
		m.formOpen = true
		m.formErr = ""
		m.resize()
		cmd := m.form.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Create):
		return m, navigateCmd(route.CreatePath, false)
	case key.Matches(msg, m.keymap.Filter):
		m.filter = m.filter.next()
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch(gql.NetworkOnly))
	case key.Matches(msg, m.keymap.Browse):
		id := ""
		if p, ok := m.selected(); ok {
			id = p.ID
		}
		return m, m.deps.openURLCmd(m.mount, m.deps.ProjectURL(id))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.keymap.Cancel):
		m.formOpen = false
		m.form.Blur()
		m.resize()
		return m, nil
	case key.Matches(msg, m.form.keymap.Submit):
		if m.submitting {
			return m, nil
		}
		in, err := projectInput(m.form)
		if err != nil {
			m.formErr = gql.UserMessage(err)
			return m, nil
		}
		m.submitting = true
		m.formErr = ""
		return m, tea.Batch(m.spinner.Tick, m.create(in))
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the project list.
func (m ListModel) View() string {
	status := fmt.Sprintf("%s · %d of %d", m.filter, len(m.list.Items()), len(m.projects))
	if m.loading {
		status = m.spinner.View() + " " + status
	}

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(m.width)
	case !m.loaded && m.err != nil:
		body = ErrorStyle.Render(gql.UserMessage(m.err)) + "\n\n" + dimStyle.Render("Press r to retry.")
	case !m.loaded:
		body = m.spinner.View() + " Loading projects..."
	case len(m.list.Items()) == 0 && m.filter == filterAll:
		body = dimStyle.Render("No projects yet. Press n to create one.")
	case len(m.list.Items()) == 0:
		body = dimStyle.Render(fmt.Sprintf("No %s projects.", m.filter))
	default:
		body = m.list.View()
	}
	if m.formOpen {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.form.View(m.width, m.formErr, m.submitting))
	}

	left := ""
	switch {
	case m.loaded && m.err != nil:
		left = ErrorStyle.Render("✗ " + gql.UserMessage(m.err))
	case m.flash != "" && m.flashErr:
		left = ErrorStyle.Render("✗ " + m.flash)
	case m.flash != "":
		left = SuccessStyle.Render("✓ " + m.flash)
	}
	footer := footerLine(left, m.help.Short(m.width/2), m.width)

	return renderLayout("Projects", status, body, footer, m.width, m.height)
}

func (m ListModel) selected() (domain.Project, bool) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return domain.Project{}, false
	}
	return item.project, true
}

// applyFilter rebuilds the visible items and keeps the selection on the
// same project when it is still visible.
func (m *ListModel) applyFilter() {
	selectedID := ""
	if p, ok := m.selected(); ok {
		selectedID = p.ID
	}

	items := make([]list.Item, 0, len(m.projects))
	index := 0
	for _, p := range m.projects {
		if !m.filter.match(p) {
			continue
		}
		if p.ID == selectedID {
			index = len(items)
		}
		items = append(items, projectItem{project: p})
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(index)
	}
}

func (m *ListModel) reloadFromCache() {
	if cached, ok := m.deps.Gateway.CachedProjects(); ok {
		m.projects = cached
		m.loaded = true
		m.applyFilter()
	}
}

func (m *ListModel) resize() {
	reserved := 4 // Header, gap and footer
	if m.formOpen {
		reserved += lipgloss.Height(m.form.View(m.width, m.formErr, m.submitting))
	}
	h := m.height - reserved
	if h < projectCardHeight {
		h = projectCardHeight
	}
	m.list.SetSize(m.width, h)
}

func (m ListModel) fetch(policy gql.FetchPolicy) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		projects, err := gw.Projects(ctx, policy)
		return projectsLoadedMsg{mounted: mounted{mount}, projects: projects, err: err}
	}
}

func (m ListModel) create(in domain.NewProject) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		p, err := gw.CreateProject(ctx, in)
		return projectCreatedMsg{mounted: mounted{mount}, project: p, err: err}
	}
}

// Message types for the list and create views
type (
	projectsLoadedMsg struct {
		mounted
		projects []domain.Project
		err      error
	}
	projectCreatedMsg struct {
		mounted
		project domain.Project
		err     error
	}
)
