package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/derive"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/route"
	"github.com/h0rv/pmboard/internal/store"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sirupsen/logrus"
)

// detailState is what the detail view is showing. Exactly one holds at a
// time.
type detailState int

const (
	detailLoading detailState = iota
	detailError
	detailNotFound
	detailReady
)

func (s detailState) String() string {
	switch s {
	case detailError:
		return "error"
	case detailNotFound:
		return "notFound"
	case detailReady:
		return "ready"
	default:
		return "loading"
	}
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteTask
	confirmDeleteProject
)

// DetailModel is the project detail container: the project summary, its
// tasks with comments, and the forms that mutate them.
type DetailModel struct {
	// Dependencies
	ctx       context.Context
	deps      Deps
	mount     int
	projectID string

	// UI components
	keymap   DetailKeyMap
	help     HelpModel
	spinner  spinner.Model
	viewport viewport.Model

	// Data
	state       detailState
	project     domain.Project
	err         error
	cursor      int
	follow      bool  // Scroll the selected task into view on next layout
	taskOffsets []int // First viewport line of each task card

	// Task form
	taskForm       form
	taskFormOpen   bool
	taskSubmitting bool
	taskFormErr    string

	// Comment composer. drafts holds one pending comment per task.
	drafts            map[string]string
	composer          textarea.Model
	author            textinput.Model
	commentTaskID     string
	authorFocused     bool
	commentSubmitting bool
	commentErr        string

	// Confirmation prompt
	confirm       confirmKind
	confirmTaskID string

	// View state
	busy     string // Label of the in-flight action, if any
	flash    string
	flashErr bool
	showHelp bool
	width    int
	height   int
}

// NewDetailModel creates the detail container for a project, seeded from
// the cache when the detail was fetched before.
func NewDetailModel(ctx context.Context, deps Deps, mount int, projectID string) DetailModel {
	deps = deps.withDefaults()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	author := textinput.New()
	author.Prompt = ""
	author.Placeholder = "you@example.com"
	author.SetValue(deps.AuthorEmail)

	vp := viewport.New(defaultWidth, defaultHeight)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		ctx:       ctx,
		deps:      deps,
		mount:     mount,
		projectID: projectID,
		keymap:    DefaultDetailKeyMap(),
		help:      NewHelpModel(DefaultDetailKeyMap()),
		spinner:   sp,
		viewport:  vp,
		state:     detailLoading,
		taskForm:  newTaskForm(deps.AuthorEmail),
		drafts:    make(map[string]string),
		composer:  ta,
		author:    author,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	switch p, cached := deps.Gateway.CachedProjectDetail(projectID); {
	case cached && p != nil:
		m.setProject(*p)
	case cached:
		m.state = detailNotFound
	}
	m.layout()
	return m
}

// Init renders the cached detail and fetches a fresh one.
func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(gql.CacheAndNetwork))
}

// Update handles messages and re-lays out the view.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m DetailModel) update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow = true
		return m, nil

	case spinner.TickMsg:
		if !m.inFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailLoadedMsg:
		if m.busy == busyRefresh {
			m.busy = ""
		}
		switch {
		case msg.err == nil:
			m.setProject(msg.project)
		case gql.IsNotFound(msg.err):
			m.state = detailNotFound
			m.err = nil
		default:
			m.state = detailError
			m.err = msg.err
		}
		return m, nil

	case CacheChangedMsg:
		key := store.Key{Kind: store.KindProject, ID: m.projectID}
		if m.state == detailReady && msg.Change.Touches(store.ProjectDetailQuery(m.projectID), key) {
			m.reloadFromCache()
		}
		return m, nil

	case taskCreatedMsg:
		m.taskSubmitting = false
		if msg.err != nil {
			m.taskFormErr = gql.UserMessage(msg.err)
			return m, nil
		}
		m.taskForm.Reset()
		m.taskForm.SetValue(fieldAssignee, m.deps.AuthorEmail)
		m.taskForm.Blur()
		m.taskFormOpen = false
		m.taskFormErr = ""
		m.setFlash(fmt.Sprintf("Created task %q", msg.task.Title), nil)
		m.reloadFromCache()
		return m, m.refetch()

	case statusChangedMsg:
		m.busy = ""
		if msg.err != nil {
			m.setFlash("", msg.err)
			return m, nil
		}
		m.setFlash("Status set to "+msg.status.Label(), nil)
		m.reloadFromCache()
		return m, m.refetch()

	case detailRefetchedMsg:
		switch {
		case msg.err != nil:
			// The cached data stays on screen; the query is already stale.
			m.deps.Log.WithFields(logrus.Fields{"project_id": m.projectID}).WithError(msg.err).Warn("detail refetch failed")
		case msg.project == nil:
			m.state = detailNotFound
			m.err = nil
		default:
			m.setProject(*msg.project)
		}
		return m, nil

	case commentAddedMsg:
		m.commentSubmitting = false
		if msg.err != nil {
			m.commentErr = gql.UserMessage(msg.err)
			return m, nil
		}
		delete(m.drafts, msg.taskID)
		if m.commentTaskID == msg.taskID {
			m.closeComposer()
			m.composer.Reset()
		}
		m.setFlash("Comment added", nil)
		m.reloadFromCache()
		return m, nil

	case taskDeletedMsg:
		m.busy = ""
		if msg.err != nil {
			m.setFlash("", msg.err)
			return m, nil
		}
		m.setFlash("Task deleted", nil)
		m.reloadFromCache()
		return m, nil

	case projectDeletedMsg:
		m.busy = ""
		if msg.err != nil {
			m.setFlash("", msg.err)
			return m, nil
		}
		return m, navigateCmd(route.Projects, true)

	case flashMsg:
		m.setFlash(msg.text, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Cursor blink and similar component messages.
	var cmd tea.Cmd
	switch {
	case m.taskFormOpen:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case m.commentTaskID != "" && m.authorFocused:
		m.author, cmd = m.author.Update(msg)
	case m.commentTaskID != "":
		m.composer, cmd = m.composer.Update(msg)
	}
	return m, cmd
}

func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case m.confirm != confirmNone:
		return m.handleConfirmKey(msg)
	case m.taskFormOpen:
		return m.handleTaskFormKey(msg)
	case m.commentTaskID != "":
		return m.handleComposerKey(msg)
	case m.showHelp:
		if key.Matches(msg, m.keymap.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	m.flash = ""
	switch {
	case key.Matches(msg, m.keymap.Back):
		return m, backCmd
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		if m.state != detailReady {
			m.state = detailLoading
			m.err = nil
		}
		m.busy = busyRefresh
		return m, tea.Batch(m.spinner.Tick, m.fetch(gql.NetworkOnly))
	case key.Matches(msg, m.keymap.Browse):
		return m, m.deps.openURLCmd(m.mount, m.deps.ProjectURL(m.projectID))
	}

	if m.state != detailReady {
		return m, nil
	}

	task, hasTask := m.selectedTask()
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
			m.follow = true
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.project.Tasks)-1 {
			m.cursor++
			m.follow = true
		}
	case key.Matches(msg, m.keymap.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keymap.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keymap.Status):
		if !hasTask || m.busy != "" {
			return m, nil
		}
		m.busy = "Updating status"
		return m, tea.Batch(m.spinner.Tick, m.updateStatus(task.ID, task.Status.Next()))
	case key.Matches(msg, m.keymap.NewTask):
		m.taskFormOpen = true
		m.taskFormErr = ""
		cmd := m.taskForm.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Comment):
		if !hasTask {
			return m, nil
		}
		cmd := m.openComposer(task.ID)
		return m, cmd
	case key.Matches(msg, m.keymap.DeleteTask):
		if hasTask {
			m.confirm = confirmDeleteTask
			m.confirmTaskID = task.ID
		}
	case key.Matches(msg, m.keymap.DeleteProject):
		m.confirm = confirmDeleteProject
	}
	return m, nil
}

func (m DetailModel) handleConfirmKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		kind, taskID := m.confirm, m.confirmTaskID
		m.confirm, m.confirmTaskID = confirmNone, ""
		switch kind {
		case confirmDeleteTask:
			m.busy = "Deleting task"
			return m, tea.Batch(m.spinner.Tick, m.deleteTask(taskID))
		case confirmDeleteProject:
			m.busy = "Deleting project"
			return m, tea.Batch(m.spinner.Tick, m.deleteProject())
		}
	case key.Matches(msg, m.keymap.Cancel):
		m.confirm, m.confirmTaskID = confirmNone, ""
	}
	return m, nil
}

func (m DetailModel) handleTaskFormKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.taskForm.keymap.Cancel):
		m.taskFormOpen = false
		m.taskForm.Blur()
		return m, nil
	case key.Matches(msg, m.taskForm.keymap.Submit):
		if m.taskSubmitting {
			return m, nil
		}
		in, err := taskInput(m.taskForm, m.projectID)
		if err != nil {
			m.taskFormErr = gql.UserMessage(err)
			return m, nil
		}
		m.taskSubmitting = true
		m.taskFormErr = ""
		return m, tea.Batch(m.spinner.Tick, m.createTask(in))
	}

	var cmd tea.Cmd
	m.taskForm, cmd = m.taskForm.Update(msg)
	return m, cmd
}

func (m DetailModel) handleComposerKey(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// The draft stays in m.drafts for when the composer reopens.
		m.closeComposer()
		return m, nil
	case "ctrl+s":
		return m.submitComment()
	case "tab", "shift+tab":
		m.authorFocused = !m.authorFocused
		if m.authorFocused {
			m.composer.Blur()
			cmd := m.author.Focus()
			return m, cmd
		}
		m.author.Blur()
		cmd := m.composer.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.authorFocused {
		m.author, cmd = m.author.Update(msg)
		return m, cmd
	}
	m.composer, cmd = m.composer.Update(msg)
	if v := m.composer.Value(); v != "" {
		m.drafts[m.commentTaskID] = v
	} else {
		delete(m.drafts, m.commentTaskID)
	}
	return m, cmd
}

// submitComment posts the open draft. An empty or whitespace-only draft
// does nothing.
func (m DetailModel) submitComment() (DetailModel, tea.Cmd) {
	content := strings.TrimSpace(m.composer.Value())
	if content == "" || m.commentSubmitting {
		return m, nil
	}
	m.commentSubmitting = true
	m.commentErr = ""
	in := domain.NewComment{
		TaskID:      m.commentTaskID,
		Content:     content,
		AuthorEmail: strings.TrimSpace(m.author.Value()),
	}
	return m, tea.Batch(m.spinner.Tick, m.addComment(in))
}

func (m *DetailModel) openComposer(taskID string) tea.Cmd {
	m.commentTaskID = taskID
	m.commentErr = ""
	m.authorFocused = false
	m.composer.Reset()
	m.composer.SetValue(m.drafts[taskID])
	m.author.Blur()
	return m.composer.Focus()
}

func (m *DetailModel) closeComposer() {
	m.commentTaskID = ""
	m.authorFocused = false
	m.commentErr = ""
	m.composer.Blur()
	m.author.Blur()
}

// setProject shows p and drops local state that refers to tasks it no
// longer has.
func (m *DetailModel) setProject(p domain.Project) {
	m.state = detailReady
	m.err = nil
	m.project = p

	present := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		present[t.ID] = true
	}
	for id := range m.drafts {
		if !present[id] {
			delete(m.drafts, id)
		}
	}
	if m.commentTaskID != "" && !present[m.commentTaskID] {
		m.closeComposer()
	}
	if m.confirm == confirmDeleteTask && !present[m.confirmTaskID] {
		m.confirm, m.confirmTaskID = confirmNone, ""
	}

	if m.cursor >= len(p.Tasks) {
		m.cursor = len(p.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DetailModel) reloadFromCache() {
	p, cached := m.deps.Gateway.CachedProjectDetail(m.projectID)
	switch {
	case cached && p != nil:
		m.setProject(*p)
	case cached:
		m.state = detailNotFound
	}
}

func (m *DetailModel) setFlash(text string, err error) {
	if err != nil {
		m.flash, m.flashErr = gql.UserMessage(err), true
		return
	}
	m.flash, m.flashErr = text, false
}

func (m DetailModel) selectedTask() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.project.Tasks) {
		return domain.Task{}, false
	}
	return m.project.Tasks[m.cursor], true
}

func (m DetailModel) inFlight() bool {
	return m.state == detailLoading || m.busy != "" || m.taskSubmitting || m.commentSubmitting
}

// busyRefresh labels a manual refresh.
const busyRefresh = "Refreshing"

// View renders the detail view in its current state.
func (m DetailModel) View() string {
	title := "Project"
	status := ""
	if m.inFlight() {
		label := m.busy
		if label == "" {
			label = "Working"
		}
		status = m.spinner.View() + " " + label
	}

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(m.width)
	case m.state == detailLoading:
		status = ""
		body = m.spinner.View() + " Loading project..."
	case m.state == detailError:
		body = ErrorStyle.Render(gql.UserMessage(m.err)) + "\n\n" +
			dimStyle.Render("Press r to retry or esc to go back.")
	case m.state == detailNotFound:
		body = ErrorStyle.Render("Project not found") + "\n\n" +
			dimStyle.Render("It may have been deleted. Press esc to go back.")
	default:
		title = m.project.Name
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderSummary(),
			m.renderTasksHeader(),
			m.viewport.View(),
			m.renderBottom(),
		)
	}

	left := ""
	if m.flash != "" {
		if m.flashErr {
			left = ErrorStyle.Render("✗ " + m.flash)
		} else {
			left = SuccessStyle.Render("✓ " + m.flash)
		}
	}
	footer := footerLine(left, m.help.Short(m.width/2), m.width)

	return renderLayout(title, status, body, footer, m.width, m.height)
}

// renderSummary renders the project's badge, progress, due date and
// description.
func (m DetailModel) renderSummary() string {
	p := m.project
	progress := derive.ProjectProgress(p)

	var b strings.Builder
	b.WriteString(statusBadge(string(p.Status)))
	b.WriteString(" ")
	b.WriteString(progressBar(progress.Percent, progressBarWidth))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d tasks done (%d%%)", progress.Done, progress.Total, progress.Percent)))
	if due := dueLabel(p.DueDate, derive.ProjectDueUrgency(p, m.deps.today())); due != "" {
		b.WriteString(labelStyle.Render("  Due: "))
		b.WriteString(due)
	}
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(wordwrap.String(p.Description, m.width-2)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m DetailModel) renderTasksHeader() string {
	header := labelStyle.Render(fmt.Sprintf("Tasks (%d)", len(m.project.Tasks)))
	if m.viewport.TotalLineCount() > m.viewport.Height {
		header += dimStyle.Render(fmt.Sprintf("  %d%%", int(m.viewport.ScrollPercent()*100)))
	}
	return header
}

// renderBottom renders whichever form or prompt is open.
func (m DetailModel) renderBottom() string {
	switch {
	case m.confirm == confirmDeleteTask:
		name := m.confirmTaskID
		for _, t := range m.project.Tasks {
			if t.ID == m.confirmTaskID {
				name = t.Title
			}
		}
		return WarningStyle.Render(fmt.Sprintf("Delete task %q? [y]es [n]o", name))
	case m.confirm == confirmDeleteProject:
		return WarningStyle.Render(fmt.Sprintf("Delete project %q and all its tasks? [y]es [n]o", m.project.Name))
	case m.taskFormOpen:
		return m.taskForm.View(m.width, m.taskFormErr, m.taskSubmitting)
	case m.commentTaskID != "":
		return m.renderComposer()
	}
	return ""
}

func (m DetailModel) renderComposer() string {
	title := m.commentTaskID
	for _, t := range m.project.Tasks {
		if t.ID == m.commentTaskID {
			title = t.Title
		}
	}

	var b strings.Builder
	b.WriteString(PromptStyle.Render(fmt.Sprintf("Comment on %q", title)))
	b.WriteString("\n")
	b.WriteString(m.composer.View())
	b.WriteString("\n")
	authorLabel := labelStyle.Render("Author ")
	if m.authorFocused {
		authorLabel = SelectedItemStyle.Render("Author ")
	}
	b.WriteString(authorLabel + m.author.View())
	b.WriteString("\n")
	switch {
	case m.commentSubmitting:
		b.WriteString(dimStyle.Render("Posting..."))
	case m.commentErr != "":
		b.WriteString(ErrorStyle.Render("✗ " + m.commentErr))
	default:
		b.WriteString(dimStyle.Render("[ctrl+s]post [tab]author [esc]close, draft is kept"))
	}
	return formBorderStyle.Width(m.width - formBorderStyle.GetHorizontalFrameSize()).Render(b.String())
}

// renderTasks renders every task card and records where each one starts.
func (m DetailModel) renderTasks(width int) (string, []int) {
	if len(m.project.Tasks) == 0 {
		return dimStyle.Render("No tasks yet. Press t to add one."), nil
	}

	today, now := m.deps.today(), m.deps.Now()
	cards := make([]string, len(m.project.Tasks))
	offsets := make([]int, len(m.project.Tasks))
	line := 0
	for i, t := range m.project.Tasks {
		cards[i] = renderTaskCard(t, today, now, width, i == m.cursor, m.drafts[t.ID])
		offsets[i] = line
		line += lipgloss.Height(cards[i])
	}
	return strings.Join(cards, "\n"), offsets
}

// layout sizes the viewport to the space left by the summary and the open
// form, refreshes its content, and scrolls the selection into view.
func (m *DetailModel) layout() {
	m.composer.SetWidth(m.width - formBorderStyle.GetHorizontalFrameSize() - 2)
	m.author.Width = m.width - 20

	if m.state != detailReady {
		return
	}

	used := 2 + 1 // Title bar with gap, footer
	used += lipgloss.Height(m.renderSummary())
	used += 1 // Tasks header
	if bottom := m.renderBottom(); bottom != "" {
		used += lipgloss.Height(bottom)
	}
	h := m.height - used
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h

	content, offsets := m.renderTasks(m.width)
	m.taskOffsets = offsets
	m.viewport.SetContent(content)

	if m.follow && m.cursor < len(offsets) {
		start := offsets[m.cursor]
		end := m.viewport.TotalLineCount()
		if m.cursor+1 < len(offsets) {
			end = offsets[m.cursor+1]
		}
		switch {
		case start < m.viewport.YOffset:
			m.viewport.SetYOffset(start)
		case end > m.viewport.YOffset+m.viewport.Height:
			offset := end - m.viewport.Height
			if offset > start {
				offset = start
			}
			m.viewport.SetYOffset(offset)
		}
	}
	m.follow = false
}

func (m DetailModel) fetch(policy gql.FetchPolicy) tea.Cmd {
	gw, ctx, mount, id := m.deps.Gateway, m.ctx, m.mount, m.projectID
	return func() tea.Msg {
		p, err := gw.ProjectDetail(ctx, id, policy)
		return detailLoadedMsg{mounted: mounted{mount}, project: p, err: err}
	}
}

// refetch reloads the detail after a mutation has been handled so fields
// the mutation does not return are current too.
func (m DetailModel) refetch() tea.Cmd {
	gw, ctx, mount, id := m.deps.Gateway, m.ctx, m.mount, m.projectID
	return func() tea.Msg {
		if err := gw.Refetch(ctx, store.ProjectDetailQuery(id)); err != nil {
			return detailRefetchedMsg{mounted: mounted{mount}, err: err}
		}
		p, _ := gw.CachedProjectDetail(id)
		return detailRefetchedMsg{mounted: mounted{mount}, project: p}
	}
}

func (m DetailModel) createTask(in domain.NewTask) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		t, err := gw.CreateTask(ctx, in)
		return taskCreatedMsg{mounted: mounted{mount}, task: t, err: err}
	}
}

func (m DetailModel) updateStatus(taskID string, status domain.TaskStatus) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		got, err := gw.UpdateTaskStatus(ctx, taskID, status)
		return statusChangedMsg{mounted: mounted{mount}, taskID: taskID, status: got, err: err}
	}
}

func (m DetailModel) addComment(in domain.NewComment) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		c, err := gw.AddTaskComment(ctx, in)
		return commentAddedMsg{mounted: mounted{mount}, taskID: in.TaskID, comment: c, err: err}
	}
}

func (m DetailModel) deleteTask(taskID string) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		err := gw.DeleteTask(ctx, taskID)
		return taskDeletedMsg{mounted: mounted{mount}, taskID: taskID, err: err}
	}
}

func (m DetailModel) deleteProject() tea.Cmd {
	gw, ctx, mount, id := m.deps.Gateway, m.ctx, m.mount, m.projectID
	return func() tea.Msg {
		err := gw.DeleteProject(ctx, id, gql.Invalidate(store.ProjectsQuery()))
		return projectDeletedMsg{mounted: mounted{mount}, err: err}
	}
}

// Message types for detail view
type (
	detailLoadedMsg struct {
		mounted
		project domain.Project
		err     error
	}
	// detailRefetchedMsg carries a follow-up refetch. project is nil when
	// the project no longer exists.
	detailRefetchedMsg struct {
		mounted
		project *domain.Project
		err     error
	}
	taskCreatedMsg struct {
		mounted
		task domain.Task
		err  error
	}
	statusChangedMsg struct {
		mounted
		taskID string
		status domain.TaskStatus
		err    error
	}
	commentAddedMsg struct {
		mounted
		taskID  string
		comment domain.Comment
		err     error
	}
	taskDeletedMsg struct {
		mounted
		taskID string
		err    error
	}
	projectDeletedMsg struct {
		mounted
		err error
	}
)
