package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/h0rv/pmboard/internal/route"
)

// CreateModel is the full-screen create-project container.
type CreateModel struct {
	ctx   context.Context
	deps  Deps
	mount int

	form       form
	spinner    spinner.Model
	submitting bool
	errMsg     string

	width  int
	height int
}

// NewCreateModel creates the create-project container.
func NewCreateModel(ctx context.Context, deps Deps, mount int) CreateModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	f := newProjectForm("New project")
	f.Focus()

	return CreateModel{
		ctx:     ctx,
		deps:    deps.withDefaults(),
		mount:   mount,
		form:    f,
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init starts the cursor blinking.
func (m CreateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = gql.UserMessage(msg.err)
			return m, nil
		}
		return m, navigateCmd(route.DetailPath(msg.project.ID), true)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.keymap.Cancel):
			return m, backCmd
		case key.Matches(msg, m.form.keymap.Submit):
			if m.submitting {
				return m, nil
			}
			in, err := projectInput(m.form)
			if err != nil {
				m.errMsg = gql.UserMessage(err)
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.create(in))
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the form.
func (m CreateModel) View() string {
	status := ""
	if m.submitting {
		status = m.spinner.View() + " saving"
	}
	width := m.width
	if width > 80 {
		width = 80
	}
	body := m.form.View(width, m.errMsg, m.submitting)
	footer := HelpStyle.Render("[ctrl+s]save [esc]back")
	return renderLayout("Create project", status, body, footer, m.width, m.height)
}

func (m CreateModel) create(in domain.NewProject) tea.Cmd {
	gw, ctx, mount := m.deps.Gateway, m.ctx, m.mount
	return func() tea.Msg {
		p, err := gw.CreateProject(ctx, in)
		return projectCreatedMsg{mounted: mounted{mount}, project: p, err: err}
	}
}
