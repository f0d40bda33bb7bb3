package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/route"
)

// NotFoundModel is shown for paths that match no view.
type NotFoundModel struct {
	path   string
	width  int
	height int
}

// NewNotFoundModel creates the fallback view for path.
func NewNotFoundModel(path string) NotFoundModel {
	return NotFoundModel{path: path}
}

// Init initializes the model.
func (m NotFoundModel) Init() tea.Cmd { return nil }

// Update handles messages.
func (m NotFoundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, navigateCmd(route.Projects, true)
		case "esc", "backspace":
			return m, backCmd
		case "q":
			return m, func() tea.Msg { return QuitMsg{} }
		}
	}
	return m, nil
}

// View renders the model.
func (m NotFoundModel) View() string {
	body := ErrorStyle.Render("404: nothing at "+m.path) + "\n\n" +
		NormalItemStyle.Render("Press enter to go to the project list.")
	footer := HelpStyle.Render("[enter]projects [esc]back [q]quit")
	return renderLayout("pmboard", "", body, footer, m.width, m.height)
}
