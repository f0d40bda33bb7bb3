package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/pmboard/internal/domain"
)

// formField is either a free-text input or a fixed set of choices.
type formField struct {
	key     string
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func (f formField) isChoice() bool { return len(f.choices) > 0 }

func (f formField) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

func textField(key, label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	return formField{key: key, label: label, input: ti}
}

func choiceField(key, label string, choices []string) formField {
	return formField{key: key, label: label, input: textinput.New(), choices: choices}
}

// form is a vertical stack of fields with one focused at a time.
type form struct {
	title  string
	fields []formField
	focus  int
	keymap FormKeyMap
}

func newForm(title string, fields ...formField) form {
	return form{title: title, fields: fields, keymap: DefaultFormKeyMap()}
}

// Focus focuses the current field and returns its blink command.
func (f *form) Focus() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	if f.fields[f.focus].isChoice() {
		return nil
	}
	return f.fields[f.focus].input.Focus()
}

// Blur removes focus from every field.
func (f *form) Blur() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

// Reset clears every field and focuses the first one.
func (f *form) Reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
		f.fields[i].choice = 0
	}
	f.focus = 0
}

func (f *form) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.Focus()
}

// Value returns the trimmed value of the field named key.
func (f form) Value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(field.value())
		}
	}
	return ""
}

// SetValue prefills a text field.
func (f *form) SetValue(key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key && !f.fields[i].isChoice() {
			f.fields[i].input.SetValue(value)
		}
	}
}

// Update moves focus, cycles choices and forwards typing. Submit and
// cancel are left to the owner.
func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd
	}

	field := &f.fields[f.focus]
	switch {
	case key.Matches(keyMsg, f.keymap.Next), keyMsg.Type == tea.KeyEnter:
		cmd := f.move(1)
		return f, cmd
	case key.Matches(keyMsg, f.keymap.Prev):
		cmd := f.move(-1)
		return f, cmd
	case field.isChoice() && key.Matches(keyMsg, f.keymap.Cycle):
		delta := 1
		if keyMsg.String() == "left" {
			delta = -1
		}
		field.choice = (field.choice + delta + len(field.choices)) % len(field.choices)
		return f, nil
	case field.isChoice():
		return f, nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return f, cmd
}

// View renders the form with labels aligned in one column.
func (f form) View(width int, errMsg string, submitting bool) string {
	labelWidth := 0
	for _, field := range f.fields {
		if w := lipgloss.Width(field.label); w > labelWidth {
			labelWidth = w
		}
	}
	inputWidth := width - labelWidth - 8
	if inputWidth < 10 {
		inputWidth = 10
	}

	var b strings.Builder
	b.WriteString(PromptStyle.Render(f.title))
	b.WriteString("\n")
	for i, field := range f.fields {
		label := lipgloss.NewStyle().Width(labelWidth).Render(field.label)
		if i == f.focus {
			b.WriteString(SelectedItemStyle.Render("> ") + SelectedItemStyle.Render(label))
		} else {
			b.WriteString("  " + labelStyle.Render(label))
		}
		b.WriteString(" ")
		if field.isChoice() {
			b.WriteString(renderChoices(field, i == f.focus))
		} else {
			field.input.Width = inputWidth
			b.WriteString(field.input.View())
		}
		b.WriteString("\n")
	}

	switch {
	case submitting:
		b.WriteString(dimStyle.Render("Saving..."))
	case errMsg != "":
		b.WriteString(ErrorStyle.Render("✗ " + errMsg))
	default:
		b.WriteString(dimStyle.Render("[tab]next [←/→]option [ctrl+s]save [esc]cancel"))
	}

	return formBorderStyle.Width(width - formBorderStyle.GetHorizontalFrameSize()).Render(b.String())
}

func renderChoices(field formField, focused bool) string {
	parts := make([]string, len(field.choices))
	for i, c := range field.choices {
		label := strings.ReplaceAll(c, "_", " ")
		switch {
		case i == field.choice && focused:
			parts[i] = SelectedItemStyle.Render("[" + label + "]")
		case i == field.choice:
			parts[i] = valueStyle.Render("[" + label + "]")
		default:
			parts[i] = dimStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

// Form field keys.
const (
	fieldName        = "name"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldDue         = "due"
	fieldAssignee    = "assignee"
)

func newProjectForm(title string) form {
	statuses := make([]string, len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		statuses[i] = string(s)
	}
	return newForm(title,
		textField(fieldName, "Name", "Project name", 200),
		textField(fieldDescription, "Description", "Optional", 2000),
		choiceField(fieldStatus, "Status", statuses),
		textField(fieldDue, "Due date", "YYYY-MM-DD (optional)", 10),
	)
}

// projectInput reads and validates a project form, so a bad form never
// reaches the gateway.
func projectInput(f form) (domain.NewProject, error) {
	due, err := domain.ParseOptionalDate(f.Value(fieldDue))
	if err != nil {
		return domain.NewProject{}, &domain.ValidationError{Field: "due date", Message: "must be YYYY-MM-DD"}
	}
	in := domain.NewProject{
		Name:        f.Value(fieldName),
		Description: f.Value(fieldDescription),
		Status:      domain.ProjectStatus(f.Value(fieldStatus)),
		DueDate:     due,
	}
	if err := in.Validate(); err != nil {
		return domain.NewProject{}, err
	}
	return in, nil
}

func newTaskForm(assignee string) form {
	statuses := make([]string, len(domain.TaskStatuses))
	for i, s := range domain.TaskStatuses {
		statuses[i] = string(s)
	}
	f := newForm("New task",
		textField(fieldTitle, "Title", "Task title", 200),
		textField(fieldAssignee, "Assignee", "name@example.com", 254),
		textField(fieldDescription, "Description", "Optional", 2000),
		choiceField(fieldStatus, "Status", statuses),
		textField(fieldDue, "Due date", "YYYY-MM-DD (optional)", 10),
	)
	f.SetValue(fieldAssignee, assignee)
	return f
}

func taskInput(f form, projectID string) (domain.NewTask, error) {
	due, err := domain.ParseOptionalDate(f.Value(fieldDue))
	if err != nil {
		return domain.NewTask{}, &domain.ValidationError{Field: "due date", Message: "must be YYYY-MM-DD"}
	}
	in := domain.NewTask{
		ProjectID:     projectID,
		Title:         f.Value(fieldTitle),
		Description:   f.Value(fieldDescription),
		Status:        domain.TaskStatus(f.Value(fieldStatus)),
		AssigneeEmail: f.Value(fieldAssignee),
		DueDate:       due,
	}
	if err := in.Validate(); err != nil {
		return domain.NewTask{}, err
	}
	return in, nil
}
