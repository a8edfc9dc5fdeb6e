package quickadd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/theme"
)

// TaskAddedMsg is dispatched when the user quick-adds a task.
type TaskAddedMsg struct {
	Text    string
	DueDate string
}

// NoteAddedMsg is dispatched when the user quick-adds a note.
type NoteAddedMsg struct {
	Text string
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

const (
	kindTask = "task"
	kindNote = "note"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	kind    string
	text    string
	dueDate string
}

// Model is the quick-add overlay: one form that creates either a task
// or a note.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a quick-add model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{kind: kindTask},
		width:  width,
		height: height,
	}
}

// Start initializes the form with empty fields.
func (m *Model) Start() tea.Cmd {
	m.fb.kind = kindTask
	m.fb.text = ""
	m.fb.dueDate = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the quick-add form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the quick-add form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Quick Add") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Task", kindTask),
					huh.NewOption("Note", kindNote),
				).
				Value(&m.fb.kind),
			huh.NewText().
				Title("Text").
				Placeholder("What's on your mind?").
				Value(&m.fb.text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Text is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Due").
				Placeholder("Tomorrow, Friday, ... (tasks only)").
				Value(&m.fb.dueDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	text := strings.TrimSpace(m.fb.text)
	if m.fb.kind == kindNote {
		return func() tea.Msg { return NoteAddedMsg{Text: text} }
	}

	due := strings.TrimSpace(m.fb.dueDate)
	if due == "" {
		due = "Soon"
	}
	return func() tea.Msg { return TaskAddedMsg{Text: text, DueDate: due} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
