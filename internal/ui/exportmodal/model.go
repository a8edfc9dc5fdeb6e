package exportmodal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/theme"
)

// Format selects what the export writes.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ChosenMsg is dispatched when the user picks an export format.
type ChosenMsg struct {
	Format Format
}

// CancelMsg is dispatched when the user dismisses the chooser.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	format string
}

// Model is the export format chooser overlay.
type Model struct {
	form         *huh.Form
	fb           *formBindings
	projectTitle string
	width        int
	height       int
}

// New creates an export chooser model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{format: string(FormatJSON)},
		width:  width,
		height: height,
	}
}

// Start initializes the chooser for the named project.
func (m *Model) Start(projectTitle string) tea.Cmd {
	m.projectTitle = projectTitle
	m.fb.format = string(FormatJSON)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("Project as JSON", string(FormatJSON)),
					huh.NewOption("Chat history as CSV", string(FormatCSV)),
				).
				Value(&m.fb.format),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

// Update handles messages for the chooser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		format := Format(m.fb.format)
		return m, func() tea.Msg { return ChosenMsg{Format: format} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the chooser.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Export \""+m.projectTitle+"\"") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the chooser dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
