package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// OpenProjectMsg asks the root model to open a project's detail view.
type OpenProjectMsg struct {
	ProjectID string
}

// upcomingLimit caps the tasks shown in the upcoming panel.
const upcomingLimit = 5

// Model is the home dashboard: stat cards, recent projects, upcoming
// tasks, and quick notes.
type Model struct {
	store     *state.Store
	cursor    int
	noteInput textinput.Model
	noteFocus bool
	width     int
	height    int
}

// New creates the home dashboard model.
func New(s *state.Store, width, height int) Model {
	ni := textinput.New()
	ni.Placeholder = "Jot down a quick note..."
	ni.Prompt = "+ "
	ni.Width = 48

	return Model{
		store:     s,
		noteInput: ni,
		width:     width,
		height:    height,
	}
}

// EditableFocused reports whether the inline note input has focus.
func (m Model) EditableFocused() bool {
	return m.noteFocus
}

// Update handles messages for the home dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.noteFocus {
		switch key.String() {
		case "enter":
			text := strings.TrimSpace(m.noteInput.Value())
			if text != "" {
				m.store.AddNote(text)
			}
			m.noteInput.Reset()
			m.noteInput.Blur()
			m.noteFocus = false
			return m, nil
		case "esc":
			m.noteInput.Reset()
			m.noteInput.Blur()
			m.noteFocus = false
			return m, nil
		}
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}

	tasks := m.upcoming()
	switch key.String() {
	case "j", "down":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		if m.cursor < len(tasks) {
			m.store.ToggleTask(tasks[m.cursor].ID)
		}
	case "i":
		m.noteFocus = true
		return m, m.noteInput.Focus()
	case "1", "2", "3":
		recents := m.recent()
		idx := int(key.String()[0] - '1')
		if idx < len(recents) {
			id := recents[idx].ID
			return m, func() tea.Msg { return OpenProjectMsg{ProjectID: id} }
		}
	}
	return m, nil
}

// upcoming returns the uncompleted tasks shown on the dashboard,
// capped at five.
func (m Model) upcoming() []model.Task {
	snap := m.store.Snapshot()
	var out []model.Task
	for _, t := range snap.Tasks {
		if t.Completed {
			continue
		}
		out = append(out, t)
		if len(out) == upcomingLimit {
			break
		}
	}
	return out
}

// recent returns the three most recent projects.
func (m Model) recent() []model.Project {
	snap := m.store.Snapshot()
	if len(snap.Projects) > 3 {
		return snap.Projects[:3]
	}
	return snap.Projects
}

// View renders the home dashboard.
func (m Model) View() string {
	snap := m.store.Snapshot()

	var b strings.Builder

	dateStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	greet := fmt.Sprintf("Welcome back, %s", snap.Profile.Name)
	if snap.Profile.Name == "" {
		greet = "Welcome back"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(greet))
	b.WriteString("  " + dateStyle.Render(time.Now().Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatCards(snap))
	b.WriteString("\n\n")

	left := m.renderRecentProjects(snap)
	middle := m.renderUpcomingTasks()
	right := m.renderQuickNotes(snap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", middle, " ", right))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderStatCards(snap state.Snapshot) string {
	active, completed := 0, 0
	for _, p := range snap.Projects {
		switch p.Status {
		case model.StatusActive:
			active++
		case model.StatusCompleted:
			completed++
		}
	}
	due := 0
	for _, t := range snap.Tasks {
		if !t.Completed {
			due++
		}
	}

	card := func(label string, value int, color lipgloss.AdaptiveColor) string {
		num := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%d", value))
		return theme.CardStyle.Render(num + " " + label)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("Active Projects", active, theme.ColorBlue), " ",
		card("Tasks Due Soon", due, theme.ColorYellow), " ",
		card("Unread Alerts", snap.UnreadCount(), theme.ColorRed), " ",
		card("Completed", completed, theme.ColorGreen),
	)
}

func (m Model) renderRecentProjects(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent Projects") + "\n\n")

	recents := m.recent()
	if len(recents) == 0 {
		b.WriteString(theme.HelpStyle.Render("No projects yet."))
	}
	for i, p := range recents {
		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, p.Title,
			theme.StatusStyle(p.Status).Render(string(p.Status))))
		b.WriteString(theme.HelpStyle.Render("   "+p.Timestamp) + "\n")
	}
	b.WriteString("\n" + theme.HelpStyle.Render("1-3 open project"))

	return theme.CardStyle.Width(m.columnWidth()).Render(b.String())
}

func (m Model) renderUpcomingTasks() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Upcoming Tasks") + "\n\n")

	tasks := m.upcoming()
	if len(tasks) == 0 {
		b.WriteString(theme.HelpStyle.Render("All caught up!"))
	}
	for i, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s)", check, t.Text, t.DueDate)
		if i == m.cursor && !m.noteFocus {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + theme.HelpStyle.Render("j/k move · enter toggle"))

	return theme.CardStyle.Width(m.columnWidth()).Render(b.String())
}

func (m Model) renderQuickNotes(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Quick Notes") + "\n\n")
	b.WriteString(m.noteInput.View() + "\n\n")

	for _, n := range snap.Notes {
		b.WriteString("• " + n.Text + "\n")
		b.WriteString(theme.HelpStyle.Render("  "+n.Timestamp) + "\n")
	}
	if !m.noteFocus {
		b.WriteString("\n" + theme.HelpStyle.Render("i write a note"))
	}

	return theme.CardStyle.Width(m.columnWidth()).Render(b.String())
}

func (m Model) columnWidth() int {
	w := (m.width - 12) / 3
	if w < 28 {
		w = 28
	}
	return w
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
