package projects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/keys"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// OpenFormMsg asks the root model to open the new-project form.
type OpenFormMsg struct{}

// statusFilter cycles through the list filter states.
type statusFilter int

const (
	filterAll statusFilter = iota
	filterActive
	filterCompleted
)

func (f statusFilter) label() string {
	switch f {
	case filterActive:
		return "Active"
	case filterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Model is the project list view: text and status filtering,
// pinned-first ordering, and per-item pin, complete, and delete
// actions.
type Model struct {
	store       *state.Store
	keys        *keys.KeyMap
	selectedIdx int
	filter      statusFilter
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates the project list model.
func New(s *state.Store, k *keys.KeyMap, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "filter projects..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		store:       s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// EditableFocused reports whether the filter input has focus.
func (m Model) EditableFocused() bool {
	return m.searchMode
}

// Update handles messages for the project list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searchMode {
		switch keyMsg.String() {
		case "enter":
			m.searchMode = false
			return m, nil
		case "esc":
			m.searchMode = false
			m.searchInput.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.selectedIdx = 0
		return m, cmd
	}

	items := m.visible()
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.selectedIdx < len(items)-1 {
			m.selectedIdx++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.selectedIdx < len(items) {
			m.store.SetActiveProject(items[m.selectedIdx].ID)
		}
	case key.Matches(keyMsg, m.keys.NewProject):
		return m, func() tea.Msg { return OpenFormMsg{} }
	case key.Matches(keyMsg, m.keys.Pin):
		if m.selectedIdx < len(items) {
			p := items[m.selectedIdx]
			p.Pinned = !p.Pinned
			m.store.UpdateProject(p)
		}
	case key.Matches(keyMsg, m.keys.Complete):
		if m.selectedIdx < len(items) {
			p := items[m.selectedIdx]
			if p.Status == model.StatusCompleted {
				p.Status = model.StatusActive
			} else {
				p.Status = model.StatusCompleted
			}
			m.store.UpdateProject(p)
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if m.selectedIdx < len(items) {
			m.store.DeleteProject(items[m.selectedIdx].ID)
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		}
	case keyMsg.String() == "/":
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	case keyMsg.String() == "f":
		m.filter = (m.filter + 1) % 3
		m.selectedIdx = 0
	}
	return m, nil
}

// visible returns the projects matching the current filters, pinned
// first within a stable order.
func (m Model) visible() []model.Project {
	snap := m.store.Snapshot()

	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	var out []model.Project
	for _, p := range snap.Projects {
		switch m.filter {
		case filterActive:
			if p.Status != model.StatusActive {
				continue
			}
		case filterCompleted:
			if p.Status != model.StatusCompleted {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pinned && !out[j].Pinned
	})
	return out
}

// View renders the project list.
func (m Model) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render("Projects")
	b.WriteString(title + "  " +
		theme.HelpStyle.Render("filter: "+m.filter.label()) + "\n\n")

	if m.searchMode || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View() + "\n\n")
	}

	items := m.visible()
	if len(items) == 0 {
		b.WriteString(theme.HelpStyle.Render("No matching projects. Press a to create one."))
	}
	for i, p := range items {
		pin := "  "
		if p.Pinned {
			pin = "📌 "
		}
		line := fmt.Sprintf("%s%s %s %s %s",
			pin,
			p.Title,
			theme.CategoryStyle(p.Category).Render(string(p.Category)),
			theme.StatusStyle(p.Status).Render(string(p.Status)),
			theme.PriorityStyle(p.Priority).Render(string(p.Priority)),
		)
		if i == m.selectedIdx && !m.searchMode {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
		b.WriteString(theme.HelpStyle.Render("    "+p.Description) + "\n")
	}

	b.WriteString("\n" + theme.HelpStyle.Render(
		"enter open · a new · p pin · x complete · d delete · / filter · f status"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
