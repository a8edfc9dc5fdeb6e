package search

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/ai"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// OpenProjectMsg asks the root model to open a project that was picked
// from the search results.
type OpenProjectMsg struct {
	ProjectID string
}

// answerMsg carries the assistant fallback answer for a query with no
// workspace matches.
type answerMsg struct {
	query  string
	answer string
}

type scope int

const (
	scopeAll scope = iota
	scopeProjects
	scopeChats
)

func (s scope) label() string {
	switch s {
	case scopeProjects:
		return "projects"
	case scopeChats:
		return "chats"
	default:
		return "all"
	}
}

// projectHit is a project whose title or description matched.
type projectHit struct {
	project model.Project
}

// chatHit is a chat message that matched, with its source project.
type chatHit struct {
	projectID    string
	projectTitle string
	message      model.ChatMessage
}

// Model is the search page: workspace search over projects and chat
// history, recent query history, and an assistant fallback when
// nothing matches.
type Model struct {
	store  *state.Store
	client *ai.Client

	input textinput.Model
	scope scope

	searched     string
	projectHits  []projectHit
	chatHits     []chatHit
	selectedIdx  int
	browsing     bool
	answerFor    string
	answer       string
	asking       bool
	historyIdx   int
	usingHistory bool

	width  int
	height int
}

// New creates the search page model.
func New(s *state.Store, client *ai.Client, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Search projects, chats, or ask anything..."
	ti.Prompt = "🔍 "
	ti.Width = width - 8

	return Model{
		store:  s,
		client: client,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Focus puts the cursor in the query input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// EditableFocused reports whether the query input has focus.
func (m Model) EditableFocused() bool {
	return m.input.Focused()
}

// Update handles messages for the search page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		// A newer query may have superseded this answer.
		if msg.query == m.searched {
			m.asking = false
			m.answerFor = msg.query
			m.answer = msg.answer
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+f" {
		m.scope = (m.scope + 1) % 3
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			return m.submit()
		case "esc":
			if m.hitCount() > 0 {
				m.input.Blur()
				m.browsing = true
				m.selectedIdx = 0
			}
			return m, nil
		case "down":
			// Walk recent queries while the box is empty.
			return m.historyStep(1), nil
		case "up":
			return m.historyStep(-1), nil
		case "ctrl+d":
			if err := m.store.ClearSearchHistory(); err != nil {
				m.store.ShowToast("Could not clear search history.", model.ToastError)
			}
			m.usingHistory = false
			return m, nil
		}
		m.usingHistory = false
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedIdx < m.hitCount()-1 {
			m.selectedIdx++
		}
	case "k", "up":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
	case "enter":
		return m.openSelected()
	case "i", "esc", "/":
		m.browsing = false
		return m, m.input.Focus()
	}
	return m, nil
}

// historyStep moves the selection through saved queries and copies the
// selected one into the input.
func (m Model) historyStep(delta int) Model {
	history := m.store.Snapshot().SearchHistory
	if len(history) == 0 {
		return m
	}
	if !m.usingHistory {
		m.usingHistory = true
		m.historyIdx = -1
	}
	m.historyIdx += delta
	if m.historyIdx < 0 {
		m.historyIdx = 0
	}
	if m.historyIdx >= len(history) {
		m.historyIdx = len(history) - 1
	}
	m.input.SetValue(history[m.historyIdx])
	m.input.CursorEnd()
	return m
}

// submit runs the query against the workspace and records it.
func (m Model) submit() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}

	if err := m.store.AddSearchQuery(query); err != nil {
		m.store.ShowToast("Could not save search history.", model.ToastError)
	}
	m.usingHistory = false

	m.searched = query
	m.answer = ""
	m.answerFor = ""
	m.selectedIdx = 0
	m.projectHits, m.chatHits = m.runSearch(query)

	if m.hitCount() == 0 {
		m.asking = true
		lang := m.store.Snapshot().Language
		client := m.client
		return m, func() tea.Msg {
			return answerMsg{
				query:  query,
				answer: client.GenerateResponse(context.Background(), query, lang),
			}
		}
	}

	m.asking = false
	return m, nil
}

// runSearch matches the query case-insensitively against project
// titles, descriptions, and chat messages within the current scope.
func (m Model) runSearch(query string) ([]projectHit, []chatHit) {
	needle := strings.ToLower(query)
	snap := m.store.Snapshot()

	var projects []projectHit
	var chats []chatHit
	for _, p := range snap.Projects {
		if m.scope != scopeChats {
			if strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				projects = append(projects, projectHit{project: p})
			}
		}
		if m.scope != scopeProjects {
			for _, msg := range p.ChatHistory {
				if strings.Contains(strings.ToLower(msg.Text), needle) {
					chats = append(chats, chatHit{
						projectID:    p.ID,
						projectTitle: p.Title,
						message:      msg,
					})
				}
			}
		}
	}
	return projects, chats
}

func (m Model) hitCount() int {
	return len(m.projectHits) + len(m.chatHits)
}

// openSelected navigates to the project behind the selected result.
func (m Model) openSelected() (Model, tea.Cmd) {
	var projectID string
	if m.selectedIdx < len(m.projectHits) {
		projectID = m.projectHits[m.selectedIdx].project.ID
	} else if idx := m.selectedIdx - len(m.projectHits); idx < len(m.chatHits) {
		projectID = m.chatHits[idx].projectID
	} else {
		return m, nil
	}

	id := projectID
	return m, func() tea.Msg {
		return OpenProjectMsg{ProjectID: id}
	}
}

// View renders the search page.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Search"))
	b.WriteString("  " + theme.HelpStyle.Render("scope: "+m.scope.label()+" (ctrl+f)"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View() + "\n\n")

	if m.searched == "" {
		b.WriteString(m.renderHistory())
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	if m.hitCount() == 0 {
		b.WriteString(m.renderAnswer())
	} else {
		b.WriteString(m.renderHits())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderHistory() string {
	history := m.store.Snapshot().SearchHistory
	if len(history) == 0 {
		return theme.HelpStyle.Render("Type a query and press enter.")
	}

	var b strings.Builder
	b.WriteString("Recent searches\n")
	for i, q := range history {
		marker := "  "
		if m.usingHistory && i == m.historyIdx {
			marker = "> "
		}
		b.WriteString(marker + q + "\n")
	}
	b.WriteString("\n" + theme.HelpStyle.Render("up/down reuse a query · ctrl+d clear history"))
	return b.String()
}

func (m Model) renderAnswer() string {
	if m.asking {
		return theme.HelpStyle.Render("No matches in your workspace. Asking the assistant...")
	}
	if m.answerFor != m.searched {
		return theme.HelpStyle.Render("No results found.")
	}
	return "No matches in your workspace. Here's what the assistant says:\n\n" +
		theme.AIBubbleStyle.Width(m.width-10).Render(m.answer)
}

func (m Model) renderHits() string {
	var b strings.Builder

	if len(m.projectHits) > 0 {
		b.WriteString("Projects\n")
		for i, hit := range m.projectHits {
			marker := "  "
			if m.browsing && i == m.selectedIdx {
				marker = "> "
			}
			b.WriteString(marker + hit.project.Title + "\n")
			b.WriteString(theme.HelpStyle.Render("    "+hit.project.Description) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.chatHits) > 0 {
		b.WriteString("Chats\n")
		for i, hit := range m.chatHits {
			marker := "  "
			if m.browsing && len(m.projectHits)+i == m.selectedIdx {
				marker = "> "
			}
			text := truncate(hit.message.Text, 80)
			b.WriteString(marker + text + "\n")
			b.WriteString(theme.HelpStyle.Render("    in "+hit.projectTitle) + "\n")
		}
		b.WriteString("\n")
	}

	if m.browsing {
		b.WriteString(theme.HelpStyle.Render("j/k move · enter open project · i edit query"))
	} else {
		b.WriteString(theme.HelpStyle.Render("esc browse results"))
	}
	return b.String()
}

// truncate shortens s to at most max characters, counting runes so a
// multi-byte character is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetSize updates the search page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}
