package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/learnio/learnio/internal/ai"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// ExportRequestedMsg asks the root model to open the export chooser
// for the active project.
type ExportRequestedMsg struct{}

// replyMsg carries a completed assistant reply back into the view.
type replyMsg struct {
	projectID string
	text      string
	lang      model.Language
}

// Model is the project detail view: metadata, the per-project chat
// with the assistant, and the export trigger.
type Model struct {
	store    *state.Store
	client   *ai.Client
	viewport viewport.Model
	input    textinput.Model
	loading  bool
	width    int
	height   int
}

// New creates the project detail model.
func New(s *state.Store, client *ai.Client, width, height int) Model {
	vp := viewport.New(width-4, height-8)

	ti := textinput.New()
	ti.Placeholder = "Ask about this project..."
	ti.Prompt = "> "
	ti.Width = width - 8

	return Model{
		store:    s,
		client:   client,
		viewport: vp,
		input:    ti,
		width:    width,
		height:   height,
	}
}

// Focus puts the cursor in the chat input when the view opens.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// EditableFocused reports whether the chat input has focus.
func (m Model) EditableFocused() bool {
	return m.input.Focused()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.loading = false
		m.store.AppendChatMessage(msg.projectID, model.ChatMessage{
			ID:     uuid.NewString(),
			Sender: model.SenderAI,
			Text:   msg.text,
			Lang:   msg.lang,
		})
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		project, ok := m.store.Snapshot().ActiveProject()
		if !ok {
			if msg.String() == "esc" {
				m.store.ClearActiveProject()
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.input.Blur()
			m.store.ClearActiveProject()
			return m, nil
		case "enter":
			return m.send(project)
		case "ctrl+s":
			return m.summarize(project)
		case "ctrl+e":
			return m, func() tea.Msg { return ExportRequestedMsg{} }
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// send submits the typed prompt to the assistant.
func (m Model) send(project model.Project) (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.loading {
		return m, nil
	}

	lang := m.store.Snapshot().Language

	m.store.AppendChatMessage(project.ID, model.ChatMessage{
		ID:     uuid.NewString(),
		Sender: model.SenderUser,
		Text:   text,
		Lang:   lang,
	})
	m.input.Reset()
	m.loading = true

	client := m.client
	projectID := project.ID
	return m, func() tea.Msg {
		reply := client.GenerateResponse(context.Background(), text, lang)
		return replyMsg{projectID: projectID, text: reply, lang: lang}
	}
}

// summarize condenses the project chat (or just the description when
// the chat is empty) into key points, posted into the chat as a
// summary reply.
func (m Model) summarize(project model.Project) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	var sb strings.Builder
	sb.WriteString(project.Title + ": " + project.Description + "\n")
	for _, msg := range project.ChatHistory {
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Sender, msg.Text))
	}

	m.loading = true
	lang := m.store.Snapshot().Language
	client := m.client
	projectID := project.ID
	text := sb.String()
	return m, func() tea.Msg {
		summary := client.Summarize(context.Background(), text)
		return replyMsg{
			projectID: projectID,
			text:      "Project Summary:\n" + summary,
			lang:      lang,
		}
	}
}

// View renders the detail view.
func (m Model) View() string {
	project, ok := m.store.Snapshot().ActiveProject()
	if !ok {
		return theme.HelpStyle.Render("This project is no longer available. Press esc to go back.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(project.Title))
	b.WriteString("  " + theme.CategoryStyle(project.Category).Render(string(project.Category)))
	b.WriteString(theme.StatusStyle(project.Status).Render(string(project.Status)))
	b.WriteString(theme.PriorityStyle(project.Priority).Render(string(project.Priority)))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(project.Description) + "\n")
	if project.Deadline != "" {
		b.WriteString(theme.HelpStyle.Render("Deadline: "+project.Deadline) + "\n")
	}
	b.WriteString("\n")

	var chat strings.Builder
	if len(project.ChatHistory) == 0 {
		chat.WriteString(theme.HelpStyle.Render("Ask the assistant anything about this project."))
	}
	for _, msg := range project.ChatHistory {
		if msg.Sender == model.SenderUser {
			chat.WriteString(theme.UserBubbleStyle.Render("You: "+msg.Text) + "\n")
		} else {
			chat.WriteString(theme.AIBubbleStyle.
				Width(m.width-8).
				Render(msg.Text) + "\n")
		}
	}
	if m.loading {
		chat.WriteString(theme.HelpStyle.Render("Thinking...") + "\n")
	}
	m.viewport.SetContent(chat.String())
	b.WriteString(m.viewport.View() + "\n")

	b.WriteString(m.input.View() + "\n")
	b.WriteString(theme.HelpStyle.Render(
		"enter send · ctrl+s summarize · ctrl+e export · esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 8
	m.input.Width = width - 8
}
