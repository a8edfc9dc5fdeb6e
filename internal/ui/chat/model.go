package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/learnio/learnio/internal/ai"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/speech"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// replyMsg carries a completed assistant reply back into the view.
type replyMsg struct {
	text string
	lang model.Language
}

// transcriptMsg carries the outcome of a voice input session.
type transcriptMsg struct {
	result speech.Result
}

// playbackDoneMsg reports that read-aloud playback finished.
type playbackDoneMsg struct {
	err error
}

// Model is the assistant chat page: a session transcript, text and
// voice input, per-message read-aloud, copy, and language selection.
type Model struct {
	store      *state.Store
	client     *ai.Client
	recognizer *speech.Recognizer
	synth      *speech.Synthesizer

	viewport viewport.Model
	input    textinput.Model
	loading  bool

	// browseIdx is the message cursor used while the input is blurred.
	browseIdx int

	width  int
	height int
}

// New creates the chat page model.
func New(
	s *state.Store,
	client *ai.Client,
	recognizer *speech.Recognizer,
	synth *speech.Synthesizer,
	width, height int,
) Model {
	vp := viewport.New(width-4, height-6)

	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.Prompt = "> "
	ti.Width = width - 8

	return Model{
		store:      s,
		client:     client,
		recognizer: recognizer,
		synth:      synth,
		viewport:   vp,
		input:      ti,
		width:      width,
		height:     height,
	}
}

// Focus puts the cursor in the chat input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// EditableFocused reports whether the chat input has focus.
func (m Model) EditableFocused() bool {
	return m.input.Focused()
}

// Update handles messages for the chat page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.loading = false
		m.store.AppendSessionMessage(model.ChatMessage{
			ID:     uuid.NewString(),
			Sender: model.SenderAI,
			Text:   msg.text,
			Lang:   msg.lang,
		})
		m.viewport.GotoBottom()
		return m, nil

	case transcriptMsg:
		if msg.result.Err != nil {
			if !errors.Is(msg.result.Err, context.Canceled) {
				m.store.ShowToast("Voice input failed. Please try again.", model.ToastError)
			}
			return m, nil
		}
		m.input.SetValue(msg.result.Transcript)
		return m, nil

	case playbackDoneMsg:
		if msg.err != nil {
			m.store.ShowToast(speech.UserMessage(msg.err), model.ToastError)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		return m.newChat()
	case "ctrl+l":
		m.toggleLanguage()
		return m, nil
	case "ctrl+v":
		return m.startVoiceInput()
	case "ctrl+x":
		m.synth.Stop()
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			return m.send()
		case "esc":
			m.input.Blur()
			msgs := m.store.Snapshot().SessionMessages
			if len(msgs) > 0 {
				m.browseIdx = len(msgs) - 1
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Browse mode: the cursor walks the transcript.
	msgs := m.store.Snapshot().SessionMessages
	switch msg.String() {
	case "j", "down":
		if m.browseIdx < len(msgs)-1 {
			m.browseIdx++
		}
	case "k", "up":
		if m.browseIdx > 0 {
			m.browseIdx--
		}
	case "p":
		return m.playPause(msgs)
	case "y":
		if m.browseIdx < len(msgs) {
			text := speech.StripSubtitles(msgs[m.browseIdx].Text)
			if err := clipboard.WriteAll(text); err == nil {
				m.store.ShowToast("Answer copied to clipboard!", model.ToastSuccess)
			}
		}
	case "i", "enter":
		return m, m.input.Focus()
	}
	return m, nil
}

// send submits the typed prompt to the assistant.
func (m Model) send() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.loading {
		return m, nil
	}

	lang := m.store.Snapshot().Language
	m.store.AppendSessionMessage(model.ChatMessage{
		ID:     uuid.NewString(),
		Sender: model.SenderUser,
		Text:   text,
		Lang:   lang,
	})
	m.input.Reset()
	m.loading = true

	client := m.client
	return m, func() tea.Msg {
		reply := client.GenerateResponse(context.Background(), text, lang)
		return replyMsg{text: reply, lang: lang}
	}
}

// newChat clears the session and stops any playback.
func (m Model) newChat() (Model, tea.Cmd) {
	m.synth.Stop()
	m.recognizer.Stop()
	m.store.ClearSession()
	m.input.Reset()
	m.loading = false
	m.browseIdx = 0
	return m, m.input.Focus()
}

func (m *Model) toggleLanguage() {
	if m.store.Snapshot().Language == model.LanguageEnglish {
		m.store.SetLanguage(model.LanguageTamil)
	} else {
		m.store.SetLanguage(model.LanguageEnglish)
	}
}

// startVoiceInput begins (or cancels) a recognition session for the
// current language.
func (m Model) startVoiceInput() (Model, tea.Cmd) {
	if m.recognizer.Listening() {
		m.recognizer.Stop()
		return m, nil
	}

	lang := m.store.Snapshot().Language
	ch, err := m.recognizer.Start(lang.Locale())
	if err != nil {
		if errors.Is(err, speech.ErrUnsupported) {
			m.store.ShowToast("Sorry, voice recognition is not supported on this system.", model.ToastError)
		} else {
			m.store.ShowToast(speech.UserMessage(err), model.ToastError)
		}
		return m, nil
	}

	return m, func() tea.Msg {
		return transcriptMsg{result: <-ch}
	}
}

// playPause starts reading the selected message aloud, or toggles
// pause when that message is already playing.
func (m Model) playPause(msgs []model.ChatMessage) (Model, tea.Cmd) {
	if m.browseIdx >= len(msgs) {
		return m, nil
	}
	target := msgs[m.browseIdx]

	speakingID, paused := m.synth.SpeakingID()
	if speakingID == target.ID {
		var err error
		if paused {
			err = m.synth.Resume()
		} else {
			err = m.synth.Pause()
		}
		if err != nil {
			m.store.ShowToast(speech.UserMessage(err), model.ToastError)
		}
		return m, nil
	}

	lang := target.Lang
	if lang == "" {
		lang = m.store.Snapshot().Language
	}

	done, err := m.synth.Speak(target.ID, target.Text, lang)
	if err != nil {
		var se *speech.Error
		if errors.As(err, &se) && se.Code == speech.CodeVoiceUnavailable {
			m.store.ShowToast(
				lang.DisplayName()+" voice is not available on this system.",
				model.ToastError,
			)
		} else if errors.Is(err, speech.ErrUnsupported) {
			m.store.ShowToast("Sorry, text-to-speech is not supported on this system.", model.ToastError)
		} else {
			m.store.ShowToast(speech.UserMessage(err), model.ToastError)
		}
		return m, nil
	}

	return m, func() tea.Msg {
		return playbackDoneMsg{err: <-done}
	}
}

// View renders the chat page.
func (m Model) View() string {
	snap := m.store.Snapshot()

	var b strings.Builder

	langLabel := snap.Language.DisplayName()
	title := lipgloss.NewStyle().Bold(true).Render("Chat")
	b.WriteString(title + "  " + theme.HelpStyle.Render("language: "+langLabel))
	if m.recognizer.Listening() {
		b.WriteString("  " + lipgloss.NewStyle().
			Foreground(theme.ColorRed).Render("● listening"))
	}
	b.WriteString("\n\n")

	var chat strings.Builder
	if len(snap.SessionMessages) == 0 && !m.loading {
		chat.WriteString("How can I help you today?\n\n")
		chat.WriteString(theme.HelpStyle.Render(
			"ctrl+l switches between English and Tamil · ctrl+v speaks your question"))
	}

	speakingID, paused := m.synth.SpeakingID()
	for i, msg := range snap.SessionMessages {
		marker := "  "
		if !m.input.Focused() && i == m.browseIdx {
			marker = "> "
		}
		if msg.Sender == model.SenderUser {
			chat.WriteString(marker + theme.UserBubbleStyle.Render("You: "+msg.Text) + "\n")
			continue
		}

		body := msg.Text
		if msg.ID == speakingID {
			label := "🔊 playing"
			if paused {
				label = "⏸ paused"
			}
			body += "\n" + theme.HelpStyle.Render(label)
		}
		chat.WriteString(marker + theme.AIBubbleStyle.
			Width(m.width-10).
			Render(body) + "\n")
	}
	if m.loading {
		chat.WriteString(theme.HelpStyle.Render("Thinking...") + "\n")
	}
	m.viewport.SetContent(chat.String())
	b.WriteString(m.viewport.View() + "\n")

	b.WriteString(m.input.View() + "\n")
	if m.input.Focused() {
		b.WriteString(theme.HelpStyle.Render(
			"enter send · esc browse messages · ctrl+v voice · ctrl+l language · ctrl+n new chat"))
	} else {
		b.WriteString(theme.HelpStyle.Render(
			"j/k move · p play/pause · y copy · ctrl+x stop audio · i type"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the chat page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 6
	m.input.Width = width - 8
}
