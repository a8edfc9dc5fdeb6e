package app

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/learnio/learnio/internal/ai"
	"github.com/learnio/learnio/internal/credential"
	"github.com/learnio/learnio/internal/export"
	"github.com/learnio/learnio/internal/hotkeys"
	"github.com/learnio/learnio/internal/keys"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/speech"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
	"github.com/learnio/learnio/internal/ui"
	"github.com/learnio/learnio/internal/ui/chat"
	"github.com/learnio/learnio/internal/ui/detail"
	"github.com/learnio/learnio/internal/ui/exportmodal"
	"github.com/learnio/learnio/internal/ui/home"
	"github.com/learnio/learnio/internal/ui/login"
	"github.com/learnio/learnio/internal/ui/profile"
	"github.com/learnio/learnio/internal/ui/projectform"
	"github.com/learnio/learnio/internal/ui/projects"
	"github.com/learnio/learnio/internal/ui/quickadd"
	"github.com/learnio/learnio/internal/ui/search"
)

// hintDelay is how long after the welcome toast the one-time shortcut
// hint appears, so the two toasts do not overwrite each other.
const hintDelay = 4 * time.Second

// showHintMsg triggers the one-time keyboard shortcut hint toast.
type showHintMsg struct{}

// Model is the root Bubble Tea model that manages authentication,
// page routing, modals, global shortcuts, and the toast overlay.
type Model struct {
	cfg        *model.AppConfig
	store      *state.Store
	keys       *keys.KeyMap
	help       help.Model
	dispatcher *hotkeys.Dispatcher
	layout     ui.Layout
	ready      bool

	loginView    login.Model
	homeView     home.Model
	chatView     chat.Model
	projectsView projects.Model
	detailView   detail.Model
	searchView   search.Model
	profileView  profile.Model

	projectForm projectform.Model
	quickAdd    quickadd.Model
	exportModal exportmodal.Model

	notifOpen bool
	notifIdx  int
}

// New creates the root application model.
func New(
	cfg *model.AppConfig,
	s *state.Store,
	recognizer *speech.Recognizer,
	synth *speech.Synthesizer,
) Model {
	km := keys.DefaultKeyMap()
	client := loadClient(cfg)

	m := Model{
		cfg:        cfg,
		store:      s,
		keys:       km,
		help:       help.New(),
		dispatcher: hotkeys.New(),

		loginView:    login.New(80, 24),
		homeView:     home.New(s, 80, 24),
		chatView:     chat.New(s, client, recognizer, synth, 80, 24),
		projectsView: projects.New(s, km, 80, 24),
		detailView:   detail.New(s, client, 80, 24),
		searchView:   search.New(s, client, 80, 24),
		profileView:  profile.New(s, 80, 24),

		projectForm: projectform.New(80, 24),
		quickAdd:    quickadd.New(80, 24),
		exportModal: exportmodal.New(80, 24),
	}

	m.dispatcher.Register("g h", func() { s.SetPage(model.PageHome) })
	m.dispatcher.Register("g c", func() { s.SetPage(model.PageChat) })
	m.dispatcher.Register("g p", func() { s.SetPage(model.PageProjects) })
	m.dispatcher.Register("g s", func() { s.SetPage(model.PageSearch) })
	m.dispatcher.Register("mod+k", func() { s.SetPage(model.PageSearch) })
	m.dispatcher.Register("mod+shift+a", func() { s.OpenModal(state.ModalQuickAdd) })

	return m
}

// loadClient builds the completion client, pulling the API key from the
// environment or the system keyring. A client with no key still works;
// calls fail and surface the fallback reply.
func loadClient(cfg *model.AppConfig) *ai.Client {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		apiKey, _ = credential.Get("claude-api-key")
	}
	return ai.New(apiKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.MaxTokens)
}

// Init focuses the login gate and subscribes to store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loginView.Init(), m.store.WaitForChange())
}

// Update handles messages and dispatches to the active page or modal.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.homeView.SetSize(w, h)
		m.chatView.SetSize(w, h)
		m.projectsView.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.searchView.SetSize(w, h)
		m.profileView.SetSize(w, h)
		m.projectForm.SetSize(w, h)
		m.quickAdd.SetSize(w, h)
		m.exportModal.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActive(msg)

	case state.ChangedMsg:
		return m, m.store.WaitForChange()

	case login.LoggedInMsg:
		if err := m.store.Login(msg.Name, msg.Email, msg.Phone, msg.Remember); err != nil {
			m.store.ShowToast("Could not save your session.", model.ToastError)
			return m, nil
		}
		name := m.store.Snapshot().Profile.Name
		m.store.ShowToast(fmt.Sprintf("Welcome, %s 🎓", name), model.ToastSuccess)
		if !m.store.HintShown() {
			return m, tea.Tick(hintDelay, func(time.Time) tea.Msg {
				return showHintMsg{}
			})
		}
		return m, nil

	case showHintMsg:
		if !m.store.HintShown() {
			m.store.ShowToast(
				"Pro Tip: Use keyboard shortcuts like g h for Home or ctrl+k for search!",
				model.ToastInfo,
			)
			if err := m.store.MarkHintShown(); err != nil {
				return m, nil
			}
		}
		return m, nil

	case home.OpenProjectMsg:
		m.store.SetPage(model.PageProjects)
		m.store.SetActiveProject(msg.ProjectID)
		return m, m.detailView.Focus()

	case search.OpenProjectMsg:
		m.store.SetPage(model.PageProjects)
		m.store.SetActiveProject(msg.ProjectID)
		return m, m.detailView.Focus()

	case projects.OpenFormMsg:
		m.store.OpenModal(state.ModalProjectForm)
		return m, m.projectForm.Start()

	case projectform.ProjectCreatedMsg:
		m.store.CloseModal()
		m.store.AddProject(msg.Title, msg.Description, msg.Category, msg.Deadline, msg.Priority)
		return m, nil

	case projectform.CancelMsg, quickadd.CancelMsg, exportmodal.CancelMsg:
		m.store.CloseModal()
		return m, nil

	case quickadd.TaskAddedMsg:
		m.store.CloseModal()
		m.store.AddTask(msg.Text, msg.DueDate)
		return m, nil

	case quickadd.NoteAddedMsg:
		m.store.CloseModal()
		m.store.AddNote(msg.Text)
		return m, nil

	case detail.ExportRequestedMsg:
		project, ok := m.store.Snapshot().ActiveProject()
		if !ok {
			return m, nil
		}
		m.store.OpenModal(state.ModalExport)
		return m, m.exportModal.Start(project.Title)

	case exportmodal.ChosenMsg:
		m.store.CloseModal()
		m.runExport(msg.Format)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActive(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	snap := m.store.Snapshot()

	if !snap.Authenticated {
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}

	if snap.Modal != state.ModalNone {
		return m.updateActive(msg)
	}

	if m.notifOpen {
		return m.handleNotifKey(msg, snap)
	}

	editable := m.editableFocused(snap)

	if !editable {
		switch msg.String() {
		case "?":
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case "n":
			m.notifOpen = true
			m.notifIdx = 0
			return m, nil
		case "T":
			theme.Apply(m.store.ToggleTheme())
			return m, nil
		case "L":
			if snap.Language == model.LanguageEnglish {
				m.store.SetLanguage(model.LanguageTamil)
			} else {
				m.store.SetLanguage(model.LanguageEnglish)
			}
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	if m.dispatcher.Handle(keyEvent(msg), editable) {
		return m, m.focusActivePage()
	}

	return m.updateActive(msg)
}

// handleNotifKey drives the notification dropdown.
func (m Model) handleNotifKey(msg tea.KeyMsg, snap state.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.notifOpen = false
	case "j", "down":
		if m.notifIdx < len(snap.Notifications)-1 {
			m.notifIdx++
		}
	case "k", "up":
		if m.notifIdx > 0 {
			m.notifIdx--
		}
	case "m":
		if snap.UnreadCount() > 0 {
			m.store.MarkAllNotificationsRead()
		}
	case "enter":
		if m.notifIdx >= len(snap.Notifications) {
			return m, nil
		}
		n := snap.Notifications[m.notifIdx]
		m.store.MarkNotificationRead(n.ID)
		if n.Link == "" {
			return m, nil
		}
		m.notifOpen = false
		m.store.SetPage(n.Link)
		if n.Link == model.PageProjects && n.ContextID != "" {
			// The referenced project may have been deleted since.
			for _, p := range snap.Projects {
				if p.ID == n.ContextID {
					m.store.SetActiveProject(p.ID)
					return m, m.detailView.Focus()
				}
			}
		}
		return m, m.focusActivePage()
	}
	return m, nil
}

// focusActivePage gives input focus to the page that just became
// active, so a navigation shortcut lands ready to type.
func (m *Model) focusActivePage() tea.Cmd {
	snap := m.store.Snapshot()
	if snap.Modal == state.ModalQuickAdd {
		return m.quickAdd.Start()
	}
	switch snap.Page {
	case model.PageChat:
		return m.chatView.Focus()
	case model.PageSearch:
		return m.searchView.Focus()
	case model.PageProjects:
		if _, ok := snap.ActiveProject(); ok {
			return m.detailView.Focus()
		}
	}
	return nil
}

// editableFocused reports whether the active page has a text widget
// focused, which suppresses global shortcuts.
func (m Model) editableFocused(snap state.Snapshot) bool {
	switch snap.Page {
	case model.PageHome:
		return m.homeView.EditableFocused()
	case model.PageChat:
		return m.chatView.EditableFocused()
	case model.PageProjects:
		if _, ok := snap.ActiveProject(); ok {
			return m.detailView.EditableFocused()
		}
		return m.projectsView.EditableFocused()
	case model.PageSearch:
		return m.searchView.EditableFocused()
	case model.PageProfile:
		return m.profileView.EditableFocused()
	}
	return false
}

// keyEvent translates a Bubble Tea key message into a dispatcher event.
// A single uppercase letter is reported as shift plus the lowercase key.
func keyEvent(msg tea.KeyMsg) hotkeys.Event {
	s := msg.String()
	parts := strings.Split(s, "+")

	ev := hotkeys.Event{Key: parts[len(parts)-1]}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			ev.Ctrl = true
		case "shift":
			ev.Shift = true
		case "alt":
			ev.Alt = true
		}
	}

	runes := []rune(ev.Key)
	if len(runes) == 1 && unicode.IsUpper(runes[0]) {
		ev.Shift = true
		ev.Key = strings.ToLower(ev.Key)
	}
	return ev
}

// runExport writes the active project in the chosen format and reports
// the outcome as a toast.
func (m *Model) runExport(format exportmodal.Format) {
	project, ok := m.store.Snapshot().ActiveProject()
	if !ok {
		m.store.ShowToast("That project is no longer available.", model.ToastError)
		return
	}

	var path string
	var err error
	if format == exportmodal.FormatCSV {
		path, err = export.WriteChatCSV(m.cfg.Export.Dir, project)
	} else {
		path, err = export.WriteProjectJSON(m.cfg.Export.Dir, project)
	}
	if err != nil {
		m.store.ShowToast("Export failed: "+err.Error(), model.ToastError)
		return
	}
	m.store.ShowToast("Exported to "+path, model.ToastSuccess)
}

// updateActive dispatches the message to the open modal or active page.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	var cmd tea.Cmd

	if !snap.Authenticated {
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}

	switch snap.Modal {
	case state.ModalProjectForm:
		m.projectForm, cmd = m.projectForm.Update(msg)
		return m, cmd
	case state.ModalQuickAdd:
		m.quickAdd, cmd = m.quickAdd.Update(msg)
		return m, cmd
	case state.ModalExport:
		m.exportModal, cmd = m.exportModal.Update(msg)
		return m, cmd
	}

	switch snap.Page {
	case model.PageHome:
		m.homeView, cmd = m.homeView.Update(msg)
	case model.PageChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case model.PageProjects:
		if _, ok := snap.ActiveProject(); ok || snap.ActiveProjectID != "" {
			m.detailView, cmd = m.detailView.Update(msg)
		} else {
			m.projectsView, cmd = m.projectsView.Update(msg)
		}
	case model.PageSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case model.PageProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	}
	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	snap := m.store.Snapshot()

	if !snap.Authenticated {
		return m.withToast(m.loginView.View(), snap)
	}

	header := m.layout.RenderHeader(
		"Learnio.AI · "+pageTitle(snap.Page),
		m.headerRight(snap),
	)
	content := m.renderContent(snap)
	statusBar := m.layout.RenderStatusBar(m.keyHints(snap))

	return m.layout.RenderWithFrame(header, content, statusBar, m.toastLine(snap))
}

// withToast appends the active toast line, if any, under the view.
// Used for the unframed login screen.
func (m Model) withToast(view string, snap state.Snapshot) string {
	line := m.toastLine(snap)
	if line == "" {
		return view
	}
	return view + "\n" + line
}

func (m Model) toastLine(snap state.Snapshot) string {
	if snap.Toast == nil {
		return ""
	}
	return theme.ToastStyle(snap.Toast.Type).Render(snap.Toast.Message)
}

func (m Model) renderContent(snap state.Snapshot) string {
	switch snap.Modal {
	case state.ModalProjectForm:
		return m.projectForm.View()
	case state.ModalQuickAdd:
		return m.quickAdd.View()
	case state.ModalExport:
		return m.exportModal.View()
	}

	if m.notifOpen {
		return m.renderNotifications(snap)
	}

	switch snap.Page {
	case model.PageChat:
		return m.chatView.View()
	case model.PageProjects:
		if snap.ActiveProjectID != "" {
			return m.detailView.View()
		}
		return m.projectsView.View()
	case model.PageSearch:
		return m.searchView.View()
	case model.PageProfile:
		return m.profileView.View()
	default:
		return m.homeView.View()
	}
}

func (m Model) renderNotifications(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString("Notifications\n\n")
	if len(snap.Notifications) == 0 {
		b.WriteString(theme.HelpStyle.Render("Nothing here yet."))
		return b.String()
	}

	for i, n := range snap.Notifications {
		marker := "  "
		if i == m.notifIdx {
			marker = "> "
		}
		bullet := "●"
		if n.Read {
			bullet = " "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, bullet, n.Text))
		b.WriteString(theme.HelpStyle.Render("    "+n.Timestamp) + "\n")
	}

	hints := "j/k move · enter open · esc close"
	if snap.UnreadCount() > 0 {
		hints += " · m mark all read"
	}
	b.WriteString("\n" + theme.HelpStyle.Render(hints))
	return b.String()
}

func (m Model) headerRight(snap state.Snapshot) string {
	right := snap.Profile.Name
	if unread := snap.UnreadCount(); unread > 0 {
		right = fmt.Sprintf("🔔 %d  %s", unread, right)
	}
	return right
}

func pageTitle(p model.Page) string {
	switch p {
	case model.PageChat:
		return "Chat"
	case model.PageProjects:
		return "Projects"
	case model.PageSearch:
		return "Search"
	case model.PageProfile:
		return "Profile"
	default:
		return "Home"
	}
}

// keyHints returns the status bar shortcut summary for the current
// view. Outside modal and dropdown contexts the keymap's help renders
// it, expanding to the grouped view when toggled with ?.
func (m Model) keyHints(snap state.Snapshot) string {
	if snap.Modal != state.ModalNone {
		return "enter submit | esc cancel"
	}
	if m.notifOpen {
		return "enter open | m mark all | esc close"
	}
	return m.help.View(m.keys)
}
