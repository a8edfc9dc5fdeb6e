package state

import (
	"strings"
	"sync"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/prefs"
)

// toastDuration is how long a toast stays visible before auto-expiry.
const toastDuration = 3 * time.Second

// searchHistoryMax caps the number of remembered search queries.
const searchHistoryMax = 10

// Modal identifies which overlay, if any, is currently open.
type Modal int

const (
	ModalNone Modal = iota
	ModalProjectForm
	ModalQuickAdd
	ModalExport
	ModalForgotPassword
)

// ChangedMsg is a tea.Msg sent whenever the store's state has changed.
// Receivers should re-snapshot and re-subscribe with WaitForChange.
type ChangedMsg struct{}

// Store is the single authoritative owner of session state. All
// mutation goes through named action methods; each action is atomic
// and publishes a coalesced change signal for the UI loop.
type Store struct {
	mu    sync.Mutex
	prefs *prefs.Store

	authenticated bool
	page          model.Page
	theme         model.Theme
	language      model.Language
	profile       model.UserProfile

	projects        []model.Project
	tasks           []model.Task
	notes           []model.Note
	notifications   []model.Notification
	sessionMessages []model.ChatMessage
	searchHistory   []string

	activeProjectID string
	modal           Modal
	toast           *model.Toast
	nextToastID     int64
	hintShown       bool

	changeCh chan struct{}
}

// Snapshot is a point-in-time copy of the store's state, safe to read
// without holding the store's lock. Slices are copies; mutating them
// has no effect on the store.
type Snapshot struct {
	Authenticated   bool
	Page            model.Page
	Theme           model.Theme
	Language        model.Language
	Profile         model.UserProfile
	Projects        []model.Project
	Tasks           []model.Task
	Notes           []model.Note
	Notifications   []model.Notification
	SessionMessages []model.ChatMessage
	SearchHistory   []string
	ActiveProjectID string
	Modal           Modal
	Toast           *model.Toast
	HintShown       bool
}

// ActiveProject resolves the active project ID against the project
// list. ok is false when no project is selected or the selection has
// gone stale.
func (s Snapshot) ActiveProject() (model.Project, bool) {
	if s.ActiveProjectID == "" {
		return model.Project{}, false
	}
	for _, p := range s.Projects {
		if p.ID == s.ActiveProjectID {
			return p, true
		}
	}
	return model.Project{}, false
}

// UnreadCount returns the number of unread notifications.
func (s Snapshot) UnreadCount() int {
	n := 0
	for _, nt := range s.Notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}

// New builds a Store seeded with the demo workspace, restoring the
// persisted profile, search history, and remembered session from p.
func New(p *prefs.Store, theme model.Theme, language model.Language) (*Store, error) {
	s := &Store{
		prefs:         p,
		page:          model.PageHome,
		theme:         theme,
		language:      language,
		profile:       model.BlankProfile(),
		projects:      seedProjects(),
		tasks:         seedTasks(),
		notes:         seedNotes(),
		notifications: seedNotifications(),
		changeCh:      make(chan struct{}, 1),
	}

	profile, err := p.Profile()
	if err != nil {
		return nil, err
	}
	s.profile = profile

	history, err := p.SearchHistory()
	if err != nil {
		return nil, err
	}
	s.searchHistory = history

	remembered, err := p.RememberMe()
	if err != nil {
		return nil, err
	}
	if remembered && profile.Email != "" {
		s.authenticated = true
	}

	hintShown, err := p.HintShown()
	if err != nil {
		return nil, err
	}
	s.hintShown = hintShown

	return s, nil
}

// WaitForChange returns a tea.Cmd that blocks until the next state
// change and delivers a ChangedMsg. Call it again after each ChangedMsg
// to keep listening.
func (s *Store) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		<-s.changeCh
		return ChangedMsg{}
	}
}

// notify publishes a coalesced change signal. Callers must hold s.mu.
func (s *Store) notify() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Authenticated:   s.authenticated,
		Page:            s.page,
		Theme:           s.theme,
		Language:        s.language,
		Profile:         s.profile,
		Projects:        append([]model.Project(nil), s.projects...),
		Tasks:           append([]model.Task(nil), s.tasks...),
		Notes:           append([]model.Note(nil), s.notes...),
		Notifications:   append([]model.Notification(nil), s.notifications...),
		SessionMessages: append([]model.ChatMessage(nil), s.sessionMessages...),
		SearchHistory:   append([]string(nil), s.searchHistory...),
		ActiveProjectID: s.activeProjectID,
		Modal:           s.modal,
		HintShown:       s.hintShown,
	}
	if s.toast != nil {
		t := *s.toast
		snap.Toast = &t
	}
	return snap
}

// Login records the authenticated user. An empty name is derived from
// the email's local part; an empty phone keeps the current one. The
// profile and remember flag are persisted before any in-memory change,
// so a persistence failure leaves the store logged out and unchanged.
func (s *Store) Login(name, email, phone string, remember bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = NameFromEmail(email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.profile
	updated.Name = name
	updated.Email = email
	if phone != "" {
		updated.Phone = phone
	} else if updated.Phone == "" {
		updated.Phone = model.DefaultPhone
	}

	if err := s.prefs.SaveProfile(updated); err != nil {
		return err
	}
	if remember {
		if err := s.prefs.SetRememberMe(); err != nil {
			return err
		}
	} else {
		if err := s.prefs.ClearRememberMe(); err != nil {
			return err
		}
	}

	s.profile = updated
	s.authenticated = true
	s.notify()
	return nil
}

// Logout clears the persisted session and resets the in-memory profile
// to blank defaults. The page is forced back to home.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.ClearRememberMe(); err != nil {
		return err
	}
	if err := s.prefs.ClearProfile(); err != nil {
		return err
	}

	s.profile = model.BlankProfile()
	s.authenticated = false
	s.page = model.PageHome
	s.activeProjectID = ""
	s.modal = ModalNone

	s.notify()
	return nil
}

// ToggleTheme flips between the light and dark palettes.
func (s *Store) ToggleTheme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == model.ThemeLight {
		s.theme = model.ThemeDark
	} else {
		s.theme = model.ThemeLight
	}
	s.notify()
	return s.theme
}

// SetLanguage selects the assistant response language.
func (s *Store) SetLanguage(lang model.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = lang
	s.notify()
}

// SetPage navigates to a top-level page. Leaving the projects page
// drops the active-project selection.
func (s *Store) SetPage(page model.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = page
	if page != model.PageProjects {
		s.activeProjectID = ""
	}
	s.notify()
}

// SetActiveProject selects a project for the detail view.
func (s *Store) SetActiveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeProjectID = id
	s.notify()
}

// ClearActiveProject returns from the detail view to the project list.
func (s *Store) ClearActiveProject() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeProjectID = ""
	s.notify()
}

// OpenModal opens the given overlay, replacing any other open one.
func (s *Store) OpenModal(m Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modal = m
	s.notify()
}

// CloseModal dismisses the current overlay.
func (s *Store) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modal = ModalNone
	s.notify()
}

// AddProject creates a project with a fresh id and timestamp, prepends
// it to the list, and confirms with a toast. The created project is
// returned.
func (s *Store) AddProject(title, description string, category model.Category, deadline string, priority model.Priority) model.Project {
	p := model.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Timestamp:   time.Now().Format("1/2/2006, 3:04:05 PM"),
		Deadline:    deadline,
		Priority:    priority,
		Status:      model.StatusActive,
		ChatHistory: []model.ChatMessage{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = append([]model.Project{p}, s.projects...)
	s.showToast("Project added to your workspace", model.ToastSuccess)
	s.notify()
	return p
}

// UpdateProject replaces the stored project with the same id. Unknown
// ids are ignored.
func (s *Store) UpdateProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			break
		}
	}
	s.notify()
}

// DeleteProject removes a project. A stale active selection pointing
// at it is cleared.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	if s.activeProjectID == id {
		s.activeProjectID = ""
	}
	s.notify()
}

// AppendChatMessage appends a message to a project's chat history.
func (s *Store) AppendChatMessage(projectID string, msg model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].ChatHistory = append(s.projects[i].ChatHistory, msg)
			break
		}
	}
	s.notify()
}

// AppendSessionMessage appends a message to the chat page's session
// transcript.
func (s *Store) AppendSessionMessage(msg model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionMessages = append(s.sessionMessages, msg)
	s.notify()
}

// ClearSession discards the chat page's session transcript.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionMessages = nil
	s.notify()
}

// AddTask prepends a new uncompleted task.
func (s *Store) AddTask(text, dueDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{ID: uuid.NewString(), Text: text, DueDate: dueDate}
	s.tasks = append([]model.Task{t}, s.tasks...)
	s.notify()
}

// ToggleTask flips a task's completion flag.
func (s *Store) ToggleTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			break
		}
	}
	s.notify()
}

// AddNote prepends a new note stamped "Just now".
func (s *Store) AddNote(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := model.Note{ID: uuid.NewString(), Text: text, Timestamp: "Just now"}
	s.notes = append([]model.Note{n}, s.notes...)
	s.notify()
}

// UpdateProfile replaces and persists the user profile, confirming
// with a toast.
func (s *Store) UpdateProfile(p model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.SaveProfile(p); err != nil {
		return err
	}
	s.profile = p
	s.showToast("Profile updated successfully", model.ToastSuccess)
	s.notify()
	return nil
}

// MarkNotificationRead flips a single notification's read flag.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	s.notify()
}

// MarkAllNotificationsRead flips every notification to read and
// confirms with a toast.
func (s *Store) MarkAllNotificationsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.showToast("All notifications marked as read.", model.ToastInfo)
	s.notify()
}

// AddSearchQuery records a search query: trimmed, deduplicated
// case-insensitively against existing entries, stored in its original
// case at the front, capped. The history is persisted on every change.
func (s *Store) AddSearchQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	folded := strings.ToLower(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, 0, len(s.searchHistory)+1)
	history = append(history, trimmed)
	for _, item := range s.searchHistory {
		if strings.ToLower(strings.TrimSpace(item)) != folded {
			history = append(history, item)
		}
	}
	if len(history) > searchHistoryMax {
		history = history[:searchHistoryMax]
	}
	s.searchHistory = history

	if err := s.prefs.SaveSearchHistory(history); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ClearSearchHistory empties and persists the search history,
// confirming with a toast.
func (s *Store) ClearSearchHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchHistory = nil
	if err := s.prefs.SaveSearchHistory(nil); err != nil {
		return err
	}
	s.showToast("Search history cleared.", model.ToastInfo)
	s.notify()
	return nil
}

// ShowToast displays a toast that auto-expires after three seconds.
func (s *Store) ShowToast(message string, typ model.ToastType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showToast(message, typ)
	s.notify()
}

// showToast replaces the current toast and arms its expiry timer.
// Callers must hold s.mu.
func (s *Store) showToast(message string, typ model.ToastType) {
	s.nextToastID++
	id := s.nextToastID
	s.toast = &model.Toast{ID: id, Message: message, Type: typ}

	time.AfterFunc(toastDuration, func() {
		s.ExpireToast(id)
	})
}

// ExpireToast clears the toast with the given id. A stale timer firing
// after a newer toast replaced it is a no-op.
func (s *Store) ExpireToast(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.toast == nil || s.toast.ID != id {
		return
	}
	s.toast = nil
	s.notify()
}

// HintShown reports whether the one-time hotkey hint toast has been
// shown on a previous login.
func (s *Store) HintShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintShown
}

// MarkHintShown records, in memory and persistently, that the hotkey
// hint was displayed.
func (s *Store) MarkHintShown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hintShown = true
	return s.prefs.MarkHintShown()
}

// NameFromEmail derives a display name from an email address: the
// local part is split on dots, underscores, and hyphens, and each
// segment is capitalized. "jane.doe@example.com" becomes "Jane Doe".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
