package state_test

import (
	"reflect"
	"testing"

	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/tests/testutil"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()

	s, err := state.New(testutil.NewTestStore(t), model.ThemeLight, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("creating state store: %v", err)
	}
	return s
}

func TestSeedData(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()

	if len(snap.Projects) != 3 {
		t.Errorf("expected 3 seeded projects, got %d", len(snap.Projects))
	}
	if len(snap.Tasks) != 3 {
		t.Errorf("expected 3 seeded tasks, got %d", len(snap.Tasks))
	}
	if len(snap.Notes) != 2 {
		t.Errorf("expected 2 seeded notes, got %d", len(snap.Notes))
	}
	if len(snap.Notifications) != 3 {
		t.Errorf("expected 3 seeded notifications, got %d", len(snap.Notifications))
	}
	if got := snap.UnreadCount(); got != 2 {
		t.Errorf("expected 2 unread notifications, got %d", got)
	}
	if snap.Authenticated {
		t.Error("expected a fresh store to be unauthenticated")
	}
}

func TestAddUpdateDeleteProject(t *testing.T) {
	s := newTestStore(t)

	p := s.AddProject("Thesis", "Draft chapter one", model.CategoryEducation, "2026-09-01", model.PriorityHigh)
	if p.ID == "" {
		t.Fatal("expected a generated project id")
	}
	if p.Status != model.StatusActive {
		t.Errorf("expected new project to be Active, got %s", p.Status)
	}
	if p.Pinned {
		t.Error("expected new project to be unpinned")
	}

	snap := s.Snapshot()
	if snap.Projects[0].ID != p.ID {
		t.Error("expected new project to be prepended")
	}
	if snap.Toast == nil || snap.Toast.Message != "Project added to your workspace" {
		t.Errorf("expected confirmation toast, got %+v", snap.Toast)
	}

	p.Pinned = true
	p.Status = model.StatusCompleted
	s.UpdateProject(p)
	got, ok := func() (model.Project, bool) {
		for _, q := range s.Snapshot().Projects {
			if q.ID == p.ID {
				return q, true
			}
		}
		return model.Project{}, false
	}()
	if !ok {
		t.Fatal("updated project missing from list")
	}
	if !got.Pinned || got.Status != model.StatusCompleted {
		t.Errorf("update not applied: %+v", got)
	}

	s.SetActiveProject(p.ID)
	s.DeleteProject(p.ID)
	snap = s.Snapshot()
	for _, q := range snap.Projects {
		if q.ID == p.ID {
			t.Fatal("deleted project still present")
		}
	}
	if snap.ActiveProjectID != "" {
		t.Error("expected active selection to be cleared on delete")
	}
	if len(snap.Projects) != 3 {
		t.Errorf("expected seed projects to survive, got %d", len(snap.Projects))
	}
}

func TestActiveProjectStaleSelection(t *testing.T) {
	s := newTestStore(t)

	s.SetActiveProject("no-such-id")
	if _, ok := s.Snapshot().ActiveProject(); ok {
		t.Error("expected stale selection to resolve to no project")
	}

	s.SetActiveProject("1")
	p, ok := s.Snapshot().ActiveProject()
	if !ok || p.Title != "AI Research Paper" {
		t.Errorf("expected seeded project 1, got %+v ok=%v", p, ok)
	}

	// Navigating away from projects drops the selection.
	s.SetPage(model.PageHome)
	if s.Snapshot().ActiveProjectID != "" {
		t.Error("expected selection cleared when leaving projects page")
	}
}

func TestSearchHistoryDedupAndCap(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"alpha", "beta", "  Alpha  "} {
		if err := s.AddSearchQuery(q); err != nil {
			t.Fatalf("adding query %q: %v", q, err)
		}
	}
	got := s.Snapshot().SearchHistory
	want := []string{"Alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("history mismatch: got %v, want %v", got, want)
	}

	if err := s.AddSearchQuery("   "); err != nil {
		t.Fatalf("adding blank query: %v", err)
	}
	if len(s.Snapshot().SearchHistory) != 2 {
		t.Error("expected blank query to be ignored")
	}

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10"} {
		if err := s.AddSearchQuery(q); err != nil {
			t.Fatalf("adding query %q: %v", q, err)
		}
	}
	got = s.Snapshot().SearchHistory
	if len(got) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(got))
	}
	if got[0] != "q10" || got[9] != "q1" {
		t.Errorf("unexpected history order: %v", got)
	}

	if err := s.ClearSearchHistory(); err != nil {
		t.Fatalf("clearing history: %v", err)
	}
	if len(s.Snapshot().SearchHistory) != 0 {
		t.Error("expected empty history after clear")
	}
}

func TestToastExpiryByID(t *testing.T) {
	s := newTestStore(t)

	s.ShowToast("first", model.ToastInfo)
	first := s.Snapshot().Toast
	if first == nil {
		t.Fatal("expected first toast to be visible")
	}

	s.ShowToast("second", model.ToastSuccess)
	second := s.Snapshot().Toast
	if second == nil || second.Message != "second" {
		t.Fatalf("expected second toast to replace first, got %+v", second)
	}

	// A stale timer firing for the first toast must not clear the second.
	s.ExpireToast(first.ID)
	if cur := s.Snapshot().Toast; cur == nil || cur.ID != second.ID {
		t.Errorf("stale expiry cleared the wrong toast: %+v", cur)
	}

	s.ExpireToast(second.ID)
	if cur := s.Snapshot().Toast; cur != nil {
		t.Errorf("expected toast cleared, got %+v", cur)
	}

	// Expiring again is a no-op.
	s.ExpireToast(second.ID)
}

func TestLoginDerivesNameAndPersists(t *testing.T) {
	p := testutil.NewTestStore(t)
	s, err := state.New(p, model.ThemeLight, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("creating state store: %v", err)
	}

	if err := s.Login("", "jane.doe@example.com", "", true); err != nil {
		t.Fatalf("logging in: %v", err)
	}

	snap := s.Snapshot()
	if !snap.Authenticated {
		t.Error("expected authenticated after login")
	}
	if snap.Profile.Name != "Jane Doe" {
		t.Errorf("expected derived name Jane Doe, got %q", snap.Profile.Name)
	}
	if snap.Profile.Phone != model.DefaultPhone {
		t.Errorf("expected placeholder phone, got %q", snap.Profile.Phone)
	}

	remembered, err := p.RememberMe()
	if err != nil {
		t.Fatalf("reading remember flag: %v", err)
	}
	if !remembered {
		t.Error("expected remember flag persisted")
	}

	// A second store over the same prefs restores the session.
	s2, err := state.New(p, model.ThemeLight, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("creating second state store: %v", err)
	}
	if !s2.Snapshot().Authenticated {
		t.Error("expected remembered session to restore authentication")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("logging out: %v", err)
	}
	snap = s.Snapshot()
	if snap.Authenticated {
		t.Error("expected unauthenticated after logout")
	}
	if snap.Profile != model.BlankProfile() {
		t.Errorf("expected blank profile after logout, got %+v", snap.Profile)
	}
	if snap.Page != model.PageHome {
		t.Errorf("expected home page after logout, got %s", snap.Page)
	}
}

func TestLoginKeepsTypedPhone(t *testing.T) {
	p := testutil.NewTestStore(t)
	s, err := state.New(p, model.ThemeLight, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("creating state store: %v", err)
	}

	if err := s.Login("Jane Doe", "jane.doe@example.com", "+1 555 0100", false); err != nil {
		t.Fatalf("logging in: %v", err)
	}
	if got := s.Snapshot().Profile.Phone; got != "+1 555 0100" {
		t.Errorf("expected typed phone kept, got %q", got)
	}

	stored, err := p.Profile()
	if err != nil {
		t.Fatalf("reading persisted profile: %v", err)
	}
	if stored.Phone != "+1 555 0100" {
		t.Errorf("expected typed phone persisted, got %q", stored.Phone)
	}

	// Signing in again without a phone keeps the existing one.
	if err := s.Login("", "jane.doe@example.com", "", true); err != nil {
		t.Fatalf("logging in again: %v", err)
	}
	if got := s.Snapshot().Profile.Phone; got != "+1 555 0100" {
		t.Errorf("expected existing phone kept on sign-in, got %q", got)
	}
}

func TestLoginPersistFailureLeavesStateUnchanged(t *testing.T) {
	p := testutil.NewTestStore(t)
	s, err := state.New(p, model.ThemeLight, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("creating state store: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("closing preference store: %v", err)
	}

	if err := s.Login("", "jane.doe@example.com", "", true); err == nil {
		t.Fatal("expected login to fail with a closed preference store")
	}
	snap := s.Snapshot()
	if snap.Authenticated {
		t.Error("expected failed login to leave the store unauthenticated")
	}
	if snap.Profile != model.BlankProfile() {
		t.Errorf("expected failed login to leave the profile unchanged, got %+v", snap.Profile)
	}

	if err := s.UpdateProfile(model.UserProfile{Name: "X", Email: "x@y.com"}); err == nil {
		t.Fatal("expected profile update to fail with a closed preference store")
	}
	if got := s.Snapshot().Profile; got != model.BlankProfile() {
		t.Errorf("expected failed update to leave the profile unchanged, got %+v", got)
	}
}

func TestNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"jane.doe@example.com", "Jane Doe"},
		{"john_smith@example.com", "John Smith"},
		{"mary-ann.lee@example.com", "Mary Ann Lee"},
		{"solo@example.com", "Solo"},
		{"", ""},
	}
	for _, c := range cases {
		if got := state.NameFromEmail(c.email); got != c.want {
			t.Errorf("NameFromEmail(%q) = %q, want %q", c.email, got, c.want)
		}
	}
}

func TestMarkNotificationsRead(t *testing.T) {
	s := newTestStore(t)

	s.MarkNotificationRead("1")
	if got := s.Snapshot().UnreadCount(); got != 1 {
		t.Errorf("expected 1 unread after marking one, got %d", got)
	}

	s.MarkAllNotificationsRead()
	snap := s.Snapshot()
	if got := snap.UnreadCount(); got != 0 {
		t.Errorf("expected 0 unread after mark-all, got %d", got)
	}
	if snap.Toast == nil || snap.Toast.Message != "All notifications marked as read." {
		t.Errorf("expected mark-all toast, got %+v", snap.Toast)
	}
}

func TestTasksAndNotes(t *testing.T) {
	s := newTestStore(t)

	s.AddTask("Write tests", "Monday")
	snap := s.Snapshot()
	if snap.Tasks[0].Text != "Write tests" || snap.Tasks[0].Completed {
		t.Errorf("unexpected new task: %+v", snap.Tasks[0])
	}

	s.ToggleTask(snap.Tasks[0].ID)
	if !s.Snapshot().Tasks[0].Completed {
		t.Error("expected task toggled to completed")
	}

	s.AddNote("Remember the milk")
	note := s.Snapshot().Notes[0]
	if note.Text != "Remember the milk" || note.Timestamp != "Just now" {
		t.Errorf("unexpected new note: %+v", note)
	}
}

func TestSessionMessages(t *testing.T) {
	s := newTestStore(t)

	s.AppendSessionMessage(model.ChatMessage{ID: "a", Sender: model.SenderUser, Text: "hi"})
	s.AppendSessionMessage(model.ChatMessage{ID: "b", Sender: model.SenderAI, Text: "hello"})
	if got := len(s.Snapshot().SessionMessages); got != 2 {
		t.Fatalf("expected 2 session messages, got %d", got)
	}

	s.ClearSession()
	if got := len(s.Snapshot().SessionMessages); got != 0 {
		t.Errorf("expected session cleared, got %d messages", got)
	}
}

func TestProjectChatHistory(t *testing.T) {
	s := newTestStore(t)

	s.AppendChatMessage("1", model.ChatMessage{ID: "m1", Sender: model.SenderUser, Text: "summarize this"})
	s.SetActiveProject("1")
	p, ok := s.Snapshot().ActiveProject()
	if !ok {
		t.Fatal("expected project 1")
	}
	if len(p.ChatHistory) != 1 || p.ChatHistory[0].Text != "summarize this" {
		t.Errorf("unexpected chat history: %+v", p.ChatHistory)
	}
}
