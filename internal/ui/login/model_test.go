package login_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/learnio/learnio/internal/ui/login"
)

func TestSignInFormPresentAtStartup(t *testing.T) {
	m := login.New(80, 24)

	v := m.View()
	for _, want := range []string{"Email", "Password", "Remember me"} {
		if !strings.Contains(v, want) {
			t.Errorf("initial sign-in view missing %q field", want)
		}
	}

	if m.Init() == nil {
		t.Error("expected an init command to focus the sign-in form")
	}
}

func TestModeSwitchRebuildsForms(t *testing.T) {
	m := login.New(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if v := m.View(); !strings.Contains(v, "Full Name") {
		t.Error("create-account view missing the name field")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	v := m.View()
	if !strings.Contains(v, "Email") || !strings.Contains(v, "Password") {
		t.Error("sign-in view missing fields after returning from create account")
	}
}
