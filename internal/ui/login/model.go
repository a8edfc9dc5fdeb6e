package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/theme"
)

// LoggedInMsg is dispatched when the user signs in or creates an
// account. An empty Name means a display name should be derived from
// the email.
type LoggedInMsg struct {
	Name     string
	Email    string
	Phone    string
	Remember bool
}

// mode selects which of the login screens is showing.
type mode int

const (
	modeSignIn mode = iota
	modeCreate
	modeForgot
	modeForgotDone
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
	remember bool

	createName     string
	createPhone    string
	createEmail    string
	createPassword string
	createConfirm  string

	forgotEmail string
}

// Model is the pre-auth gate: sign in, create account, and forgot
// password screens.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	mode        mode
	errText     string
	forgotEmail string
	width       int
	height      int
}

// New creates the login model showing the sign-in form. The form is
// built here so the gate is usable before Init runs.
func New(width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.startSignIn()
	return m
}

// Init focuses the sign-in form.
func (m Model) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

func (m *Model) startSignIn() tea.Cmd {
	m.mode = modeSignIn
	m.fb.email = ""
	m.fb.password = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewConfirm().
				Title("Remember me").
				Affirmative("Yes").
				Negative("No").
				Value(&m.fb.remember),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

func (m *Model) startCreate() tea.Cmd {
	m.mode = modeCreate
	m.fb.createName = ""
	m.fb.createPhone = ""
	m.fb.createEmail = ""
	m.fb.createPassword = ""
	m.fb.createConfirm = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full Name").
				Value(&m.fb.createName),
			huh.NewInput().
				Title("Phone Number").
				Value(&m.fb.createPhone),
			huh.NewInput().
				Title("Email ID").
				Value(&m.fb.createEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.createPassword),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.createConfirm),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

func (m *Model) startForgot() tea.Cmd {
	m.mode = modeForgot
	m.fb.forgotEmail = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("We'll send a reset link to this address.").
				Value(&m.fb.forgotEmail),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

// Update handles messages for the login gate.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.mode {
		case modeForgotDone:
			// Any key returns to sign-in.
			m.errText = ""
			return m, m.startSignIn()
		case modeSignIn:
			if key.String() == "ctrl+n" {
				m.errText = ""
				return m, m.startCreate()
			}
			if key.String() == "ctrl+f" {
				m.errText = ""
				return m, m.startForgot()
			}
		case modeCreate, modeForgot:
			if key.String() == "esc" {
				m.errText = ""
				return m, m.startSignIn()
			}
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, m.startSignIn()
	}

	return m, cmd
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	switch m.mode {
	case modeSignIn:
		email := strings.TrimSpace(m.fb.email)
		if email == "" || m.fb.password == "" {
			m.errText = "Please enter both email and password to continue."
			return m, m.startSignIn()
		}
		m.errText = ""
		remember := m.fb.remember
		return m, func() tea.Msg {
			return LoggedInMsg{Email: email, Remember: remember}
		}

	case modeCreate:
		name := strings.TrimSpace(m.fb.createName)
		email := strings.TrimSpace(m.fb.createEmail)
		if name == "" || email == "" || m.fb.createPassword == "" ||
			m.fb.createPassword != m.fb.createConfirm {
			m.errText = "Please fill out all fields and ensure passwords match."
			return m, m.startCreate()
		}
		m.errText = ""
		phone := strings.TrimSpace(m.fb.createPhone)
		remember := m.fb.remember
		return m, func() tea.Msg {
			return LoggedInMsg{Name: name, Email: email, Phone: phone, Remember: remember}
		}

	case modeForgot:
		m.forgotEmail = strings.TrimSpace(m.fb.forgotEmail)
		m.mode = modeForgotDone
		m.form = nil
		return m, nil
	}
	return m, nil
}

// View renders the current login screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1)
	errStyle := lipgloss.NewStyle().
		Foreground(theme.ColorRed).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Learnio.AI") + "\n")

	switch m.mode {
	case modeSignIn:
		b.WriteString("Sign in to your dashboard\n\n")
		if m.errText != "" {
			b.WriteString(errStyle.Render(m.errText) + "\n")
		}
		if m.form != nil {
			b.WriteString(m.form.View())
		}
		b.WriteString("\n" + theme.HelpStyle.Render("ctrl+n create account · ctrl+f forgot password"))

	case modeCreate:
		b.WriteString("Create Your Account\n\n")
		if m.errText != "" {
			b.WriteString(errStyle.Render(m.errText) + "\n")
		}
		if m.form != nil {
			b.WriteString(m.form.View())
		}
		b.WriteString("\n" + theme.HelpStyle.Render("esc back to sign in"))

	case modeForgot:
		b.WriteString("Reset your password\n\n")
		if m.form != nil {
			b.WriteString(m.form.View())
		}
		b.WriteString("\n" + theme.HelpStyle.Render("esc back to sign in"))

	case modeForgotDone:
		b.WriteString("Check your inbox\n\n")
		b.WriteString("If an account exists for " + m.forgotEmail +
			", a password reset link is on its way.\n\n")
		b.WriteString(theme.HelpStyle.Render("press any key to return to sign in"))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

// SetSize updates the login screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}
