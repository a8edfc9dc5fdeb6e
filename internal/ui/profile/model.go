package profile

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

// formBindings owns the form field values. huh binds to pointers, so
// the bindings live on the heap to survive model copies.
type formBindings struct {
	name       string
	email      string
	phone      string
	avatarPath string
}

// Model is the profile page: view the signed-in user and edit their
// details, including an avatar loaded from a local image file.
type Model struct {
	store    *state.Store
	editing  bool
	form     *huh.Form
	bindings *formBindings
	errMsg   string

	width  int
	height int
}

// New creates the profile page model.
func New(s *state.Store, width, height int) Model {
	return Model{
		store:  s,
		width:  width,
		height: height,
	}
}

// EditableFocused reports whether the edit form is open.
func (m Model) EditableFocused() bool {
	return m.editing
}

func (m *Model) startEdit() tea.Cmd {
	profile := m.store.Snapshot().Profile
	m.bindings = &formBindings{
		name:  profile.Name,
		email: profile.Email,
		phone: profile.Phone,
	}
	m.errMsg = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.bindings.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.bindings.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.bindings.phone),
			huh.NewInput().
				Key("avatar").
				Title("Avatar image path").
				Description("Optional. Path to a local PNG or JPEG.").
				Value(&m.bindings.avatarPath),
		),
	).WithWidth(formWidth(m.width))

	m.editing = true
	return m.form.Init()
}

// Update handles messages for the profile page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.editing {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "e", "enter":
				return m, m.startEdit()
			case "x":
				if err := m.store.Logout(); err != nil {
					m.store.ShowToast("Could not sign out cleanly.", model.ToastError)
				}
				return m, nil
			}
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.editing = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.save()
	}
	return m, cmd
}

// save applies the edited fields to the stored profile.
func (m Model) save() (Model, tea.Cmd) {
	current := m.store.Snapshot().Profile
	updated := model.UserProfile{
		Name:   strings.TrimSpace(m.bindings.name),
		Email:  strings.TrimSpace(m.bindings.email),
		Phone:  strings.TrimSpace(m.bindings.phone),
		Avatar: current.Avatar,
	}

	if path := strings.TrimSpace(m.bindings.avatarPath); path != "" {
		avatar, err := encodeAvatar(path)
		if err != nil {
			m.errMsg = fmt.Sprintf("Could not read avatar image: %v", err)
			m.editing = false
			m.form = nil
			return m, nil
		}
		updated.Avatar = avatar
	}

	if err := m.store.UpdateProfile(updated); err != nil {
		m.errMsg = "Could not save your profile. Please try again."
	}
	m.editing = false
	m.form = nil
	return m, nil
}

// encodeAvatar reads a local image file and returns it as a base64
// data string for persistence.
func encodeAvatar(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// View renders the profile page.
func (m Model) View() string {
	if m.editing && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			lipgloss.NewStyle().Bold(true).Render("Edit Profile") + "\n\n" + m.form.View())
	}

	snap := m.store.Snapshot()
	profile := snap.Profile

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Profile") + "\n\n")

	row := func(label, value string) {
		if value == "" {
			value = theme.HelpStyle.Render("not set")
		}
		b.WriteString(fmt.Sprintf("%-8s %s\n", label, value))
	}
	row("Name", profile.Name)
	row("Email", profile.Email)
	row("Phone", profile.Phone)
	if profile.Avatar != "" {
		row("Avatar", fmt.Sprintf("set (%d bytes)", len(profile.Avatar)))
	} else {
		row("Avatar", "")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(theme.ColorRed).Render(m.errMsg))
	}

	b.WriteString("\n" + theme.HelpStyle.Render("e edit profile · x sign out"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates the profile page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func formWidth(width int) int {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}
