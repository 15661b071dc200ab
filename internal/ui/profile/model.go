package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/auth"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7AF"))
)

// Model is the profile view: current user details plus a small edit
// form (display name and avatar file for the multipart upload).
type Model struct {
	user       api.User
	nameInput  textinput.Model
	avatarPath textinput.Model
	focusIndex int

	client     *api.Client
	session    *auth.Session
	err        string
	info       string
	submitting bool
	loading    bool
	width      int
	height     int
}

// New creates the profile view for the logged-in user.
func New(client *api.Client, session *auth.Session) Model {
	name := textinput.New()
	name.Placeholder = "display name"
	name.Width = 30
	name.SetValue(session.User.Name)
	name.Focus()

	avatar := textinput.New()
	avatar.Placeholder = "path to avatar image (optional)"
	avatar.Width = 40

	return Model{
		user:       session.User,
		nameInput:  name,
		avatarPath: avatar,
		client:     client,
		session:    session,
		loading:    true,
	}
}

// Init re-fetches the profile so edits from other devices show up.
func (m Model) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Me(context.Background())
		return messages.ProfileLoadedMsg{User: user, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ProfileLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.nameInput.SetValue(msg.User.Name)
		return m, nil

	case messages.ProfileSavedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.info = "Profile updated"
		m.avatarPath.SetValue("")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.nameInput.Blur()
				m.avatarPath.Focus()
			} else {
				m.focusIndex = 0
				m.avatarPath.Blur()
				m.nameInput.Focus()
			}
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.err = "Name is required"
				return m, nil
			}
			m.submitting = true
			m.err = ""
			m.info = ""
			client := m.client
			avatar := strings.TrimSpace(m.avatarPath.Value())
			return m, func() tea.Msg {
				user, err := client.UpdateProfile(context.Background(), name, avatar)
				return messages.ProfileSavedMsg{User: user, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.avatarPath, cmd = m.avatarPath.Update(msg)
	}
	return m, cmd
}

// View renders the profile.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Profile"))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render(m.user.Name))
	sb.WriteString(metaStyle.Render("  @" + m.user.Username))
	sb.WriteString("\n")
	sb.WriteString(metaStyle.Render(m.user.Email))
	sb.WriteString("\n")
	if m.user.AvatarURL != "" {
		sb.WriteString(metaStyle.Render("avatar: " + m.user.AvatarURL))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Display name:"))
	sb.WriteString("\n")
	sb.WriteString(m.nameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("New avatar:"))
	sb.WriteString("\n")
	sb.WriteString(m.avatarPath.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n")
	}
	if m.info != "" {
		sb.WriteString(okStyle.Render(m.info))
		sb.WriteString("\n")
	}
	if m.submitting {
		sb.WriteString("Saving...")
	} else if m.loading {
		sb.WriteString("Loading...")
	} else {
		sb.WriteString(metaStyle.Render("tab:switch field  enter:save  ctrl+l:logout  esc:back"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
