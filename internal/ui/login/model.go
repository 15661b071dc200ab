package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7AF"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true).Padding(1, 0)
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	tabActive    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true).Underline(true)
)

// Mode selects which auth form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgot
	ModeReset
)

type fieldSpec struct {
	label    string
	password bool
}

var modeFields = map[Mode][]fieldSpec{
	ModeLogin:    {{"Email", false}, {"Password", true}},
	ModeRegister: {{"Name", false}, {"Username", false}, {"Email", false}, {"Password", true}},
	ModeForgot:   {{"Email", false}},
	ModeReset:    {{"Reset token", false}, {"New password", true}},
}

// Model is the auth form view.
type Model struct {
	mode       Mode
	inputs     []textinput.Model
	focusIndex int
	err        string
	info       string
	submitting bool
	client     *api.Client
	width      int
	height     int
}

// New creates the auth form in login mode.
func New(client *api.Client) Model {
	m := Model{client: client}
	m.setMode(ModeLogin)
	return m
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.focusIndex = 0
	m.err = ""
	m.submitting = false

	specs := modeFields[mode]
	m.inputs = make([]textinput.Model, len(specs))
	for i, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = strings.ToLower(spec.label)
		ti.Width = 30
		if spec.password {
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
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
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+t":
			// Cycle login -> register -> forgot -> reset.
			m.setMode((m.mode + 1) % 4)
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			return m.submit()
		}

	case messages.LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		return m, nil

	case messages.ForgotResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.info = "If that address exists, a reset email is on its way."
		m.setMode(ModeReset)
		return m, nil

	case messages.ResetResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.info = "Password updated. Log in with the new one."
		m.setMode(ModeLogin)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = (m.focusIndex + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focusIndex].Focus()
}

func (m Model) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	// Passwords keep their whitespace.
	for i, spec := range modeFields[m.mode] {
		if spec.password {
			out[i] = m.inputs[i].Value()
		}
	}
	return out
}

func (m Model) submit() (Model, tea.Cmd) {
	vals := m.values()
	for i, v := range vals {
		if v == "" {
			m.err = modeFields[m.mode][i].label + " is required"
			return m, nil
		}
	}
	m.submitting = true
	m.err = ""
	m.info = ""
	client := m.client

	switch m.mode {
	case ModeLogin:
		return m, func() tea.Msg {
			user, token, err := client.Login(context.Background(), vals[0], vals[1])
			return messages.LoginResultMsg{User: user, Token: token, Err: err}
		}
	case ModeRegister:
		return m, func() tea.Msg {
			user, token, err := client.Register(context.Background(), vals[0], vals[1], vals[2], vals[3])
			return messages.LoginResultMsg{User: user, Token: token, Registered: true, Err: err}
		}
	case ModeForgot:
		return m, func() tea.Msg {
			err := client.ForgotPassword(context.Background(), vals[0])
			return messages.ForgotResultMsg{Err: err}
		}
	default:
		return m, func() tea.Msg {
			err := client.ResetPassword(context.Background(), vals[0], vals[1])
			return messages.ResetResultMsg{Err: err}
		}
	}
}

var modeTitles = map[Mode]string{
	ModeLogin:    "Log in",
	ModeRegister: "Create account",
	ModeForgot:   "Forgot password",
	ModeReset:    "Reset password",
}

// View renders the auth form.
func (m Model) View() string {
	var sb strings.Builder

	var tabs []string
	for mode := ModeLogin; mode <= ModeReset; mode++ {
		label := modeTitles[mode]
		if mode == m.mode {
			tabs = append(tabs, tabActive.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	sb.WriteString(titleStyle.Render(strings.Join(tabs, "  ")))
	sb.WriteString("\n\n")

	for i, spec := range modeFields[m.mode] {
		sb.WriteString(labelStyle.Render(spec.label + ":"))
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}
	if m.info != "" {
		sb.WriteString(infoStyle.Render(m.info))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Submitting...")
	} else {
		sb.WriteString(focusedStyle.Render("Enter") + " submit  " +
			focusedStyle.Render("Ctrl+T") + " switch form  " +
			focusedStyle.Render("Esc") + " cancel")
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
