package statusbar

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#5F87FF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#87D7AF")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)

	cooldownStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

type tab struct {
	label string
	tab   messages.Tab
}

var tabs = []tab{
	{"Feed", messages.TabFeed},
	{"My Posts", messages.TabMyPosts},
	{"New Post", messages.TabNewPost},
	{"Profile", messages.TabProfile},
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width         int
	activeTab     messages.Tab
	username      string
	statusText    string
	statusIsError bool
	cooldownUntil time.Time
}

// New creates a new status bar.
func New() Model {
	return Model{activeTab: messages.TabFeed}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetActiveTab sets the highlighted tab.
func (m *Model) SetActiveTab(t messages.Tab) {
	m.activeTab = t
}

// SetUser sets the logged-in username; empty clears it.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetStatus sets a transient status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.statusIsError = isError
}

// SetCooldown shows a rate-limit cooldown notice. Zero duration shows
// a generic notice for a short default window.
func (m *Model) SetCooldown(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = 10 * time.Second
	}
	m.cooldownUntil = time.Now().Add(retryAfter)
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, t := range tabs {
		if t.tab == m.activeTab {
			tabsStr += activeTabStyle.Render(t.label)
		} else {
			tabsStr += inactiveTabStyle.Render(t.label)
		}
	}

	var right string
	if remaining := time.Until(m.cooldownUntil); remaining > 0 {
		right += cooldownStyle.Render(fmt.Sprintf("SLOW DOWN %ds", int(remaining.Seconds())+1))
	}
	if m.statusText != "" {
		if m.statusIsError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.username != "" {
		right += userStyle.Render(m.username)
	} else {
		right += statusTextStyle.Render("L:login")
	}

	tabsWidth := lipgloss.Width(tabsStr)
	rightWidth := lipgloss.Width(right)
	gap := m.width - tabsWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
