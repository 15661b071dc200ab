package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
)

// ValidateContent trims the draft and checks it against the length
// limit. Returns the content to send and an empty problem string, or
// a problem describing why nothing should be sent.
func ValidateContent(raw string, maxLen int) (content, problem string) {
	content = strings.TrimSpace(raw)
	if content == "" {
		return "", "Comment cannot be empty"
	}
	if n := len([]rune(content)); n > maxLen {
		return "", fmt.Sprintf("Comment is too long (%d/%d characters)", n, maxLen)
	}
	return content, ""
}

// Model is the comment/reply composer. An empty parentID means a new
// root comment on the blog.
type Model struct {
	textarea textarea.Model
	slug     string
	parentID string
	maxLen   int

	client     *api.Client
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a composer for a blog, replying to parentID when set.
func New(slug, parentID string, maxLen int, client *api.Client) Model {
	ta := textarea.New()
	if parentID == "" {
		ta.Placeholder = "Write a comment..."
	} else {
		ta.Placeholder = "Write your reply..."
	}
	ta.Focus()
	ta.SetWidth(80)
	ta.SetHeight(10)
	ta.CharLimit = 0

	return Model{
		textarea: ta,
		slug:     slug,
		parentID: parentID,
		maxLen:   maxLen,
		client:   client,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	tw := w - 4
	if tw > 100 {
		tw = 100
	}
	m.textarea.SetWidth(tw)
	th := h - 8
	if th < 5 {
		th = 5
	}
	m.textarea.SetHeight(th)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			if m.submitting {
				return m, nil
			}
			content, problem := ValidateContent(m.textarea.Value(), m.maxLen)
			if problem != "" {
				m.err = problem
				return m, nil
			}
			m.submitting = true
			m.err = ""
			client := m.client
			slug := m.slug
			parentID := m.parentID
			return m, func() tea.Msg {
				var err error
				if parentID == "" {
					_, err = client.CreateComment(context.Background(), slug, content)
				} else {
					_, err = client.Reply(context.Background(), parentID, content)
				}
				return messages.CommentPostedMsg{Slug: slug, ParentID: parentID, Err: err}
			}
		}

	case messages.CommentPostedMsg:
		m.submitting = false
		if msg.Err != nil {
			// Backend message verbatim; the draft stays for retry.
			m.err = msg.Err.Error()
			return m, nil
		}
		m.textarea.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the composer.
func (m Model) View() string {
	var sb strings.Builder

	if m.parentID == "" {
		sb.WriteString(titleStyle.Render("New comment"))
	} else {
		sb.WriteString(titleStyle.Render("Reply"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n")

	n := len([]rune(strings.TrimSpace(m.textarea.Value())))
	counter := fmt.Sprintf("%d/%d", n, m.maxLen)
	if n > m.maxLen {
		sb.WriteString(overStyle.Render(counter))
	} else {
		sb.WriteString(counterStyle.Render(counter))
	}
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n")
	}

	if m.submitting {
		sb.WriteString("Submitting...")
	} else {
		sb.WriteString(hintStyle.Render("Ctrl+S to submit | Esc to cancel"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
