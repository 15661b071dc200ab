package editor

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/render"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Width(9)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	previewStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#444444")).PaddingLeft(1)
	statusChip = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#87D7AF")).Padding(0, 1)
)

type field int

const (
	fieldTitle field = iota
	fieldTags
	fieldContent
)

// Model is the post editor: create when slug is empty, edit otherwise.
// The right pane is a live markdown preview of the content.
type Model struct {
	titleInput textinput.Model
	tagsInput  textinput.Model
	content    textarea.Model
	preview    viewport.Model
	focused    field

	slug      string
	published bool

	client     *api.Client
	err        string
	submitting bool
	width      int
	height     int
}

// New creates the editor. A nil blog starts a new post; otherwise the
// form is pre-filled for editing.
func New(blog *api.Blog, client *api.Client) Model {
	ti := textinput.New()
	ti.Placeholder = "Post title"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 60

	tg := textinput.New()
	tg.Placeholder = "tags, comma separated"
	tg.CharLimit = 200
	tg.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Write your post in markdown..."
	ta.SetWidth(60)
	ta.SetHeight(16)
	ta.CharLimit = 0

	m := Model{
		titleInput: ti,
		tagsInput:  tg,
		content:    ta,
		preview:    viewport.New(0, 0),
		focused:    fieldTitle,
		published:  true,
		client:     client,
	}
	if blog != nil {
		m.slug = blog.Slug
		m.published = blog.Status != "draft"
		m.titleInput.SetValue(blog.Title)
		m.tagsInput.SetValue(strings.Join(blog.Tags, ", "))
		m.content.SetValue(blog.Content)
	}
	return m
}

// SetSize sets the viewport dimensions. The editor takes the left
// half, the preview the right.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	half := w/2 - 4
	if half < 30 {
		half = 30
	}
	m.titleInput.Width = half
	m.tagsInput.Width = half
	m.content.SetWidth(half)

	th := h - 10
	if th < 5 {
		th = 5
	}
	m.content.SetHeight(th)

	m.preview.Width = w - half - 8
	if m.preview.Width < 20 {
		m.preview.Width = 20
	}
	m.preview.Height = h - 4
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	src := m.content.Value()
	if strings.TrimSpace(src) == "" {
		m.preview.SetContent(hintStyle.Render("(preview)"))
		return
	}
	m.preview.SetContent(render.Markdown(src, m.preview.Width-2))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if m.focused != fieldContent {
				m.focused = (m.focused + 1) % 3
				return m, m.updateFocus()
			}
		case "shift+tab":
			m.focused = (m.focused + 2) % 3
			return m, m.updateFocus()
		case "ctrl+p":
			m.published = !m.published
			return m, nil
		case "ctrl+s":
			return m.submit()
		}

	case messages.BlogSavedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
		m.refreshPreview()
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.err = "Title is required"
		return m, nil
	}
	content := strings.TrimSpace(m.content.Value())
	if content == "" {
		m.err = "Content is required"
		return m, nil
	}

	var tags []string
	for _, t := range strings.Split(m.tagsInput.Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	status := "published"
	if !m.published {
		status = "draft"
	}
	in := api.BlogInput{Title: title, Content: content, Tags: tags, Status: status}

	m.submitting = true
	m.err = ""
	client := m.client
	slug := m.slug
	return m, func() tea.Msg {
		var (
			blog api.Blog
			err  error
		)
		if slug == "" {
			blog, err = client.CreateBlog(context.Background(), in)
		} else {
			blog, err = client.UpdateBlog(context.Background(), slug, in)
		}
		return messages.BlogSavedMsg{Blog: blog, Created: slug == "", Err: err}
	}
}

func (m *Model) updateFocus() tea.Cmd {
	m.titleInput.Blur()
	m.tagsInput.Blur()
	m.content.Blur()
	switch m.focused {
	case fieldTitle:
		return m.titleInput.Focus()
	case fieldTags:
		return m.tagsInput.Focus()
	default:
		return m.content.Focus()
	}
}

// View renders the editor beside the live preview.
func (m Model) View() string {
	var left strings.Builder

	header := "New Post"
	if m.slug != "" {
		header = "Edit Post"
	}
	left.WriteString(titleStyle.Render(header))
	left.WriteString("  ")
	if m.published {
		left.WriteString(statusChip.Render("published"))
	} else {
		left.WriteString(statusChip.Render("draft"))
	}
	left.WriteString("\n\n")

	left.WriteString(labelStyle.Render("Title:"))
	left.WriteString(m.titleInput.View())
	left.WriteString("\n")
	left.WriteString(labelStyle.Render("Tags:"))
	left.WriteString(m.tagsInput.View())
	left.WriteString("\n\n")
	left.WriteString(m.content.View())
	left.WriteString("\n\n")

	if m.err != "" {
		left.WriteString(errorStyle.Render(m.err))
		left.WriteString("\n")
	}
	if m.submitting {
		left.WriteString("Saving...")
	} else {
		left.WriteString(hintStyle.Render("tab:next field  ctrl+p:draft/publish  ctrl+s:save  esc:cancel"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left.String(), previewStyle.Render(m.preview.View()))
}
