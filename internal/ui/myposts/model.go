package myposts

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/ui/feed"
	"github.com/quillpad/quill/internal/ui/messages"
)

// Model lists the current user's posts, drafts included.
type Model struct {
	list   list.Model
	blogs  []api.Blog
	page   int
	pages  int
	client *api.Client
	cfg    config.Config
	width  int
	height int
}

// New creates the my-posts list.
func New(cfg config.Config, client *api.Client) Model {
	l := list.New(nil, feed.Delegate{}, 0, 0)
	l.Title = "My Posts"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		list:   l,
		page:   1,
		client: client,
		cfg:    cfg,
	}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return m.loadPage(1)
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.MyBlogsLoadedMsg:
		if msg.Err != nil {
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: msg.Err.Error(), IsError: true}
			}
		}
		if msg.Page <= 1 {
			m.blogs = msg.Blogs
		} else {
			m.blogs = append(m.blogs, msg.Blogs...)
		}
		m.page = msg.Page
		if msg.Pagination != nil {
			m.pages = msg.Pagination.Pages
		}
		items := make([]list.Item, 0, len(m.blogs))
		for i, b := range m.blogs {
			items = append(items, feed.BlogItem{Blog: b, Index: i})
		}
		m.list.SetItems(items)
		title := "My Posts"
		if m.pages > 0 {
			title += fmt.Sprintf(" (page %d/%d)", m.page, m.pages)
		}
		m.list.Title = title
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(feed.BlogItem); ok {
				slug := item.Slug
				return m, func() tea.Msg { return messages.OpenBlogMsg{Slug: slug} }
			}
		case "e":
			if item, ok := m.list.SelectedItem().(feed.BlogItem); ok {
				blog := item.Blog
				return m, func() tea.Msg { return messages.OpenEditorMsg{Blog: &blog} }
			}
		case "m":
			if m.pages == 0 || m.page < m.pages {
				return m, m.loadPage(m.page + 1)
			}
		case "ctrl+r":
			return m, m.loadPage(1)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) loadPage(page int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		blogs, pg, err := client.MyBlogs(context.Background(), page)
		return messages.MyBlogsLoadedMsg{Page: page, Blogs: blogs, Pagination: pg, Err: err}
	}
}

// View renders the list.
func (m Model) View() string {
	return m.list.View()
}
