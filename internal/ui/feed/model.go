package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/cache"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	searchLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true)
	suggestionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).PaddingLeft(2)
	suggestionSel    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true).PaddingLeft(2)
	filterChipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#87D7AF")).Padding(0, 1)
)

// Model is the blog feed: a paginated list with tag search.
type Model struct {
	list    list.Model
	spinner spinner.Model

	// Accumulated across pages; cleared when the tag filter changes.
	blogs []api.Blog
	page  int
	pages int

	activeTag string

	// Tag search overlay.
	searching   bool
	searchInput textinput.Model
	suggestions []string
	suggestIdx  int

	client  *api.Client
	cache   *cache.DB
	cfg     config.Config
	loading bool
	width   int
	height  int
}

// New creates the feed model.
func New(cfg config.Config, client *api.Client, db *cache.DB) Model {
	l := list.New(nil, Delegate{}, 0, 0)
	l.Title = "Feed"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "search tags"
	ti.CharLimit = 40
	ti.Width = 30

	return Model{
		list:        l,
		spinner:     sp,
		searchInput: ti,
		page:        1,
		client:      client,
		cache:       db,
		cfg:         cfg,
	}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPage(1, false), m.spinner.Tick)
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	listHeight := h
	if m.searching {
		listHeight -= m.searchOverlayHeight()
	}
	m.list.SetSize(w, listHeight)
}

// ActiveTag returns the current tag filter, empty when unfiltered.
func (m Model) ActiveTag() string {
	return m.activeTag
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BlogsLoadedMsg:
		if msg.Err != nil {
			m.loading = false
			m.list.Title = "Feed"
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: msg.Err.Error(), IsError: true}
			}
		}
		// A stale response for a different filter must not clobber
		// the current list.
		if msg.Tag != m.activeTag {
			return m, nil
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
		m.loading = false
		m.syncList()
		return m, nil

	case messages.TagResultsMsg:
		if !m.searching || msg.Query != strings.TrimSpace(m.searchInput.Value()) {
			return m, nil
		}
		if msg.Err != nil {
			m.suggestions = nil
			return m, nil
		}
		if len(msg.Tags) > m.cfg.MaxTagResults {
			msg.Tags = msg.Tags[:m.cfg.MaxTagResults]
		}
		m.suggestions = msg.Tags
		m.suggestIdx = 0
		m.list.SetSize(m.width, m.height-m.searchOverlayHeight())
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(BlogItem); ok {
				slug := item.Slug
				return m, func() tea.Msg { return messages.OpenBlogMsg{Slug: slug} }
			}
		case "/":
			m.searching = true
			m.searchInput.SetValue("")
			m.suggestions = nil
			m.searchInput.Focus()
			m.list.SetSize(m.width, m.height-m.searchOverlayHeight())
			return m, textinput.Blink
		case "T":
			// Clear the tag filter.
			if m.activeTag != "" {
				return m.applyTag("")
			}
		case "m":
			if m.pages == 0 || m.page < m.pages {
				m.loading = true
				return m, tea.Batch(m.loadPage(m.page+1, false), m.spinner.Tick)
			}
		case "ctrl+r":
			m.loading = true
			return m, tea.Batch(m.loadPage(1, true), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.suggestions = nil
		m.searchInput.Blur()
		m.list.SetSize(m.width, m.height)
		return m, nil
	case "up":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
		return m, nil
	case "down":
		if m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
		return m, nil
	case "enter":
		if m.suggestIdx >= 0 && m.suggestIdx < len(m.suggestions) {
			tag := m.suggestions[m.suggestIdx]
			m.searching = false
			m.suggestions = nil
			m.searchInput.Blur()
			m.list.SetSize(m.width, m.height)
			return m.applyTag(tag)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		m.suggestions = nil
		return m, cmd
	}
	client := m.client
	return m, tea.Batch(cmd, func() tea.Msg {
		tags, err := client.SearchTags(context.Background(), query)
		return messages.TagResultsMsg{Query: query, Tags: tags, Err: err}
	})
}

// applyTag sets the filter, resets to page 1, clears the accumulated
// list and refetches.
func (m Model) applyTag(tag string) (Model, tea.Cmd) {
	m.activeTag = tag
	m.blogs = nil
	m.page = 1
	m.pages = 0
	m.loading = true
	m.syncList()
	return m, tea.Batch(m.loadPage(1, true), m.spinner.Tick)
}

func (m Model) loadPage(page int, force bool) tea.Cmd {
	client := m.client
	db := m.cache
	cfg := m.cfg
	tag := m.activeTag

	return func() tea.Msg {
		key := cache.PageKey(page, "", tag)
		if force {
			db.InvalidateBlogPages()
		} else {
			blogs, pg, isFresh, _ := db.GetBlogPage(key, cfg.BlogListTTL)
			if isFresh && len(blogs) > 0 {
				return messages.BlogsLoadedMsg{Page: page, Tag: tag, Blogs: blogs, Pagination: pg}
			}
		}

		blogs, pg, err := client.ListBlogs(context.Background(), page, "", tag)
		if err != nil {
			return messages.BlogsLoadedMsg{Page: page, Tag: tag, Err: err}
		}
		db.PutBlogPage(key, blogs, pg)
		for i := range blogs {
			db.PutBlog(&blogs[i])
		}
		return messages.BlogsLoadedMsg{Page: page, Tag: tag, Blogs: blogs, Pagination: pg}
	}
}

func (m *Model) syncList() {
	items := make([]list.Item, 0, len(m.blogs))
	for i, b := range m.blogs {
		items = append(items, BlogItem{Blog: b, Index: i})
	}
	m.list.SetItems(items)

	title := "Feed"
	if m.activeTag != "" {
		title = "Feed #" + m.activeTag
	}
	if m.pages > 0 {
		title += fmt.Sprintf(" (page %d/%d)", m.page, m.pages)
	}
	m.list.Title = title
}

func (m Model) searchOverlayHeight() int {
	return 2 + len(m.suggestions)
}

// View renders the feed.
func (m Model) View() string {
	var sb strings.Builder
	if m.searching {
		sb.WriteString(searchLabelStyle.Render("Tag search: "))
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n")
		for i, s := range m.suggestions {
			if i == m.suggestIdx {
				sb.WriteString(suggestionSel.Render("> " + s))
			} else {
				sb.WriteString(suggestionStyle.Render(s))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	} else if m.activeTag != "" {
		sb.WriteString(filterChipStyle.Render("#"+m.activeTag) + "  ")
		if m.loading {
			sb.WriteString(m.spinner.View())
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.list.View())
	return sb.String()
}
