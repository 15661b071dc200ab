package blogview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/auth"
	"github.com/quillpad/quill/internal/cache"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/render"
	"github.com/quillpad/quill/internal/ui/messages"
)

var (
	depthColors = []lipgloss.Color{
		"#5F87FF", "#828282", "#00BFFF", "#32CD32", "#FFD700", "#FF69B4", "#9370DB", "#20B2AA",
	}

	commentAuthorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true)
	commentMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	commentOPStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#5F87FF")).Bold(true)
	commentSelStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#333333"))
	commentModStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true)
	pendingBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FFD700"))
	blogTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	blogMetaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(0, 1)
	separatorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	confirmStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FF5F5F")).Bold(true).Padding(0, 1)
	reportTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
)

const scrollStep = 3

type commentOffset struct {
	startLine int
	endLine   int
}

// Model is the blog detail view: the post body plus the comment tree.
type Model struct {
	viewport viewport.Model

	slug     string
	blog     *api.Blog
	tree     []api.Comment
	comments []FlatComment
	offsets  []commentOffset

	selectedIdx int
	collapse    CollapseState

	confirmDelete bool
	reporting     bool
	reportIdx     int

	client  *api.Client
	cache   *cache.DB
	cfg     config.Config
	session *auth.Session
	loading bool
	width   int
	height  int
}

// New creates a blog detail view for the given slug.
func New(slug string, cfg config.Config, client *api.Client, db *cache.DB, session *auth.Session) Model {
	vp := viewport.New(0, 0)
	vp.SetContent("Loading...")

	return Model{
		viewport: vp,
		slug:     slug,
		collapse: make(CollapseState),
		client:   client,
		cache:    db,
		cfg:      cfg,
		session:  session,
		loading:  true,
	}
}

// Init fetches the blog and its comment tree concurrently.
func (m Model) Init() tea.Cmd {
	slug := m.slug
	client := m.client
	db := m.cache
	cfg := m.cfg
	return func() tea.Msg {
		ctx := context.Background()
		var (
			blog     *api.Blog
			comments []api.Comment
			pg       *api.Pagination
		)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			cached, isFresh, _ := db.GetBlog(slug, cfg.BlogTTL)
			if cached != nil && isFresh {
				blog = cached
				return nil
			}
			fetched, err := client.GetBlog(ctx, slug)
			if err != nil {
				return err
			}
			blog = &fetched
			db.PutBlog(blog)
			return nil
		})
		g.Go(func() error {
			cached, cachedPg, isFresh, _ := db.GetComments(slug, cfg.CommentTTL)
			if isFresh {
				comments, pg = cached, cachedPg
				return nil
			}
			fetched, fetchedPg, err := client.ListComments(ctx, slug, 1, cfg.CommentLimit)
			if err != nil {
				return err
			}
			comments, pg = fetched, fetchedPg
			db.PutComments(slug, comments, pg)
			return nil
		})

		if err := g.Wait(); err != nil {
			return messages.BlogLoadedMsg{Slug: slug, Err: err}
		}
		return messages.BlogLoadedMsg{Slug: slug, Blog: blog, Comments: comments, Pagination: pg}
	}
}

// refetchComments drops the cached tree and loads the canonical one.
// Every successful mutation funnels through here.
func (m Model) refetchComments() tea.Cmd {
	slug := m.slug
	client := m.client
	db := m.cache
	cfg := m.cfg
	return func() tea.Msg {
		db.InvalidateComments(slug)
		comments, pg, err := client.ListComments(context.Background(), slug, 1, cfg.CommentLimit)
		if err != nil {
			return messages.CommentsLoadedMsg{Slug: slug, Err: err}
		}
		db.PutComments(slug, comments, pg)
		return messages.CommentsLoadedMsg{Slug: slug, Comments: comments, Pagination: pg}
	}
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.resizeViewport()
	m.rebuildContent()
}

func (m *Model) resizeViewport() {
	header := m.renderHeader()
	headerLines := strings.Count(header, "\n") + 1
	m.viewport.Height = m.height - headerLines
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

// Slug returns the slug this view is showing.
func (m Model) Slug() string {
	return m.slug
}

// Modal reports whether an overlay (delete confirmation or report
// picker) is capturing keys, so global shortcuts should stand down.
func (m Model) Modal() bool {
	return m.confirmDelete || m.reporting
}

func (m Model) viewerID() string {
	if !m.session.LoggedIn {
		return ""
	}
	return m.session.User.ID
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BlogLoadedMsg:
		if msg.Slug != m.slug {
			return m, nil
		}
		if msg.Err != nil {
			m.loading = false
			m.viewport.SetContent("Error: " + msg.Err.Error())
			return m, nil
		}
		m.blog = msg.Blog
		m.tree = msg.Comments
		m.loading = false
		m.resizeViewport()
		m.rebuildComments()
		m.rebuildContent()
		return m, nil

	case messages.CommentsLoadedMsg:
		if msg.Slug != m.slug {
			return m, nil
		}
		if msg.Err != nil {
			m.loading = false
			return m, status(msg.Err.Error(), true)
		}
		m.tree = msg.Comments
		m.loading = false
		m.rebuildComments()
		m.rebuildContent()
		return m, nil

	case messages.CommentPostedMsg:
		if msg.Slug != m.slug {
			return m, nil
		}
		if msg.Err != nil {
			// The composer shows the error and keeps the draft.
			return m, nil
		}
		// Keep the new reply visible: expand its thread.
		if msg.ParentID != "" {
			delete(m.collapse, msg.ParentID)
		}
		return m, tea.Batch(m.refetchComments(), status("Comment posted", false))

	case messages.CommentDeletedMsg:
		if msg.Slug != m.slug {
			return m, nil
		}
		if msg.Err != nil {
			return m, status(msg.Err.Error(), true)
		}
		return m, tea.Batch(m.refetchComments(), status("Comment deleted", false))

	case messages.CommentReportedMsg:
		if msg.Slug != m.slug {
			return m, nil
		}
		if msg.Err != nil {
			return m, status(msg.Err.Error(), true)
		}
		return m, tea.Batch(m.refetchComments(), status(msg.Result.Message, false))

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.updateConfirm(msg)
		}
		if m.reporting {
			return m.updateReport(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.confirmDelete = false
	if msg.String() != "y" {
		return m, status("Delete cancelled", false)
	}
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
		return m, nil
	}
	id := m.comments[m.selectedIdx].ID
	slug := m.slug
	client := m.client
	return m, func() tea.Msg {
		err := client.DeleteComment(context.Background(), id)
		return messages.CommentDeletedMsg{Slug: slug, CommentID: id, Err: err}
	}
}

func (m Model) updateReport(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reporting = false
		return m, nil
	case "up", "k":
		if m.reportIdx > 0 {
			m.reportIdx--
		}
		return m, nil
	case "down", "j":
		if m.reportIdx < len(api.ReportReasons)-1 {
			m.reportIdx++
		}
		return m, nil
	case "enter":
		m.reporting = false
		if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
			return m, nil
		}
		id := m.comments[m.selectedIdx].ID
		reason := api.ReportReasons[m.reportIdx]
		slug := m.slug
		client := m.client
		return m, func() tea.Msg {
			res, err := client.ReportComment(context.Background(), id, reason)
			return messages.CommentReportedMsg{Slug: slug, CommentID: id, Result: res, Err: err}
		}
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
			off := m.offsets[m.selectedIdx]
			viewBottom := m.viewport.YOffset + m.viewport.Height
			if off.endLine >= viewBottom {
				m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
				return m, nil
			}
		}
		if m.selectedIdx < len(m.comments)-1 {
			m.selectedIdx++
			m.rebuildContent()
			m.scrollToCursor()
		}
		return m, nil

	case "k", "up":
		if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
			off := m.offsets[m.selectedIdx]
			if off.startLine < m.viewport.YOffset {
				newOff := m.viewport.YOffset - scrollStep
				if newOff < off.startLine {
					newOff = off.startLine
				}
				m.viewport.SetYOffset(newOff)
				return m, nil
			}
		}
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.rebuildContent()
			m.scrollToCursor()
		}
		return m, nil

	case " ":
		if m.selectedIdx >= 0 && m.selectedIdx < len(m.comments) {
			id := m.comments[m.selectedIdx].ID
			m.collapse[id] = !m.collapse[id]
			m.rebuildComments()
			m.rebuildContent()
		}
		return m, nil

	case "p", "[":
		if idx := FindParentIndex(m.comments, m.selectedIdx); idx >= 0 {
			m.selectedIdx = idx
			m.rebuildContent()
			m.scrollToCursor()
		}
		return m, nil

	case "g", "home":
		m.selectedIdx = 0
		m.rebuildContent()
		m.viewport.GotoTop()
		return m, nil

	case "G", "end":
		if len(m.comments) > 0 {
			m.selectedIdx = len(m.comments) - 1
			m.rebuildContent()
			m.viewport.GotoBottom()
		}
		return m, nil

	case "ctrl+d", "pgdown":
		m.viewport.HalfViewDown()
		return m, nil

	case "ctrl+u", "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "c":
		if !m.session.LoggedIn {
			return m, tea.Batch(status("Log in to comment", true), openLogin())
		}
		slug := m.slug
		return m, func() tea.Msg { return messages.OpenComposeMsg{Slug: slug} }

	case "r":
		if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
			return m, nil
		}
		fc := m.comments[m.selectedIdx]
		if !m.session.LoggedIn {
			// Local gate: no network call happens for anonymous viewers.
			return m, tea.Batch(status("Log in to reply", true), openLogin())
		}
		if !fc.CanReply {
			return m, status("Replies are closed on this comment", true)
		}
		slug := m.slug
		parentID := fc.ID
		return m, func() tea.Msg { return messages.OpenComposeMsg{Slug: slug, ParentID: parentID} }

	case "d":
		if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
			return m, nil
		}
		fc := m.comments[m.selectedIdx]
		if m.viewerID() == "" || fc.Author.ID != m.viewerID() {
			return m, status("You can only delete your own comments", true)
		}
		m.confirmDelete = true
		m.rebuildContent()
		return m, nil

	case "x":
		if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
			return m, nil
		}
		fc := m.comments[m.selectedIdx]
		if !m.session.LoggedIn {
			return m, tea.Batch(status("Log in to report", true), openLogin())
		}
		if fc.Author.ID == m.viewerID() {
			return m, status("You cannot report your own comment", true)
		}
		if fc.Status != api.StatusActive {
			return m, status("Only active comments can be reported", true)
		}
		m.reporting = true
		m.reportIdx = 0
		return m, nil

	case "e":
		if m.blog != nil && m.viewerID() != "" && m.blog.Author.ID == m.viewerID() {
			blog := m.blog
			return m, func() tea.Msg { return messages.OpenEditorMsg{Blog: blog} }
		}
		return m, status("You can only edit your own posts", true)

	case "ctrl+r":
		m.loading = true
		db := m.cache
		slug := m.slug
		db.InvalidateBlog(slug)
		db.InvalidateComments(slug)
		return m, m.Init()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the blog view.
func (m Model) View() string {
	header := m.renderHeader()
	if m.reporting {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderReportPicker())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

func (m Model) renderReportPicker() string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(reportTitleStyle.Render("Report comment — select a reason"))
	sb.WriteString("\n\n")
	for i, r := range api.ReportReasons {
		if i == m.reportIdx {
			sb.WriteString("  > " + commentAuthorStyle.Render(string(r)))
		} else {
			sb.WriteString("    " + string(r))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n  " + commentMetaStyle.Render("enter:report  esc:cancel"))
	return sb.String()
}

func (m *Model) rebuildComments() {
	m.comments = Flatten(m.tree, m.viewerID(), m.collapse)
	if m.selectedIdx >= len(m.comments) {
		m.selectedIdx = len(m.comments) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m *Model) rebuildContent() {
	var sb strings.Builder
	lineCount := 0

	// Post body scrolls with the comments.
	if m.blog != nil && m.blog.Content != "" {
		body := render.Markdown(m.blog.Content, m.width-4)
		sb.WriteString(body)
		sb.WriteString("\n")
		lineCount += strings.Count(body, "\n") + 1
		sep := separatorStyle.Render(strings.Repeat("─", max(m.width, 1)))
		sb.WriteString(sep + "\n")
		lineCount++
	}

	if len(m.comments) == 0 {
		m.offsets = nil
		if m.loading {
			sb.WriteString("  Loading comments...")
		} else {
			sb.WriteString("  No comments yet. Press c to write one.")
		}
		m.viewport.SetContent(sb.String())
		return
	}

	m.offsets = make([]commentOffset, len(m.comments))
	availWidth := m.width - 4
	if availWidth < 20 {
		availWidth = 20
	}

	blogAuthorID := ""
	if m.blog != nil {
		blogAuthorID = m.blog.Author.ID
	}

	for i, fc := range m.comments {
		startLine := lineCount
		indent := fc.Depth * 2
		if indent > 30 {
			indent = 30
		}
		indentStr := strings.Repeat(" ", indent)

		barColor := depthColors[fc.Depth%len(depthColors)]
		selected := i == m.selectedIdx
		if selected {
			barColor = "#5F87FF"
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Render("│")

		// Header: author + age + badges.
		header := commentAuthorStyle.Render(fc.Author.Username)
		header += " " + commentMetaStyle.Render(render.TimeAgo(fc.CreatedAt))
		if blogAuthorID != "" && fc.Author.ID == blogAuthorID {
			header += " " + commentOPStyle.Render(" author ")
		}
		if fc.Status == api.StatusPendingReview {
			header += " " + pendingBadgeStyle.Render(" pending review ")
		}
		if fc.AutoFlagged {
			header += " " + commentMetaStyle.Render("[flagged]")
		}
		if fc.Collapsed {
			header += " " + commentMetaStyle.Render(fmt.Sprintf("[+%d]", fc.ChildCount))
		}

		bodyWidth := availWidth - indent - 4
		if bodyWidth < 20 {
			bodyWidth = 20
		}

		var body string
		if ph := Placeholder(fc.Comment); ph != "" {
			body = commentModStyle.Render(ph)
			if fc.Moderation != nil && fc.Moderation.Reason != "" {
				body += " " + commentMetaStyle.Render("("+fc.Moderation.Reason+")")
			}
		} else {
			body = render.WrapText(fc.Content, bodyWidth)
		}

		headerLine := indentStr + bar + " " + header
		if selected {
			headerLine = commentSelStyle.Render(headerLine)
		}
		sb.WriteString(headerLine + "\n")
		lineCount++

		if !fc.Collapsed {
			for _, line := range strings.Split(body, "\n") {
				bodyLine := indentStr + bar + " " + line
				if selected {
					bodyLine = commentSelStyle.Render(bodyLine)
				}
				sb.WriteString(bodyLine + "\n")
				lineCount++
			}
		}
		sb.WriteString("\n")
		lineCount++

		m.offsets[i] = commentOffset{startLine: startLine, endLine: lineCount - 1}
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) scrollToCursor() {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.offsets) {
		return
	}
	off := m.offsets[m.selectedIdx]
	if off.startLine < m.viewport.YOffset || off.startLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(off.startLine)
	}
}

func (m Model) renderHeader() string {
	if m.blog == nil {
		return blogTitleStyle.Render("Loading...")
	}

	var parts []string
	parts = append(parts, blogTitleStyle.Render(m.blog.Title))

	meta := fmt.Sprintf("by %s | %s", m.blog.Author.Username, render.TimeAgo(m.blog.CreatedAt))
	if m.blog.CommentCount > 0 {
		meta += fmt.Sprintf(" | %d comments", m.blog.CommentCount)
	}
	if len(m.blog.Tags) > 0 {
		meta += " | #" + strings.Join(m.blog.Tags, " #")
	}
	parts = append(parts, blogMetaStyle.Render(meta))

	parts = append(parts, separatorStyle.Render(strings.Repeat("─", max(m.width, 1))))

	var hint string
	if m.confirmDelete {
		hint = confirmStyle.Render("Delete this comment? y:confirm  any other key:cancel")
	} else {
		hint = commentMetaStyle.Render("j/k:move  space:collapse  c:comment  r:reply  d:delete  x:report  ctrl+r:refresh")
	}
	parts = append(parts, hint)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return messages.StatusMsg{Text: text, IsError: isError} }
}

func openLogin() tea.Cmd {
	return func() tea.Msg { return messages.OpenLoginMsg{} }
}
