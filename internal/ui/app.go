package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/auth"
	"github.com/quillpad/quill/internal/cache"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/ui/blogview"
	"github.com/quillpad/quill/internal/ui/compose"
	"github.com/quillpad/quill/internal/ui/editor"
	"github.com/quillpad/quill/internal/ui/feed"
	"github.com/quillpad/quill/internal/ui/login"
	"github.com/quillpad/quill/internal/ui/messages"
	"github.com/quillpad/quill/internal/ui/myposts"
	"github.com/quillpad/quill/internal/ui/profile"
	"github.com/quillpad/quill/internal/ui/statusbar"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewFeed ViewType = iota
	ViewMyPosts
	ViewBlogDetail
	ViewLogin
	ViewCompose
	ViewEditor
	ViewProfile
)

// textInputViews have focused inputs; global single-key shortcuts are
// disabled while one is active.
func isTextInputView(v ViewType) bool {
	switch v {
	case ViewLogin, ViewCompose, ViewEditor, ViewProfile:
		return true
	}
	return false
}

// App is the root Bubble Tea model.
type App struct {
	activeView    ViewType
	previousViews []ViewType

	feed      feed.Model
	myPosts   myposts.Model
	blogView  blogview.Model
	loginForm login.Model
	composer  compose.Model
	editor    editor.Model
	profile   profile.Model
	statusBar statusbar.Model

	cfg     config.Config
	client  *api.Client
	cache   *cache.DB
	session *auth.Session
	log     *zap.Logger

	width  int
	height int

	program *tea.Program
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, client *api.Client, db *cache.DB, session *auth.Session, log *zap.Logger) *App {
	return &App{
		activeView: ViewFeed,
		feed:       feed.New(cfg, client, db),
		statusBar:  statusbar.New(),
		cfg:        cfg,
		client:     client,
		cache:      db,
		session:    session,
		log:        log,
	}
}

// SetProgram stores the tea.Program reference and routes rate-limit
// signals from the API client into the message loop.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	a.client.SetRateLimitHandler(func(retryAfter time.Duration) {
		p.Send(messages.RateLimitedMsg{RetryAfter: retryAfter})
	})
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), a.tryRestoreSession())
}

func (a *App) tryRestoreSession() tea.Cmd {
	session := a.session
	client := a.client
	path := a.cfg.SessionPath
	return func() tea.Msg {
		if !session.Load(path) {
			return nil
		}
		// Re-validate the token; a stale one is cleared.
		user, err := client.Me(context.Background())
		if err != nil {
			session.Invalidate(path)
			return messages.SessionInvalidMsg{}
		}
		session.User = user
		return messages.SessionRestoredMsg{User: user}
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.feed.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		switch a.activeView {
		case ViewMyPosts:
			a.myPosts.SetSize(msg.Width, contentHeight)
		case ViewBlogDetail:
			a.blogView.SetSize(msg.Width, contentHeight)
		case ViewLogin:
			a.loginForm.SetSize(msg.Width, contentHeight)
		case ViewCompose:
			a.composer.SetSize(msg.Width, contentHeight)
		case ViewEditor:
			a.editor.SetSize(msg.Width, contentHeight)
		case ViewProfile:
			a.profile.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		if a.activeView == ViewBlogDetail && a.blogView.Modal() {
			// An overlay owns the keyboard; route everything to it.
			var cmd tea.Cmd
			a.blogView, cmd = a.blogView.Update(msg)
			return a, cmd
		}
		if !isTextInputView(a.activeView) {
			switch {
			case key.Matches(msg, Keys.ForceQuit):
				return a, tea.Quit
			case key.Matches(msg, Keys.Quit):
				if a.activeView == ViewFeed {
					return a, tea.Quit
				}
				return a, a.goBack()
			case key.Matches(msg, Keys.Back):
				if len(a.previousViews) > 0 {
					return a, a.goBack()
				}
				if a.activeView != ViewFeed {
					a.activeView = ViewFeed
					a.statusBar.SetActiveTab(messages.TabFeed)
					return a, nil
				}
			case key.Matches(msg, Keys.Feed):
				return a, a.switchTab(messages.TabFeed)
			case key.Matches(msg, Keys.MyPosts):
				return a, a.switchTab(messages.TabMyPosts)
			case key.Matches(msg, Keys.NewPost):
				return a, a.switchTab(messages.TabNewPost)
			case key.Matches(msg, Keys.Profile):
				return a, a.switchTab(messages.TabProfile)
			case key.Matches(msg, Keys.Login):
				if !a.session.LoggedIn {
					a.openLogin()
				}
				return a, nil
			case key.Matches(msg, Keys.Logout):
				if a.session.LoggedIn {
					a.session.Logout(a.cfg.SessionPath)
					a.statusBar.SetUser("")
					a.statusBar.SetStatus("Logged out", false)
				}
				return a, nil
			}
		} else {
			if key.Matches(msg, Keys.Back) {
				return a, a.goBack()
			}
			if key.Matches(msg, Keys.ForceQuit) {
				return a, tea.Quit
			}
		}

	// View transitions.
	case messages.OpenBlogMsg:
		a.pushView(ViewBlogDetail)
		a.blogView = blogview.New(msg.Slug, a.cfg, a.client, a.cache, a.session)
		a.blogView.SetSize(a.width, a.height-1)
		return a, a.blogView.Init()

	case messages.GoBackMsg:
		return a, a.goBack()

	case messages.OpenLoginMsg:
		a.openLogin()
		return a, nil

	case messages.OpenComposeMsg:
		if !a.session.LoggedIn {
			a.openLogin()
			return a, nil
		}
		a.pushView(ViewCompose)
		a.composer = compose.New(msg.Slug, msg.ParentID, a.cfg.MaxCommentLen, a.client)
		a.composer.SetSize(a.width, a.height-1)
		return a, nil

	case messages.OpenEditorMsg:
		if !a.session.LoggedIn {
			a.openLogin()
			return a, nil
		}
		a.pushView(ViewEditor)
		a.editor = editor.New(msg.Blog, a.client)
		a.editor.SetSize(a.width, a.height-1)
		return a, nil

	case messages.SessionRestoredMsg:
		a.statusBar.SetUser(msg.User.Username)
		return a, nil

	case messages.SessionInvalidMsg:
		a.statusBar.SetStatus("Session expired, please log in again", true)
		return a, nil

	case messages.LoginResultMsg:
		if msg.Err == nil {
			a.session.SetUser(msg.User, msg.Token)
			a.session.Save(a.cfg.SessionPath)
			a.statusBar.SetUser(msg.User.Username)
			if msg.Registered {
				a.statusBar.SetStatus("Welcome, "+msg.User.Username, false)
			}
			return a, a.goBack()
		}
		// The login form shows the error.

	case messages.BlogSavedMsg:
		if msg.Err == nil {
			a.cache.InvalidateBlogPages()
			a.cache.InvalidateBlog(msg.Blog.Slug)
			a.statusBar.SetStatus("Post saved", false)
			a.goBack()
			slug := msg.Blog.Slug
			return a, func() tea.Msg { return messages.OpenBlogMsg{Slug: slug} }
		}

	case messages.CommentPostedMsg:
		if msg.Err == nil && a.activeView == ViewCompose {
			a.goBack()
		}
		// Fall through to routing so the now-active blog view
		// invalidates and re-fetches (or the composer keeps its
		// draft and shows the error).

	case messages.RateLimitedMsg:
		a.statusBar.SetCooldown(msg.RetryAfter)
		a.statusBar.SetStatus(api.MsgTooManyRequests, true)

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewFeed:
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
	case ViewMyPosts:
		a.myPosts, cmd = a.myPosts.Update(msg)
		cmds = append(cmds, cmd)
	case ViewBlogDetail:
		a.blogView, cmd = a.blogView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
		cmds = append(cmds, cmd)
	case ViewCompose:
		a.composer, cmd = a.composer.Update(msg)
		cmds = append(cmds, cmd)
	case ViewEditor:
		a.editor, cmd = a.editor.Update(msg)
		cmds = append(cmds, cmd)
	case ViewProfile:
		a.profile, cmd = a.profile.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewFeed:
		content = a.feed.View()
	case ViewMyPosts:
		content = a.myPosts.View()
	case ViewBlogDetail:
		content = a.blogView.View()
	case ViewLogin:
		content = a.loginForm.View()
	case ViewCompose:
		content = a.composer.View()
	case ViewEditor:
		content = a.editor.View()
	case ViewProfile:
		content = a.profile.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) openLogin() {
	a.pushView(ViewLogin)
	a.loginForm = login.New(a.client)
	a.loginForm.SetSize(a.width, a.height-1)
}

func (a *App) pushView(v ViewType) {
	a.previousViews = append(a.previousViews, a.activeView)
	a.activeView = v
}

func (a *App) goBack() tea.Cmd {
	if len(a.previousViews) > 0 {
		a.activeView = a.previousViews[len(a.previousViews)-1]
		a.previousViews = a.previousViews[:len(a.previousViews)-1]
	}
	return nil
}

func (a *App) switchTab(t messages.Tab) tea.Cmd {
	switch t {
	case messages.TabFeed:
		a.activeView = ViewFeed
		a.previousViews = nil
		a.statusBar.SetActiveTab(t)
		return nil

	case messages.TabMyPosts:
		if !a.session.LoggedIn {
			a.openLogin()
			return nil
		}
		a.activeView = ViewMyPosts
		a.previousViews = nil
		a.statusBar.SetActiveTab(t)
		a.myPosts = myposts.New(a.cfg, a.client)
		a.myPosts.SetSize(a.width, a.height-1)
		return a.myPosts.Init()

	case messages.TabNewPost:
		if !a.session.LoggedIn {
			a.openLogin()
			return nil
		}
		a.activeView = ViewEditor
		a.previousViews = []ViewType{ViewFeed}
		a.statusBar.SetActiveTab(t)
		a.editor = editor.New(nil, a.client)
		a.editor.SetSize(a.width, a.height-1)
		return nil

	case messages.TabProfile:
		if !a.session.LoggedIn {
			a.openLogin()
			return nil
		}
		a.activeView = ViewProfile
		a.previousViews = nil
		a.statusBar.SetActiveTab(t)
		a.profile = profile.New(a.client, a.session)
		a.profile.SetSize(a.width, a.height-1)
		return a.profile.Init()
	}
	return nil
}
