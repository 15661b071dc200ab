package messages

import (
	"time"

	"github.com/quillpad/quill/internal/api"
)

// Tab identifies a top-level screen reachable from the status bar.
type Tab int

const (
	TabFeed Tab = iota
	TabMyPosts
	TabNewPost
	TabProfile
)

// View transition messages.
type (
	OpenBlogMsg  struct{ Slug string }
	GoBackMsg    struct{}
	SwitchTabMsg struct{ Tab Tab }
	OpenLoginMsg struct{}

	// OpenComposeMsg opens the comment composer. Empty ParentID means
	// a new root comment on the blog.
	OpenComposeMsg struct {
		Slug     string
		ParentID string
	}

	// OpenEditorMsg opens the post editor. Nil Blog means a new post.
	OpenEditorMsg struct{ Blog *api.Blog }
)

// Data messages.
type (
	BlogsLoadedMsg struct {
		Page       int
		Tag        string
		Blogs      []api.Blog
		Pagination *api.Pagination
		Err        error
	}

	MyBlogsLoadedMsg struct {
		Page       int
		Blogs      []api.Blog
		Pagination *api.Pagination
		Err        error
	}

	BlogLoadedMsg struct {
		Slug       string
		Blog       *api.Blog
		Comments   []api.Comment
		Pagination *api.Pagination
		Err        error
	}

	CommentsLoadedMsg struct {
		Slug       string
		Comments   []api.Comment
		Pagination *api.Pagination
		Err        error
	}

	TagResultsMsg struct {
		Query string
		Tags  []string
		Err   error
	}

	LoginResultMsg struct {
		User       api.User
		Token      string
		Registered bool
		Err        error
	}

	ForgotResultMsg struct{ Err error }
	ResetResultMsg  struct{ Err error }

	CommentPostedMsg struct {
		Slug     string
		ParentID string
		Err      error
	}

	CommentDeletedMsg struct {
		Slug      string
		CommentID string
		Err       error
	}

	CommentReportedMsg struct {
		Slug      string
		CommentID string
		Result    api.ReportResult
		Err       error
	}

	BlogSavedMsg struct {
		Blog    api.Blog
		Created bool
		Err     error
	}

	ProfileLoadedMsg struct {
		User api.User
		Err  error
	}

	ProfileSavedMsg struct {
		User api.User
		Err  error
	}

	SessionRestoredMsg struct{ User api.User }
	SessionInvalidMsg  struct{}

	RateLimitedMsg struct{ RetryAfter time.Duration }

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
