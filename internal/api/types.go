package api

import (
	"encoding/json"
	"time"
)

// CommentStatus is the backend moderation state for a comment.
type CommentStatus string

const (
	StatusActive        CommentStatus = "active"
	StatusPendingReview CommentStatus = "pending_review"
	StatusHidden        CommentStatus = "hidden"
	StatusDeleted       CommentStatus = "deleted"
)

// ReportReason is the fixed enumeration accepted by the report endpoint.
type ReportReason string

const (
	ReasonSpam       ReportReason = "spam"
	ReasonOffensive  ReportReason = "offensive"
	ReasonHarassment ReportReason = "harassment"
	ReasonOther      ReportReason = "other"
)

// ReportReasons lists the valid reasons in display order.
var ReportReasons = []ReportReason{ReasonSpam, ReasonOffensive, ReasonHarassment, ReasonOther}

// User is a profile as the rest of the app sees it. AvatarURL is
// already resolved against the asset base and may be empty.
type User struct {
	ID        string
	Name      string
	Username  string
	Email     string
	AvatarURL string
}

// Pagination is the backend's paging envelope.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Blog is a post in the feed or detail view.
type Blog struct {
	ID           string
	Slug         string
	Title        string
	Content      string
	Excerpt      string
	CoverURL     string
	Tags         []string
	Status       string
	Author       User
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlogInput is the create/update request body.
type BlogInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}

// Moderation records who acted on a moderated comment.
type Moderation struct {
	By     string
	At     time.Time
	Reason string
}

// Comment is one node of the comment tree. Replies hold the children
// in reply order; a child's Depth is always Depth+1.
type Comment struct {
	ID          string
	Author      User
	Content     string
	Depth       int
	Status      CommentStatus
	ReportCount int
	AutoFlagged bool
	CanReply    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Replies     []Comment
	Moderation  *Moderation
}

// ReportResult is whatever moderation state the backend returned after
// a report. The client displays it and never recomputes thresholds.
type ReportResult struct {
	Status      CommentStatus
	ReportCount int
	Message     string
}

// envelope is the uniform response wrapper every endpoint uses.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *Pagination       `json:"pagination"`
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors"`
}

// Wire shapes, snake_case as the backend sends them. Only the adapter
// touches these.

type wireUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type wireBlog struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Excerpt      string   `json:"excerpt"`
	CoverImage   string   `json:"cover_image"`
	Tags         []string `json:"tags"`
	Status       string   `json:"status"`
	Author       wireUser `json:"author"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type wireComment struct {
	ID               string        `json:"id"`
	Author           wireUser      `json:"author"`
	Content          string        `json:"content"`
	Depth            int           `json:"depth"`
	Status           string        `json:"status"`
	ReportCount      int           `json:"report_count"`
	AutoFlagged      bool          `json:"auto_flagged"`
	CanReply         bool          `json:"can_reply"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
	Replies          []wireComment `json:"replies"`
	ModeratedBy      string        `json:"moderated_by"`
	ModeratedAt      string        `json:"moderated_at"`
	ModerationReason string        `json:"moderation_reason"`
}

type wireLogin struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type wireReport struct {
	Status      string `json:"status"`
	ReportCount int    `json:"report_count"`
}
