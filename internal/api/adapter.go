package api

import (
	"net/url"
	"time"
)

// resolveAssetURL resolves a backend asset reference against the
// configured asset base. Absolute URLs pass through untouched; if
// resolution fails the original value is returned as-is.
func resolveAssetURL(base, raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.IsAbs() {
		return raw
	}
	b, err := url.Parse(base)
	if err != nil {
		return raw
	}
	return b.ResolveReference(u).String()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Client) adaptUser(w wireUser) User {
	return User{
		ID:        w.ID,
		Name:      w.Name,
		Username:  w.Username,
		Email:     w.Email,
		AvatarURL: resolveAssetURL(c.assetBase, w.Avatar),
	}
}

func (c *Client) adaptBlog(w wireBlog) Blog {
	return Blog{
		ID:           w.ID,
		Slug:         w.Slug,
		Title:        w.Title,
		Content:      w.Content,
		Excerpt:      w.Excerpt,
		CoverURL:     resolveAssetURL(c.assetBase, w.CoverImage),
		Tags:         w.Tags,
		Status:       w.Status,
		Author:       c.adaptUser(w.Author),
		CommentCount: w.CommentCount,
		CreatedAt:    parseTime(w.CreatedAt),
		UpdatedAt:    parseTime(w.UpdatedAt),
	}
}

func (c *Client) adaptBlogs(ws []wireBlog) []Blog {
	blogs := make([]Blog, len(ws))
	for i, w := range ws {
		blogs[i] = c.adaptBlog(w)
	}
	return blogs
}

// adaptComment converts a wire comment subtree. Depth is normalized
// from the parent rather than trusted from the wire, keeping the
// child = parent+1 invariant even if the backend drifts.
func (c *Client) adaptComment(w wireComment, depth int) Comment {
	out := Comment{
		ID:          w.ID,
		Author:      c.adaptUser(w.Author),
		Content:     w.Content,
		Depth:       depth,
		Status:      CommentStatus(w.Status),
		ReportCount: w.ReportCount,
		AutoFlagged: w.AutoFlagged,
		CanReply:    w.CanReply,
		CreatedAt:   parseTime(w.CreatedAt),
		UpdatedAt:   parseTime(w.UpdatedAt),
	}
	if w.ModeratedBy != "" || w.ModerationReason != "" {
		out.Moderation = &Moderation{
			By:     w.ModeratedBy,
			At:     parseTime(w.ModeratedAt),
			Reason: w.ModerationReason,
		}
	}
	if len(w.Replies) > 0 {
		out.Replies = make([]Comment, len(w.Replies))
		for i, child := range w.Replies {
			out.Replies[i] = c.adaptComment(child, depth+1)
		}
	}
	return out
}

func (c *Client) adaptComments(ws []wireComment) []Comment {
	comments := make([]Comment, len(ws))
	for i, w := range ws {
		comments[i] = c.adaptComment(w, 0)
	}
	return comments
}
