package feed

import (
	"fmt"
	"strings"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/render"
)

// BlogItem wraps a blog for the bubbles list.
type BlogItem struct {
	api.Blog
	Index int
}

func (b BlogItem) Title() string {
	return b.Blog.Title
}

func (b BlogItem) Description() string {
	parts := make([]string, 0, 4)

	if ex := render.Excerpt(b.Blog.Excerpt, 60); ex != "" {
		parts = append(parts, ex)
	}
	if b.Blog.Author.Username != "" {
		parts = append(parts, "by "+b.Blog.Author.Username)
	}
	if !b.Blog.CreatedAt.IsZero() {
		parts = append(parts, render.TimeAgo(b.Blog.CreatedAt))
	}
	if b.Blog.CommentCount > 0 {
		parts = append(parts, fmt.Sprintf("%d comments", b.Blog.CommentCount))
	}

	desc := strings.Join(parts, " | ")
	if len(b.Blog.Tags) > 0 {
		desc += "  #" + strings.Join(b.Blog.Tags, " #")
	}
	return desc
}

func (b BlogItem) FilterValue() string {
	return b.Blog.Title + " " + b.Blog.Author.Username + " " + strings.Join(b.Blog.Tags, " ")
}
