package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListComments fetches the comment tree for a blog. One request
// returns both the tree and the pagination block; pagination applies
// to root comments only, never within a node's replies.
func (c *Client) ListComments(ctx context.Context, slug string, page, limit int) ([]Comment, *Pagination, error) {
	path := fmt.Sprintf("/api/blogs/%s/comments?page=%d&limit=%d", url.PathEscape(slug), page, limit)
	var data []wireComment
	pg, err := c.do(ctx, http.MethodGet, path, nil, &data)
	if err != nil {
		return nil, nil, err
	}
	return c.adaptComments(data), pg, nil
}

// CreateComment posts a new root-level comment on a blog.
func (c *Client) CreateComment(ctx context.Context, slug, content string) (Comment, error) {
	var data wireComment
	_, err := c.do(ctx, http.MethodPost, "/api/blogs/"+url.PathEscape(slug)+"/comments", map[string]string{
		"content": content,
	}, &data)
	if err != nil {
		return Comment{}, err
	}
	return c.adaptComment(data, 0), nil
}

// Reply posts a child comment under an existing one.
func (c *Client) Reply(ctx context.Context, commentID, content string) (Comment, error) {
	var data wireComment
	_, err := c.do(ctx, http.MethodPost, "/api/comments/"+url.PathEscape(commentID)+"/reply", map[string]string{
		"content": content,
	}, &data)
	if err != nil {
		return Comment{}, err
	}
	return c.adaptComment(data, data.Depth), nil
}

// DeleteComment removes the viewer's own comment. The backend keeps
// the node in the tree with deleted status.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(commentID), nil, nil)
	return err
}

// ReportComment flags a comment. The returned state reflects whatever
// the backend decided (it may auto-hide after enough reports); the
// client displays it without inferring thresholds.
func (c *Client) ReportComment(ctx context.Context, commentID string, reason ReportReason) (ReportResult, error) {
	var data wireReport
	_, err := c.do(ctx, http.MethodPost, "/api/comments/"+url.PathEscape(commentID)+"/report", map[string]string{
		"reason": string(reason),
	}, &data)
	if err != nil {
		return ReportResult{}, err
	}

	res := ReportResult{
		Status:      CommentStatus(data.Status),
		ReportCount: data.ReportCount,
	}
	switch res.Status {
	case StatusHidden, StatusPendingReview:
		res.Message = "Report received. The comment is now under review."
	default:
		res.Message = "Report received. Thank you."
	}
	return res, nil
}
