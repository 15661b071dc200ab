package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListBlogs fetches a feed page. status and tag are optional filters.
func (c *Client) ListBlogs(ctx context.Context, page int, status, tag string) ([]Blog, *Pagination, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if status != "" {
		q.Set("status", status)
	}
	if tag != "" {
		q.Set("tag", tag)
	}
	path := "/blog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var data []wireBlog
	pg, err := c.do(ctx, http.MethodGet, path, nil, &data)
	if err != nil {
		return nil, nil, err
	}
	return c.adaptBlogs(data), pg, nil
}

// GetBlog fetches a single post by slug.
func (c *Client) GetBlog(ctx context.Context, slug string) (Blog, error) {
	var data wireBlog
	_, err := c.do(ctx, http.MethodGet, "/blog/"+url.PathEscape(slug), nil, &data)
	if err != nil {
		return Blog{}, err
	}
	return c.adaptBlog(data), nil
}

// MyBlogs fetches a page of the current user's posts, drafts included.
func (c *Client) MyBlogs(ctx context.Context, page int) ([]Blog, *Pagination, error) {
	path := "/blog/my-blogs"
	if page > 0 {
		path += "?page=" + fmt.Sprint(page)
	}
	var data []wireBlog
	pg, err := c.do(ctx, http.MethodGet, path, nil, &data)
	if err != nil {
		return nil, nil, err
	}
	return c.adaptBlogs(data), pg, nil
}

// CreateBlog publishes or drafts a new post.
func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (Blog, error) {
	var data wireBlog
	_, err := c.do(ctx, http.MethodPost, "/blog", in, &data)
	if err != nil {
		return Blog{}, err
	}
	return c.adaptBlog(data), nil
}

// UpdateBlog edits an existing post by slug.
func (c *Client) UpdateBlog(ctx context.Context, slug string, in BlogInput) (Blog, error) {
	var data wireBlog
	_, err := c.do(ctx, http.MethodPut, "/blog/"+url.PathEscape(slug), in, &data)
	if err != nil {
		return Blog{}, err
	}
	return c.adaptBlog(data), nil
}

// SearchTags returns tag suggestions for a query prefix.
func (c *Client) SearchTags(ctx context.Context, query string) ([]string, error) {
	var data []string
	_, err := c.do(ctx, http.MethodGet, "/blog/tags/search?q="+url.QueryEscape(query), nil, &data)
	if err != nil {
		return nil, err
	}
	return data, nil
}
