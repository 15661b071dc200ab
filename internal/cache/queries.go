package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quillpad/quill/internal/api"
)

// PageKey builds the cache key for a feed page. Page, status filter
// and tag filter are all part of identity.
func PageKey(page int, status, tag string) string {
	return fmt.Sprintf("p=%d|s=%s|t=%s", page, status, tag)
}

// GetBlog retrieves a cached blog. Returns (blog, isFresh, error);
// nil blog on cache miss.
func (d *DB) GetBlog(slug string, ttl time.Duration) (*api.Blog, bool, error) {
	row := d.db.QueryRow(`SELECT data, fetched_at FROM blogs WHERE slug = ?`, slug)

	var raw string
	var fetchedAt int64
	err := row.Scan(&raw, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var blog api.Blog
	if err := json.Unmarshal([]byte(raw), &blog); err != nil {
		return nil, false, err
	}
	return &blog, fresh(fetchedAt, ttl), nil
}

// PutBlog stores a blog by slug.
func (d *DB) PutBlog(blog *api.Blog) error {
	raw, err := json.Marshal(blog)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT INTO blogs (slug, data, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		blog.Slug, string(raw), time.Now().Unix())
	return err
}

// InvalidateBlog drops a cached blog, forcing the next view to fetch.
func (d *DB) InvalidateBlog(slug string) error {
	_, err := d.db.Exec(`DELETE FROM blogs WHERE slug = ?`, slug)
	return err
}

// GetBlogPage retrieves a cached feed page.
func (d *DB) GetBlogPage(key string, ttl time.Duration) ([]api.Blog, *api.Pagination, bool, error) {
	row := d.db.QueryRow(`SELECT data, pagination, fetched_at FROM blog_pages WHERE page_key = ?`, key)

	var raw string
	var pgRaw sql.NullString
	var fetchedAt int64
	err := row.Scan(&raw, &pgRaw, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}

	var blogs []api.Blog
	if err := json.Unmarshal([]byte(raw), &blogs); err != nil {
		return nil, nil, false, err
	}
	pg := decodePagination(pgRaw)
	return blogs, pg, fresh(fetchedAt, ttl), nil
}

// PutBlogPage stores one feed page under its composite key.
func (d *DB) PutBlogPage(key string, blogs []api.Blog, pg *api.Pagination) error {
	raw, err := json.Marshal(blogs)
	if err != nil {
		return err
	}
	pgRaw := encodePagination(pg)
	_, err = d.db.Exec(`INSERT INTO blog_pages (page_key, data, pagination, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(page_key) DO UPDATE SET data = excluded.data, pagination = excluded.pagination, fetched_at = excluded.fetched_at`,
		key, string(raw), pgRaw, time.Now().Unix())
	return err
}

// InvalidateBlogPages drops all cached feed pages, e.g. after
// publishing a post.
func (d *DB) InvalidateBlogPages() error {
	_, err := d.db.Exec(`DELETE FROM blog_pages`)
	return err
}

// GetComments retrieves the cached comment tree for a blog.
func (d *DB) GetComments(slug string, ttl time.Duration) ([]api.Comment, *api.Pagination, bool, error) {
	row := d.db.QueryRow(`SELECT data, pagination, fetched_at FROM comment_trees WHERE blog_slug = ?`, slug)

	var raw string
	var pgRaw sql.NullString
	var fetchedAt int64
	err := row.Scan(&raw, &pgRaw, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}

	var comments []api.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil, nil, false, err
	}
	pg := decodePagination(pgRaw)
	return comments, pg, fresh(fetchedAt, ttl), nil
}

// PutComments stores the comment tree for a blog.
func (d *DB) PutComments(slug string, comments []api.Comment, pg *api.Pagination) error {
	raw, err := json.Marshal(comments)
	if err != nil {
		return err
	}
	pgRaw := encodePagination(pg)
	_, err = d.db.Exec(`INSERT INTO comment_trees (blog_slug, data, pagination, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(blog_slug) DO UPDATE SET data = excluded.data, pagination = excluded.pagination, fetched_at = excluded.fetched_at`,
		slug, string(raw), pgRaw, time.Now().Unix())
	return err
}

// InvalidateComments drops the cached tree for a blog. Every
// successful reply/delete/report calls this before re-fetching.
func (d *DB) InvalidateComments(slug string) error {
	_, err := d.db.Exec(`DELETE FROM comment_trees WHERE blog_slug = ?`, slug)
	return err
}

func fresh(fetchedAt int64, ttl time.Duration) bool {
	return time.Since(time.Unix(fetchedAt, 0)) < ttl
}

func encodePagination(pg *api.Pagination) string {
	if pg == nil {
		return ""
	}
	raw, err := json.Marshal(pg)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodePagination(raw sql.NullString) *api.Pagination {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var pg api.Pagination
	if err := json.Unmarshal([]byte(raw.String), &pg); err != nil {
		return nil
	}
	return &pg
}
