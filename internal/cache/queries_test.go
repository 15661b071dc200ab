package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpad/quill/internal/api"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, PageKey(1, "", ""), PageKey(1, "", ""))
	assert.NotEqual(t, PageKey(1, "", ""), PageKey(2, "", ""))
	assert.NotEqual(t, PageKey(1, "", "cats"), PageKey(1, "", "dogs"))
	assert.NotEqual(t, PageKey(1, "published", ""), PageKey(1, "draft", ""))
}

func TestBlogCache(t *testing.T) {
	db := testDB(t)

	t.Run("miss", func(t *testing.T) {
		blog, ok, err := db.GetBlog("nope", time.Hour)
		require.NoError(t, err)
		assert.Nil(t, blog)
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		want := &api.Blog{
			Slug:   "hello",
			Title:  "Hello World",
			Tags:   []string{"go", "tui"},
			Author: api.User{ID: "u1", Username: "ada"},
		}
		require.NoError(t, db.PutBlog(want))

		got, ok, err := db.GetBlog("hello", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("expired entry is returned stale", func(t *testing.T) {
		require.NoError(t, db.PutBlog(&api.Blog{Slug: "old", Title: "Old"}))

		got, ok, err := db.GetBlog("old", -time.Second)
		require.NoError(t, err)
		require.NotNil(t, got, "stale data still usable while revalidating")
		assert.False(t, ok)
	})

	t.Run("put replaces", func(t *testing.T) {
		require.NoError(t, db.PutBlog(&api.Blog{Slug: "hello", Title: "Updated"}))
		got, _, err := db.GetBlog("hello", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.Title)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, db.InvalidateBlog("hello"))
		got, _, err := db.GetBlog("hello", time.Hour)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestBlogPageCache(t *testing.T) {
	db := testDB(t)
	pg := &api.Pagination{Page: 1, Limit: 10, Total: 25, Pages: 3}
	blogs := []api.Blog{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}}

	key := PageKey(1, "", "cats")
	require.NoError(t, db.PutBlogPage(key, blogs, pg))

	t.Run("round trip with pagination", func(t *testing.T) {
		got, gotPg, ok, err := db.GetBlogPage(key, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, blogs, got)
		assert.Equal(t, pg, gotPg)
	})

	t.Run("nil pagination round trips", func(t *testing.T) {
		key2 := PageKey(2, "", "")
		require.NoError(t, db.PutBlogPage(key2, blogs, nil))

		_, gotPg, _, err := db.GetBlogPage(key2, time.Hour)
		require.NoError(t, err)
		assert.Nil(t, gotPg)
	})

	t.Run("invalidate drops every page", func(t *testing.T) {
		require.NoError(t, db.InvalidateBlogPages())
		got, _, _, err := db.GetBlogPage(key, time.Hour)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCommentCache(t *testing.T) {
	db := testDB(t)
	pg := &api.Pagination{Page: 1, Limit: 50, Total: 2, Pages: 1}
	tree := []api.Comment{
		{
			ID:     "c1",
			Status: api.StatusActive,
			Author: api.User{ID: "u1", Username: "ada"},
			Replies: []api.Comment{
				{ID: "c2", Depth: 1, Status: api.StatusHidden},
			},
		},
	}

	require.NoError(t, db.PutComments("hello", tree, pg))

	t.Run("tree survives round trip", func(t *testing.T) {
		got, gotPg, ok, err := db.GetComments("hello", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tree, got)
		assert.Equal(t, pg, gotPg)
	})

	t.Run("invalidate is per blog", func(t *testing.T) {
		require.NoError(t, db.PutComments("other", tree, nil))
		require.NoError(t, db.InvalidateComments("hello"))

		got, _, _, err := db.GetComments("hello", time.Hour)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, _, _, err = db.GetComments("other", time.Hour)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}
