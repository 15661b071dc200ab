package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/ui/messages"
)

func testModel() Model {
	m := New(config.Default(), nil, nil)
	m.SetSize(100, 40)
	return m
}

func loaded(page int, tag string, pages int, slugs ...string) messages.BlogsLoadedMsg {
	blogs := make([]api.Blog, len(slugs))
	for i, s := range slugs {
		blogs[i] = api.Blog{Slug: s, Title: s}
	}
	return messages.BlogsLoadedMsg{
		Page:       page,
		Tag:        tag,
		Blogs:      blogs,
		Pagination: &api.Pagination{Page: page, Pages: pages},
	}
}

func TestFeedAccumulation(t *testing.T) {
	m := testModel()

	m, _ = m.Update(loaded(1, "", 3, "a", "b"))
	require.Len(t, m.blogs, 2)

	t.Run("later pages append", func(t *testing.T) {
		m, _ = m.Update(loaded(2, "", 3, "c"))
		assert.Equal(t, 2, m.page)
		require.Len(t, m.blogs, 3)
		assert.Equal(t, "c", m.blogs[2].Slug)
	})

	t.Run("page one replaces", func(t *testing.T) {
		m, _ = m.Update(loaded(1, "", 3, "x"))
		require.Len(t, m.blogs, 1)
		assert.Equal(t, "x", m.blogs[0].Slug)
	})
}

func TestFeedTagFilter(t *testing.T) {
	t.Run("selecting a tag resets to page one and clears the list", func(t *testing.T) {
		m := testModel()
		m, _ = m.Update(loaded(1, "", 3, "a", "b"))
		m, _ = m.Update(loaded(2, "", 3, "c"))
		require.Len(t, m.blogs, 3)

		m, cmd := m.applyTag("cats")
		assert.Equal(t, "cats", m.ActiveTag())
		assert.Equal(t, 1, m.page)
		assert.Empty(t, m.blogs)
		assert.NotNil(t, cmd, "filter change refetches")
	})

	t.Run("stale response for another filter is dropped", func(t *testing.T) {
		m := testModel()
		m.activeTag = "cats"
		m, _ = m.Update(loaded(1, "cats", 1, "cat-post"))
		require.Len(t, m.blogs, 1)

		// An unfiltered page-2 response arriving late must not clobber
		// the filtered list.
		m, _ = m.Update(loaded(2, "", 3, "old-a", "old-b"))
		require.Len(t, m.blogs, 1)
		assert.Equal(t, "cat-post", m.blogs[0].Slug)
	})

	t.Run("clearing the filter resets too", func(t *testing.T) {
		m := testModel()
		m.activeTag = "cats"
		m, _ = m.Update(loaded(1, "cats", 1, "cat-post"))

		m, cmd := m.applyTag("")
		assert.Empty(t, m.ActiveTag())
		assert.Empty(t, m.blogs)
		assert.NotNil(t, cmd)
	})
}

func TestFeedErrorKeepsList(t *testing.T) {
	m := testModel()
	m, _ = m.Update(loaded(1, "", 3, "a", "b"))

	m, cmd := m.Update(messages.BlogsLoadedMsg{Page: 2, Err: assert.AnError})
	require.Len(t, m.blogs, 2, "a failed page load keeps what is shown")
	require.NotNil(t, cmd)
	status, ok := cmd().(messages.StatusMsg)
	require.True(t, ok)
	assert.True(t, status.IsError)
}

func TestTagSuggestions(t *testing.T) {
	m := testModel()
	m.searching = true
	m.searchInput.SetValue("go")

	t.Run("matching query lands", func(t *testing.T) {
		m, _ = m.Update(messages.TagResultsMsg{Query: "go", Tags: []string{"go", "golang"}})
		assert.Equal(t, []string{"go", "golang"}, m.suggestions)
	})

	t.Run("stale query is ignored", func(t *testing.T) {
		m, _ = m.Update(messages.TagResultsMsg{Query: "g", Tags: []string{"graphs"}})
		assert.Equal(t, []string{"go", "golang"}, m.suggestions)
	})

	t.Run("results capped", func(t *testing.T) {
		many := make([]string, 50)
		for i := range many {
			many[i] = "tag"
		}
		m, _ = m.Update(messages.TagResultsMsg{Query: "go", Tags: many})
		assert.LessOrEqual(t, len(m.suggestions), config.Default().MaxTagResults)
	})
}
