package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAssetURL(t *testing.T) {
	const base = "https://cdn.example.com/assets/"

	tests := []struct {
		name, raw, want string
	}{
		{"empty stays empty", "", ""},
		{"absolute passes through", "https://other.example.com/a.png", "https://other.example.com/a.png"},
		{"relative resolves against base", "avatars/ada.png", "https://cdn.example.com/assets/avatars/ada.png"},
		{"rooted path replaces base path", "/uploads/cover.jpg", "https://cdn.example.com/uploads/cover.jpg"},
		{"unparseable falls back to original", "https://%zz", "https://%zz"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveAssetURL(base, tc.raw))
		})
	}
}

func TestParseTime(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got := parseTime("2026-03-01T12:30:00Z")
		assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), got)
	})
	t.Run("garbage is zero", func(t *testing.T) {
		assert.True(t, parseTime("yesterday").IsZero())
		assert.True(t, parseTime("").IsZero())
	})
}

func TestAdaptComment(t *testing.T) {
	c := &Client{assetBase: "https://cdn.example.com"}

	t.Run("depth normalized from parent", func(t *testing.T) {
		w := wireComment{
			ID:     "c1",
			Depth:  42, // wire value is not trusted
			Status: "active",
			Replies: []wireComment{
				{ID: "c2", Depth: 0, Status: "active", Replies: []wireComment{
					{ID: "c3", Depth: 7, Status: "active"},
				}},
			},
		}

		got := c.adaptComment(w, 0)
		assert.Equal(t, 0, got.Depth)
		require.Len(t, got.Replies, 1)
		assert.Equal(t, 1, got.Replies[0].Depth)
		require.Len(t, got.Replies[0].Replies, 1)
		assert.Equal(t, 2, got.Replies[0].Replies[0].Depth)
	})

	t.Run("moderation only when present", func(t *testing.T) {
		plain := c.adaptComment(wireComment{ID: "c1", Status: "active"}, 0)
		assert.Nil(t, plain.Moderation)

		hidden := c.adaptComment(wireComment{
			ID:               "c2",
			Status:           "hidden",
			ModeratedBy:      "mod-1",
			ModeratedAt:      "2026-03-01T12:30:00Z",
			ModerationReason: "spam",
		}, 0)
		require.NotNil(t, hidden.Moderation)
		assert.Equal(t, "mod-1", hidden.Moderation.By)
		assert.Equal(t, "spam", hidden.Moderation.Reason)
	})

	t.Run("author avatar resolved", func(t *testing.T) {
		got := c.adaptComment(wireComment{
			ID:     "c1",
			Status: "active",
			Author: wireUser{ID: "u1", Username: "ada", Avatar: "/avatars/ada.png"},
		}, 0)
		assert.Equal(t, "https://cdn.example.com/avatars/ada.png", got.Author.AvatarURL)
	})
}
