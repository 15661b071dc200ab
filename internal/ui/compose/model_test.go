package compose

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpad/quill/internal/ui/messages"
)

func TestValidateContent(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		content, problem := ValidateContent("  hello  \n", 500)
		assert.Empty(t, problem)
		assert.Equal(t, "hello", content)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, problem := ValidateContent("", 500)
		assert.NotEmpty(t, problem)
	})

	t.Run("whitespace only rejected", func(t *testing.T) {
		_, problem := ValidateContent("   \n\t ", 500)
		assert.NotEmpty(t, problem)
	})

	t.Run("limit is runes, not bytes", func(t *testing.T) {
		// 500 multibyte runes are fine even though they exceed 500 bytes.
		content, problem := ValidateContent(strings.Repeat("é", 500), 500)
		assert.Empty(t, problem)
		assert.Equal(t, 500, len([]rune(content)))

		_, problem = ValidateContent(strings.Repeat("é", 501), 500)
		assert.NotEmpty(t, problem)
	})

	t.Run("length checked after trimming", func(t *testing.T) {
		// 500 content runes plus padding still passes.
		_, problem := ValidateContent("  "+strings.Repeat("x", 500)+"  ", 500)
		assert.Empty(t, problem)
	})
}

func TestSubmit(t *testing.T) {
	ctrlS := tea.KeyMsg{Type: tea.KeyCtrlS}

	t.Run("invalid draft never reaches the network", func(t *testing.T) {
		m := New("my-post", "", 500, nil)
		m.textarea.SetValue(strings.Repeat("x", 501))

		m, cmd := m.Update(ctrlS)
		assert.Nil(t, cmd, "no request command for an over-limit draft")
		assert.Contains(t, m.err, "too long")
		assert.False(t, m.submitting)
	})

	t.Run("empty draft never reaches the network", func(t *testing.T) {
		m := New("my-post", "c1", 500, nil)
		m.textarea.SetValue("   ")

		m, cmd := m.Update(ctrlS)
		assert.Nil(t, cmd)
		assert.NotEmpty(t, m.err)
	})

	t.Run("valid draft produces a submit command", func(t *testing.T) {
		m := New("my-post", "", 500, nil)
		m.textarea.SetValue("a fine comment")

		m, cmd := m.Update(ctrlS)
		require.NotNil(t, cmd)
		assert.True(t, m.submitting)
		assert.Empty(t, m.err)
	})

	t.Run("failure keeps the draft and shows the backend message", func(t *testing.T) {
		m := New("my-post", "", 500, nil)
		m.textarea.SetValue("a fine comment")
		m, _ = m.Update(ctrlS)

		m, _ = m.Update(messages.CommentPostedMsg{
			Slug: "my-post",
			Err:  errors.New("Comments are locked on this post"),
		})
		assert.Equal(t, "Comments are locked on this post", m.err)
		assert.Equal(t, "a fine comment", m.textarea.Value(), "draft survives a failed submit")
		assert.False(t, m.submitting)
	})

	t.Run("success clears the draft", func(t *testing.T) {
		m := New("my-post", "", 500, nil)
		m.textarea.SetValue("a fine comment")
		m, _ = m.Update(ctrlS)

		m, _ = m.Update(messages.CommentPostedMsg{Slug: "my-post"})
		assert.Empty(t, m.textarea.Value())
		assert.Empty(t, m.err)
	})
}
