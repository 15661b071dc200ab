package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain text untouched", "no markup here", "no markup here"},
		{"tags removed", "<p>Hello <b>world</b></p>", "Hello world"},
		{"whitespace collapsed", "<div>\n  spaced\n\n  out  </div>", "spaced out"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripHTML(tc.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "hello", Excerpt("hello", 10))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		got := Excerpt(strings.Repeat("word ", 50), 20)
		assert.True(t, strings.HasSuffix(got, "…"))
		assert.LessOrEqual(t, len([]rune(got)), 21)
	})

	t.Run("truncation counts runes", func(t *testing.T) {
		got := Excerpt(strings.Repeat("é", 30), 10)
		assert.Equal(t, strings.Repeat("é", 10)+"…", got)
	})
}

func TestTimeAgo(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"months", now.Add(-45 * 24 * time.Hour), "1mo ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2y ago"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(tc.t))
		})
	}
}

func TestWrapText(t *testing.T) {
	t.Run("wraps at width", func(t *testing.T) {
		got := WrapText("one two three four five", 9)
		for _, line := range strings.Split(got, "\n") {
			assert.LessOrEqual(t, len(line), 9)
		}
		assert.Equal(t, "one two three four five",
			strings.Join(strings.Fields(got), " "), "no words lost")
	})

	t.Run("zero width passes through", func(t *testing.T) {
		assert.Equal(t, "anything at all", WrapText("anything at all", 0))
	})

	t.Run("long word kept whole", func(t *testing.T) {
		got := WrapText("supercalifragilistic", 5)
		assert.Equal(t, "supercalifragilistic", got)
	})

	t.Run("blank lines preserved", func(t *testing.T) {
		got := WrapText("para one\n\npara two", 80)
		assert.Equal(t, "para one\n\npara two", got)
	})
}

func TestMarkdownFallback(t *testing.T) {
	// A tiny width is clamped rather than failing.
	out := Markdown("# Title", 1)
	assert.NotEmpty(t, out)
}
