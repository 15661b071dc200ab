package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders a markdown body for the terminal at the given
// width. Falls back to the raw text if the renderer cannot be built
// or chokes on the input.
func Markdown(src string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
