package blogview

import "github.com/quillpad/quill/internal/api"

// FlatComment is a comment flattened from the tree for display.
type FlatComment struct {
	*api.Comment
	Depth      int
	Collapsed  bool
	ChildCount int
}
