package blogview

import "github.com/quillpad/quill/internal/api"

// CollapseState tracks collapsed comment IDs. Local-only UI state,
// never persisted.
type CollapseState map[string]bool

// Visible reports whether a comment may appear in output for the
// given viewer. A hidden comment is visible only to its author; the
// rule applies at the node level, so callers still walk the children
// of an invisible node.
func Visible(c *api.Comment, viewerID string) bool {
	if c.Status == api.StatusHidden {
		return viewerID != "" && c.Author.ID == viewerID
	}
	return true
}

// Placeholder returns the substitute content for moderated nodes, or
// empty when the real content should render.
func Placeholder(c *api.Comment) string {
	switch c.Status {
	case api.StatusDeleted:
		return "[deleted]"
	case api.StatusHidden:
		return "[hidden - under review]"
	}
	return ""
}

// Flatten converts the nested comment tree into a flat display list
// using an explicit stack, so tree depth never grows the call stack.
// Invisible nodes are omitted but their subtrees are still walked;
// collapsed nodes keep their own row and drop their subtree from
// output, counting it for the [+N] badge instead.
func Flatten(roots []api.Comment, viewerID string, cs CollapseState) []FlatComment {
	var result []FlatComment

	type frame struct {
		node  *api.Comment
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{&roots[i], 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if Visible(f.node, viewerID) {
			collapsed := cs[f.node.ID]
			result = append(result, FlatComment{
				Comment:    f.node,
				Depth:      f.depth,
				Collapsed:  collapsed,
				ChildCount: countVisible(f.node, viewerID),
			})
			if collapsed {
				continue
			}
		}

		for i := len(f.node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{&f.node.Replies[i], f.depth + 1})
		}
	}
	return result
}

// countVisible counts the descendants of c that would render for this
// viewer.
func countVisible(c *api.Comment, viewerID string) int {
	count := 0
	stack := make([]*api.Comment, 0, len(c.Replies))
	for i := range c.Replies {
		stack = append(stack, &c.Replies[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if Visible(n, viewerID) {
			count++
		}
		for i := range n.Replies {
			stack = append(stack, &n.Replies[i])
		}
	}
	return count
}

// FindParentIndex returns the index of the comment one level up from
// the current one in the flat list.
func FindParentIndex(comments []FlatComment, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(comments) {
		return -1
	}
	depth := comments[currentIdx].Depth
	for i := currentIdx - 1; i >= 0; i-- {
		if comments[i].Depth < depth {
			return i
		}
	}
	return -1
}
