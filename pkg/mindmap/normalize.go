package mindmap

import (
	"github.com/matzehuels/mindmap/pkg/errors"
)

const (
	// DefaultTitle replaces an empty title.
	DefaultTitle = "Content Overview"

	// MaxTitleLength is the longest title kept verbatim, in characters.
	MaxTitleLength = 40

	// truncatedTitleLength is the prefix kept before the ellipsis.
	truncatedTitleLength = 37
)

// Normalize applies the title rules and replaces nil slices with empty ones.
// It never changes node order, IDs, labels or colors.
func (m *MindMap) Normalize() {
	switch {
	case m.Title == "":
		m.Title = DefaultTitle
	case len([]rune(m.Title)) > MaxTitleLength:
		m.Title = truncate(m.Title, truncatedTitleLength)
	}
	m.fillEmpty()
}

// Validate checks identifier uniqueness: primary IDs must be unique within
// the map and child IDs unique within their parent. Child IDs may repeat
// across different parents.
func (m MindMap) Validate() error {
	seen := make(map[ID]int, len(m.Nodes))
	for i, n := range m.Nodes {
		if prev, ok := seen[n.ID]; ok {
			return errors.New(errors.ErrCodeInvalidInput,
				"duplicate node id %q at positions %d and %d", n.ID, prev, i)
		}
		seen[n.ID] = i

		children := make(map[ID]struct{}, len(n.Children))
		for _, c := range n.Children {
			if _, ok := children[c.ID]; ok {
				return errors.New(errors.ErrCodeInvalidInput,
					"duplicate child id %q under node %q", c.ID, n.ID)
			}
			children[c.ID] = struct{}{}
		}
	}
	return nil
}

// truncate keeps the first n runes of s and appends "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
