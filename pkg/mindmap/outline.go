package mindmap

import (
	"fmt"
	"strings"
)

const (
	outlineMaxNodes      = 4
	outlineMinSentence   = 10
	outlineMaxLabel      = 30
	outlineSentenceLimit = 6
)

// OutlineColors is the palette cycled through by [Outline].
var OutlineColors = []string{"#FF6B6B", "#4ECDC4", "#FFE66D", "#95E1D3"}

// Outline builds a flat mind map from plain text. The text is split into
// sentences on '.', sentences of 10 characters or fewer are dropped, and the
// first four become primary nodes "node_1".."node_4" with labels capped at
// 30 characters. Nodes have no children. Empty text yields a map with only
// the default title.
func Outline(text string) MindMap {
	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if len([]rune(s)) > outlineMinSentence {
			sentences = append(sentences, s)
		}
		if len(sentences) == outlineSentenceLimit {
			break
		}
	}

	m := MindMap{Title: DefaultTitle, Nodes: []Node{}}
	for i, s := range sentences {
		if i == outlineMaxNodes {
			break
		}
		m.Nodes = append(m.Nodes, Node{
			ID:       ID(fmt.Sprintf("node_%d", i+1)),
			Label:    truncate(s, outlineMaxLabel),
			Color:    OutlineColors[i%len(OutlineColors)],
			Children: []Child{},
		})
	}
	return m
}
