package mindmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque node identifier. It decodes from a JSON string or number
// and always encodes as a string, so "7" and 7 name the same node.
type ID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %s", data)
		}
		*id = ID(canonicalNumber(n))
		return nil
	}
}

// canonicalNumber renders integral numbers without exponent or fraction so
// 1, 1.0 and 1e0 all become "1".
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// MindMap is the root of a mind map: a title and a ring of primary nodes.
// Node order is significant; the layout derives angles from it.
type MindMap struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
}

// Node is a primary ("ring") node.
type Node struct {
	ID       ID      `json:"id"`
	Label    string  `json:"label"`
	Color    string  `json:"color,omitempty"`
	Children []Child `json:"children"`
}

// Child is a secondary node fanned around its parent.
type Child struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Stats summarizes the size of a mind map.
type Stats struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
}

// Stats counts primary and secondary nodes.
func (m MindMap) Stats() Stats {
	s := Stats{Primary: len(m.Nodes)}
	for _, n := range m.Nodes {
		s.Secondary += len(n.Children)
	}
	return s
}

// Clone returns a deep copy of m.
func (m MindMap) Clone() MindMap {
	out := MindMap{Title: m.Title, Nodes: make([]Node, len(m.Nodes))}
	for i, n := range m.Nodes {
		n.Children = append([]Child(nil), n.Children...)
		out.Nodes[i] = n
	}
	return out
}
