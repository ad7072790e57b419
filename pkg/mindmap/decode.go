package mindmap

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Decode reads a mind map JSON document from r.
//
// Missing "nodes" and "children" decode as empty sequences rather than nil so
// downstream code never has to distinguish the two. Unknown fields (such as
// the generator's "level") are ignored. Syntax errors are reported as
// [errors.ErrCodeInvalidInput].
func Decode(r io.Reader) (MindMap, error) {
	var m MindMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return MindMap{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode mind map")
	}
	m.fillEmpty()
	return m, nil
}

// Parse decodes a mind map from a byte slice. See [Decode].
func Parse(data []byte) (MindMap, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes a mind map from the JSON file at path.
func ReadFile(path string) (MindMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return MindMap{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Marshal encodes m as indented JSON.
func Marshal(m MindMap) ([]byte, error) {
	m.fillEmpty()
	return json.MarshalIndent(m, "", "  ")
}

func (m *MindMap) fillEmpty() {
	if m.Nodes == nil {
		m.Nodes = []Node{}
	}
	for i := range m.Nodes {
		if m.Nodes[i].Children == nil {
			m.Nodes[i].Children = []Child{}
		}
	}
}
