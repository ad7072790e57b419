package styles

import "bytes"

// Style defines the visual appearance of a rendered mind map.
type Style interface {
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer, t Theme)
	// RenderConnector writes one connector line.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderNode writes the shape of one node.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderLabel writes the text of one node.
	RenderLabel(buf *bytes.Buffer, n Node)
}

// Kind tells a style which ring a node belongs to.
type Kind int

const (
	KindCenter Kind = iota
	KindPrimary
	KindSecondary
)

// Node contains all data needed to paint a single node.
type Node struct {
	ID     string  // element identifier, unique within the document
	Label  string  // display text
	Color  string  // fill color or CSS variable
	Kind   Kind    // ring membership
	CX, CY float64 // center
	R      float64 // radius
}

// Connector contains positioning and styling hints for one line.
type Connector struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Opacity        float64
	Animated       bool
}

// Radius returns the node radius used for k.
func Radius(k Kind) float64 {
	switch k {
	case KindCenter:
		return 62
	case KindPrimary:
		return 46
	default:
		return 34
	}
}

// ConnectorWidth and ConnectorOpacity return the stroke settings for ring
// connectors (animated) and child connectors.
func ConnectorWidth(animated bool) float64 {
	if animated {
		return 3
	}
	return 2
}

func ConnectorOpacity(animated bool) float64 {
	if animated {
		return 0.7
	}
	return 0.6
}

// ByName returns the style registered under name ("simple" or "animated").
func ByName(name string) (Style, bool) {
	switch name {
	case "simple":
		return Simple{}, true
	case "animated":
		return Animated{}, true
	}
	return nil, false
}
