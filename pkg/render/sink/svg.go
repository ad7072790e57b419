package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	theme      styles.Theme
	labels     bool
	background bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithLabels controls whether node text is drawn (default true).
func WithLabels(show bool) SVGOption { return func(r *svgRenderer) { r.labels = show } }

// WithBackground fills the canvas with the theme's background color.
func WithBackground() SVGOption { return func(r *svgRenderer) { r.background = true } }

// RenderSVG renders the model as a standalone SVG document.
func RenderSVG(m radial.Model, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		m.Width, m.Height, m.Width, m.Height)
	r.style.RenderDefs(&buf, r.theme)
	if r.background {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" style="fill: var(--background)"/>`+"\n")
	}

	for _, c := range m.Connectors {
		r.style.RenderConnector(&buf, connector(c))
	}
	nodes := buildNodes(m)
	for _, n := range nodes {
		r.style.RenderNode(&buf, n)
	}
	if r.labels {
		for _, n := range nodes {
			r.style.RenderLabel(&buf, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Animated{}, theme: styles.Night, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func connector(c radial.Connector) styles.Connector {
	animated := c.Animated
	return styles.Connector{
		X1: c.From.X, Y1: c.From.Y,
		X2: c.To.X, Y2: c.To.Y,
		Color:    c.Color,
		Width:    styles.ConnectorWidth(animated),
		Opacity:  styles.ConnectorOpacity(animated),
		Animated: animated,
	}
}

// buildNodes returns the center, primary and secondary nodes in paint order.
// Children with an unknown parent are skipped; see [radial.Model.Validate].
func buildNodes(m radial.Model) []styles.Node {
	nodes := make([]styles.Node, 0, 1+len(m.Primary)+len(m.Secondary))
	nodes = append(nodes, styles.Node{
		ID:    "central",
		Label: m.Title,
		Color: radial.ColorPrimary,
		Kind:  styles.KindCenter,
		CX:    m.Center.X,
		CY:    m.Center.Y,
		R:     styles.Radius(styles.KindCenter),
	})
	for _, p := range m.Primary {
		nodes = append(nodes, styles.Node{
			ID:    string(p.ID),
			Label: p.Label,
			Color: p.Color,
			Kind:  styles.KindPrimary,
			CX:    p.X,
			CY:    p.Y,
			R:     styles.Radius(styles.KindPrimary),
		})
	}
	for _, c := range m.Secondary {
		if c.ParentIndex < 0 || c.ParentIndex >= len(m.Primary) {
			continue
		}
		nodes = append(nodes, styles.Node{
			ID:    fmt.Sprintf("%s-%s", m.Primary[c.ParentIndex].ID, c.ID),
			Label: c.Label,
			Color: c.Color,
			Kind:  styles.KindSecondary,
			CX:    c.X,
			CY:    c.Y,
			R:     styles.Radius(styles.KindSecondary),
		})
	}
	return nodes
}
