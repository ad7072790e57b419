package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// pointsPerUnit scales canvas units to Graphviz points.
const pointsPerUnit = 1.0

// Options configures DOT generation.
type Options struct {
	// Theme resolves "var(--name)" colors. The zero value means [styles.Night].
	Theme styles.Theme
}

// ToDOT converts a radial layout to Graphviz DOT with pinned node positions.
// Graphviz's y axis points up, so canvas y is flipped.
func ToDOT(m radial.Model, opts Options) string {
	theme := opts.Theme
	if theme.Name == "" {
		theme = styles.Night
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", theme.Background)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, fontname=\"sans-serif\", fontcolor=%q, color=white, penwidth=2];\n", theme.Text)
	buf.WriteString("\n")

	pos := func(p radial.Point) string {
		return fmt.Sprintf("%.2f,%.2f!", p.X*pointsPerUnit, (m.Height-p.Y)*pointsPerUnit)
	}
	node := func(id, label, color string, k styles.Kind, p radial.Point) {
		diameter := 2 * styles.Radius(k) / 72
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, width=%.3f, fontsize=%.0f, pos=%q];\n",
			id, label, theme.Resolve(color), diameter, styles.FontSize(styles.Node{Kind: k}), pos(p))
	}

	const centralID = "__central__"
	node(centralID, m.Title, radial.ColorPrimary, styles.KindCenter, m.Center)
	ids := make([]string, len(m.Primary))
	for i, p := range m.Primary {
		ids[i] = "p:" + string(p.ID)
		node(ids[i], p.Label, p.Color, styles.KindPrimary, p.Point)
	}
	childIDs := make([]string, len(m.Secondary))
	for i, c := range m.Secondary {
		if c.ParentIndex < 0 || c.ParentIndex >= len(ids) {
			continue
		}
		childIDs[i] = ids[c.ParentIndex] + "/" + string(c.ID)
		node(childIDs[i], c.Label, c.Color, styles.KindSecondary, c.Point)
	}

	// Connectors come in placement order: level 1 edges pair with
	// m.Primary, level 2 edges with m.Secondary.
	buf.WriteString("\n")
	var primary, secondary int
	for _, c := range m.Connectors {
		var from, to string
		switch c.Level {
		case radial.LevelPrimary:
			if primary < len(ids) {
				from, to = centralID, ids[primary]
			}
			primary++
		case radial.LevelSecondary:
			if secondary < len(childIDs) && childIDs[secondary] != "" {
				from, to = ids[m.Secondary[secondary].ParentIndex], childIDs[secondary]
			}
			secondary++
		}
		if from == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", from, to, edgeAttrs(theme, c.Color, c.Animated))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(theme styles.Theme, color string, animated bool) string {
	attrs := []string{
		fmt.Sprintf("color=%q", theme.Resolve(color)),
		fmt.Sprintf("penwidth=%.0f", styles.ConnectorWidth(animated)),
	}
	if animated {
		attrs = append(attrs, `style="dashed"`)
	}
	return strings.Join(attrs, ", ")
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the SVG scales like the native sink's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
