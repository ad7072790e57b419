// Package render provides visualization rendering for radial mind-map layouts.
//
// # Overview
//
// Rendering starts from a [radial.Model]; nothing in this tree recomputes
// geometry. The subpackages are:
//
//   - [sink]: output formats (SVG, JSON, PNG, PDF)
//   - [styles]: how nodes and connectors are painted, plus day/night themes
//   - [nodelink]: Graphviz DOT export with pinned node positions
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the radial SVG sink and
// the node-link renderer go through them.
//
//	svg := sink.RenderSVG(model)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [radial.Model]: github.com/matzehuels/mindmap/pkg/layout/radial.Model
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [styles]: github.com/matzehuels/mindmap/pkg/render/styles
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
