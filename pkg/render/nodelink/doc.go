// Package nodelink renders radial layouts through Graphviz.
//
// # Overview
//
// [ToDOT] converts a computed [radial.Model] into Graphviz DOT source with
// every node pinned at its computed position, so the neato engine draws the
// same picture as the native SVG sink. The DOT text is useful on its own for
// post-processing with external Graphviz tools.
//
// # Usage
//
//	dot := nodelink.ToDOT(model, nodelink.Options{Theme: styles.Night})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output go through [RenderPDF] and [RenderPNG], which require
// librsvg (rsvg-convert).
//
// CSS color hints in the model are resolved with the configured theme because
// Graphviz cannot evaluate custom properties.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
