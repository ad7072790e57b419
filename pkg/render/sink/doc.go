// Package sink writes computed radial layouts to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG document; the theme's CSS custom properties
//     are declared in an embedded <style> so color hints such as
//     "var(--primary)" resolve without a host page
//   - [RenderJSON]: the layout model plus percent coordinates for HTML clients
//   - [RenderPNG] and [RenderPDF]: SVG converted with rsvg-convert
//
// Connectors are drawn first so nodes cover line ends; the central title
// node comes next, then the primary ring and finally the children.
package sink
