// Package styles defines how radial mind maps are painted.
//
// # Overview
//
// A [Style] writes SVG fragments for the pieces of a mind map: definitions,
// connectors, node shapes and labels. Two styles ship with the package:
//
//   - [Simple]: static output; animated connectors are drawn dashed
//   - [Animated]: dashed connectors additionally scroll along their length,
//     matching the browser client's look
//
// # Themes
//
// Color hints in a layout may be CSS custom properties such as
// "var(--primary)". A [Theme] declares those properties for SVG output
// ([Theme.CSS]) and resolves them to concrete colors for outputs that cannot
// evaluate CSS, such as Graphviz ([Theme.Resolve]). [Night] is the default;
// [Day] is the light variant.
package styles
