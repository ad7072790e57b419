// Package mindmap defines the content model consumed by the radial layout
// engine: a titled root, a ring of primary nodes and, per primary node, an
// ordered fan of secondary children.
//
// # Input Boundary
//
// Mind maps usually arrive as JSON produced by a content-generation service:
//
//	{ "title": "Photosynthesis",
//	  "nodes": [ { "id": "node_1", "label": "Light", "color": "#FF6B6B",
//	               "children": [ { "id": "node_1_1", "label": "Chlorophyll" } ] } ] }
//
// Decoding is permissive. Missing "nodes" or "children" become empty
// sequences, a missing "color" stays empty so the layout engine applies its
// defaults, and IDs may be JSON strings or numbers (see [ID]).
//
// # Normalization
//
// [MindMap.Normalize] applies the title rules of the generator backend: an
// empty title becomes [DefaultTitle] and long titles are shortened with an
// ellipsis. [MindMap.Validate] checks ID uniqueness.
//
// # Fallback Outlines
//
// [Outline] derives a flat mind map from plain text when no generator is
// available, mirroring the backend's fallback behavior.
package mindmap
