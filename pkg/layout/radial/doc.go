// Package radial computes radial mind-map layouts.
//
// # Overview
//
// A mind map is a tree of depth at most two: a title at the center, a ring of
// primary nodes around it, and for every primary node a fan of secondary
// children on an outer ring. [Compute] turns a [mindmap.MindMap] into a
// [Model] holding every position plus the connector segments between parent
// and child. Renderers in pkg/render consume the model; they never recompute
// geometry.
//
// # Geometry
//
// For a canvas of width W and height H:
//
//   - center c = (W/2, H/2)
//   - ring radius R = [RingRatio]·W
//   - child radius R + Δr with Δr = [ChildOffsetRatio]·W
//   - primary i of n sits at angle θᵢ = 2π·i/n
//   - child j of m under primary i sits at θᵢ + (j − (m−1)/2)·[AngularSpread]
//
// The child fan is symmetric around its parent: a single child lies exactly
// on the parent's angle, two children straddle it at ±Δ/2, and so on.
//
// Angles follow the math convention: 0 points along +x and angles grow
// counter-clockwise, with positions computed directly from cos and sin. The
// engine does not flip the y axis; a renderer whose origin is top-left draws
// the same picture mirrored, exactly as the original browser client did.
//
// # Connectors
//
// Each primary gets a connector from the center with [ColorPrimary] and the
// Animated flag set. Each child gets a connector from its parent colored with
// the parent's color, or [ColorSecondary] when the parent has none.
//
// # Purity
//
// [Compute] is a pure function of its arguments. It holds no state, performs
// no I/O and is safe for concurrent use. Identical input yields identical
// output, in a stable order.
package radial
