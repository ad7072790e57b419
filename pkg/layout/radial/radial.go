package radial

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

const (
	// DefaultWidth and DefaultHeight match the original 800×650 viewBox.
	DefaultWidth  = 800.0
	DefaultHeight = 650.0

	// RingRatio is the primary ring radius as a fraction of canvas width
	// (220 units on an 800-wide canvas).
	RingRatio = 220.0 / 800.0

	// ChildOffsetRatio is the extra radius of the child ring as a fraction of
	// canvas width (140 units on an 800-wide canvas).
	ChildOffsetRatio = 140.0 / 800.0

	// AngularSpread is the angle in radians between adjacent siblings.
	AngularSpread = 0.8
)

// Color hints. CSS custom properties are resolved by the renderer's theme.
const (
	ColorPrimary   = "var(--primary)"
	ColorSecondary = "var(--secondary)"
	ColorChild     = "#2dd4bf"
)

// Compute lays out m on a width×height canvas.
//
// Width and height must be finite and positive; otherwise Compute returns an
// [errors.ErrCodeInvalidArgument] error and no model. An empty map is valid
// and yields only the center.
func Compute(m mindmap.MindMap, width, height float64) (Model, error) {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return Model{}, err
	}

	center := Point{X: width / 2, Y: height / 2}
	ring := RingRatio * width
	offset := ChildOffsetRatio * width
	outer := ring + offset

	stats := m.Stats()
	out := Model{
		Title:             m.Title,
		Width:             width,
		Height:            height,
		Center:            center,
		RingRadius:        ring,
		ChildRadiusOffset: offset,
		Primary:           make([]Placement, 0, len(m.Nodes)),
		Secondary:         make([]ChildPlacement, 0, stats.Secondary),
		Connectors:        make([]Connector, 0, stats.Primary+stats.Secondary),
	}

	n := len(m.Nodes)
	for i, node := range m.Nodes {
		theta := PrimaryAngle(i, n)
		pos := polar(center, ring, theta)

		out.Primary = append(out.Primary, Placement{
			ID:    node.ID,
			Label: node.Label,
			Color: orDefault(node.Color, ColorSecondary),
			Angle: theta,
			Point: pos,
		})
		out.Connectors = append(out.Connectors, Connector{
			From:     center,
			To:       pos,
			Color:    ColorPrimary,
			Animated: true,
			Level:    LevelPrimary,
		})

		edgeColor := orDefault(node.Color, ColorSecondary)
		for j, child := range node.Children {
			phi := theta + ChildOffset(j, len(node.Children))
			cpos := polar(center, outer, phi)

			out.Secondary = append(out.Secondary, ChildPlacement{
				ID:          child.ID,
				ParentIndex: i,
				Label:       child.Label,
				Color:       orDefault(child.Color, ColorChild),
				Angle:       phi,
				Point:       cpos,
			})
			out.Connectors = append(out.Connectors, Connector{
				From:  pos,
				To:    cpos,
				Color: edgeColor,
				Level: LevelSecondary,
			})
		}
	}
	return out, nil
}

// PrimaryAngle returns θᵢ = 2π·i/n. It returns 0 when n is 0.
func PrimaryAngle(i, n int) float64 {
	if n == 0 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}

// ChildOffset returns the angular offset of child j among m siblings,
// (j − (m−1)/2)·AngularSpread.
func ChildOffset(j, m int) float64 {
	return (float64(j) - float64(m-1)/2) * AngularSpread
}

func polar(c Point, r, theta float64) Point {
	return Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
}

func orDefault(color, fallback string) string {
	if color == "" {
		return fallback
	}
	return color
}
