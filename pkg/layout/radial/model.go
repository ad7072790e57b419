package radial

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// Point is a position in canvas units, math convention.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is a positioned primary node.
type Placement struct {
	ID    mindmap.ID `json:"id"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Angle float64    `json:"angle"`
	Point
}

// ChildPlacement is a positioned secondary node. ParentIndex indexes
// [Model.Primary].
type ChildPlacement struct {
	ID          mindmap.ID `json:"id"`
	ParentIndex int        `json:"parent_index"`
	Label       string     `json:"label"`
	Color       string     `json:"color"`
	Angle       float64    `json:"angle"`
	Point
}

// Level distinguishes the two kinds of connector.
type Level int

const (
	LevelPrimary   Level = 1 // center → primary
	LevelSecondary Level = 2 // primary → child
)

// Connector is a line segment between a parent and a child position.
// Animated marks edges drawn dashed and animated by renderers that can.
type Connector struct {
	From     Point  `json:"from"`
	To       Point  `json:"to"`
	Color    string `json:"color"`
	Animated bool   `json:"animated"`
	Level    Level  `json:"level"`
}

// Model is the render model produced by [Compute].
type Model struct {
	Title             string           `json:"title"`
	Width             float64          `json:"width"`
	Height            float64          `json:"height"`
	Center            Point            `json:"center"`
	RingRadius        float64          `json:"ring_radius"`
	ChildRadiusOffset float64          `json:"child_radius_offset"`
	Primary           []Placement      `json:"primary"`
	Secondary         []ChildPlacement `json:"secondary"`
	Connectors        []Connector      `json:"connectors"`
}

// Percent maps p to percentages of the canvas size, the coordinates an HTML
// renderer uses for absolutely positioned nodes.
func (m Model) Percent(p Point) (x, y float64) {
	return p.X / m.Width * 100, p.Y / m.Height * 100
}

// Children returns the secondary placements belonging to primary index i.
func (m Model) Children(i int) []ChildPlacement {
	var out []ChildPlacement
	for _, c := range m.Secondary {
		if c.ParentIndex == i {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks a model that did not come from [Compute], such as a layout
// file read back from disk. The canvas must be valid (INVALID_ARGUMENT), and
// every position finite, every ParentIndex in range and the connectors one
// per placement (INVALID_INPUT). Renderers assume a valid model.
func (m Model) Validate() error {
	if err := errors.ValidateCanvas(m.Width, m.Height); err != nil {
		return err
	}
	if !finite(m.Center) || !isFinite(m.RingRadius) || !isFinite(m.ChildRadiusOffset) {
		return errors.New(errors.ErrCodeInvalidInput, "layout center and radii must be finite")
	}
	for i, p := range m.Primary {
		if !finite(p.Point) || !isFinite(p.Angle) {
			return errors.New(errors.ErrCodeInvalidInput, "primary %d (%s): position must be finite", i, p.ID)
		}
	}
	for i, c := range m.Secondary {
		if c.ParentIndex < 0 || c.ParentIndex >= len(m.Primary) {
			return errors.New(errors.ErrCodeInvalidInput, "secondary %d (%s): parent_index %d out of range [0, %d)",
				i, c.ID, c.ParentIndex, len(m.Primary))
		}
		if !finite(c.Point) || !isFinite(c.Angle) {
			return errors.New(errors.ErrCodeInvalidInput, "secondary %d (%s): position must be finite", i, c.ID)
		}
	}

	var primary, secondary int
	for i, c := range m.Connectors {
		if !finite(c.From) || !finite(c.To) {
			return errors.New(errors.ErrCodeInvalidInput, "connector %d: endpoints must be finite", i)
		}
		switch c.Level {
		case LevelPrimary:
			primary++
		case LevelSecondary:
			secondary++
		default:
			return errors.New(errors.ErrCodeInvalidInput, "connector %d: unknown level %d", i, c.Level)
		}
	}
	if primary != len(m.Primary) || secondary != len(m.Secondary) {
		return errors.New(errors.ErrCodeInvalidInput, "connectors (%d primary, %d secondary) do not match placements (%d, %d)",
			primary, secondary, len(m.Primary), len(m.Secondary))
	}
	return nil
}

func finite(p Point) bool { return isFinite(p.X) && isFinite(p.Y) }

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
