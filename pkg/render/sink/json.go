package sink

import (
	"encoding/json"

	"github.com/matzehuels/mindmap/pkg/layout/radial"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	theme string
}

// WithJSONStyle records the style name in the output so a client can render
// the layout the same way.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONTheme records the theme name in the output.
func WithJSONTheme(t string) JSONOption { return func(r *jsonRenderer) { r.theme = t } }

type jsonOutput struct {
	Style string `json:"style,omitempty"`
	Theme string `json:"theme,omitempty"`
	radial.Model
	Percent jsonPercent `json:"percent"`
}

// jsonPercent repeats node positions as canvas percentages, in the same
// order as the model's placements.
type jsonPercent struct {
	Center    radial.Point   `json:"center"`
	Primary   []radial.Point `json:"primary"`
	Secondary []radial.Point `json:"secondary"`
}

// RenderJSON serializes the layout model with percent coordinates.
func RenderJSON(m radial.Model, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Style: r.style,
		Theme: r.theme,
		Model: m,
		Percent: jsonPercent{
			Center:    percent(m, m.Center),
			Primary:   make([]radial.Point, 0, len(m.Primary)),
			Secondary: make([]radial.Point, 0, len(m.Secondary)),
		},
	}
	for _, p := range m.Primary {
		out.Percent.Primary = append(out.Percent.Primary, percent(m, p.Point))
	}
	for _, c := range m.Secondary {
		out.Percent.Secondary = append(out.Percent.Secondary, percent(m, c.Point))
	}
	return json.MarshalIndent(out, "", "  ")
}

func percent(m radial.Model, p radial.Point) radial.Point {
	x, y := m.Percent(p)
	return radial.Point{X: x, Y: y}
}
