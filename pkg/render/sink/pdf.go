package sink

import (
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/render"
)

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(m radial.Model, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(m, opts...))
}
