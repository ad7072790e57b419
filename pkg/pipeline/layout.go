package pipeline

import (
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// PrepareMap returns the normalized copy of m that layouts are computed
// from, or an INVALID_INPUT error for duplicate identifiers.
func PrepareMap(m mindmap.MindMap) (mindmap.MindMap, error) {
	work := m.Clone()
	work.Normalize()
	if err := work.Validate(); err != nil {
		return mindmap.MindMap{}, err
	}
	return work, nil
}

// GenerateLayout computes the radial model of m without caching. Both
// visualizations share it; nodelink pins Graphviz nodes to its positions.
func GenerateLayout(m mindmap.MindMap, opts Options) (radial.Model, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return radial.Model{}, err
	}
	work, err := PrepareMap(m)
	if err != nil {
		return radial.Model{}, err
	}
	return radial.Compute(work, opts.Width, opts.Height)
}
