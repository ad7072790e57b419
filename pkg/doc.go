// Package pkg provides the libraries behind the mindmap tool.
//
// # Overview
//
// A mind map is a title with a ring of primary nodes, each of which may fan out
// into secondary nodes. The packages are organized as:
//
//  1. [mindmap] - Content model, JSON decoding, normalization, outline fallback
//  2. [layout/radial] - The radial layout engine (pure geometry)
//  3. [render] - Styles, themes and output sinks (SVG, JSON, PNG, PDF, DOT)
//  4. [pipeline] - Orchestration (decode → layout → render) with caching
//  5. [cache], [storage] - Infrastructure backends (file, Redis, MongoDB)
//  6. [integrations] - HTTP client for the mind-map generation service
//
// # Architecture
//
//	MindMap JSON (file, API, generator)
//	         ↓
//	    [mindmap] package (decode, normalize, validate)
//	         ↓
//	    [layout/radial] package (positions and connectors)
//	         ↓
//	    [render/sink] or [render/nodelink] (artifacts)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	m, _ := mindmap.ReadFile("photosynthesis.json")
//
//	model, err := radial.Compute(m, 800, 650)
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(model, sink.WithTheme(styles.Day))
//
// Or through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, m, pipeline.Options{Formats: []string{"svg", "json"}})
package pkg
