package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// RenderFromLayout renders every requested format without caching.
// Options must already be validated; the model is checked here since it may
// come from a file.
func RenderFromLayout(ctx context.Context, model radial.Model, opts Options) (map[string][]byte, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	style, ok := styles.ByName(opts.Style)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", opts.Style)
	}
	theme, ok := styles.ThemeByName(opts.Theme)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", opts.Theme)
	}

	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithTheme(theme),
		sink.WithLabels(!opts.HideLabels),
	}
	if opts.Background {
		svgOpts = append(svgOpts, sink.WithBackground())
	}
	dot := nodelink.ToDOT(model, nodelink.Options{Theme: theme})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch {
		case format == FormatJSON:
			data, err = sink.RenderJSON(model, sink.WithJSONStyle(opts.Style), sink.WithJSONTheme(opts.Theme))
		case format == FormatDOT:
			data = []byte(dot)
		case opts.IsNodelink():
			data, err = renderNodelink(ctx, dot, format, opts.Scale)
		case format == FormatSVG:
			data = sink.RenderSVG(model, svgOpts...)
		case format == FormatPNG:
			data, err = sink.RenderPNG(model, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case format == FormatPDF:
			data, err = sink.RenderPDF(model, svgOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderNodelink(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
}
