// Package pipeline runs mind maps through layout and rendering.
//
// The CLI and the HTTP server share this package so defaults, validation and
// caching behave the same everywhere. Two stages:
//
//  1. Layout: normalize and validate the map, then compute the radial model
//  2. Render: produce artifacts (SVG, JSON, PNG, PDF, DOT) from the model
//
// Both stages are cached through a [Runner]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, m, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// Defaults shared by the CLI, the server and the config file.
const (
	DefaultWidth   = radial.DefaultWidth
	DefaultHeight  = radial.DefaultHeight
	DefaultVizType = VizTypeRadial
	DefaultStyle   = StyleAnimated
	DefaultTheme   = ThemeNight
	DefaultScale   = 2.0
)

const (
	VizTypeRadial   = "radial"
	VizTypeNodelink = "nodelink"

	StyleSimple   = "simple"
	StyleAnimated = "animated"

	ThemeNight = "night"
	ThemeDay   = "day"

	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

var (
	ValidFormats  = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT}
	ValidStyles   = []string{StyleSimple, StyleAnimated}
	ValidThemes   = []string{ThemeNight, ThemeDay}
	ValidVizTypes = []string{VizTypeRadial, VizTypeNodelink}
)

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz",
}

// Options configures a pipeline run. It is JSON-serializable so the server
// can accept it in requests.
type Options struct {
	// Layout
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	VizType string  `json:"viz_type,omitempty"`

	// Render
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Theme      string   `json:"theme,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Background bool     `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG only

	// Refresh bypasses cache lookups; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of a full run.
type Result struct {
	Map       mindmap.MindMap
	MapHash   string
	Model     radial.Model
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

type Stats struct {
	Primary    int
	Secondary  int
	Connectors int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all requested artifacts were cached
}

// discard is the default logger for options used outside a Runner.
var discard = log.NewWithOptions(io.Discard, log.Options{})

func validateOneOf(code errors.Code, kind, v string, valid []string) error {
	if !slices.Contains(valid, v) {
		return errors.New(code, "invalid %s: %q (must be one of: %s)", kind, v, strings.Join(valid, ", "))
	}
	return nil
}

func ValidateFormat(format string) error {
	return validateOneOf(errors.ErrCodeInvalidFormat, "format", format, ValidFormats)
}

func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func ValidateStyle(style string) error {
	return validateOneOf(errors.ErrCodeInvalidStyle, "style", style, ValidStyles)
}

func ValidateTheme(theme string) error {
	return validateOneOf(errors.ErrCodeInvalidTheme, "theme", theme, ValidThemes)
}

func ValidateVizType(vizType string) error {
	return validateOneOf(errors.ErrCodeInvalidVizType, "viz_type", vizType, ValidVizTypes)
}

// SetLayoutDefaults fills zero layout fields. Negative or non-finite sizes
// are left alone so validation can reject them.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForLayout applies layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return errors.ValidateCanvas(o.Width, o.Height)
}

// SetRenderDefaults fills zero render fields and removes duplicate formats.
func (o *Options) SetRenderDefaults() {
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForRender applies all defaults and validates them.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutKeyOpts returns the cache key inputs for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{VizType: o.VizType, Width: o.Width, Height: o.Height}
}

// ArtifactKeyOpts returns the cache key inputs for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		VizType:    o.VizType,
		Format:     format,
		Style:      o.Style,
		Theme:      o.Theme,
		Labels:     !o.HideLabels,
		Background: o.Background,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
