// Package cli implements the mindmap command-line interface.
//
// Commands:
//   - layout: compute the radial model of a mind map (model JSON)
//   - render: mind map → SVG, PNG, PDF, JSON or DOT
//   - visualize: model JSON → artifacts, skipping layout
//   - outline: build a mind map from plain text without the generator
//   - generate: ask the generation service for a mind map
//   - inspect: browse placements interactively
//   - serve: run the HTTP API
//   - cache, config, completion: housekeeping
//
// All commands accept --verbose (-v) for debug logging and --config to pick a
// config file.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const appName = "mindmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Config     config.Config
	configPath string
}

// New creates a CLI with default configuration. The config file is read
// when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mindmap lays out and renders radial mind maps",
		Long:         `Mindmap places a title, a ring of primary topics and their subtopics on a radial canvas and renders the result as SVG, PNG, PDF, JSON or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mindmap/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return c.Config.Cache.Open(ctx)
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the flags shared by render and visualize. Zero values
// defer to the config file.
type renderFlags struct {
	formats    string
	style      string
	theme      string
	noLabels   bool
	background bool
	scale      float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg, json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", "", "connector style: animated (default), simple")
	cmd.Flags().StringVar(&f.theme, "theme", "", "color theme: night (default), day")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&f.background, "background", false, "paint the theme background")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor (default 2)")
}

func (f *renderFlags) apply(opts *pipeline.Options) {
	if f.formats != "" {
		opts.Formats = parseFormats(f.formats)
	}
	if f.style != "" {
		opts.Style = f.style
	}
	if f.theme != "" {
		opts.Theme = f.theme
	}
	opts.HideLabels = f.noLabels
	opts.Background = f.background
	opts.Scale = f.scale
}

// layoutFlags are the canvas flags shared by layout, render and inspect.
type layoutFlags struct {
	width   float64
	height  float64
	vizType string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (default 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (default 650)")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", "", "visualization type: radial (default), nodelink")
}

// apply copies set flags into opts. An explicit --width or --height is
// validated here, since a zero would otherwise read as "use the default".
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		if err := errors.ValidateDimension("width", f.width); err != nil {
			return err
		}
		opts.Width = f.width
	}
	if flags.Changed("height") {
		if err := errors.ValidateDimension("height", f.height); err != nil {
			return err
		}
		opts.Height = f.height
	}
	if f.vizType != "" {
		opts.VizType = f.vizType
	}
	return nil
}

// parseFormats splits a comma-separated format list.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the output base path. An output with a known format
// extension loses it; no output means the input path minus its extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
