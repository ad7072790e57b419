package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// renderCommand creates the render command: mind map in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [map.json]",
		Short: "Render a mind map to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a mind map to SVG, PNG, PDF, JSON or DOT.

The render command runs the full pipeline: it lays out the map and renders
every requested format. With one format and -o the file is written exactly
there; otherwise files are named <base>.<format>.

PNG and PDF output need rsvg-convert for the radial view. The nodelink view
renders through Graphviz in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			rf.apply(&opts)
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	m, err := readMap(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	stage := startStage(c.Logger, "render")
	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	stage.done("Rendered artifacts", "formats", len(result.Artifacts), "cached", result.CacheInfo.RenderHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formatsOf(opts, result.Artifacts),
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", result.Map.Title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Primary, result.Stats.Secondary, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// formatsOf returns the requested formats in order, normalized the way the
// pipeline normalized them.
func formatsOf(opts pipeline.Options, artifacts map[string][]byte) []string {
	_ = opts.ValidateForRender()
	formats := make([]string, 0, len(artifacts))
	for _, f := range opts.Formats {
		if _, ok := artifacts[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}
