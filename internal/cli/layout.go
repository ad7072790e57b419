package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing radial models.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Compute the radial layout of a mind map",
		Long: `Compute the radial layout of a mind map.

The layout command reads a mind map JSON file ("-" for stdin) and writes the
computed model (center, ring radius, placements and connectors) as
<input>.layout.json. Render it with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	lf.register(cmd)

	return cmd
}

// runLayout loads the map, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	stage := startStage(c.Logger, "layout")
	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	model, cacheHit, err := runner.LayoutWithCacheInfo(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	stage.done("Computed layout", "primary", len(model.Primary), "secondary", len(model.Secondary), "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		in := input
		if in == stdio {
			in = appName
		}
		outputPath = basePath("", in) + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(model.Primary), len(model.Secondary), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
