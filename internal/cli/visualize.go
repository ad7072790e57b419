package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout/radial"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a computed
// layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		vizType string
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render artifacts from a computed layout",
		Long: `Render artifacts from a computed layout.

The visualize command takes a layout file produced by 'layout' (or the JSON
output of 'render -f json') and renders it. The layout holds every position,
so this step is purely about drawing.

Use 'render' to go directly from a mind map to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			rf.apply(&opts)
			opts.VizType = vizType
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&vizType, "type", "t", "", "visualization type: radial (default), nodelink")
	rf.register(cmd)

	return cmd
}

func readLayout(path string) (radial.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return radial.Model{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	var model radial.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return radial.Model{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout %s", path)
	}
	if err := model.Validate(); err != nil {
		return radial.Model{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return model, nil
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	model, err := readLayout(input)
	if err != nil {
		return err
	}
	opts.Width, opts.Height = model.Width, model.Height

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, model, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formatsOf(opts, artifacts),
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
	if err != nil {
		return err
	}

	printSuccess("Visualized %s", model.Title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(model.Primary), len(model.Secondary), cacheHit)
	return nil
}
