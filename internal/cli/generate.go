package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

type generateOpts struct {
	text    string
	upload  bool
	output  string
	baseURL string
	refresh bool
	noCache bool
}

// generateCommand creates the generate command, a client for the mind map
// generation service.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [text-file]",
		Short: "Generate a mind map with the generation service",
		Long: `Generate a mind map with the generation service.

Text comes from --text or a file ("-" for stdin). With --upload the file is
sent as a document upload so the service can extract text from PDFs and
other formats; uploads are not cached.

The service URL comes from the config file, MINDMAP_GENERATOR_URL or --url.
Responses for identical text are cached.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (opts.text == "") {
				return errors.New(errors.ErrCodeInvalidArgument, "provide either a text file or --text")
			}
			if opts.upload && input == "" {
				return errors.New(errors.ErrCodeInvalidArgument, "--upload needs a file argument")
			}
			m, err := c.runGenerate(cmd.Context(), input, opts)
			if err != nil {
				return err
			}
			return c.writeMap(cmd, m, opts.output)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "text to turn into a mind map")
	cmd.Flags().BoolVar(&opts.upload, "upload", false, "upload the file instead of sending its text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.baseURL, "url", "", "generation service base URL")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, opts generateOpts) (mindmap.MindMap, error) {
	backend, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return mindmap.MindMap{}, fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	gen := c.Config.Generator
	if opts.baseURL != "" {
		gen.BaseURL = opts.baseURL
	}
	client := gen.Client(backend, c.Config.Cache.TTL)
	c.Logger.Debug("calling generator", "url", gen.BaseURL, "upload", opts.upload)

	stage := startStage(c.Logger, "generate")
	spinner := newSpinner(ctx, "Generating mind map...")
	spinner.Start()
	defer spinner.Stop()

	var m mindmap.MindMap
	switch {
	case opts.upload:
		m, err = client.GenerateFile(ctx, input)
	case opts.text != "":
		m, err = client.Generate(ctx, opts.text, opts.refresh)
	default:
		var text string
		if text, err = readText(input); err == nil {
			m, err = client.Generate(ctx, text, opts.refresh)
		}
	}
	if err != nil {
		return mindmap.MindMap{}, err
	}
	spinner.Stop()
	stage.done("Generated mind map", "title", m.Title, "topics", len(m.Nodes))
	return m, nil
}

// writeMap prints m to stdout, or writes it to output with a status line.
func (c *CLI) writeMap(cmd *cobra.Command, m mindmap.MindMap, output string) error {
	data, err := mindmap.Marshal(m)
	if err != nil {
		return err
	}
	if output == "" || output == stdio {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	printSuccess("Saved %s", m.Title)
	printFile(output)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
