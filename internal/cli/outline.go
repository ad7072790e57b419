package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// outlineCommand creates the outline command, which builds a flat mind map
// from the first sentences of a text without calling the generator.
func (c *CLI) outlineCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "outline [text-file]",
		Short: "Build a simple mind map from plain text",
		Long: `Build a simple mind map from plain text.

The text is split into sentences; the first four sentences longer than ten
characters become primary topics. This is the offline fallback for
'generate'. Use "-" to read stdin. Without -o the map is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return errors.New(errors.ErrCodeInvalidInput, "%s: text is empty", args[0])
			}

			m := mindmap.Outline(text)
			c.Logger.Debug("built outline", "nodes", len(m.Nodes))
			return c.writeMap(cmd, m, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
