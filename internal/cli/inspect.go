package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command for browsing placements.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		lf    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [map.json]",
		Short: "Browse the computed placements of a mind map",
		Long: `Browse the computed placements of a mind map.

Lays out the map and shows every node with its angle, canvas position and
percentage position. Interactive in a terminal; use --plain (or pipe the
output) for a static table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := readMap(args[0])
			if err != nil {
				return err
			}
			opts := c.Config.PipelineOptions()
			if err := lf.apply(cmd, &opts); err != nil {
				return err
			}
			opts.Logger = c.Logger

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			model, err := runner.Layout(ctx, m, opts)
			if err != nil {
				return err
			}

			if plain || !isTerminal(os.Stdout) {
				rows := placementRows(model)
				fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(model.Title))
				fmt.Fprintln(cmd.OutOrStdout(), placementTable(model, rows, 0, len(rows), -1).Render())
				return nil
			}

			_, err = tea.NewProgram(newPlacementModel(model), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table")
	lf.register(cmd)
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
