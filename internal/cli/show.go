package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// showCommand prints a graph file.
func (c *CLI) showCommand() *cobra.Command {
	var asTable, validate bool

	cmd := &cobra.Command{
		Use:   "show <arquivo>",
		Short: "Print a graph file",
		Long: `Print a graph file, one line per vertex with its outgoing arcs:

  AT -> BR:[5, 2] BT:[3, 4]

--table prints one row per arc instead. --validate additionally reports arcs
whose target vertex is missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), cmd.OutOrStdout(), args[0], asTable, validate)
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "print one row per arc")
	cmd.Flags().BoolVar(&validate, "validate", false, "report dangling arcs")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, w io.Writer, file string, asTable, validate bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, file, c.cfg.Uppercase)
	if err != nil {
		return err
	}

	if asTable {
		fmt.Fprintln(w, arcTable(g.Graph))
		printStats(w, g.VertexCount(), g.ArcCount(), false)
	} else {
		fmt.Fprint(w, g.Render())
	}

	if validate {
		if err := g.Validate(); err != nil {
			printWarning(w, "%v", err)
			return err
		}
		printSuccess(w, "No dangling arcs")
	}
	return nil
}
