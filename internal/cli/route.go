package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/pipeline"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

type routeOpts struct {
	uppercase bool
	details   bool
	refresh   bool
}

// routeCommand creates the positional front end: one query per invocation.
func (c *CLI) routeCommand() *cobra.Command {
	opts := routeOpts{uppercase: true}

	cmd := &cobra.Command{
		Use:   "route <arquivo> <origem> <destino>",
		Short: "Find the minimum-time and minimum-cost routes between two locations",
		Long: `Find the minimum-time and minimum-cost routes between two locations.

The graph file lists one vertex per line followed by its outgoing arcs:

  AT BR:[5,2] BT:[3,4]
  AR BT:[8,1]

Labels and endpoints are uppercased for the search unless --uppercase=false;
the output echoes the origin and destination as typed. Both routes are
printed and appended to the result log (see --log-file).`,
		Example: `  modalroute route grafo.txt a b
  modalroute route --details rede.json Recife Olinda`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], args[2], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.uppercase, "uppercase", opts.uppercase, "uppercase labels and endpoints")
	cmd.Flags().BoolVar(&opts.details, "details", false, "show every candidate pair evaluated")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached routes")

	return cmd
}

func (c *CLI) runRoute(ctx context.Context, w io.Writer, file, from, to string, opts routeOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, file, opts.uppercase)
	if err != nil {
		return err
	}

	res, err := runner.Query(ctx, g, pipeline.Query{From: from, To: to, Uppercase: opts.uppercase, Refresh: opts.refresh})
	if err != nil {
		return err
	}
	return c.report(w, runner, res, resultlog.StyleArgs, opts.details)
}

// report prints both routes in the result log format and appends them to
// the configured log file.
func (c *CLI) report(w io.Writer, runner *pipeline.Runner, res *pipeline.Result, style resultlog.Style, details bool) error {
	entry := res.Entry()
	for _, dim := range graph.Dimensions {
		route := res.Route(dim)
		fmt.Fprintln(w, resultlog.Line(style, dim, entry.From, entry.To, route.Path))
		if details {
			fmt.Fprintln(w, candidateTable(route))
		}
	}

	if c.cfg.LogFile == "" {
		return nil
	}
	if err := runner.LogResult(c.cfg.LogFile, style, res); err != nil {
		return fmt.Errorf("append result log: %w", err)
	}
	return nil
}
