package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/pipeline"
)

type dotOpts struct {
	format      string
	output      string
	from        string
	to          string
	dimension   string
	hideWeights bool
}

// dotCommand renders a graph file with Graphviz.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{format: pipeline.FormatDOT, dimension: graph.Time.String()}

	cmd := &cobra.Command{
		Use:   "dot <arquivo>",
		Short: "Render a graph as Graphviz DOT, SVG or PNG",
		Long: `Render a graph as Graphviz DOT, SVG or PNG.

With --from and --to the best route along --dimension is highlighted.
DOT is written to standard output unless -o is given; SVG and PNG default to
<arquivo>.<format>. Rendered images are cached.`,
		Example: `  modalroute dot grafo.txt | dot -Tpdf > grafo.pdf
  modalroute dot -f svg --from A --to B --dimension cost grafo.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runDot(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&opts.from, "from", "", "origin of the route to highlight")
	cmd.Flags().StringVar(&opts.to, "to", "", "destination of the route to highlight")
	cmd.Flags().StringVar(&opts.dimension, "dimension", opts.dimension, "dimension to minimize: time, cost")
	cmd.Flags().BoolVar(&opts.hideWeights, "no-weights", false, "omit arc labels")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, w io.Writer, file string, opts dotOpts) error {
	dim, err := graph.ParseDimension(opts.dimension)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidDimension, err, "dimension")
	}
	if (opts.from == "") != (opts.to == "") {
		return apperr.New(apperr.ErrCodeInvalidInput, "--from and --to must be given together")
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, file, c.cfg.Uppercase)
	if err != nil {
		return err
	}

	renderOpts := pipeline.RenderOptions{
		Format:      opts.format,
		From:        opts.from,
		To:          opts.to,
		Dimension:   dim,
		Uppercase:   c.cfg.Uppercase,
		HideWeights: opts.hideWeights,
	}

	if opts.format == pipeline.FormatDOT {
		out, _, err := runner.Render(ctx, g, renderOpts)
		if err != nil {
			return err
		}
		if opts.output == "" {
			_, err = w.Write(out)
			return err
		}
		return writeOutput(w, opts.output, out, false)
	}

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()
	out, hit, err := runner.Render(ctx, g, renderOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(file, filepath.Ext(file)) + "." + opts.format
	}
	return writeOutput(w, output, out, hit)
}

func writeOutput(w io.Writer, path string, data []byte, cached bool) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	status := iconFresh
	if cached {
		status = iconCached
	}
	printSuccess(w, "Wrote %d bytes (%s)", len(data), status)
	printFile(w, path)
	return nil
}
