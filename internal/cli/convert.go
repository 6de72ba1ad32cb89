package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/modalroute/pkg/io"
)

// convertCommand rewrites a graph file in another format.
func (c *CLI) convertCommand() *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert <arquivo>",
		Short: "Convert a graph file between text, JSON, TOML and YAML",
		Long: `Convert a graph file between text, JSON, TOML and YAML.

The output format follows the extension of -o, or --to when writing to
standard output. Graphs with dangling arcs cannot be converted.`,
		Example: `  modalroute convert grafo.txt -o grafo.json
  modalroute convert rede.yaml --to text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], output, to)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; format from its extension")
	cmd.Flags().StringVar(&to, "to", string(pkgio.FormatJSON), "format when writing to standard output: text, json, toml, yaml")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, w io.Writer, file, output, to string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, file, c.cfg.Uppercase)
	if err != nil {
		return err
	}

	if output != "" {
		if err := pkgio.Export(g.Graph, output); err != nil {
			return err
		}
		printSuccess(w, "Converted %s to %s", g.Format, pkgio.DetectFormat(output))
		printFile(w, output)
		return nil
	}

	format, err := pkgio.ParseFormat(to)
	if err != nil {
		return err
	}
	return pkgio.Write(g.Graph, w, format)
}
