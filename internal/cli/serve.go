package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modalroute/pkg/server"
)

type serveOpts struct {
	addr       string
	origins    []string
	logQueries bool
}

// serveCommand exposes a graph file over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <arquivo>",
		Short: "Serve route queries on a graph over HTTP",
		Long: `Serve route queries on a graph over HTTP.

Endpoints:
  GET /healthz
  GET /graph
  GET /graph.{dot,svg,png}?from=A&to=B&dimension=time
  GET /routes?from=A&to=B
  GET /metrics

The graph is loaded once at startup. The server stops on SIGINT or SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("cors-origin") {
				c.cfg.Server.CORSOrigins = opts.origins
			}
			return c.runServe(cmd.Context(), args[0], opts.logQueries)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from settings, :8080)")
	cmd.Flags().StringSliceVar(&opts.origins, "cors-origin", nil, "allowed CORS origins (repeatable)")
	cmd.Flags().BoolVar(&opts.logQueries, "log-queries", false, "append every answered query to the result log")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, file string, logQueries bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, file, c.cfg.Uppercase)
	if err != nil {
		return err
	}

	opts := server.Options{
		Addr:         c.cfg.Server.Addr,
		CORSOrigins:  c.cfg.Server.CORSOrigins,
		ReadTimeout:  c.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: c.cfg.Server.WriteTimeout.Duration,
		Uppercase:    c.cfg.Uppercase,
		LogStyle:     c.cfg.Style(),
	}
	if logQueries {
		opts.ResultLog = c.cfg.LogFile
	}
	if c.Metrics != nil {
		opts.Metrics = c.Metrics.Handler()
	}

	return server.New(runner, g, logger, opts).Run(ctx)
}
