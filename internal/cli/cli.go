// Package cli implements the modalroute command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modalroute/pkg/buildinfo"
	"github.com/matzehuels/modalroute/pkg/cache"
	"github.com/matzehuels/modalroute/pkg/config"
	pkgio "github.com/matzehuels/modalroute/pkg/io"
	"github.com/matzehuels/modalroute/pkg/metrics"
	"github.com/matzehuels/modalroute/pkg/pipeline"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// In feeds the interactive prompt.
	In io.Reader

	// Metrics, when set, is served by the serve command on /metrics.
	Metrics *metrics.Metrics

	cfg        config.Config
	configPath string
	logFile    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Modalroute finds minimum-time and minimum-cost routes in multimodal graphs",
		Long: `Modalroute reads a weighted directed graph whose arcs carry a (time, cost)
pair and finds the minimum-time and minimum-cost routes between two locations.

A location X may exist as a restricted vertex XR and a transit vertex XT; every
entry and exit combination is searched and the best one is reported.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/modalroute/config.toml)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the route cache")
	pf.StringVar(&c.logFile, "log-file", resultlog.DefaultPath, "result log file; empty disables logging")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.promptCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache backend that
// cannot be opened is replaced by no cache at all.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	opts := c.cfg.CacheOptions()
	if c.noCache {
		opts.Backend = cache.BackendNone
	}

	ch, err := cache.Open(ctx, opts)
	switch {
	case errors.Is(err, cache.ErrUnknownBackend):
		return nil, err
	case err != nil:
		c.Logger.Warn("cache unavailable, continuing without it", "backend", opts.Backend, "err", err)
		ch = cache.NewNullCache()
	}

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	runner.TTL = c.cfg.Cache.TTL.Duration
	return runner, nil
}

// loadGraph reads the graph file at path through runner.
func (c *CLI) loadGraph(ctx context.Context, runner *pipeline.Runner, path string, uppercase bool) (*pipeline.Graph, error) {
	prog := newProgress(c.Logger)
	g, err := runner.Load(ctx, path, pkgio.LoadOptions{Uppercase: uppercase})
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Loaded %d vertices and %d arcs from %s", g.VertexCount(), g.ArcCount(), path))
	return g, nil
}
