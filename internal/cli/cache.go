package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modalroute/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the route and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached routes and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context, w io.Writer) error {
	opts := c.cfg.CacheOptions()
	if opts.Backend != cache.BackendFile && opts.Backend != "" {
		printWarning(w, "The %s cache backend cannot be cleared from here", opts.Backend)
		return nil
	}

	fc, err := cache.NewFileCache(opts.Dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if n == 0 {
		printInfo(w, "Cache is empty")
		return nil
	}
	printSuccess(w, "Cleared %d cached entries", n)
	printDetail(w, "Directory: %s", fc.Dir())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.CacheOptions()
			w := cmd.OutOrStdout()
			switch opts.Backend {
			case cache.BackendRedis:
				printKeyValue(w, "redis", opts.RedisAddr)
			case cache.BackendMemory, cache.BackendNone:
				printKeyValue(w, opts.Backend, "not persisted")
			default:
				fmt.Fprintln(w, opts.Dir)
			}
			return nil
		},
	}
}
