package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modalroute/pkg/config"
)

// setup loads the settings file, applies flag overrides and attaches the
// logger to the command context. It runs before every subcommand.
//
// Precedence, lowest first: built-in defaults, the settings file,
// MODALROUTE_* environment variables, command-line flags.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = c.logFile
	}
	c.cfg = cfg

	c.Logger.Debug("settings loaded",
		"config", c.configPath,
		"cache", cfg.Cache.Backend,
		"log_file", cfg.LogFile)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
