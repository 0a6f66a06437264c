package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core"
	"github.com/barysiuk/catalyst/internal/core/client"
	"github.com/barysiuk/catalyst/internal/logging"
	"github.com/barysiuk/catalyst/internal/tui"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config   *core.Config
	logger   *slog.Logger
	detector *client.Detector
	selector core.Selector
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cm, err := configManager(cmd)
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := cm.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, cfg.Logging.Format)
	logger.Debug("loaded config", "path", cm.ConfigPath())

	return &deps{
		config:   cfg,
		logger:   logger,
		detector: client.NewDetector(cfg.ProbeTimeout(), logger, client.Defaults(cfg.ClientOptions()...)...),
		selector: tui.NewSelector(),
	}, nil
}

func configManager(cmd *cobra.Command) (*core.ConfigManager, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return core.NewConfigManagerWithPath(path), nil
	}
	return core.NewConfigManager()
}

// clientFlag returns --client, falling back to the configured default client.
func (d *deps) clientFlag(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("client"); name != "" {
		return name
	}
	return d.config.DefaultClient
}
