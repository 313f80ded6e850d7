package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/toddlburns/yt-tracker/internal/config"
	"github.com/toddlburns/yt-tracker/internal/logging"
	"github.com/toddlburns/yt-tracker/internal/metrics"
)

// commandContext carries what every subcommand needs once flags are parsed.
type commandContext struct {
	configFlag *string
	verbose    *bool

	cfg     *config.Config
	logs    *logging.Manager
	logger  *slog.Logger
	metrics *metrics.Manager
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verbose: verbose}
}

func (c *commandContext) init() error {
	cfg, err := config.Load(strings.TrimSpace(*c.configFlag))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg

	c.logs, c.logger = logging.NewStderr(cfg.Logging)
	if *c.verbose {
		c.logs.SetLevel("debug")
	}
	slog.SetDefault(c.logger)
	c.logger.Debug("configuration loaded", slog.String("logging", cfg.Logging.String()))

	c.metrics = metrics.NewManager()
	return nil
}

// close flushes metrics and releases the log file.
func (c *commandContext) close() error {
	if c.logs == nil {
		return nil
	}
	defer c.logs.Close() //nolint:errcheck

	if path := c.cfg.Metrics.Textfile; path != "" {
		if err := c.metrics.WriteTextfile(path); err != nil {
			return err
		}
		c.logger.Info("metrics written", slog.String("path", path))
	}
	return nil
}
