package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"dedup/internal/config"
	"dedup/internal/logging"
	"dedup/internal/resolver"
)

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads configuration once and applies the persistent flag
// overrides. Failures are reported as invalid configuration.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = fmt.Errorf("%w: %w", resolver.ErrInvalidConfig, err)
			return
		}
		if err := c.applyGlobalOverrides(cmd, cfg); err != nil {
			c.configErr = fmt.Errorf("%w: %w", resolver.ErrInvalidConfig, err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyGlobalOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("debug") && c.flags.debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(c.flags.logFormat))
	}
	if flags.Changed("color") {
		cfg.Logging.Color = strings.ToLower(strings.TrimSpace(c.flags.color))
	}
	return cfg.Validate()
}

// logger builds the command logger on the command's error stream.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return newLogger(cmd.ErrOrStderr(), cfg)
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, fmt.Errorf("%w: init logger: %w", resolver.ErrInvalidConfig, err)
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
