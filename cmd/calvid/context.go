package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/logging"
)

// commandContext loads configuration and the logger once per invocation and
// shares them across subcommands.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once         sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	logger       *slog.Logger
	err          error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.err = err
			return
		}
		c.configPath = resolved
		c.configExists = exists
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = level
			}
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.err = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.err
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	err := c.ensure()
	return c.config, err
}

// componentLogger returns the shared logger scoped to one subcommand.
func (c *commandContext) componentLogger(component string) (*slog.Logger, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return logging.NewComponentLogger(c.logger, component), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
