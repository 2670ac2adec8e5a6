package main

import (
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	"audiomatch/internal/cache"
	"audiomatch/internal/config"
	"audiomatch/internal/download"
	"audiomatch/internal/logging"
	"audiomatch/internal/queue"
	"audiomatch/internal/search"
	"audiomatch/internal/ytmusic"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return queue.Open(cfg)
}

// newMatcher assembles the catalog client and multi-pass matcher from
// configuration.
func (c *commandContext) newMatcher() (*search.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	opts := []ytmusic.Option{
		ytmusic.WithTimeout(time.Duration(cfg.Search.RequestTimeout) * time.Second),
	}
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
		opts = append(opts, ytmusic.WithCache(cache.NewMemory(ttl, ttl)))
	}
	catalog, err := ytmusic.New(cfg.Search.BaseURL, logger, opts...)
	if err != nil {
		return nil, err
	}

	return search.NewMatcher(catalog, logger, search.WithMaxResults(cfg.Search.MaxResultsPerMode)), nil
}

// newFetcher returns nil when downloads are disabled in configuration.
func (c *commandContext) newFetcher() (*download.Fetcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Download.Enabled {
		return nil, nil
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return download.NewFetcher(cfg, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
