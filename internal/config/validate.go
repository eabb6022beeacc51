package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputPath) == "" {
		return errors.New("paths.output_path must be set")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.RetentionDays < 0 {
		return errors.New("cache.retention_days must be zero or positive")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.Fetcher == "" {
		return errors.New("tools.fetcher must be set")
	}
	if c.Tools.Clipper == "" {
		return errors.New("tools.clipper must be set")
	}
	if c.Tools.Player == "" {
		return errors.New("tools.player must be set")
	}
	if c.Tools.FetchTimeout < 0 {
		return errors.New("tools.fetch_timeout must be zero or positive")
	}
	if c.Tools.ClipTimeout < 0 {
		return errors.New("tools.clip_timeout must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	return nil
}
