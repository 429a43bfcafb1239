package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		return errors.New("paths.export_dir must be set")
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.MaxWidth <= 0 {
		return errors.New("capture.max_width must be positive")
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return errors.New("capture.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.Workers < 1 {
		return errors.New("export.workers must be at least 1")
	}
	if c.Export.Quality < 1 || c.Export.Quality > 30 {
		return errors.New("export.quality must be between 1 and 30")
	}
	if c.Export.MaxDelayMS <= 0 {
		return errors.New("export.max_delay_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
