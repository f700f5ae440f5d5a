package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeTimestamps()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("paths.source_dir: resolve working directory: %w", err)
		}
		c.Paths.SourceDir = cwd
	}
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.MoveDir, err = expandPath(strings.TrimSpace(c.Paths.MoveDir)); err != nil {
		return fmt.Errorf("paths.move_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	var err error
	c.Journal.Path = strings.TrimSpace(c.Journal.Path)
	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(c.Paths.StateDir, defaultJournalFile)
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Color = strings.ToLower(strings.TrimSpace(c.Logging.Color))
	if c.Logging.Color == "" {
		c.Logging.Color = defaultLogColor
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTimestamps() {
	c.Timestamps.ExiftoolBinary = strings.TrimSpace(c.Timestamps.ExiftoolBinary)
	if c.Timestamps.ExiftoolBinary == "" {
		c.Timestamps.ExiftoolBinary = defaultExiftoolBinary
	}
	c.Timestamps.Make = strings.TrimSpace(c.Timestamps.Make)
	if c.Timestamps.Make == "" {
		c.Timestamps.Make = defaultCameraTag
	}
	c.Timestamps.Model = strings.TrimSpace(c.Timestamps.Model)
	if c.Timestamps.Model == "" {
		c.Timestamps.Model = defaultCameraTag
	}
}
