// Package config handles planetgen configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/internal/planet"
	"github.com/Faultbox/geoplanet/pkg/icosphere"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all planetgen settings.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Planet   planet.Recipe  `yaml:"planet"`
	Batch    BatchConfig    `yaml:"batch"`
	Presets  PresetsConfig  `yaml:"presets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GeometryConfig holds the mesh cache settings.
type GeometryConfig struct {
	MaxDepth int    `yaml:"max_depth"` // Deepest subdivision kept in the cache
	CacheDir string `yaml:"cache_dir"`
	BaseName string `yaml:"base_name"` // Blob for depth d is <base_name><d>
}

// BatchConfig holds settings for baking many planets at once.
type BatchConfig struct {
	Workers   int    `yaml:"workers"` // 0 uses one worker per CPU
	Count     int    `yaml:"count"`
	Seed      uint64 `yaml:"seed"`
	OutputDir string `yaml:"output_dir"`
}

// PresetsConfig points at a preset library. An empty path uses the built-in
// library.
type PresetsConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Geometry: GeometryConfig{
			MaxDepth: 7,
			CacheDir: defaultCacheDir(),
			BaseName: "sphere",
		},
		Planet: planet.DefaultRecipe(),
		Batch: BatchConfig{
			Workers:   0,
			Count:     8,
			Seed:      1,
			OutputDir: "planets",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "geoplanet")
	}
	return filepath.Join(os.TempDir(), "geoplanet")
}

// Validate checks settings that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Geometry.MaxDepth < 0 || c.Geometry.MaxDepth > icosphere.MaxDepth {
		return fmt.Errorf("%w: max_depth %d not in [0, %d]", ErrInvalidConfig, c.Geometry.MaxDepth, icosphere.MaxDepth)
	}
	if c.Geometry.CacheDir == "" || c.Geometry.BaseName == "" {
		return fmt.Errorf("%w: cache_dir and base_name are required", ErrInvalidConfig)
	}
	if c.Batch.Workers < 0 || c.Batch.Count < 0 {
		return fmt.Errorf("%w: batch workers %d, count %d", ErrInvalidConfig, c.Batch.Workers, c.Batch.Count)
	}
	if err := c.Planet.Validate(c.Geometry.MaxDepth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogFileConfig returns the file logging settings for logger.InitWithFileConfig.
func (c *Config) LogFileConfig() logger.FileConfig {
	fc := logger.DefaultFileConfig(c.Logging.LogFile)
	if c.Logging.Format != "" {
		fc.Format = c.Logging.Format
	}
	if c.Logging.MaxSizeMB > 0 {
		fc.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		fc.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		fc.MaxAgeDays = c.Logging.MaxAgeDays
	}
	return fc
}
