package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRows    = 9
	DefaultCols    = 10
	DefaultDensity = 10

	// MaxCols is bounded by the single-letter column syntax.
	MaxCols = 26
	MaxRows = 99
)

var ErrInvalidConfig = errors.New("invalid config")

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Density float64 `yaml:"density"`
	// Seed fixes mine placement; zero picks a random seed.
	Seed  uint64    `yaml:"seed"`
	Plain bool      `yaml:"plain"`
	Log   LogConfig `yaml:"log"`
}

func Default() Config {
	return Config{
		Rows:    DefaultRows,
		Cols:    DefaultCols,
		Density: DefaultDensity,
		Log: LogConfig{
			Level:      logrus.InfoLevel.String(),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a YAML file over the values already in config.
func Load(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Rows < 1 || c.Rows > MaxRows {
		errs = append(errs, fmt.Errorf("%w: rows must be within [1, %d], got %d", ErrInvalidConfig, MaxRows, c.Rows))
	}
	if c.Cols < 1 || c.Cols > MaxCols {
		errs = append(errs, fmt.Errorf("%w: cols must be within [1, %d], got %d", ErrInvalidConfig, MaxCols, c.Cols))
	}
	// Written so that NaN fails too.
	if !(c.Density >= 0 && c.Density <= 100) {
		errs = append(errs, fmt.Errorf("%w: density must be within [0, 100], got %v", ErrInvalidConfig, c.Density))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	return errors.Join(errs...)
}

func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"rows":            c.Rows,
		"cols":            c.Cols,
		"density":         c.Density,
		"seed":            c.Seed,
		"plain":           c.Plain,
		"log_file":        c.Log.File,
		"log_level":       c.Log.Level,
		"log_max_size_mb": c.Log.MaxSizeMB,
	}
}
