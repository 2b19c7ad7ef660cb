package app

import (
	"errors"

	"github.com/vk/brepstep/internal/config"
)

// Config holds the per-invocation settings of an App. Zero values leave the
// configuration file (or the built-in default) in charge.
type Config struct {
	InputPaths  []string // exchange files or directories
	ConfigPaths []string // hcl files or directories

	LogFormat  string
	LogLevel   string
	Workers    int
	MaxRetries int
	Strict     *bool
	ReportPath string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.InputPaths) == 0 {
		return nil, errors.New("at least one input path is required")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}
	if cfg.MaxRetries < 0 {
		return nil, errors.New("max-retries must not be negative")
	}
	return &cfg, nil
}

// override applies the explicitly set fields of c over m.
func (c *Config) override(m *config.Model) {
	if c.LogLevel != "" {
		m.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		m.Log.Format = c.LogFormat
	}
	if c.Workers > 0 {
		m.Import.Workers = c.Workers
	}
	if c.MaxRetries > 0 {
		m.Import.MaxRetries = c.MaxRetries
	}
	if c.Strict != nil {
		m.Import.Strict = *c.Strict
	}
}
