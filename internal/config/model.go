package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/brepstep/internal/units"
)

// Loader reads configuration files and merges them over a base model.
type Loader interface {
	// Load applies every file found under paths to base, in order, and
	// returns the result. base is not modified.
	Load(ctx context.Context, base *Model, paths ...string) (*Model, error)
}

// Model is the complete configuration of the application.
type Model struct {
	Log    Log
	Import Import
	// Aliases map extra type names onto registered ones.
	Aliases map[string]string
}

// Log configures the application logger.
type Log struct {
	Level  string
	Format string
}

// Import tunes the import runs.
type Import struct {
	Workers            int
	MaxRetries         int
	DefaultUncertainty float64
	Strict             bool
	// Extensions are the file extensions picked up when a directory is
	// imported. Matching ignores case.
	Extensions []string
}

// Default returns the built-in configuration.
func Default() *Model {
	return &Model{
		Log: Log{Level: "info", Format: "text"},
		Import: Import{
			Workers:            1,
			DefaultUncertainty: units.DefaultUncertainty,
			Extensions:         []string{".step", ".stp"},
		},
		Aliases: map[string]string{},
	}
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	out := *m
	out.Import.Extensions = append([]string(nil), m.Import.Extensions...)
	out.Aliases = make(map[string]string, len(m.Aliases))
	for k, v := range m.Aliases {
		out.Aliases[k] = v
	}
	return &out
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Validate reports every invalid setting at once.
func (m *Model) Validate() error {
	var errs []string
	if !validLevels[m.Log.Level] {
		errs = append(errs, fmt.Sprintf("log level %q must be one of debug, info, warn, error", m.Log.Level))
	}
	if !validFormats[m.Log.Format] {
		errs = append(errs, fmt.Sprintf("log format %q must be text or json", m.Log.Format))
	}
	if m.Import.Workers < 1 {
		errs = append(errs, fmt.Sprintf("workers must be at least 1, got %d", m.Import.Workers))
	}
	if m.Import.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("max_retries must not be negative, got %d", m.Import.MaxRetries))
	}
	if m.Import.DefaultUncertainty <= 0 {
		errs = append(errs, fmt.Sprintf("default_uncertainty must be positive, got %g", m.Import.DefaultUncertainty))
	}
	if len(m.Import.Extensions) == 0 {
		errs = append(errs, "extensions must not be empty")
	}
	for _, ext := range m.Import.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("extension %q must start with a dot", ext))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
