package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/brepstep/internal/config"
	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/importer"
	"github.com/vk/brepstep/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *config.Model
	importer *importer.Importer
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs to logW. Configuration or registry errors are fatal startup
// errors and panic.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	// Flags decide the level used while the configuration itself is loaded.
	bootLevel, bootFormat := appConfig.LogLevel, appConfig.LogFormat
	if bootLevel == "" {
		bootLevel = "info"
	}
	logger := newLogger(bootLevel, bootFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfgModel, err := loader.Load(ctx, config.Default(), appConfig.ConfigPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	appConfig.override(cfgModel)
	if err := cfgModel.Validate(); err != nil {
		panic(err)
	}

	logger = newLogger(cfgModel.Log.Level, cfgModel.Log.Format, logW)
	ctx = ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Configuration loaded.", "workers", cfgModel.Import.Workers, "strict", cfgModel.Import.Strict)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All entity modules registered.", "count", len(modules))

	if err := reg.AddAliases(cfgModel.Aliases); err != nil {
		panic(fmt.Errorf("failed to register aliases: %w", err))
	}

	// A broken registry is a programmer error, so we panic.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "types", len(reg.TypeNames()))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfgModel,
		importer: importer.New(reg, importer.Options{
			Workers:            cfgModel.Import.Workers,
			MaxRetries:         cfgModel.Import.MaxRetries,
			DefaultUncertainty: cfgModel.Import.DefaultUncertainty,
			Strict:             cfgModel.Import.Strict,
		}),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the effective configuration.
func (a *App) Model() *config.Model {
	return a.config
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
