package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/brepstep/internal/app"
	"github.com/vk/brepstep/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPaths []string
	logLevel    string
	logFormat   string
	workers     int
	maxRetries  int
	strict      bool
}

// Execute parses args and runs the selected command. Usage errors are
// returned as an ExitError with code 2, command failures with code 1.
func Execute(ctx context.Context, args []string, outW, logW io.Writer, loader config.Loader) error {
	root, started := newRootCommand(outW, logW, loader)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if !*started {
		return usageError("%v", err)
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

func newRootCommand(outW, logW io.Writer, loader config.Loader) (*cobra.Command, *bool) {
	flags := &rootFlags{}
	started := false

	root := &cobra.Command{
		Use:   "brepstep",
		Short: "Rebuild B-Rep models from STEP exchange files",
		Long: `brepstep interprets ISO 10303-21 exchange files and rebuilds the
boundary-representation model they describe.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			started = true
			return flags.validate(cmd)
		},
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&flags.configPaths, "config", "c", nil, "Path to an .hcl configuration file or directory. Repeatable.")
	pf.StringVar(&flags.logLevel, "log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")
	pf.IntVar(&flags.workers, "workers", 0, "Number of components built concurrently. 0 keeps the configured value.")
	pf.IntVar(&flags.maxRetries, "max-retries", 0, "Retry bound per record. 0 keeps the configured value.")
	pf.BoolVar(&flags.strict, "strict", false, "Fail on any reference to an unsupported entity type, even one no constructor reads.")

	run := func(cmd *cobra.Command, cfg *app.Config) (*app.App, *app.Config, error) {
		cfg.ConfigPaths = flags.configPaths
		cfg.LogLevel = flags.logLevel
		cfg.LogFormat = flags.logFormat
		cfg.Workers = flags.workers
		cfg.MaxRetries = flags.maxRetries
		if cmd.Flags().Changed("strict") {
			strict := flags.strict
			cfg.Strict = &strict
		}
		appConfig, err := app.NewConfig(*cfg)
		if err != nil {
			return nil, nil, usageError("%v", err)
		}
		slog.Debug("CLI parser finished successfully.", "command", cmd.Name())
		return app.NewApp(outW, logW, appConfig, loader), appConfig, nil
	}

	root.AddCommand(
		newImportCommand(run),
		newPointsCommand(run),
		newUnsupportedCommand(run),
		newGraphCommand(run),
	)
	return root, &started
}

func (f *rootFlags) validate(cmd *cobra.Command) error {
	f.logLevel = strings.ToLower(f.logLevel)
	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	f.logFormat = strings.ToLower(f.logFormat)
	if f.logFormat != "" && f.logFormat != "text" && f.logFormat != "json" {
		return usageError("invalid log-format: must be 'text' or 'json'")
	}
	if f.workers < 0 {
		return usageError("invalid workers: must not be negative")
	}
	if f.maxRetries < 0 {
		return usageError("invalid max-retries: must not be negative")
	}
	return nil
}

// argsAtLeast is cobra.MinimumNArgs reporting a usage error.
func argsAtLeast(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError("%s requires at least %d path argument(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func argsExactly(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s accepts %d path argument(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
