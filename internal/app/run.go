package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/brepstep/internal/fsutil"
	"github.com/vk/brepstep/internal/refgraph"
	"github.com/vk/brepstep/internal/stepfile"
)

// ErrImportFailed is returned when at least one file of an import run failed.
var ErrImportFailed = errors.New("import failed")

// Import imports every exchange file found under appConfig.InputPaths,
// prints one summary line per file and writes the YAML report when a report
// path is set. A failing file does not stop the others.
func (a *App) Import(ctx context.Context, appConfig *Config) error {
	ctx = a.context(ctx)

	files, err := a.expand(appConfig.InputPaths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.logger.Warn("No exchange files found.", "paths", appConfig.InputPaths)
	}
	a.logger.Info("Starting import.", "files", len(files), "workers", a.config.Import.Workers)

	report := &Report{}
	failed := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := a.importer.ImportFile(ctx, path)
		if err != nil {
			failed++
			a.logger.Error("Import failed.", "file", path, "error", err)
			fmt.Fprintf(a.outW, "%s: FAILED: %v\n", path, err)
			report.Files = append(report.Files, FileReport{Path: path, Error: err.Error()})
			continue
		}
		fmt.Fprintf(a.outW, "%s: %d records, %d built, %d shells, %d faces in %s\n",
			path, res.Records, res.Stats.Built, len(res.Model.Shells), res.Model.FaceCount(), res.Duration)
		report.Files = append(report.Files, newFileReport(path, res))
	}

	if appConfig.ReportPath != "" {
		if err := report.WriteFile(appConfig.ReportPath); err != nil {
			return err
		}
		a.logger.Debug("Report written.", "path", appConfig.ReportPath)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrImportFailed, failed, len(files))
	}
	return nil
}

// Points prints the cartesian points of the first input file, one per line.
func (a *App) Points(ctx context.Context, appConfig *Config) error {
	ctx = a.context(ctx)
	res, err := stepfile.ReadFile(ctx, appConfig.InputPaths[0])
	if err != nil {
		return err
	}
	points, err := a.importer.Points(ctx, res)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(a.outW, "%g %g %g\n", p.X, p.Y, p.Z)
	}
	return nil
}

// Unsupported prints the type names of the input files that have no
// constructor, one per line and per file.
func (a *App) Unsupported(ctx context.Context, appConfig *Config) error {
	ctx = a.context(ctx)
	files, err := a.expand(appConfig.InputPaths)
	if err != nil {
		return err
	}
	for _, path := range files {
		res, err := stepfile.ReadFile(ctx, path)
		if err != nil {
			return err
		}
		for _, name := range a.importer.Unsupported(res) {
			if len(files) > 1 {
				fmt.Fprintf(a.outW, "%s: %s\n", path, name)
				continue
			}
			fmt.Fprintln(a.outW, name)
		}
	}
	return nil
}

// Graph writes the pruned reference graph of the first input file as YAML.
func (a *App) Graph(ctx context.Context, appConfig *Config, reduced bool) error {
	ctx = a.context(ctx)
	res, err := stepfile.ReadFile(ctx, appConfig.InputPaths[0])
	if err != nil {
		return err
	}
	g, err := refgraph.Build(ctx, res, a.registry)
	if err != nil {
		return err
	}
	return g.WriteYAML(a.outW, reduced)
}

func (a *App) expand(paths []string) ([]string, error) {
	return fsutil.ExpandPaths(paths, false, a.config.Import.Extensions...)
}
