package app

import (
	"fmt"
	"os"

	"github.com/vk/brepstep/internal/importer"
	"github.com/vk/brepstep/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by an import run.
type Report struct {
	Files []FileReport `yaml:"files"`
}

// FileReport describes the outcome of one file.
type FileReport struct {
	Path         string           `yaml:"path"`
	Error        string           `yaml:"error,omitempty"`
	Model        string           `yaml:"model,omitempty"`
	Records      int              `yaml:"records"`
	Malformed    int              `yaml:"malformed"`
	Shells       int              `yaml:"shells"`
	Faces        int              `yaml:"faces"`
	LengthFactor float64          `yaml:"length_factor,omitempty"`
	Uncertainty  float64          `yaml:"uncertainty,omitempty"`
	Duration     string           `yaml:"duration,omitempty"`
	Stats        *scheduler.Stats `yaml:"stats,omitempty"`
}

func newFileReport(path string, res *importer.Result) FileReport {
	stats := res.Stats
	return FileReport{
		Path:         path,
		Model:        res.Model.Name,
		Records:      res.Records,
		Malformed:    res.Malformed,
		Shells:       len(res.Model.Shells),
		Faces:        res.Model.FaceCount(),
		LengthFactor: res.Units.LengthFactor,
		Uncertainty:  res.Units.Uncertainty,
		Duration:     res.Duration.String(),
		Stats:        &stats,
	}
}

// WriteFile encodes the report to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
