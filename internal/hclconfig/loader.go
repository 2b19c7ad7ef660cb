// Package hclconfig loads the application configuration from HCL files.
package hclconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/brepstep/internal/config"
	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/fsutil"
	"github.com/vk/brepstep/internal/units"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// fileRoot holds every top-level block a configuration file may contain.
type fileRoot struct {
	Log     *logBlock     `hcl:"log,block"`
	Import  *importBlock  `hcl:"import,block"`
	Aliases []*aliasBlock `hcl:"alias,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type importBlock struct {
	Workers            *int     `hcl:"workers,optional"`
	MaxRetries         *int     `hcl:"max_retries,optional"`
	DefaultUncertainty *float64 `hcl:"default_uncertainty,optional"`
	Strict             *bool    `hcl:"strict,optional"`
	Extensions         []string `hcl:"extensions,optional"`
}

// aliasBlock maps an extra type name onto a registered one:
//
//	alias "FACE_BOUND_EX" {
//	  target = "FACE_BOUND"
//	}
type aliasBlock struct {
	Name   string `hcl:"name,label"`
	Target string `hcl:"target"`
}

// Load parses every .hcl file found under paths and applies them over base in
// the order found. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, base *config.Model, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := base.Clone()

	hclFiles, err := fsutil.ExpandPaths(paths, true, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := EvalContext()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		root.apply(model)
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "aliases", len(model.Aliases))
	return model, nil
}

func (r *fileRoot) apply(m *config.Model) {
	if r.Log != nil {
		setIf(&m.Log.Level, r.Log.Level)
		setIf(&m.Log.Format, r.Log.Format)
	}
	if r.Import != nil {
		setIf(&m.Import.Workers, r.Import.Workers)
		setIf(&m.Import.MaxRetries, r.Import.MaxRetries)
		setIf(&m.Import.DefaultUncertainty, r.Import.DefaultUncertainty)
		setIf(&m.Import.Strict, r.Import.Strict)
		if r.Import.Extensions != nil {
			m.Import.Extensions = append([]string(nil), r.Import.Extensions...)
		}
	}
	for _, a := range r.Aliases {
		m.Aliases[strings.ToUpper(a.Name)] = strings.ToUpper(a.Target)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// EvalContext exposes the SI prefix multipliers as the object "si", so that
// lengths can be written as `5 * si.micro`.
func EvalContext() *hcl.EvalContext {
	prefixes := units.Prefixes()
	attrs := make(map[string]cty.Value, len(prefixes))
	for name, f := range prefixes {
		attrs[strings.ToLower(name)] = cty.NumberFloatVal(f)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"si": cty.ObjectVal(attrs),
		},
	}
}
