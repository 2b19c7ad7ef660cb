// Package units resolves the file-local length unit and tolerance that scale
// every geometric quantity of an exchange file.
package units

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultUncertainty is the global tolerance assumed when a file declares none.
const DefaultUncertainty = 1e-6

// Context is resolved once per import run and passed to every constructor.
type Context struct {
	// LengthFactor converts file length units into metres.
	LengthFactor float64
	// Uncertainty is the global distance tolerance, already in metres.
	Uncertainty float64
}

// Identity is the context used before the file's own unit is known.
func Identity() Context {
	return Context{LengthFactor: 1, Uncertainty: DefaultUncertainty}
}

// Length scales a raw length literal.
func (c Context) Length(v float64) float64 {
	return v * c.LengthFactor
}

// Omitted is the prefix token of an SI unit written without a prefix (`$`).
const Omitted = "$"

var prefixes = map[string]float64{
	"EXA":   1e18,
	"PETA":  1e15,
	"TERA":  1e12,
	"GIGA":  1e9,
	"MEGA":  1e6,
	"KILO":  1e3,
	"HECTO": 1e2,
	"DECA":  1e1,
	Omitted: 1,
	"DECI":  1e-1,
	"CENTI": 1e-2,
	"MILLI": 1e-3,
	"MICRO": 1e-6,
	"NANO":  1e-9,
	"PICO":  1e-12,
	"FEMTO": 1e-15,
	"ATTO":  1e-18,
}

// Prefix returns the multiplier of an SI prefix name such as "MILLI".
// Lookup is case-insensitive; the bare `$` token yields 1.
func Prefix(name string) (float64, error) {
	if f, ok := prefixes[strings.ToUpper(name)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown SI prefix %q", name)
}

// Prefixes returns every named prefix and its multiplier, excluding `$`.
func Prefixes() map[string]float64 {
	out := make(map[string]float64, len(prefixes)-1)
	for k, v := range prefixes {
		if k != Omitted {
			out[k] = v
		}
	}
	return out
}

// PrefixNames returns the named prefixes sorted by descending multiplier.
func PrefixNames() []string {
	names := make([]string, 0, len(prefixes)-1)
	for k := range prefixes {
		if k != Omitted {
			names = append(names, k)
		}
	}
	sort.Slice(names, func(i, j int) bool { return prefixes[names[i]] > prefixes[names[j]] })
	return names
}
