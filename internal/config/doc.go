// Package config defines the format-agnostic configuration model of the
// importer along with the Loader interface that fills it.
//
// Concrete loaders, such as the HCL one in internal/hclconfig, only translate
// their format into a Model; defaults and precedence live here.
package config
