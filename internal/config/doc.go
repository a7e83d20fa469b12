// Package config defines the format-agnostic model of a pipeline definition
// and the Loader interface that produces it.
//
// The `config.Model` is the single source of truth for the registry when it
// assembles a compiler. Concrete loaders, such as the HCL one, live in
// separate packages.
package config
