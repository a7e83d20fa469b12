// Package registry provides the central "glue" between pipeline definitions
// and Go code.
//
// The Registry maps the task type names used in definitions (e.g. "parse")
// to factories that build the task. Modules register their factories at
// startup; a duplicate name is a programmer error and panics.
//
// Build then turns a config.Pipeline into a ready compiler: token blocks
// become pattern parser types, every task definition is resolved through its
// factory and bound to its inputs and outputs.
package registry
