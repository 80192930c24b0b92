// Package config loads the run configuration.
//
// Values come from, in increasing priority: defaults, an optional
// autodoc.yaml, AUTODOC_* environment variables and command-line flags.
// The result is validated before use.
package config
