// Package config defines the format-agnostic configuration model of a
// multiplatform build: source sets and their depends-on edges, targets and
// the compilations they own, plus the switch for the default hierarchy
// template.
//
// The `config.Model` is the single source of truth for the `buildmodel`
// package. Concrete loaders, such as for HCL or YAML, are provided in
// separate packages and all implement Loader.
package config
