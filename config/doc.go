// Package config loads and validates the project configuration: the language
// inheritance tree and the list of scan targets.
//
// The configuration is normally a TypeScript module (t.config.ts) evaluated
// statically by package script. JSON, YAML and TOML files with the same shape
// are accepted too, selected by file extension.
package config
