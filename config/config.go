package config

import (
	"iter"
	"slices"
)

// DefaultFile is the configuration file used when none is given.
const DefaultFile = "t.config.ts"

// DefaultOutput is the output directory of a target that does not name one.
const DefaultOutput = "_t"

// DefaultFnNames returns the marker function names of a target that does not
// name any.
func DefaultFnNames() []string { return []string{"t"} }

// Config is the project configuration.
type Config struct {
	Languages LanguageNode `json:"languages"         toml:"languages"         yaml:"languages"`
	Targets   []Target     `json:"targets,omitempty" toml:"targets,omitempty" validate:"dive" yaml:"targets,omitempty"`
}

// LanguageNode is a language and the languages that inherit from it.
// The root of the tree is the default language.
type LanguageNode struct {
	Name     string         `json:"name"               toml:"name"               validate:"required" yaml:"name"`
	Children []LanguageNode `json:"children,omitempty" toml:"children,omitempty" validate:"dive"     yaml:"children,omitempty"`
}

// Target selects workspaces to scan and where their key files live.
type Target struct {
	Includes []string `json:"includes" toml:"includes" validate:"required,dive,required" yaml:"includes"`
	Excludes []string `json:"excludes" toml:"excludes" validate:"required,dive,required" yaml:"excludes"`
	Output   string   `json:"output"   toml:"output"   validate:"required"               yaml:"output"`
	FnNames  []string `json:"fnNames"  toml:"fnNames"  validate:"dive,required"          yaml:"fnNames"`
}

// DefaultTargets returns the targets used when a configuration has none.
func DefaultTargets() []Target {
	return []Target{{
		Includes: []string{"src"},
		Excludes: []string{"node_modules", ".*"},
		Output:   DefaultOutput,
		FnNames:  DefaultFnNames(),
	}}
}

// Example returns the configuration written by "t-cli init".
func Example() Config {
	return Config{
		Languages: LanguageNode{
			Name:     "en",
			Children: []LanguageNode{{Name: "zh"}},
		},
		Targets: []Target{{
			Includes: []string{"/src"},
			Excludes: []string{"node_modules", ".*"},
			Output:   DefaultOutput,
			FnNames:  DefaultFnNames(),
		}},
	}
}

// Default returns the name of the default language.
func (c *Config) Default() string { return c.Languages.Name }

// Inheritance pairs a language with the language it falls back to.
// Parent is empty for the default language.
type Inheritance struct {
	Language string
	Parent   string
}

// Walk yields every language of the tree in pre-order with its parent.
func (n LanguageNode) Walk() iter.Seq[Inheritance] {
	return func(yield func(Inheritance) bool) {
		n.walk("", yield)
	}
}

func (n LanguageNode) walk(parent string, yield func(Inheritance) bool) bool {
	if !yield(Inheritance{Language: n.Name, Parent: parent}) {
		return false
	}

	for _, c := range n.Children {
		if !c.walk(n.Name, yield) {
			return false
		}
	}

	return true
}

// Languages returns the language names of the tree in pre-order.
func (n LanguageNode) Languages() []string {
	var names []string

	for in := range n.Walk() {
		names = append(names, in.Language)
	}

	return names
}

// Contains reports whether the tree names the language.
func (n LanguageNode) Contains(name string) bool {
	return slices.Contains(n.Languages(), name)
}
