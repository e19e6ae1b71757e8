//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the t-cli module embedded at build time.
// It is printed by the CLI when users pass the --version flag.
//
//go:embed VERSION
var version string

// Version returns the embedded version string without surrounding whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command identifier used across the project.
	// For example, it appears in help text, generated file headers, and the
	// default config directory.
	Name = "t-cli"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Translation key collector and generator"
)
