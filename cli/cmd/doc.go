// Package cmd implements the t-cli subcommands.
//
// Every command is a kong command struct with a Run(context.Context) method.
// The commands that operate on a project embed [Project] for the shared
// --config and --verbose flags. Values only known after parsing (the parsed
// kong context, the project directory and the status writer) reach the
// commands through the context.
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the default
	// project configuration file.
	ConfigIdentifier = "configFile"

	// DirIdentifier is the kong variable identifier containing the default
	// project directory.
	DirIdentifier = "dir"
)
