// Package cli contains the command line interface for t-cli.
//
// # Usage
//
//	t-cli [flags] <command>
//
// Commands:
//   - init: write a configuration file template
//   - collect (c): add the keys used in source files to the key files
//   - generate (g): write index.ts into every output directory
//   - clean: remove unused keys from the key files
//   - cg: collect, then generate
//   - gc: collect, generate, then clean
//   - languages (ls): print the language inheritance tree
//
// # Flag Defaults
//
// Every flag can also be set by an environment variable named after it with
// the T_CLI_ prefix (e.g. T_CLI_LOG_LEVEL), or by a key in the YAML file
// config.yaml in the user configuration directory (e.g. ~/.config/t-cli):
//
//	log-level: debug
//	log-format: json
//
// A .env file in the working directory is loaded into the environment first.
// Command-line flags take precedence over both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/t-cli/pprof)
package cli
