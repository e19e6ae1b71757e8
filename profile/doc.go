// Package profile wires [github.com/pkg/profile] into t-cli behind the
// "pprof" build tag.
//
// Built without the tag, [Profiler.Start] returns a no-op and [Modes] is
// empty. Built with it, the CLI gains a "--pprof-mode" flag:
//
//	go build -tags pprof .
//	t-cli --pprof-mode cpu collect
//	go tool pprof -http=: "$XDG_CACHE_HOME/t-cli/pprof/cpu.pprof"
//
// Profiling a large collect run shows where time goes between parsing source
// files and writing key files.
package profile
