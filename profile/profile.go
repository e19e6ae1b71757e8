package profile

// Tag is the build tag that enables profiling, also used as the name of the
// profile output directory.
const Tag = "pprof"

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty mode disables profiling.
	Mode string
	// Path is the directory profile data is written to.
	Path  string
	Quiet bool
}

// Start begins profiling and returns a handle for stopping it.
// Both Start and Stop are always safe to call, including when profiling is
// compiled out or the mode is unknown.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
