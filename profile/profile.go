package profile

// Tag is the build tag that enables profiling and the name of the default
// output subdirectory.
const Tag = "pprof"

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of Modes(); empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log output
}

// Start begins profiling and returns a Stopper that ends it.
//
// If the pprof build tag is unset, or Mode is empty or unknown, Start returns
// a no-op Stopper. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return enabled }

type ignore struct{}

func (ignore) Stop() {}
