// Package profile provides optional runtime profiling for xmark.
//
// Profiling is compiled in only with the "pprof" build tag and is backed by
// [github.com/pkg/profile]. Without the tag every [Profiler] is a no-op and
// [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/xmark"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode (for
// example cpu.pprof or mem.pprof) and can be inspected with go tool pprof:
//
//	go tool pprof -http=: /tmp/xmark/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers.
package profile
