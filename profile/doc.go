// Package profile provides optional runtime profiling for traj.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only with
// the pprof build tag:
//
//	go build -tags pprof -o traj .
//
// Without the tag every [Config] starts a no-op profiler and [Modes] is
// empty, so the command line offers no profiling flags.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	defer profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	).Start().Stop()
//
// Large dry runs, such as a sweep over several thousand points with nested
// lookups, are the usual reason to profile:
//
//	traj --pprof-mode cpu --pprof-dir ./profiles sweep.json
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default output directory is the pprof directory below the user cache
// directory, for example $XDG_CACHE_HOME/traj/pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
