// Package cli contains the command line interface for traj.
//
// # Usage
//
//	traj [flags] <source>
//	traj [flags] dryrun <source>
//	traj examples [name]
//
// A source is a trajectory file, read as YAML when its extension is .yaml or
// .yml and as relaxed JSON otherwise, or the name of a built-in example. The
// dryrun command is the default and prints every point the trajectory
// visits:
//
//	traj refl                   # aligned table
//	traj --format csv sans      # quoted CSV
//	traj --format json --indent 0 scan.yaml
//	traj --count refl           # number of points
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory, and from the file named by --config. Keys are
// flag names, with "_" accepted for "-", and nested mappings join their keys:
//
//	log:
//	  level: debug
//	format: csv
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: record format (json, text)
//   - --log-time-layout: timestamp layout, a time package constant name or
//     "none"
//   - --log-caller: include the source location
//   - --log-pretty: colorize records
//
// Logs are written to standard error and carry a "run" identifier unique to
// each invocation.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o traj .
//
//   - --pprof-mode: profile to record (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/traj/pprof)
package cli
