// Package profile provides optional runtime profiling for the sdl command.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag every [Config] starts a no-op profiler and [Modes]
// reports nothing, so the default binary carries no profiling code.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithDir("/tmp/profiles"),
//	).Start()
//	defer p.Stop()
//
// # Command-Line Usage
//
// Build with the tag and select a mode on any subcommand. Parsing a large
// document is the usual target:
//
//	go build -tags pprof -o sdl .
//	./sdl --pprof-mode cpu check big.sdl
//	go tool pprof -http=: ~/.cache/sdl/pprof/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the user cache
// directory for sdl.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
