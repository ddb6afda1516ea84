// Package cli contains the command line interface for sdl.
//
// # Usage
//
// Each command parses one or more documents with the lang package:
//
//	sdl fmt [native|json|yaml|ast] [source]
//	sdl check [source...]
//	sdl repl [source]
//	sdl init [--force]
//
// A source is a file path or "-" for standard input. Without a source,
// commands read standard input.
//
// # Configuration
//
// Flag values may be stored in a YAML file in the configuration directory
// (see [configPath]). The document maps flag names to values:
//
//	log-level: debug
//	tab-size: 2
//	max-depth: 64
//
// A JSON file of the same base name is also accepted. Command-line flags
// override both. The init command writes the current flag values to the
// YAML file.
//
// # Parser Options
//
//   - --tab-size: Columns a tab advances to during normalization
//   - --max-depth: Maximum nesting depth of a document
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sdl .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/sdl/pprof)
//
// # Examples
//
//	# Print the syntax tree of a document
//	sdl fmt ast page.sdl
//
//	# Check every template in a directory
//	sdl check templates/*.sdl
//
//	# Normalize with two-column tabs and CPU profiling
//	sdl --tab-size=2 --pprof-mode=cpu fmt page.sdl
package cli
