// Package cmd implements the sdl subcommands: fmt, check, init and repl.
//
// Commands receive their runtime dependencies through [context.Context]:
// the [kong.Context] ([WithContext]), the parser settings
// ([WithParserConfig]) and the output stream ([WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
