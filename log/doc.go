// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed", slog.String("source", "page.sdl"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing configuration and
// [Logger.With] binds attributes to every subsequent record.
//
// # Levels
//
// In addition to the four [log/slog] levels the package defines
// [LevelTrace], used by the parser for per-rule diagnostics.
//
// # Package-Level Logger
//
// [Config] installs a process-wide logger used by [Info], [Error] and the
// other package-level functions. Functions without a context use
// [DefaultContextProvider].
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. With [WithPretty]
// enabled, both are rendered with terminal styles; styling degrades to plain
// text when the output is not a terminal.
//
// The zero [Logger] discards all records.
package log
