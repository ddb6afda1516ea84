package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sdl/lang"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	parserConfigKey struct{}
	outputKey       struct{}
)

// WithParserConfig returns a new context.Context carrying the parser
// settings used by every command.
func WithParserConfig(
	ctx context.Context,
	cfg *lang.ParserConfig,
) context.Context {
	return context.WithValue(ctx, parserConfigKey{}, cfg)
}

// parserConfigFrom returns the settings stored by [WithParserConfig], or a
// fresh default configuration.
func parserConfigFrom(ctx context.Context) *lang.ParserConfig {
	if cfg, ok := ctx.Value(parserConfigKey{}).(*lang.ParserConfig); ok &&
		cfg != nil {
		return cfg
	}

	return lang.NewParserConfig()
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinLocator names standard input in diagnostics.
const stdinLocator = "<stdin>"

// sources returns one [lang.Source] per distinct input in paths.
//
// Paths naming the same file (through symlinks, relative paths or device
// files) yield a single source. All occurrences of "-" are replaced with a
// single stdin source placed last. Paths that cannot be resolved are kept
// so that reading them reports the error.
func sources(paths []string) []lang.Source {
	if len(paths) == 0 {
		return nil
	}

	srcs := make([]lang.Source, 0, len(paths))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		key, ok := resolveKey(path)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		if ok && key == stdinKey {
			continue
		}

		srcs = append(srcs, lang.File(path))
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs = append(srcs, lang.Reader(stdinLocator, os.Stdin))
	}

	return srcs
}

// source returns the single source named by path.
func source(path string) lang.Source {
	if path == "" || path == stdinSource {
		return lang.Reader(stdinLocator, os.Stdin)
	}

	return lang.File(path)
}

// resolveKey resolves symlinks and relative elements of path and returns
// the device/inode pair of the file it names.
func resolveKey(path string) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
