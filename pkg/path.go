package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// prefixRules rewrite the executable's base name into [Prefix].
//
//nolint:gochecknoglobals
var prefixRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), Name}, // dlv output binary
	{regexp.MustCompile(`^\.+`), ""},
}

// Prefix returns the base name used for the configuration and cache
// directories.
//
// It is the executable's base name without extension. A dlv debug binary
// maps to [Name], and leading dots are removed. An empty result falls back
// to [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		base := filepath.Base(exe)
		base = strings.TrimSuffix(base, filepath.Ext(base))

		for _, rule := range prefixRules {
			base = rule.pattern.ReplaceAllString(base, rule.replace)
		}

		if base == "" {
			return Name
		}

		return base
	},
)

// ConfigDir returns the directory holding the configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the directory holding transient files such as REPL
// history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir joins [Prefix] to the directory reported by lookup. When lookup
// fails, it uses the hidden directory home under the user's home directory,
// and then the working directory.
func userDir(lookup func() (string, error), home string) string {
	dir, err := lookup()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, home)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
