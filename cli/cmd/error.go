package cmd

import "github.com/ardnew/sdl/lang"

// Command errors are [lang.Error] sentinels, so a failed command logs and
// matches with errors.Is the same way a failed parse does.
var (
	ErrFormat      = lang.NewError("format output")
	ErrYAMLMarshal = lang.NewError("marshal YAML")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrCheck       = lang.NewError("check failed")
)
