package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/sdl/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from a
// YAML document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a mapping from flag name to value:
//
//	log-level: debug
//	log-format: text
//	tab-size: 2
//	max-depth: 64
//
// Keys may use underscores in place of hyphens (log_level). Scalars are
// passed to kong as their YAML text, and sequences become lists.
// Command-line flags override config file values. An empty document
// configures nothing.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		if err != nil {
			log.WarnContext(ctx, "ignoring invalid configuration file",
				slog.String("error", err.Error()),
			)

			return config{}, nil
		}

		cfg := make(config, len(doc))
		for key, value := range doc {
			cfg[key] = flagText(value)
		}

		log.TraceContext(ctx, "configuration loaded", slog.Int("keys", len(cfg)))

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - unknown keys are ignored
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil //nolint:nilnil
}

// flagText converts a decoded YAML value to the form kong parses.
// Kong requires numbers as strings for parsing.
func flagText(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagText(e)
		}

		return out
	default:
		return v
	}
}
