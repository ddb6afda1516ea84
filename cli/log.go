package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sdl/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"json"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."           negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing."     negatable:""`
	Parse      bool      `default:"false"                                      help:"Trace each parse step at any level."   negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies every parsed logger setting and returns the logger handed
// to the parser. With --log-parse that logger traces each parse step even
// when the default logger is less verbose.
func (f *logConfig) start(ctx context.Context) log.Logger {
	f.apply()

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
		slog.Bool("parse", f.Parse),
	)

	parser := log.Default()
	if f.Parse {
		parser = parser.Wrap(log.WithLevel(log.LevelTrace))
	}

	return parser.With(slog.String("component", "parser"))
}

// apply replaces the default logger with one built from every setting.
func (f *logConfig) apply() {
	opts := []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}

	if f.TimeLayout != "" {
		opts = append(opts, log.WithTimeLayout(f.TimeLayout))
	}

	log.Config(opts...)
}

// scan applies the logger flags in args before kong parses them, so that
// messages logged while parsing the command line already honor them. Flags
// take the forms --log-NAME, --log-NAME=VALUE and --no-log-NAME; level and
// format also accept their value as the next argument. Scanning stops at
// "--".
func (f *logConfig) scan(args []string) {
	defer f.apply()

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		flag, value, assigned := strings.Cut(args[i], "=")

		name, negated := strings.CutPrefix(flag, "--no-log-")
		if !negated {
			var ok bool
			if name, ok = strings.CutPrefix(flag, "--log-"); !ok {
				continue
			}
		}

		switch name {
		case "level", "format":
			if negated {
				continue
			}

			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			if name == "level" {
				f.Level = logLevel(value)
			} else {
				f.Format = logFormat(value)
			}

		case "pretty", "caller", "parse":
			on := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				on = v
			}

			f.toggle(name, on != negated)
		}
	}
}

func (f *logConfig) toggle(name string, on bool) {
	switch name {
	case "pretty":
		f.Pretty = on
	case "caller":
		f.Caller = on
	case "parse":
		f.Parse = on
	}
}
