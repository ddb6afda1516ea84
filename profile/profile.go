package profile

// Profiler is a running profile. Stop flushes its output.
type Profiler interface{ Stop() }

// Config selects a profiling mode and the directory its output is written
// to. The zero Config profiles nothing.
type Config struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option modifies a [Config].
type Option func(Config) Config

// New returns a [Config] with opts applied in order.
func New(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode sets the profiling mode. See [Modes] for accepted values.
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(c Config) Config {
		c.Dir = dir

		return c
	}
}

// WithQuiet suppresses the profiler's own start and stop messages.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Start begins profiling and returns the running [Profiler].
//
// Without the pprof build tag, or when Mode is empty or unknown, Start
// returns a no-op. Both Start and Stop are always safe to call.
func (c Config) Start() Profiler {
	if c.Mode == "" {
		return nop{}
	}

	return start(c)
}

type nop struct{}

func (nop) Stop() {}
