package lang

import (
	"maps"

	"github.com/ardnew/sdl/log"
)

// DefaultMaxDepth is the default limit on nesting of blocks, groups,
// collections and template bodies.
const DefaultMaxDepth = 256

// ParserConfig is the entry point for parsing. It holds the preprocessing,
// nesting and operator settings, and records the locator of the source
// being parsed.
//
// A ParserConfig must not be used by concurrent parses; independent
// instances share no state.
type ParserConfig struct {
	tabSize   int
	maxDepth  int
	operators OperatorTable
	logger    log.Logger
	locator   string
}

// Option is a functional option for configuring a [ParserConfig].
type Option func(*ParserConfig)

// WithTabSize sets the number of spaces each tab expands to.
func WithTabSize(n int) Option {
	return func(c *ParserConfig) {
		c.tabSize = max(n, 0)
	}
}

// WithMaxDepth sets the maximum nesting depth. A non-positive depth
// restores the default.
func WithMaxDepth(depth int) Option {
	return func(c *ParserConfig) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		c.maxDepth = depth
	}
}

// WithOperators replaces the infix operator table.
func WithOperators(t OperatorTable) Option {
	return func(c *ParserConfig) {
		c.operators = maps.Clone(t)
	}
}

// WithLogger sets the logger used for parse tracing.
func WithLogger(logger log.Logger) Option {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}

// NewParserConfig returns a configuration with the given options applied
// over the defaults.
func NewParserConfig(opts ...Option) *ParserConfig {
	var c ParserConfig

	applyDefaults(&c)
	applyOptions(&c, opts...)

	return &c
}

// applyDefaults initializes a configuration with default values.
func applyDefaults(c *ParserConfig) {
	c.tabSize = DefaultTabSize
	c.maxDepth = DefaultMaxDepth
	c.operators = DefaultOperators()
}

// applyOptions applies functional options to a configuration.
func applyOptions(c *ParserConfig, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

// TabSize returns the tab expansion width.
func (c *ParserConfig) TabSize() int { return c.tabSize }

// MaxDepth returns the nesting limit.
func (c *ParserConfig) MaxDepth() int { return c.maxDepth }

// Operators returns a copy of the infix operator table.
func (c *ParserConfig) Operators() OperatorTable { return maps.Clone(c.operators) }

// Locator returns the locator of the source most recently parsed.
func (c *ParserConfig) Locator() string { return c.locator }
