package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sdl/lang"
	"github.com/ardnew/sdl/log"
)

// parserConfig holds the flags that control parsing.
type parserConfig struct {
	TabSize  int `default:"${tabSize}"  help:"Number of spaces each tab expands to." name:"tab-size"`
	MaxDepth int `default:"${maxDepth}" help:"Maximum nesting depth of blocks, collections and elements." name:"max-depth"`
}

func (parserConfig) vars() kong.Vars {
	return kong.Vars{
		"tabSize":  strconv.Itoa(lang.DefaultTabSize),
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
	}
}

func (parserConfig) group() kong.Group {
	var group kong.Group

	group.Key = "parser"
	group.Title = "Parser options"

	return group
}

// start returns the parser configuration selected on the command line.
func (p parserConfig) start(
	ctx context.Context,
	logger log.Logger,
) *lang.ParserConfig {
	log.DebugContext(ctx, "parser configured",
		slog.Int("tab_size", p.TabSize),
		slog.Int("max_depth", p.MaxDepth),
	)

	return lang.NewParserConfig(
		lang.WithTabSize(p.TabSize),
		lang.WithMaxDepth(p.MaxDepth),
		lang.WithLogger(logger),
	)
}
