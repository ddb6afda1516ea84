package cmd

import (
	"context"

	"github.com/ardnew/sdl/cli/cmd/repl"
	"github.com/ardnew/sdl/lang"
	"github.com/ardnew/sdl/log"
)

// Repl starts an interactive session that parses each line of input.
type Repl struct {
	Source string `arg:"" help:"Document to preload for completion and editing, or '-' for stdin." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	var preload lang.Source
	if r.Source != "" {
		preload = source(r.Source)
	}

	return repl.Run(ctx, parserConfigFrom(ctx), preload, cacheDir, log.Default())
}
