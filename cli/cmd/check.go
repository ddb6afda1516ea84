package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/sdl/lang"
	"github.com/ardnew/sdl/log"
)

// Check parses each source and reports every document that fails. At most
// GOMAXPROCS sources are read and parsed at once.
type Check struct {
	Quiet bool `help:"Suppress diagnostics; report failure by exit status only." short:"q"`

	Sources []string `arg:"" default:"-" help:"Source input files or '-' for stdin." name:"source"`
}

// checkResult is the outcome of parsing one source.
type checkResult struct {
	locator string
	err     error
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs := sources(c.Sources)
	results := make([]checkResult, len(srcs))

	cache := lang.NewCache()
	cfg := parserConfigFrom(ctx)

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range srcs {
		g.Go(func() error {
			_, err := cache.Parse(ctx, cfg, src)
			results[i] = checkResult{locator: src.Locator(), err: err}

			return nil
		})
	}

	_ = g.Wait()

	out := outputFrom(ctx)
	failed := 0

	for _, r := range results {
		if r.err == nil {
			log.DebugContext(ctx, "check passed", slog.String("source", r.locator))

			continue
		}

		failed++

		log.DebugContext(ctx, "check failed",
			slog.String("source", r.locator),
			slog.Any("error", r.err),
		)

		if !c.Quiet {
			fmt.Fprintln(out, diagnostic(r))
		}
	}

	if failed > 0 {
		return ErrCheck.
			With(slog.Int("failed", failed), slog.Int("total", len(results))).
			Wrap(fmt.Errorf("%d of %d sources failed", failed, len(results)))
	}

	return nil
}

// diagnostic renders a failed result. Syntax errors carry their own
// locator; other failures are prefixed with the source.
func diagnostic(r checkResult) string {
	var se *lang.SyntaxError
	if errors.As(r.err, &se) && se.Locator != "" {
		return se.Error()
	}

	if r.locator == "" {
		return r.err.Error()
	}

	return r.locator + ": " + r.err.Error()
}
