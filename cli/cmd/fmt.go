package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/sdl/lang"
	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/log"
)

// Fmt parses a document and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical sdl source (default)."`
	JSON   JSON   `cmd:""                    help:"Format the syntax tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the syntax tree as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree with ranges."`
}

// parseSource parses the document named by path with the settings in ctx.
func parseSource(
	ctx context.Context,
	path, format string,
) (*ast.Program, error) {
	src := source(path)

	log.DebugContext(ctx, "parse source",
		slog.String("source", src.Locator()),
		slog.String("format", format),
	)

	prog, err := parserConfigFrom(ctx).Parse(ctx, src)
	if err != nil {
		var se *lang.SyntaxError
		if errors.As(err, &se) {
			return nil, se
		}

		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return prog, nil
}

// Native formats input as canonical sdl source.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	if err := ast.Format(outputFrom(ctx), prog); err != nil {
		return ErrFormat.With(slog.String("format", "native")).Wrap(err)
	}

	return nil
}

// JSON parses input and outputs its syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	if err := ast.FormatJSON(ctx, outputFrom(ctx), prog, j.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML parses input and outputs its syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	if err := ast.FormatYAML(ctx, outputFrom(ctx), prog, y.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}

// AST formats input as an indented syntax tree.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	if err := ast.Print(outputFrom(ctx), prog); err != nil {
		return ErrFormat.With(slog.String("format", "ast")).Wrap(err)
	}

	return nil
}
