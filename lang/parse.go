package lang

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
)

// Parse reads src and translates it into a program.
//
// Errors from src are returned unchanged. Input rejected by the grammar
// yields a [*SyntaxError], nesting beyond the configured limit yields
// [ErrMaxDepthExceeded], and a grammar production without a translation
// yields a [*RuleError]. No partial tree is returned on failure.
func (c *ParserConfig) Parse(ctx context.Context, src Source) (*ast.Program, error) {
	text, err := src.Text()
	if err != nil {
		return nil, err
	}

	c.locator = src.Locator()

	return c.parse(ctx, text)
}

// ParseString parses text, which has no locator.
func (c *ParserConfig) ParseString(ctx context.Context, text string) (*ast.Program, error) {
	return c.Parse(ctx, String(text))
}

func (c *ParserConfig) parse(ctx context.Context, text string) (*ast.Program, error) {
	c.logger.TraceContext(ctx, "parse start",
		slog.String("locator", c.locator),
		slog.Int("source_bytes", len(text)))

	norm := Normalize(text, c.tabSize)

	c.logger.TraceContext(ctx, "preprocessed",
		slog.Int("tab_size", c.tabSize),
		slog.Int("normalized_bytes", len(norm)))

	p, err := grammar.New()
	if err != nil {
		return nil, ErrGrammar.Wrap(err)
	}

	tree, tokens, err := c.concrete(p, norm)
	if err != nil {
		return nil, err
	}

	c.logger.TraceContext(ctx, "grammar complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("statements", len(tree.Statements)))

	prog, err := build[*ast.Program](newBuilder(ctx, c), tree)
	if err != nil {
		return nil, err
	}

	c.logger.TraceContext(ctx, "parse complete",
		slog.String("locator", c.locator),
		slog.Int("statements", len(prog.Statements())))

	return prog, nil
}

// concrete runs the grammar engine over normalized text. Markup left open
// at the end of input is repaired so it does not absorb the statements
// after it; if the repaired tokens are rejected the tokens as lexed are
// tried instead. Nesting is checked between lexing and parsing so the
// recursive parser never sees input deeper than the configured limit. A
// panic in the engine is reported as a syntax error.
func (c *ParserConfig) concrete(
	p *grammar.Parser,
	text string,
) (tree *grammar.Program, tokens []lexer.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tree = nil
			err = syntaxErrorAt(
				lexer.Position{Filename: c.locator},
				fmt.Sprintf("grammar engine failure: %v", r),
				text,
			)
		}
	}()

	lexed, err := p.Tokenize(c.locator, text)
	if err != nil {
		return nil, nil, newSyntaxError(err, text)
	}

	tokens, repaired := grammar.Repair(c.locator, text, lexed)

	tree, err = c.tree(p, text, tokens)
	if err != nil && repaired {
		c.logger.Trace("repaired markup rejected",
			slog.String("locator", c.locator),
			slog.Any("error", err))

		if alt, altErr := c.tree(p, text, lexed); altErr == nil {
			return alt, lexed, nil
		}
	}

	if err != nil {
		return nil, nil, err
	}

	return tree, tokens, nil
}

// tree checks the nesting of tokens and parses them.
func (c *ParserConfig) tree(
	p *grammar.Parser,
	text string,
	tokens []lexer.Token,
) (*grammar.Program, error) {
	if depth, at := grammar.Nesting(tokens); depth > c.maxDepth {
		return nil, ErrMaxDepthExceeded.With(
			slog.Int("max_depth", c.maxDepth),
			slog.Int("depth", depth),
			slog.String("locator", c.locator),
			slog.Int("line", at.Line),
			slog.Int("column", at.Column),
		)
	}

	tree, err := p.ParseTokens(tokens)
	if err != nil {
		return nil, newSyntaxError(err, text)
	}

	return tree, nil
}
