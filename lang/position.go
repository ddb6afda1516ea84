package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
)

var tokenTagAbort = grammar.TokenType(grammar.TokenTagAbort)

// spanRange returns the range of the tokens matched by n, or nil if it
// matched none.
func spanRange(n grammar.Node) *ast.Range {
	sp := n.Span()

	return ast.NewRange(sp.Start.Offset, sp.End)
}

// tokenRange returns the range of a single token.
func tokenRange(t lexer.Token) *ast.Range {
	return ast.NewRange(t.Pos.Offset, t.Pos.Offset+len(t.Value))
}

// Position is a 1-based line and column in normalized source text.
// Columns count runes.
type Position struct {
	Line   int
	Column int
}

// Locate returns the position of the byte offset in text. Offsets beyond
// the end of text are clamped to it.
func Locate(text string, offset int) Position {
	offset = min(max(offset, 0), len(text))
	head := text[:offset]

	line := strings.Count(head, "\n") + 1
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		head = head[i+1:]
	}

	return Position{Line: line, Column: utf8.RuneCountInString(head) + 1}
}
