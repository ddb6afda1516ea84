package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// repairBudget bounds the work done by [Repair] to a multiple of the input
// size.
const repairBudget = 16

// Repair cuts short the markup in tokens that would otherwise absorb the
// rest of text, and lexes that rest again in the state enclosing the
// element. tokens must be the result of [Parser.Tokenize] for text.
//
// Only elements still open at the end of input are cut:
//   - a head that spans a line break ends before it;
//   - a body without a close tag ends at the ">" of its head, leaving the
//     element empty.
//
// A [TokenTagBroken] token ends each element that was cut. Repair reports
// whether it changed anything; if not, tokens is returned as is.
func Repair(locator, text string, tokens []lexer.Token) ([]lexer.Token, bool) {
	budget := repairBudget*len(text) + 1<<12
	repaired := false

	for {
		c, ok := findCut(text, tokens)
		if !ok {
			return tokens, repaired
		}

		// Each pass scans every token and lexes the rest of the text.
		if budget -= len(tokens) + len(text) - c.offset; budget < 0 {
			return tokens, repaired
		}

		tail, err := relex(locator, text, c.offset, c.enclosing)
		if err != nil {
			return tokens, repaired
		}

		out := make([]lexer.Token, 0, c.index+1+len(tail))
		out = append(out, tokens[:c.index]...)
		out = append(out, c.broken)
		tokens = append(out, tail...)
		repaired = true
	}
}

// cut is where an element open at the end of input is ended.
type cut struct {
	// index of the first token replaced.
	index int
	// broken ends the element in place of the tokens from index on.
	broken lexer.Token
	// offset is where lexing resumes.
	offset int
	// enclosing are the scopes open around the element.
	enclosing []frame
}

// findCut locates the outermost element left open at the end of tokens.
func findCut(text string, tokens []lexer.Token) (cut, bool) {
	var s scopes

	for i, t := range tokens {
		s.step(i, t)
	}

	for n, f := range s.stack {
		if f.scope != scopeTag && f.scope != scopeVoid {
			continue
		}

		if n+1 < len(s.stack) && s.stack[n+1].scope == scopeBody {
			end := tokens[s.stack[n+1].at]
			broken := end
			broken.Type = symTagBroken

			return cut{
				index:     s.stack[n+1].at,
				broken:    broken,
				offset:    end.Pos.Offset + len(end.Value),
				enclosing: s.stack[:n],
			}, true
		}

		return headBreak(text, tokens, f, s.stack[:n])
	}

	return cut{}, false
}

// headBreak cuts the head opened by f at its first line break between
// tokens, provided nothing the head opened is still open there.
func headBreak(text string, tokens []lexer.Token, f frame, enclosing []frame) (cut, bool) {
	var s scopes

	s.push(f.scope, f.at)

	end := tokens[f.at].Pos.Offset + len(tokens[f.at].Value)

	for i := f.at + 1; i < len(tokens); i++ {
		t := tokens[i]

		if len(s.stack) == 1 && strings.Contains(text[end:t.Pos.Offset], "\n") {
			return cut{
				index: i,
				broken: lexer.Token{
					Type: symTagBroken,
					Pos:  position(text, tokens[f.at].Pos.Filename, end),
				},
				offset:    end,
				enclosing: enclosing,
			}, true
		}

		if t.EOF() {
			break
		}

		s.step(i, t)

		end = t.Pos.Offset + len(t.Value)
	}

	return cut{}, false
}

// relex lexes text from offset in the state left by the enclosing scopes.
// Only code scopes can enclose an element open at the end of input, so
// each one is restored by an opening brace ahead of the text.
func relex(locator, text string, offset int, enclosing []frame) ([]lexer.Token, error) {
	var prefix strings.Builder

	for _, f := range enclosing {
		if f.scope == scopeCode {
			prefix.WriteByte('{')
		}
	}

	skip := prefix.Len()

	lex, err := Lexer.LexString(locator, prefix.String()+text[offset:])
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	base := position(text, locator, offset)
	out := tokens[:0]

	for _, t := range tokens {
		if t.Pos.Offset < skip {
			continue
		}

		if t.Pos.Line == 1 {
			t.Pos.Column = base.Column + t.Pos.Column - 1 - skip
		}

		t.Pos.Line += base.Line - 1
		t.Pos.Offset += offset - skip
		out = append(out, t)
	}

	return out, nil
}

// position returns the line and column of offset in text, counted the way
// [Lexer] counts them.
func position(text, filename string, offset int) lexer.Position {
	head := text[:offset]
	line := strings.Count(head, "\n") + 1
	col := utf8.RuneCountInString(head[strings.LastIndexByte(head, '\n')+1:]) + 1

	return lexer.Position{Filename: filename, Offset: offset, Line: line, Column: col}
}
