package grammar

import "github.com/alecthomas/participle/v2/lexer"

var (
	symLBrace     = TokenType(TokenLBrace)
	symRBrace     = TokenType(TokenRBrace)
	symPunct      = TokenType(TokenPunct)
	symTagStart   = TokenType(TokenTagStart)
	symVoidStart  = TokenType(TokenVoidStart)
	symTagOpenEnd = TokenType(TokenTagOpenEnd)
	symVoidEnd    = TokenType(TokenVoidEnd)
	symSelfClose  = TokenType(TokenTagSelfClose)
	symTagAbort   = TokenType(TokenTagAbort)
	symCloseTag   = TokenType(TokenCloseTag)
	symText       = TokenType(TokenText)
	symTagBroken  = TokenType(TokenTagBroken)
)

// scope is a region of input opened by one token and closed by another.
type scope uint8

const (
	scopeCode scope = iota + 1
	scopeTag
	scopeVoid
	scopeBody
	scopeParen
	scopeBracket
)

// nests reports whether the parser recurses on entering the scope.
func (s scope) nests() bool { return s != scopeTag && s != scopeVoid }

// frame is an open scope and the index of the token that opened it.
type frame struct {
	scope scope
	at    int
}

// scopes replays the state stack of [Lexer] over its tokens, along with
// the parentheses and brackets that nest within code.
type scopes struct {
	stack []frame
	depth int
}

func (s *scopes) top() scope {
	if len(s.stack) == 0 {
		return 0
	}

	return s.stack[len(s.stack)-1].scope
}

func (s *scopes) push(sc scope, at int) {
	s.stack = append(s.stack, frame{sc, at})
	if sc.nests() {
		s.depth++
	}
}

func (s *scopes) pop() {
	if len(s.stack) == 0 {
		return
	}

	if s.stack[len(s.stack)-1].scope.nests() {
		s.depth--
	}

	s.stack = s.stack[:len(s.stack)-1]
}

// step applies the i'th token.
func (s *scopes) step(i int, t lexer.Token) {
	if t.EOF() {
		return
	}

	// A body returns to its head on anything it cannot lex itself.
	if s.top() == scopeBody {
		switch t.Type {
		case symLBrace, symTagStart, symVoidStart, symText:
		default:
			s.pop()
		}
	}

	switch t.Type {
	case symLBrace:
		s.push(scopeCode, i)

	case symRBrace:
		for sc := s.top(); sc == scopeParen || sc == scopeBracket; sc = s.top() {
			s.pop()
		}

		if s.top() == scopeCode {
			s.pop()
		}

	case symPunct:
		switch t.Value {
		case "(":
			s.push(scopeParen, i)
		case "[":
			s.push(scopeBracket, i)
		case ")":
			if s.top() == scopeParen {
				s.pop()
			}
		case "]":
			if s.top() == scopeBracket {
				s.pop()
			}
		}

	case symTagStart:
		s.push(scopeTag, i)

	case symVoidStart:
		s.push(scopeVoid, i)

	case symTagOpenEnd:
		s.push(scopeBody, i)

	case symVoidEnd, symSelfClose, symTagAbort, symTagBroken:
		s.pop()

	case symCloseTag:
		// Outside of a head the close tag is stray and pops nothing.
		if sc := s.top(); sc == scopeTag || sc == scopeVoid {
			s.pop()
		}
	}
}

// Nesting reports the deepest nesting of braces, brackets, parentheses and
// element bodies in tokens, and the position of the token that reached it.
// Each closing token only closes the scope it matches, so a close tag in a
// head never offsets an open parenthesis.
func Nesting(tokens []lexer.Token) (depth int, at lexer.Position) {
	var s scopes

	for i, t := range tokens {
		s.step(i, t)

		if s.depth > depth {
			depth, at = s.depth, t.Pos
		}
	}

	return depth, at
}
