package grammar

import (
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Parser turns normalized source text into a concrete parse tree.
type Parser struct {
	engine *participle.Parser[Program]
}

var build = sync.OnceValues(func() (*Parser, error) {
	p, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
	if err != nil {
		return nil, err
	}

	return &Parser{p}, nil
})

// New returns the shared parser. The grammar is compiled on first use.
func New() (*Parser, error) { return build() }

// Tokenize lexes text. The locator is recorded as the filename of every
// token position. The final token is always [lexer.EOF].
func (p *Parser) Tokenize(locator, text string) ([]lexer.Token, error) {
	lex, err := Lexer.LexString(locator, text)
	if err != nil {
		return nil, err
	}

	return lexer.ConsumeAll(lex)
}

// ParseTokens parses a token stream produced by [Parser.Tokenize].
func (p *Parser) ParseTokens(tokens []lexer.Token) (*Program, error) {
	peek, err := lexer.Upgrade(&tokenStream{tokens: tokens})
	if err != nil {
		return nil, err
	}

	return p.engine.ParseFromLexer(peek)
}

// Parse lexes, repairs and parses text. If the repaired tokens are
// rejected the tokens as lexed are parsed instead.
func (p *Parser) Parse(locator, text string) (*Program, error) {
	lexed, err := p.Tokenize(locator, text)
	if err != nil {
		return nil, err
	}

	tokens, repaired := Repair(locator, text, lexed)

	prog, err := p.ParseTokens(tokens)
	if err != nil && repaired {
		if alt, altErr := p.ParseTokens(lexed); altErr == nil {
			return alt, nil
		}
	}

	return prog, err
}

// EBNF returns the grammar in extended Backus-Naur form.
func (p *Parser) EBNF() string { return p.engine.String() }

type tokenStream struct {
	tokens []lexer.Token
	next   int
}

func (s *tokenStream) Next() (lexer.Token, error) {
	if s.next >= len(s.tokens) {
		var pos lexer.Position
		if n := len(s.tokens); n > 0 {
			pos = s.tokens[n-1].Pos
		}

		return lexer.EOFToken(pos), nil
	}

	t := s.tokens[s.next]
	s.next++

	return t, nil
}

// Unexpected extracts the unexpected token text and the expected
// productions from a parser error message, if present.
func Unexpected(err participle.Error) (token, expected string) {
	if u, ok := err.(*participle.UnexpectedTokenError); ok {
		token = u.Unexpected.Value
		if u.Unexpected.EOF() {
			token = "EOF"
		}
	}

	msg := err.Message()
	if i := strings.LastIndex(msg, "(expected "); i >= 0 && strings.HasSuffix(msg, ")") {
		expected = msg[i+len("(expected ") : len(msg)-1]
	}

	return token, expected
}
