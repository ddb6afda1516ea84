package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Token type names emitted by [Lexer].
const (
	TokenVoidStart    = "VoidStart"
	TokenTagStart     = "TagStart"
	TokenString       = "String"
	TokenNumber       = "Number"
	TokenKeyword      = "Keyword"
	TokenIdent        = "Ident"
	TokenOperator     = "Operator"
	TokenLBrace       = "LBrace"
	TokenRBrace       = "RBrace"
	TokenPunct        = "Punct"
	TokenTagSelfClose = "TagSelfClose"
	TokenCloseTag     = "CloseTag"
	TokenTagOpenEnd   = "TagOpenEnd"
	TokenVoidEnd      = "VoidEnd"
	TokenTagAbort     = "TagAbort"
	TokenEquals       = "Equals"
	TokenName         = "Name"
	TokenTagJunk      = "TagJunk"
	TokenText         = "Text"
	TokenTagBroken    = "TagBroken"
)

// VoidElements are the tag names that never have a body.
var VoidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img",
	"input", "link", "meta", "param", "source", "track", "wbr",
}

// Keywords are reserved words that never lex as identifiers.
var Keywords = []string{"if", "else", "for", "in", "true", "false", "null"}

const (
	patComment   = `//[^\n]*|/\*(?s:.*?)\*/`
	patSpace     = `\s+`
	patVoidNames = `(?i:area|base|br|col|embed|hr|img|input|link|meta|param|source|track|wbr)`
	patVoidStart = `<` + patVoidNames + `\b`
	patVoidEnd   = `>(?:\s*</` + patVoidNames + `\s*>)?`
	patTagStart  = `<[\p{L}_][\p{L}\p{N}_:.\-]*`
	patString    = `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`
	patNumber    = `0[xX][0-9a-fA-F_]+|\d[\d_]*(?:\.\d[\d_]*)?(?:[eE][+-]?\d+)?`
	patKeyword   = `(?:if|else|for|in|true|false|null)\b`
	patIdent     = `[\p{L}_][\p{L}\p{N}_]*`
	patOperator  = `\*\*|==|!=|<=|>=|&&|\|\||\?\?|\.\.|[-+*/%^<>!?|]`
	patName      = `[\p{L}_][\p{L}\p{N}_:.\-]*`
	patCloseTag  = `</[^>\n]*>?`
	patText      = `(?:[^<{]|<+(?:[^\p{L}_/{<]|$))+`
)

// codeRules lexes statements and expressions. Braces nest by pushing the
// Code state; at the root a closing brace has nothing to pop. A close tag
// outside of any element is lexed whole so it can stand as a stray tag.
func codeRules(rbrace lexer.Action) []lexer.Rule {
	return []lexer.Rule{
		{Name: "comment", Pattern: patComment},
		{Name: "whitespace", Pattern: patSpace},
		{Name: TokenVoidStart, Pattern: patVoidStart, Action: lexer.Push("Void")},
		{Name: TokenTagStart, Pattern: patTagStart, Action: lexer.Push("Tag")},
		{Name: TokenString, Pattern: patString},
		{Name: TokenNumber, Pattern: patNumber},
		{Name: TokenKeyword, Pattern: patKeyword},
		{Name: TokenIdent, Pattern: patIdent},
		{Name: TokenCloseTag, Pattern: patCloseTag},
		{Name: TokenOperator, Pattern: patOperator},
		{Name: TokenLBrace, Pattern: `\{`, Action: lexer.Push("Code")},
		{Name: TokenRBrace, Pattern: `\}`, Action: rbrace},
		{Name: TokenPunct, Pattern: `[()\[\],;.:=]`},
	}
}

// headRules lexes the inside of a tag head. Anything unrecognized becomes
// TagJunk so malformed markup never fails lexing.
func headRules(end lexer.Rule) []lexer.Rule {
	return []lexer.Rule{
		{Name: "whitespace", Pattern: patSpace},
		{Name: TokenTagSelfClose, Pattern: `/>`, Action: lexer.Pop()},
		{Name: TokenCloseTag, Pattern: patCloseTag, Action: lexer.Pop()},
		end,
		{Name: TokenTagAbort, Pattern: `;`, Action: lexer.Pop()},
		{Name: TokenEquals, Pattern: `=`},
		{Name: TokenString, Pattern: patString},
		{Name: TokenNumber, Pattern: patNumber},
		{Name: TokenName, Pattern: patName},
		{Name: TokenLBrace, Pattern: `\{`, Action: lexer.Push("Code")},
		{Name: TokenTagJunk, Pattern: `\S`},
	}
}

// Lexer is the stateful lexer shared by every parse.
//
// States:
//   - Root and Code: statements and expressions.
//   - Tag: the head of an element that may have a body.
//   - Void: the head of an element that never has one.
//   - Body: literal text, nested elements and code sections. A close tag
//     returns to Tag, which consumes it and pops the element.
//   - Broken: never entered. It declares the token [Repair] uses to end an
//     element it cut short.
//
// The ">" of a void element also consumes a close tag of a void element
// that directly follows it, as in "<img></img>".
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": codeRules(nil),
	"Code": codeRules(lexer.Pop()),
	"Tag": headRules(lexer.Rule{
		Name: TokenTagOpenEnd, Pattern: `>`, Action: lexer.Push("Body"),
	}),
	"Void": headRules(lexer.Rule{
		Name: TokenVoidEnd, Pattern: patVoidEnd, Action: lexer.Pop(),
	}),
	"Body": {
		{Name: TokenLBrace, Pattern: `\{`, Action: lexer.Push("Code")},
		{Name: TokenVoidStart, Pattern: patVoidStart, Action: lexer.Push("Void")},
		{Name: TokenTagStart, Pattern: patTagStart, Action: lexer.Push("Tag")},
		{Name: TokenText, Pattern: patText},
		lexer.Return(),
	},
	"Broken": {
		{Name: TokenTagBroken, Pattern: `[^\x00-\x{10FFFF}]`},
	},
})

// TokenType returns the lexer token type for a token name, or
// [lexer.EOF] if the name is unknown.
func TokenType(name string) lexer.TokenType {
	if t, ok := Lexer.Symbols()[name]; ok {
		return t
	}

	return lexer.EOF
}

// SymbolName returns the name of a lexer token type.
func SymbolName(t lexer.TokenType) string {
	for name, sym := range Lexer.Symbols() {
		if sym == t {
			return name
		}
	}

	return "?"
}
