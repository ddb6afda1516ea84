package grammar

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rule tags a concrete production of the grammar.
type Rule int

const (
	RuleInvalid Rule = iota
	RuleProgram
	RuleStatement
	RuleIfStatement
	RuleBranch
	RuleForStatement
	RulePattern
	RuleBlock
	RuleExpression
	RuleExpr
	RuleOperation
	RuleTerm
	RulePrefix
	RuleSuffix
	RuleChainCall
	RulePostfix
	RuleCall
	RuleIndex
	RuleData
	RuleList
	RuleDict
	RulePair
	RuleGroup
	RuleSpecial
	RuleSymbol
	RuleTemplate
	RuleTagItem
	RuleArgument
	RuleArgValue
	RuleAttribute
	RuleJunk
	RuleTagEnd
	RuleTagBody
	RuleCloseTag
	RuleBodyItem
	RuleCodeSection
)

var ruleNames = [...]string{
	RuleInvalid:      "invalid",
	RuleProgram:      "program",
	RuleStatement:    "statement",
	RuleIfStatement:  "if_statement",
	RuleBranch:       "branch",
	RuleForStatement: "for_statement",
	RulePattern:      "pattern",
	RuleBlock:        "block",
	RuleExpression:   "expression",
	RuleExpr:         "expr",
	RuleOperation:    "operation",
	RuleTerm:         "term",
	RulePrefix:       "prefix",
	RuleSuffix:       "suffix",
	RuleChainCall:    "chain_call",
	RulePostfix:      "postfix",
	RuleCall:         "call",
	RuleIndex:        "index",
	RuleData:         "data",
	RuleList:         "list",
	RuleDict:         "dict",
	RulePair:         "pair",
	RuleGroup:        "group",
	RuleSpecial:      "special",
	RuleSymbol:       "symbol",
	RuleTemplate:     "template",
	RuleTagItem:      "tag_item",
	RuleArgument:     "argument",
	RuleArgValue:     "arg_value",
	RuleAttribute:    "attribute",
	RuleJunk:         "junk",
	RuleTagEnd:       "tag_end",
	RuleTagBody:      "tag_body",
	RuleCloseTag:     "close_tag",
	RuleBodyItem:     "body_item",
	RuleCodeSection:  "code_section",
}

// String returns the production name of the rule.
func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}

	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// Node is a concrete parse tree node: a rule tag and the span of source it
// matched. Children are the typed fields of each implementation.
type Node interface {
	Rule() Rule
	Span() Span
}

// Span is the extent of a concrete node in the normalized source.
type Span struct {
	Start lexer.Position
	// End is the offset just past the last token of the node.
	// It equals Start.Offset when the node matched no tokens.
	End int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start.Offset }

// Location is embedded in every production to receive the positional
// information captured by the parser.
type Location struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tokens []lexer.Token
}

// Span returns the tight extent of the tokens matched by the production,
// excluding trailing whitespace and comments.
func (l Location) Span() Span {
	if len(l.Tokens) == 0 {
		return Span{Start: l.Pos, End: l.Pos.Offset}
	}

	first, last := l.Tokens[0], l.Tokens[len(l.Tokens)-1]
	if last.EOF() {
		if len(l.Tokens) == 1 {
			return Span{Start: l.Pos, End: l.Pos.Offset}
		}

		last = l.Tokens[len(l.Tokens)-2]
	}

	return Span{Start: first.Pos, End: last.Pos.Offset + len(last.Value)}
}
