package ast

import (
	"slices"
	"strings"
)

// Node is a syntax tree node.
// The set of implementations is closed; every node is immutable once built.
type Node interface {
	// Kind returns the variant of the node.
	Kind() Kind
	// Range returns the source span of the node, or nil if unknown.
	Range() *Range

	node()
}

type span struct{ rng *Range }

func (s span) Range() *Range { return s.rng }

func (span) node() {}

// Program is the root of a parsed document.
type Program struct {
	span
	statements []*Statement
}

// NewProgram returns a program holding the given top-level statements.
func NewProgram(rng *Range, statements ...*Statement) *Program {
	return &Program{span{rng}, slices.Clone(statements)}
}

func (*Program) Kind() Kind { return KindProgram }

// Statements returns the top-level statements in source order.
func (p *Program) Statements() []*Statement { return slices.Clone(p.statements) }

// Block is a braced sequence of statements.
type Block struct {
	span
	statements []*Statement
}

// NewBlock returns a block holding statements.
func NewBlock(rng *Range, statements ...*Statement) *Block {
	return &Block{span{rng}, slices.Clone(statements)}
}

func (*Block) Kind() Kind { return KindBlock }

// Statements returns the statements of the block in source order.
func (b *Block) Statements() []*Statement { return slices.Clone(b.statements) }

// Statement wraps the nodes produced by one statement production:
// an [*IfStatement], [*ForInLoop] or [*Expression].
// A bare terminator yields a statement with no children.
type Statement struct {
	span
	children []Node
}

// NewStatement returns a statement holding children.
func NewStatement(rng *Range, children ...Node) *Statement {
	return &Statement{span{rng}, slices.Clone(children)}
}

func (*Statement) Kind() Kind { return KindStatement }

// Children returns the nodes of the statement.
func (s *Statement) Children() []Node { return slices.Clone(s.children) }

// Expression is an expression used as a statement.
type Expression struct {
	span
	value      Node
	terminated bool
}

// NewExpression returns an expression statement.
// Terminated records whether an explicit ";" followed value.
func NewExpression(rng *Range, value Node, terminated bool) *Expression {
	return &Expression{span{rng}, value, terminated}
}

func (*Expression) Kind() Kind { return KindExpression }

// Value returns the expression tree.
func (e *Expression) Value() Node { return e.value }

// Terminated reports whether the expression consumed a ";".
func (e *Expression) Terminated() bool { return e.terminated }

// List is a bracketed sequence of expressions.
type List struct {
	span
	items []Node
}

// NewList returns a list of items.
func NewList(rng *Range, items ...Node) *List {
	return &List{span{rng}, slices.Clone(items)}
}

func (*List) Kind() Kind { return KindList }

// Items returns a copy of the list elements.
func (l *List) Items() []Node { return slices.Clone(l.items) }

// Dict is a braced sequence of key/value pairs.
type Dict struct {
	span
	pairs []*Pair
}

// NewDict returns a dict of pairs in source order.
func NewDict(rng *Range, pairs ...*Pair) *Dict {
	return &Dict{span{rng}, slices.Clone(pairs)}
}

func (*Dict) Kind() Kind { return KindDict }

// Pairs returns a copy of the dict entries.
func (d *Dict) Pairs() []*Pair { return slices.Clone(d.pairs) }

// IfStatement holds parallel lists of conditions and actions.
// The first condition that holds selects the action at the same index;
// when there is one more action than conditions, the last action is the
// else branch.
type IfStatement struct {
	span
	conditions []Node
	actions    []*Block
}

// NewIfStatement returns a conditional. actions holds one block per
// condition, plus a trailing else block if there is one.
func NewIfStatement(rng *Range, conditions []Node, actions []*Block) *IfStatement {
	return &IfStatement{span{rng}, slices.Clone(conditions), slices.Clone(actions)}
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

// Conditions returns a copy of the branch conditions.
func (s *IfStatement) Conditions() []Node { return slices.Clone(s.conditions) }

// Actions returns a copy of the branch blocks, else block last.
func (s *IfStatement) Actions() []*Block { return slices.Clone(s.actions) }

// Else returns the default action, or nil if there is none.
func (s *IfStatement) Else() *Block {
	if len(s.actions) > len(s.conditions) {
		return s.actions[len(s.actions)-1]
	}

	return nil
}

// ForInLoop iterates the values of Terms, binding each to Pattern.
type ForInLoop struct {
	span
	pattern *Symbol
	terms   Node
	block   *Block
}

// NewForInLoop returns a loop binding pattern to each of terms.
func NewForInLoop(rng *Range, pattern *Symbol, terms Node, block *Block) *ForInLoop {
	return &ForInLoop{span{rng}, pattern, terms, block}
}

func (*ForInLoop) Kind() Kind { return KindForInLoop }

// Pattern returns the loop variable.
func (f *ForInLoop) Pattern() *Symbol { return f.pattern }

// Terms returns the iterated expression.
func (f *ForInLoop) Terms() Node { return f.terms }

// Block returns the loop body.
func (f *ForInLoop) Block() *Block { return f.block }

// Template is an HTML-like tag.
//
// Children is empty unless the variant is [OpenClose] or [HtmlBad];
// an HtmlBad template holds whatever partial structure was recognized.
type Template struct {
	span
	variant    Variant
	tag        *Symbol
	attributes []*Symbol
	arguments  []*Pair
	children   []Node
}

// TemplateParts groups the named fields of a [Template] for construction.
type TemplateParts struct {
	Tag        *Symbol
	Attributes []*Symbol
	Arguments  []*Pair
	Children   []Node
}

// NewTemplate returns a template of the given variant.
// Children are dropped for [SelfClose] templates.
func NewTemplate(rng *Range, variant Variant, parts TemplateParts) *Template {
	t := &Template{
		span:       span{rng},
		variant:    variant,
		tag:        parts.Tag,
		attributes: slices.Clone(parts.Attributes),
		arguments:  slices.Clone(parts.Arguments),
	}

	if variant != SelfClose {
		t.children = slices.Clone(parts.Children)
	}

	return t
}

func (*Template) Kind() Kind { return KindTemplate }

// Variant returns how the element was terminated.
func (t *Template) Variant() Variant { return t.variant }

// Tag returns the element name, or nil if it has none.
func (t *Template) Tag() *Symbol { return t.tag }

// Attributes returns the bare, unvalued attributes in source order.
func (t *Template) Attributes() []*Symbol { return slices.Clone(t.attributes) }

// Arguments returns the key=value attributes in source order.
func (t *Template) Arguments() []*Pair { return slices.Clone(t.arguments) }

// Children returns the body of the template: statements and text runs.
func (t *Template) Children() []Node { return slices.Clone(t.children) }

// Pair is a key/value tuple used by [Dict] and [Template] arguments.
type Pair struct {
	span
	key   *String
	value Node
}

// NewPair returns a key and its value.
func NewPair(rng *Range, key *String, value Node) *Pair {
	return &Pair{span{rng}, key, value}
}

func (*Pair) Kind() Kind { return KindPair }

// Key returns the pair key.
func (p *Pair) Key() *String { return p.key }

// Value returns the pair value.
func (p *Pair) Value() Node { return p.value }

// InfixExpression is a binary operation.
type InfixExpression struct {
	span
	operator    string
	left, right Node
}

// NewInfixExpression returns a binary operation.
func NewInfixExpression(rng *Range, operator string, left, right Node) *InfixExpression {
	return &InfixExpression{span{rng}, operator, left, right}
}

func (*InfixExpression) Kind() Kind { return KindInfixExpression }

// Operator returns the operator symbol.
func (e *InfixExpression) Operator() string { return e.operator }

// Left returns the left operand.
func (e *InfixExpression) Left() Node { return e.left }

// Right returns the right operand.
func (e *InfixExpression) Right() Node { return e.right }

// PrefixExpression is a unary operator written before its operand.
type PrefixExpression struct {
	span
	operator string
	operand  Node
}

// NewPrefixExpression returns a unary operation written before its operand.
func NewPrefixExpression(rng *Range, operator string, operand Node) *PrefixExpression {
	return &PrefixExpression{span{rng}, operator, operand}
}

func (*PrefixExpression) Kind() Kind { return KindPrefixExpression }

// Operator returns the operator symbol.
func (e *PrefixExpression) Operator() string { return e.operator }

// Operand returns the operand.
func (e *PrefixExpression) Operand() Node { return e.operand }

// SuffixExpression is a unary operator written after its operand.
type SuffixExpression struct {
	span
	operator string
	operand  Node
}

// NewSuffixExpression returns a unary operation written after its operand.
func NewSuffixExpression(rng *Range, operator string, operand Node) *SuffixExpression {
	return &SuffixExpression{span{rng}, operator, operand}
}

func (*SuffixExpression) Kind() Kind { return KindSuffixExpression }

// Operator returns the operator symbol.
func (e *SuffixExpression) Operator() string { return e.operator }

// Operand returns the operand.
func (e *SuffixExpression) Operand() Node { return e.operand }

// CallExpression applies Callee to Arguments.
type CallExpression struct {
	span
	callee    Node
	arguments []Node
}

// NewCallExpression returns a call of callee with arguments.
func NewCallExpression(rng *Range, callee Node, arguments ...Node) *CallExpression {
	return &CallExpression{span{rng}, callee, slices.Clone(arguments)}
}

func (*CallExpression) Kind() Kind { return KindCallExpression }

// Callee returns the called expression.
func (e *CallExpression) Callee() Node { return e.callee }

// Arguments returns a copy of the call arguments.
func (e *CallExpression) Arguments() []Node { return slices.Clone(e.arguments) }

// IndexExpression selects Index from Target.
type IndexExpression struct {
	span
	target, index Node
}

// NewIndexExpression returns target indexed by index.
func NewIndexExpression(rng *Range, target, index Node) *IndexExpression {
	return &IndexExpression{span{rng}, target, index}
}

func (*IndexExpression) Kind() Kind { return KindIndexExpression }

// Target returns the indexed expression.
func (e *IndexExpression) Target() Node { return e.target }

// Index returns the index expression.
func (e *IndexExpression) Index() Node { return e.index }

// Null is the null literal.
type Null struct{ span }

// NewNull returns the null literal.
func NewNull(rng *Range) *Null { return &Null{span{rng}} }

func (*Null) Kind() Kind { return KindNull }

// Boolean is a true or false literal.
type Boolean struct {
	span
	value bool
}

// NewBoolean returns a boolean literal.
func NewBoolean(rng *Range, value bool) *Boolean { return &Boolean{span{rng}, value} }

func (*Boolean) Kind() Kind { return KindBoolean }

// Value returns the literal value.
func (b *Boolean) Value() bool { return b.value }

// String is a string literal with its escapes decoded.
type String struct {
	span
	value string
}

// NewString returns a string literal holding its decoded value.
func NewString(rng *Range, value string) *String { return &String{span{rng}, value} }

func (*String) Kind() Kind { return KindString }

// Value returns the decoded string.
func (s *String) Value() string { return s.value }

// Number is a numeric literal kept as its source text.
type Number struct {
	span
	text string
}

// NewNumber returns a number literal kept as written.
func NewNumber(rng *Range, text string) *Number { return &Number{span{rng}, text} }

func (*Number) Kind() Kind { return KindNumber }

// Text returns the literal as written.
func (n *Number) Text() string { return n.text }

// Symbol is a possibly dotted name, e.g. a.b.c.
type Symbol struct {
	span
	segments []string
}

// NewSymbol returns a symbol with the given segments, or nil if there are
// none or any segment is empty.
func NewSymbol(rng *Range, segments ...string) *Symbol {
	if len(segments) == 0 || slices.Contains(segments, "") {
		return nil
	}

	return &Symbol{span{rng}, slices.Clone(segments)}
}

func (*Symbol) Kind() Kind { return KindSymbol }

// Segments returns the identifier segments of the symbol.
func (s *Symbol) Segments() []string { return slices.Clone(s.segments) }

// Name returns the segments joined by ".".
func (s *Symbol) Name() string { return strings.Join(s.segments, ".") }

// Text is a literal run of text inside a template body.
type Text struct {
	span
	text string
}

// NewText returns a run of literal element text.
func NewText(rng *Range, text string) *Text { return &Text{span{rng}, text} }

func (*Text) Kind() Kind { return KindText }

// Text returns the literal text.
func (t *Text) Text() string { return t.text }
