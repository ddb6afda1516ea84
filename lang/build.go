package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
	"github.com/ardnew/sdl/log"
)

// builder translates a concrete parse tree into an AST.
//
// Every production that yields a node is translated by exactly one method,
// reached through [builder.node]. Helper productions (branches, operations,
// postfix operations, tag items and body items) are translated inline by
// the method of their parent.
type builder struct {
	ctx    context.Context
	logger log.Logger
	ops    OperatorTable
	trace  bool
}

func newBuilder(ctx context.Context, c *ParserConfig) *builder {
	return &builder{
		ctx:    ctx,
		logger: c.logger,
		ops:    c.operators,
		trace:  c.logger.Enabled(ctx, log.LevelTrace),
	}
}

// node dispatches n to its translation. A production with no translation
// yields a [*RuleError].
func (b *builder) node(n grammar.Node) (ast.Node, error) {
	if b.trace {
		b.logger.TraceContext(b.ctx, "build rule",
			slog.String("rule", n.Rule().String()),
			slog.Int("offset", n.Span().Start.Offset))
	}

	switch n := n.(type) {
	case *grammar.Program:
		return wrap(b.program(n))
	case *grammar.Statement:
		return wrap(b.statement(n))
	case *grammar.IfStatement:
		return wrap(b.ifStatement(n))
	case *grammar.ForStatement:
		return wrap(b.forStatement(n))
	case *grammar.Pattern:
		return wrap(b.pattern(n))
	case *grammar.Block:
		return wrap(b.block(n))
	case *grammar.Expression:
		return wrap(b.expression(n))
	case *grammar.Expr:
		return b.expr(n)
	case *grammar.Term:
		return b.term(n)
	case *grammar.ChainCall:
		return b.chainCall(n)
	case *grammar.Data:
		return b.data(n)
	case *grammar.List:
		return wrap(b.list(n))
	case *grammar.Dict:
		return wrap(b.dict(n))
	case *grammar.Pair:
		return wrap(b.pair(n))
	case *grammar.Group:
		return b.group(n)
	case *grammar.Special:
		return b.special(n), nil
	case *grammar.Symbol:
		return wrap(b.symbol(n))
	case *grammar.Template:
		return wrap(b.template(n))
	case *grammar.Argument:
		return wrap(b.argument(n))
	case *grammar.ArgValue:
		return b.argValue(n)
	case *grammar.Attribute:
		return wrap(b.attribute(n))
	}

	return nil, newRuleError(n)
}

// wrap converts a typed translation result to a node result.
func wrap[T ast.Node](n T, err error) (ast.Node, error) {
	if err != nil {
		return nil, err
	}

	return n, nil
}

// build translates n and asserts the result has type T.
func build[T ast.Node](b *builder, n grammar.Node) (T, error) {
	var zero T

	out, err := b.node(n)
	if err != nil {
		return zero, err
	}

	v, ok := out.(T)
	if !ok {
		return zero, newRuleError(n)
	}

	return v, nil
}

func (b *builder) program(p *grammar.Program) (*ast.Program, error) {
	stmts, err := b.statements(p.Statements)
	if err != nil {
		return nil, err
	}

	return ast.NewProgram(spanRange(p), stmts...), nil
}

func (b *builder) statements(in []*grammar.Statement) ([]*ast.Statement, error) {
	out := make([]*ast.Statement, 0, len(in))

	for _, s := range in {
		st, err := build[*ast.Statement](b, s)
		if err != nil {
			return nil, err
		}

		out = append(out, st)
	}

	return out, nil
}

func (b *builder) statement(s *grammar.Statement) (*ast.Statement, error) {
	var child grammar.Node

	switch {
	case s.If != nil:
		child = s.If
	case s.For != nil:
		child = s.For
	case s.Expr != nil:
		child = s.Expr
	default:
		return ast.NewStatement(spanRange(s)), nil
	}

	c, err := build[ast.Node](b, child)
	if err != nil {
		return nil, err
	}

	return ast.NewStatement(spanRange(s), c), nil
}

func (b *builder) ifStatement(s *grammar.IfStatement) (*ast.IfStatement, error) {
	conditions := make([]ast.Node, 0, len(s.Branches))
	actions := make([]*ast.Block, 0, len(s.Branches)+1)

	for _, br := range s.Branches {
		cond, err := build[ast.Node](b, br.Condition)
		if err != nil {
			return nil, err
		}

		action, err := build[*ast.Block](b, br.Action)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, cond)
		actions = append(actions, action)
	}

	if s.Else != nil {
		action, err := build[*ast.Block](b, s.Else)
		if err != nil {
			return nil, err
		}

		actions = append(actions, action)
	}

	return ast.NewIfStatement(spanRange(s), conditions, actions), nil
}

func (b *builder) forStatement(f *grammar.ForStatement) (*ast.ForInLoop, error) {
	pattern, err := build[*ast.Symbol](b, f.Pattern)
	if err != nil {
		return nil, err
	}

	terms, err := build[ast.Node](b, f.Terms)
	if err != nil {
		return nil, err
	}

	block, err := build[*ast.Block](b, f.Body)
	if err != nil {
		return nil, err
	}

	return ast.NewForInLoop(spanRange(f), pattern, terms, block), nil
}

func (b *builder) pattern(p *grammar.Pattern) (*ast.Symbol, error) {
	sym := ast.NewSymbol(spanRange(p), p.Name)
	if sym == nil {
		return nil, ErrInvalidSymbol.With(slog.String("name", p.Name))
	}

	return sym, nil
}

func (b *builder) block(k *grammar.Block) (*ast.Block, error) {
	stmts, err := b.statements(k.Statements)
	if err != nil {
		return nil, err
	}

	return ast.NewBlock(spanRange(k), stmts...), nil
}

func (b *builder) expression(e *grammar.Expression) (*ast.Expression, error) {
	value, err := build[ast.Node](b, e.Expr)
	if err != nil {
		return nil, err
	}

	// A ";" that aborts a trailing tag head also ends the statement.
	terminated := e.Terminated
	if n := len(e.Tokens); n > 0 && e.Tokens[n-1].Type == tokenTagAbort {
		terminated = true
	}

	return ast.NewExpression(spanRange(e), value, terminated), nil
}

func (b *builder) expr(e *grammar.Expr) (ast.Node, error) {
	head, err := build[ast.Node](b, e.Head)
	if err != nil {
		return nil, err
	}

	if len(e.Tail) == 0 {
		return head, nil
	}

	operands := make([]ast.Node, 0, len(e.Tail)+1)
	operators := make([]Op, 0, len(e.Tail))
	operands = append(operands, head)

	for _, op := range e.Tail {
		operand, err := build[ast.Node](b, op.Operand)
		if err != nil {
			return nil, err
		}

		var rng *ast.Range
		if len(op.Tokens) > 0 {
			rng = tokenRange(op.Tokens[0])
		}

		operands = append(operands, operand)
		operators = append(operators, Op{Symbol: op.Operator, Range: rng})
	}

	return b.ops.Resolve(operands, operators)
}

// term applies suffix operators left to right, outward from the operand,
// then prefix operators closest-to-operand first.
func (b *builder) term(t *grammar.Term) (ast.Node, error) {
	node, err := build[ast.Node](b, t.Call)
	if err != nil {
		return nil, err
	}

	for _, s := range t.Suffix {
		node = ast.NewSuffixExpression(
			node.Range().Union(spanRange(s)), s.Operator, node,
		)
	}

	for i := len(t.Prefix) - 1; i >= 0; i-- {
		p := t.Prefix[i]
		node = ast.NewPrefixExpression(
			spanRange(p).Union(node.Range()), p.Operator, node,
		)
	}

	return node, nil
}

// chainCall applies call and index operations left to right.
func (b *builder) chainCall(c *grammar.ChainCall) (ast.Node, error) {
	node, err := build[ast.Node](b, c.Data)
	if err != nil {
		return nil, err
	}

	for _, pf := range c.Postfix {
		rng := node.Range().Union(spanRange(pf))

		switch {
		case pf.Call != nil:
			args, err := b.exprs(pf.Call.Arguments)
			if err != nil {
				return nil, err
			}

			node = ast.NewCallExpression(rng, node, args...)

		case pf.Index != nil:
			index, err := build[ast.Node](b, pf.Index.Index)
			if err != nil {
				return nil, err
			}

			node = ast.NewIndexExpression(rng, node, index)

		default:
			return nil, newRuleError(pf)
		}
	}

	return node, nil
}

func (b *builder) exprs(in []*grammar.Expr) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(in))

	for _, e := range in {
		n, err := build[ast.Node](b, e)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func (b *builder) data(d *grammar.Data) (ast.Node, error) {
	switch {
	case d.Template != nil:
		return build[ast.Node](b, d.Template)
	case d.List != nil:
		return build[ast.Node](b, d.List)
	case d.Dict != nil:
		return build[ast.Node](b, d.Dict)
	case d.Group != nil:
		return build[ast.Node](b, d.Group)
	case d.Str != nil:
		return ast.NewString(spanRange(d), unquote(*d.Str)), nil
	case d.Num != nil:
		return ast.NewNumber(spanRange(d), *d.Num), nil
	case d.Special != nil:
		return build[ast.Node](b, d.Special)
	case d.Symbol != nil:
		return build[ast.Node](b, d.Symbol)
	case d.Stray != nil:
		return b.stray(d.Stray), nil
	}

	return nil, newRuleError(d)
}

func (b *builder) list(l *grammar.List) (*ast.List, error) {
	items, err := b.exprs(l.Items)
	if err != nil {
		return nil, err
	}

	return ast.NewList(spanRange(l), items...), nil
}

func (b *builder) dict(d *grammar.Dict) (*ast.Dict, error) {
	pairs := make([]*ast.Pair, 0, len(d.Pairs))

	for _, p := range d.Pairs {
		pair, err := build[*ast.Pair](b, p)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, pair)
	}

	return ast.NewDict(spanRange(d), pairs...), nil
}

func (b *builder) pair(p *grammar.Pair) (*ast.Pair, error) {
	var (
		key string
		rng *ast.Range
	)

	switch {
	case p.Str != nil:
		key = unquote(*p.Str)
	case p.Ident != nil:
		key = *p.Ident
	default:
		return nil, newRuleError(p)
	}

	if len(p.Tokens) > 0 {
		rng = tokenRange(p.Tokens[0])
	}

	value, err := build[ast.Node](b, p.Value)
	if err != nil {
		return nil, err
	}

	return ast.NewPair(spanRange(p), ast.NewString(rng, key), value), nil
}

// group yields the inner expression; parentheses only affect precedence.
func (b *builder) group(g *grammar.Group) (ast.Node, error) {
	return build[ast.Node](b, g.Expr)
}

func (b *builder) special(s *grammar.Special) ast.Node {
	switch s.Value {
	case "true":
		return ast.NewBoolean(spanRange(s), true)
	case "false":
		return ast.NewBoolean(spanRange(s), false)
	}

	return ast.NewNull(spanRange(s))
}

func (b *builder) symbol(s *grammar.Symbol) (*ast.Symbol, error) {
	sym := ast.NewSymbol(spanRange(s), s.Segments...)
	if sym == nil {
		return nil, ErrInvalidSymbol.With(
			slog.String("name", strings.Join(s.Segments, ".")),
		)
	}

	return sym, nil
}

// unquote decodes a quoted string literal. Invalid escape sequences are
// kept verbatim.
func unquote(lit string) string {
	if len(lit) < 2 {
		return lit
	}

	quote := lit[0]
	s := lit[1 : len(lit)-1]

	var sb strings.Builder

	sb.Grow(len(s))

	for len(s) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(s, quote)
		if err != nil {
			sb.WriteByte(s[0])
			s = s[1:]

			continue
		}

		if multibyte {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(byte(r))
		}

		s = tail
	}

	return sb.String()
}
