package lang

import (
	"log/slog"
	"math"

	"github.com/expr-lang/expr/parser/operator"

	"github.com/ardnew/sdl/lang/ast"
)

// Operator describes the binding of an infix operator.
// The zero Associativity is left-associative.
type Operator = operator.Operator

// Associativity values for [Operator].
const (
	Left  = operator.Left
	Right = operator.Right
)

// InfixOperators lists every infix operator symbol the lexer produces.
var InfixOperators = []string{
	"|", "||", "&&", "==", "!=", "<", ">", "<=", ">=",
	"..", "+", "-", "*", "/", "%", "**", "^", "??",
}

// OperatorTable maps an infix operator symbol to its precedence and
// associativity. Higher precedence binds tighter.
type OperatorTable map[string]Operator

// DefaultOperators returns the default table: the binary operator ranking
// of the expr language restricted to [InfixOperators].
func DefaultOperators() OperatorTable {
	t := make(OperatorTable, len(InfixOperators))

	for _, sym := range InfixOperators {
		if op, ok := operator.Binary[sym]; ok {
			t[sym] = op
		}
	}

	return t
}

// Op is an infix operator occurrence in a flat expression.
type Op struct {
	Symbol string
	Range  *ast.Range
}

// Resolve nests a flat operand/operator sequence into a single tree of
// [ast.InfixExpression] nodes by precedence climbing. operands must hold
// exactly one more element than operators.
//
// Operators of equal precedence group to the left unless the table marks
// them [Right].
func (t OperatorTable) Resolve(
	operands []ast.Node,
	operators []Op,
) (ast.Node, error) {
	if len(operands) == 0 {
		return nil, ErrEmptyExpression
	}

	if len(operands) != len(operators)+1 {
		return nil, ErrOperandCount.With(
			slog.Int("operands", len(operands)),
			slog.Int("operators", len(operators)),
		)
	}

	for _, op := range operators {
		if _, ok := t[op.Symbol]; !ok {
			return nil, ErrUnknownOperator.With(
				slog.String("operator", op.Symbol),
				slog.String("range", op.Range.String()),
			)
		}
	}

	c := climber{table: t, operands: operands, operators: operators}

	return c.climb(operands[0], math.MinInt), nil
}

type climber struct {
	table     OperatorTable
	operands  []ast.Node
	operators []Op
	next      int // index of the next unconsumed operator
}

// climb folds operators of precedence at least floor into lhs.
// The right operand of operator i is operands[i+1].
func (c *climber) climb(lhs ast.Node, floor int) ast.Node {
	for c.next < len(c.operators) {
		sym := c.operators[c.next]

		op := c.table[sym.Symbol]
		if op.Precedence < floor {
			break
		}

		c.next++
		rhs := c.operands[c.next]

		for c.next < len(c.operators) {
			ahead := c.table[c.operators[c.next].Symbol]

			switch {
			case ahead.Precedence > op.Precedence:
				rhs = c.climb(rhs, op.Precedence+1)

				continue
			case ahead.Precedence == op.Precedence && ahead.Associativity == Right:
				rhs = c.climb(rhs, op.Precedence)

				continue
			}

			break
		}

		lhs = ast.NewInfixExpression(
			lhs.Range().Union(rhs.Range()), sym.Symbol, lhs, rhs,
		)
	}

	return lhs
}
