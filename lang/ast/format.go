package ast

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Format writes n to w as canonical source text.
//
// Every infix operand that is itself an infix expression is parenthesized,
// so the output never depends on operator precedence. Parsing the output of
// Format for a parsed tree yields a tree [Equal] to it.
func Format(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	f := formatter{w: bw}
	f.node(n)

	return bw.Flush()
}

// Sformat returns the output of [Format] as a string.
func Sformat(n Node) string {
	var sb strings.Builder

	_ = Format(&sb, n)

	return sb.String()
}

type formatter struct {
	w     *bufio.Writer
	depth int
}

func (f *formatter) str(s ...string) {
	for _, v := range s {
		f.w.WriteString(v)
	}
}

func (f *formatter) newline() {
	f.w.WriteByte('\n')
	f.w.WriteString(strings.Repeat("  ", f.depth))
}

func (f *formatter) node(n Node) {
	if isNil(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for i, s := range n.statements {
			if i > 0 {
				f.newline()
			}

			f.node(s)
		}

		if len(n.statements) > 0 {
			f.newline()
		}

	case *Block:
		f.block(n)

	case *Statement:
		if len(n.children) == 0 {
			f.str(";")

			return
		}

		for i, c := range n.children {
			if i > 0 {
				f.str(" ")
			}

			f.node(c)
		}

	case *Expression:
		f.node(n.value)

		if n.terminated {
			f.str(";")
		}

	case *IfStatement:
		for i, a := range n.actions {
			switch {
			case i == 0:
				f.str("if ")
			case i < len(n.conditions):
				f.str(" else if ")
			default:
				f.str(" else ")
			}

			if i < len(n.conditions) {
				f.node(n.conditions[i])
				f.str(" ")
			}

			f.block(a)
		}

	case *ForInLoop:
		f.str("for ")
		f.node(n.pattern)
		f.str(" in ")
		f.node(n.terms)
		f.str(" ")
		f.block(n.block)

	case *List:
		f.str("[")
		f.list(n.items)
		f.str("]")

	case *Dict:
		f.str("{")

		for i, p := range n.pairs {
			if i > 0 {
				f.str(", ")
			}

			f.key(p.key)
			f.str(": ")
			f.node(p.value)
		}

		f.str("}")

	case *Pair:
		f.key(n.key)
		f.str(": ")
		f.node(n.value)

	case *Template:
		f.template(n)

	case *InfixExpression:
		f.operand(n.left, isInfix)
		f.str(" ", n.operator, " ")
		f.operand(n.right, isInfix)

	case *PrefixExpression:
		f.str(n.operator)
		f.operand(n.operand, isInfix)

	case *SuffixExpression:
		f.operand(n.operand, isUnary)
		f.str(n.operator)

	case *CallExpression:
		f.operand(n.callee, isUnary)
		f.str("(")
		f.list(n.arguments)
		f.str(")")

	case *IndexExpression:
		f.operand(n.target, isUnary)
		f.str("[")
		f.node(n.index)
		f.str("]")

	case *Null:
		f.str("null")

	case *Boolean:
		f.str(strconv.FormatBool(n.value))

	case *String:
		f.str(strconv.Quote(n.value))

	case *Number:
		f.str(n.text)

	case *Symbol:
		f.str(n.Name())

	case *Text:
		f.str(n.text)
	}
}

func (f *formatter) block(b *Block) {
	if b == nil || len(b.statements) == 0 {
		f.str("{}")

		return
	}

	f.str("{")
	f.depth++

	for _, s := range b.statements {
		f.newline()
		f.node(s)
	}

	f.depth--
	f.newline()
	f.str("}")
}

func (f *formatter) list(items []Node) {
	for i, n := range items {
		if i > 0 {
			f.str(", ")
		}

		f.node(n)
	}
}

// operand writes n, parenthesized if wrap reports true for it.
func (f *formatter) operand(n Node, wrap func(Node) bool) {
	if wrap(n) {
		f.str("(")
		f.node(n)
		f.str(")")

		return
	}

	f.node(n)
}

func isInfix(n Node) bool {
	_, ok := n.(*InfixExpression)

	return ok
}

func isUnary(n Node) bool {
	switch n.(type) {
	case *InfixExpression, *PrefixExpression, *SuffixExpression:
		return true
	}

	return false
}

// key writes a dict key bare when it lexes as an identifier, and quoted
// otherwise.
func (f *formatter) key(k *String) {
	if k == nil {
		f.str(`""`)

		return
	}

	if isIdent(k.value) && !isKeyword(k.value) {
		f.str(k.value)

		return
	}

	f.str(strconv.Quote(k.value))
}

func (f *formatter) template(t *Template) {
	if t.tag == nil {
		return
	}

	f.str("<", t.tag.Name())

	for _, a := range t.attributes {
		f.str(" ", a.Name())
	}

	for _, a := range t.arguments {
		f.str(" ")
		f.argument(a)
	}

	switch t.variant {
	case SelfClose:
		f.str("/>")

	case OpenClose:
		f.str(">")
		f.body(t.children)
		f.str("</", t.tag.Name(), ">")

	default:
		// Stray head content classifies a tag as malformed.
		f.str(" @")

		if !hasText(t.children) {
			for _, c := range t.children {
				f.str(" {")
				f.node(c)
				f.str("}")
			}

			f.str("/>")

			return
		}

		f.str(">")
		f.body(t.children)
		f.str("</", t.tag.Name(), ">")
	}
}

func (f *formatter) argument(p *Pair) {
	if p.key != nil {
		f.str(p.key.value)
	}

	f.str("=")

	switch v := p.value.(type) {
	case *String, *Number, *Symbol:
		f.node(v)
	default:
		f.str("{")
		f.node(v)
		f.str("}")
	}
}

// body writes the children of an element. Text runs and bare nested
// elements are written as markup; every other statement is wrapped in a
// code section.
func (f *formatter) body(children []Node) {
	for _, c := range children {
		switch c := c.(type) {
		case *Text:
			f.str(c.text)

			continue

		case *Statement:
			if t := bareTemplate(c); t != nil {
				f.template(t)

				continue
			}
		}

		f.str("{")
		f.node(c)
		f.str("}")
	}
}

// bareTemplate returns the template of a statement holding a single
// unterminated template expression.
func bareTemplate(s *Statement) *Template {
	if len(s.children) != 1 {
		return nil
	}

	e, ok := s.children[0].(*Expression)
	if !ok || e.terminated {
		return nil
	}

	t, _ := e.value.(*Template)

	return t
}

func hasText(nodes []Node) bool {
	for _, n := range nodes {
		if _, ok := n.(*Text); ok {
			return true
		}
	}

	return false
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsNumber(r):
		default:
			return false
		}
	}

	return true
}

func isKeyword(s string) bool {
	switch s {
	case "if", "else", "for", "in", "true", "false", "null":
		return true
	}

	return false
}
