package ast

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Print writes an indented tree representation of n to w, one node per
// line, followed by its range.
func Print(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	p := printer{w: bw}
	p.node("", n, 0)

	return bw.Flush()
}

// Sprint returns the output of [Print] as a string.
func Sprint(n Node) string {
	var sb strings.Builder

	_ = Print(&sb, n)

	return sb.String()
}

type printer struct {
	w *bufio.Writer
}

func (p printer) line(depth int, item ...string) {
	p.w.WriteString(strings.Repeat("  ", depth))
	p.w.WriteString(strings.Join(item, " "))
	p.w.WriteByte('\n')
}

func (p printer) node(label string, n Node, depth int) {
	if isNil(n) {
		p.line(depth, label+"(nil)")

		return
	}

	head := []string{label + n.Kind().String()}

	switch n := n.(type) {
	case *Expression:
		head = append(head, "terminated="+strconv.FormatBool(n.terminated))
	case *Template:
		head = append(head, n.variant.String())
	case *InfixExpression:
		head = append(head, strconv.Quote(n.operator))
	case *PrefixExpression:
		head = append(head, strconv.Quote(n.operator))
	case *SuffixExpression:
		head = append(head, strconv.Quote(n.operator))
	case *Boolean:
		head = append(head, strconv.FormatBool(n.value))
	case *String:
		head = append(head, strconv.Quote(n.value))
	case *Number:
		head = append(head, n.text)
	case *Symbol:
		head = append(head, n.Name())
	case *Text:
		head = append(head, strconv.Quote(n.text))
	}

	p.line(depth, append(head, "["+n.Range().String()+"]")...)

	depth++

	switch n := n.(type) {
	case *IfStatement:
		for i, a := range n.actions {
			if i < len(n.conditions) {
				p.node("if: ", n.conditions[i], depth)
				p.node("then: ", a, depth)
			} else {
				p.node("else: ", a, depth)
			}
		}
	case *ForInLoop:
		p.node("pattern: ", n.pattern, depth)
		p.node("terms: ", n.terms, depth)
		p.node("block: ", n.block, depth)
	case *Template:
		p.node("tag: ", n.tag, depth)

		for _, a := range n.attributes {
			p.node("attribute: ", a, depth)
		}

		for _, a := range n.arguments {
			p.node("argument: ", a, depth)
		}

		for _, c := range n.children {
			p.node("", c, depth)
		}
	case *Pair:
		p.node("key: ", n.key, depth)
		p.node("value: ", n.value, depth)
	case *InfixExpression:
		p.node("left: ", n.left, depth)
		p.node("right: ", n.right, depth)
	case *CallExpression:
		p.node("callee: ", n.callee, depth)

		for _, a := range n.arguments {
			p.node("arg: ", a, depth)
		}
	case *IndexExpression:
		p.node("target: ", n.target, depth)
		p.node("index: ", n.index, depth)
	default:
		for _, c := range Children(n) {
			p.node("", c, depth)
		}
	}
}
