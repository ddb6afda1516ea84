package ast

import "iter"

// Children returns the direct sub-nodes of n in source order, including the
// named fields of [ForInLoop], [Template] and the other structured kinds.
func Children(n Node) []Node {
	var out []Node

	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.statements {
			add(s)
		}
	case *Block:
		for _, s := range n.statements {
			add(s)
		}
	case *Statement:
		add(n.children...)
	case *Expression:
		add(n.value)
	case *List:
		add(n.items...)
	case *Dict:
		for _, p := range n.pairs {
			add(p)
		}
	case *IfStatement:
		for i, a := range n.actions {
			if i < len(n.conditions) {
				add(n.conditions[i])
			}

			add(a)
		}
	case *ForInLoop:
		add(n.pattern, n.terms, n.block)
	case *Template:
		add(n.tag)

		for _, a := range n.attributes {
			add(a)
		}

		for _, a := range n.arguments {
			add(a)
		}

		add(n.children...)
	case *Pair:
		add(n.key, n.value)
	case *InfixExpression:
		add(n.left, n.right)
	case *PrefixExpression:
		add(n.operand)
	case *SuffixExpression:
		add(n.operand)
	case *CallExpression:
		add(n.callee)
		add(n.arguments...)
	case *IndexExpression:
		add(n.target, n.index)
	}

	return out
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}

	switch v := n.(type) {
	case *Symbol:
		return v == nil
	case *String:
		return v == nil
	case *Block:
		return v == nil
	case *Statement:
		return v == nil
	case *Pair:
		return v == nil
	}

	return false
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}

	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// All returns an iterator over every node of the tree rooted at n in
// depth-first order.
func All(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var walk func(Node) bool

		walk = func(n Node) bool {
			if !yield(n) {
				return false
			}

			for _, c := range Children(n) {
				if !walk(c) {
					return false
				}
			}

			return true
		}

		if !isNil(n) {
			walk(n)
		}
	}
}
