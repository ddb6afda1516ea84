package ast

import "slices"

// Equal reports whether a and b are structurally identical: same kinds,
// same inline values and equal children, recursively.
// Ranges are ignored.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	if a.Kind() != b.Kind() || !sameShape(a, b) {
		return false
	}

	ac, bc := Children(a), Children(b)

	return slices.EqualFunc(ac, bc, Equal)
}

// sameShape compares the inline values and field arity of two nodes of the
// same kind.
func sameShape(a, b Node) bool {
	switch a := a.(type) {
	case *Expression:
		return a.terminated == b.(*Expression).terminated
	case *IfStatement:
		o := b.(*IfStatement)

		return len(a.conditions) == len(o.conditions) &&
			len(a.actions) == len(o.actions)
	case *Template:
		o := b.(*Template)

		return a.variant == o.variant &&
			len(a.attributes) == len(o.attributes) &&
			len(a.arguments) == len(o.arguments) &&
			len(a.children) == len(o.children)
	case *CallExpression:
		return len(a.arguments) == len(b.(*CallExpression).arguments)
	case *InfixExpression:
		return a.operator == b.(*InfixExpression).operator
	case *PrefixExpression:
		return a.operator == b.(*PrefixExpression).operator
	case *SuffixExpression:
		return a.operator == b.(*SuffixExpression).operator
	case *Boolean:
		return a.value == b.(*Boolean).value
	case *String:
		return a.value == b.(*String).value
	case *Number:
		return a.text == b.(*Number).text
	case *Symbol:
		return slices.Equal(a.segments, b.(*Symbol).segments)
	case *Text:
		return a.text == b.(*Text).text
	}

	return true
}
