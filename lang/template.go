package lang

import (
	"strings"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
)

// template classifies a tag and collects its parts.
//
// A tag is [ast.SelfClose] when its head ends with "/>" or it is a void
// element ending with ">", optionally followed by its own close tag, and
// [ast.OpenClose] when its body ends with a close tag of the same name.
// Anything else is [ast.HtmlBad]: a head with stray tokens or code
// sections, an aborted, unterminated or cut short head, or a missing or
// mismatched close tag. Whatever was recognized is kept.
func (b *builder) template(t *grammar.Template) (*ast.Template, error) {
	var open string

	switch {
	case t.Open != nil:
		open = *t.Open
	case t.Void != nil:
		open = *t.Void
	default:
		return nil, newRuleError(t)
	}

	name := strings.TrimPrefix(open, "<")

	var (
		parts ast.TemplateParts
		bad   bool
	)

	if len(t.Tokens) > 0 {
		parts.Tag = tagSymbol(tokenRange(t.Tokens[0]), name)
	}

	for _, item := range t.Items {
		switch {
		case item.Argument != nil:
			arg, err := build[*ast.Pair](b, item.Argument)
			if err != nil {
				return nil, err
			}

			parts.Arguments = append(parts.Arguments, arg)

		case item.Attribute != nil:
			attr, err := build[*ast.Symbol](b, item.Attribute)
			if err != nil {
				return nil, err
			}

			parts.Attributes = append(parts.Attributes, attr)

		case item.Code != nil:
			stmts, err := b.statements(item.Code.Statements)
			if err != nil {
				return nil, err
			}

			for _, s := range stmts {
				parts.Children = append(parts.Children, s)
			}

			bad = true

		case item.Junk != nil:
			bad = true

		default:
			return nil, newRuleError(item)
		}
	}

	variant := ast.HtmlBad

	switch end := t.End; {
	case end == nil, end.Abort, end.Broken, end.Close != nil:

	case end.SelfClose:
		variant = ast.SelfClose

	case end.Void != nil:
		if raw := strings.TrimLeft((*end.Void)[1:], " \t\r\n"); raw == "" || closes(raw, name) {
			variant = ast.SelfClose
		}

	case end.Body != nil:
		children, err := b.body(end.Body)
		if err != nil {
			return nil, err
		}

		parts.Children = append(parts.Children, children...)

		if end.Body.Close != nil && closes(end.Body.Close.Raw, name) {
			variant = ast.OpenClose
		}

	default:
		return nil, newRuleError(end)
	}

	if bad {
		variant = ast.HtmlBad
	}

	return ast.NewTemplate(spanRange(t), variant, parts), nil
}

// body translates the content of an element: text runs, nested elements
// and the statements of code sections, in source order.
func (b *builder) body(body *grammar.TagBody) ([]ast.Node, error) {
	var out []ast.Node

	for _, item := range body.Items {
		switch {
		case item.Text != nil:
			out = append(out, ast.NewText(spanRange(item), *item.Text))

		case item.Template != nil:
			tmpl, err := build[*ast.Template](b, item.Template)
			if err != nil {
				return nil, err
			}

			rng := tmpl.Range()
			out = append(out, ast.NewStatement(rng, ast.NewExpression(rng, tmpl, false)))

		case item.Code != nil:
			stmts, err := b.statements(item.Code.Statements)
			if err != nil {
				return nil, err
			}

			for _, s := range stmts {
				out = append(out, s)
			}

		default:
			return nil, newRuleError(item)
		}
	}

	return out, nil
}

// stray translates a close tag with no element to close into an empty
// [ast.HtmlBad] template named by the tag.
func (b *builder) stray(c *grammar.CloseTag) *ast.Template {
	name, _ := strings.CutSuffix(strings.TrimPrefix(c.Raw, "</"), ">")

	var parts ast.TemplateParts
	if name = strings.TrimSpace(name); name != "" {
		parts.Tag = tagSymbol(spanRange(c), name)
	}

	return ast.NewTemplate(spanRange(c), ast.HtmlBad, parts)
}

func (b *builder) argument(a *grammar.Argument) (*ast.Pair, error) {
	var key *ast.String
	if len(a.Tokens) > 0 {
		key = ast.NewString(tokenRange(a.Tokens[0]), a.Name)
	} else {
		key = ast.NewString(nil, a.Name)
	}

	value, err := build[ast.Node](b, a.Value)
	if err != nil {
		return nil, err
	}

	return ast.NewPair(spanRange(a), key, value), nil
}

func (b *builder) argValue(v *grammar.ArgValue) (ast.Node, error) {
	switch {
	case v.Str != nil:
		return ast.NewString(spanRange(v), unquote(*v.Str)), nil
	case v.Num != nil:
		return ast.NewNumber(spanRange(v), *v.Num), nil
	case v.Name != nil:
		return tagSymbol(spanRange(v), *v.Name), nil
	case v.Expr != nil:
		return build[ast.Node](b, v.Expr)
	}

	return nil, newRuleError(v)
}

func (b *builder) attribute(a *grammar.Attribute) (*ast.Symbol, error) {
	return tagSymbol(spanRange(a), a.Name), nil
}

// tagSymbol splits a markup name on "." into symbol segments. Names that
// would yield an empty segment are kept whole.
func tagSymbol(rng *ast.Range, name string) *ast.Symbol {
	if sym := ast.NewSymbol(rng, strings.Split(name, ".")...); sym != nil {
		return sym
	}

	return ast.NewSymbol(rng, name)
}

// closes reports whether the raw close tag closes an element named name.
// Names compare case-insensitively; a close tag missing its ">" closes
// nothing.
func closes(raw, name string) bool {
	inner, ok := strings.CutSuffix(strings.TrimPrefix(raw, "</"), ">")
	if !ok {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(inner), name)
}
