package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
	"github.com/ardnew/sdl/log"
)

const listDocument = `<ul class="list">{for item in items {<li id={item.id}>{item.name}</li>}}</ul>
if len(items) == 0 {
  <p>none</p>
} else { -count!; }
`

func exprStmt(n ast.Node, terminated bool) *ast.Statement {
	return ast.NewStatement(nil, ast.NewExpression(nil, n, terminated))
}

func mustParse(t *testing.T, text string, opts ...Option) *ast.Program {
	t.Helper()

	prog, err := NewParserConfig(opts...).ParseString(context.Background(), text)
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", text, err)
	}

	return prog
}

// value returns the expression value of the i'th top-level statement.
func value(t *testing.T, prog *ast.Program, i int) ast.Node {
	t.Helper()

	stmts := prog.Statements()
	if i >= len(stmts) {
		t.Fatalf("program has %d statements, want > %d", len(stmts), i)
	}

	children := stmts[i].Children()
	if len(children) != 1 {
		t.Fatalf("statement %d has %d children", i, len(children))
	}

	expr, ok := children[0].(*ast.Expression)
	if !ok {
		t.Fatalf("statement %d holds %T, want *ast.Expression", i, children[0])
	}

	return expr.Value()
}

func TestParse(t *testing.T) {
	item := ast.NewSymbol(nil, "item")

	tests := []struct {
		name string
		text string
		want *ast.Program
	}{
		{
			name: "empty",
			text: "",
			want: ast.NewProgram(nil),
		},
		{
			name: "comments only",
			text: "// nothing\n",
			want: ast.NewProgram(nil),
		},
		{
			name: "precedence",
			text: "a + b * c;",
			want: ast.NewProgram(nil, exprStmt(
				infix("+", leaf("a"), infix("*", leaf("b"), leaf("c"))), true)),
		},
		{
			name: "empty statement",
			text: "a;;",
			want: ast.NewProgram(nil, exprStmt(leaf("a"), true), ast.NewStatement(nil)),
		},
		{
			name: "for in",
			text: "for item in items { <li>{item}</li> }",
			want: ast.NewProgram(nil, ast.NewStatement(nil, ast.NewForInLoop(nil,
				item,
				leaf("items"),
				ast.NewBlock(nil, exprStmt(ast.NewTemplate(nil, ast.OpenClose, ast.TemplateParts{
					Tag:      ast.NewSymbol(nil, "li"),
					Children: []ast.Node{exprStmt(item, false)},
				}), false)),
			))),
		},
		{
			name: "if else",
			text: "if a { 1 } else if b {} else { 3; }",
			want: ast.NewProgram(nil, ast.NewStatement(nil, ast.NewIfStatement(nil,
				[]ast.Node{leaf("a"), leaf("b")},
				[]*ast.Block{
					ast.NewBlock(nil, exprStmt(ast.NewNumber(nil, "1"), false)),
					ast.NewBlock(nil),
					ast.NewBlock(nil, exprStmt(ast.NewNumber(nil, "3"), true)),
				},
			))),
		},
		{
			name: "unary",
			text: "-a?; !b!",
			want: ast.NewProgram(nil,
				exprStmt(ast.NewPrefixExpression(nil, "-",
					ast.NewSuffixExpression(nil, "?", leaf("a"))), true),
				exprStmt(ast.NewPrefixExpression(nil, "!",
					ast.NewSuffixExpression(nil, "!", leaf("b"))), false),
			),
		},
		{
			name: "calls and indexes",
			text: `f.g(1, "x",)[0]`,
			want: ast.NewProgram(nil, exprStmt(
				ast.NewIndexExpression(nil,
					ast.NewCallExpression(nil, ast.NewSymbol(nil, "f", "g"),
						ast.NewNumber(nil, "1"), ast.NewString(nil, "x")),
					ast.NewNumber(nil, "0")),
				false)),
		},
		{
			name: "collections",
			text: `{a: [1, true, null], "b c": (x)}`,
			want: ast.NewProgram(nil, exprStmt(ast.NewDict(nil,
				ast.NewPair(nil, ast.NewString(nil, "a"), ast.NewList(nil,
					ast.NewNumber(nil, "1"), ast.NewBoolean(nil, true), ast.NewNull(nil))),
				ast.NewPair(nil, ast.NewString(nil, "b c"), leaf("x")),
			), false)),
		},
		{
			name: "string escapes",
			text: `"a\"b\né"`,
			want: ast.NewProgram(nil, exprStmt(ast.NewString(nil, "a\"b\né"), false)),
		},
		{
			name: "self-closing with arguments",
			text: `<img src="a.png" alt="x"/>`,
			want: ast.NewProgram(nil, exprStmt(ast.NewTemplate(nil, ast.SelfClose, ast.TemplateParts{
				Tag: ast.NewSymbol(nil, "img"),
				Arguments: []*ast.Pair{
					ast.NewPair(nil, ast.NewString(nil, "src"), ast.NewString(nil, "a.png")),
					ast.NewPair(nil, ast.NewString(nil, "alt"), ast.NewString(nil, "x")),
				},
			}), false)),
		},
		{
			name: "void element",
			text: "<br>x",
			want: ast.NewProgram(nil,
				exprStmt(ast.NewTemplate(nil, ast.SelfClose, ast.TemplateParts{
					Tag: ast.NewSymbol(nil, "br"),
				}), false),
				exprStmt(leaf("x"), false),
			),
		},
		{
			name: "text and attributes",
			text: `<a.b href="/" hidden w=10 n={1 + 2}>go {x}</a.b>`,
			want: ast.NewProgram(nil, exprStmt(ast.NewTemplate(nil, ast.OpenClose, ast.TemplateParts{
				Tag:        ast.NewSymbol(nil, "a", "b"),
				Attributes: []*ast.Symbol{ast.NewSymbol(nil, "hidden")},
				Arguments: []*ast.Pair{
					ast.NewPair(nil, ast.NewString(nil, "href"), ast.NewString(nil, "/")),
					ast.NewPair(nil, ast.NewString(nil, "w"), ast.NewNumber(nil, "10")),
					ast.NewPair(nil, ast.NewString(nil, "n"),
						infix("+", ast.NewNumber(nil, "1"), ast.NewNumber(nil, "2"))),
				},
				Children: []ast.Node{ast.NewText(nil, "go "), exprStmt(leaf("x"), false)},
			}), false)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.text)
			if !ast.Equal(got, tt.want) {
				t.Errorf("ParseString(%q) =\n%s\nwant\n%s", tt.text, ast.Sprint(got), ast.Sprint(tt.want))
			}
		})
	}
}

func TestParse_TemplateVariants(t *testing.T) {
	tests := []struct {
		text    string
		variant ast.Variant
		tag     string
	}{
		{"<p>x</p>", ast.OpenClose, "p"},
		{"<P>x</p>", ast.OpenClose, "P"},
		{"<img/>", ast.SelfClose, "img"},
		{"<input>", ast.SelfClose, "input"},
		{"<b>x</i>", ast.HtmlBad, "b"},
		{"<p>unterminated", ast.HtmlBad, "p"},
		{"<x y=;", ast.HtmlBad, "x"},
		{"<x @/>", ast.HtmlBad, "x"},
		{"<x {a}/>", ast.HtmlBad, "x"},
		{"<x", ast.HtmlBad, "x"},
		{"<img></img>", ast.SelfClose, "img"},
		{"<br> </BR >", ast.SelfClose, "br"},
		{"<br></img>", ast.HtmlBad, "br"},
		{"</p>", ast.HtmlBad, "p"},
		{"<div>\nno close", ast.HtmlBad, "div"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tmpl, ok := value(t, mustParse(t, tt.text), 0).(*ast.Template)
			if !ok {
				t.Fatalf("ParseString(%q) did not yield a template", tt.text)
			}

			if tmpl.Variant() != tt.variant {
				t.Errorf("variant = %v, want %v", tmpl.Variant(), tt.variant)
			}

			if tmpl.Tag().Name() != tt.tag {
				t.Errorf("tag = %q, want %q", tmpl.Tag().Name(), tt.tag)
			}
		})
	}
}

func TestParse_MalformedKeepsSiblings(t *testing.T) {
	prog := mustParse(t, "a\n<x y=;\nb")

	if n := len(prog.Statements()); n != 3 {
		t.Fatalf("statements = %d, want 3", n)
	}

	if !ast.Equal(value(t, prog, 0), leaf("a")) || !ast.Equal(value(t, prog, 2), leaf("b")) {
		t.Error("siblings of the malformed tag were not preserved")
	}

	tmpl, ok := value(t, prog, 1).(*ast.Template)
	if !ok || tmpl.Variant() != ast.HtmlBad {
		t.Fatalf("statement 1 = %s", ast.Sformat(value(t, prog, 1)))
	}

	expr := prog.Statements()[1].Children()[0].(*ast.Expression)
	if !expr.Terminated() {
		t.Error("an aborted tag head should terminate its statement")
	}
}

func TestParse_MalformedMarkupKeepsSiblings(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		siblings []string
		tag      string
		// head is the text the malformed template spans.
		head string
	}{
		{"unterminated head", "a\n<x\nb", []string{"a", "b"}, "x", "<x"},
		{"head with junk", "a;\n<x @>\nb;\nc;", []string{"a", "b", "c"}, "x", "<x @>"},
		{"unclosed element", "a;\n<div>\nb;\nc;", []string{"a", "b", "c"}, "div", "<div>"},
		{"stray close tag", "a;\n</p>\nb;", []string{"a", "b"}, "p", "</p>"},
		{"void with close tag", "a;\n<img></img>\nb;", []string{"a", "b"}, "img", "<img></img>"},
		{"void with uppercase close tag", "a;\n<br></BR>\nb;", []string{"a", "b"}, "br", "<br></BR>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.text)

			stmts := prog.Statements()
			if len(stmts) != len(tt.siblings)+1 {
				t.Fatalf("statements = %d, want %d:\n%s", len(stmts), len(tt.siblings)+1, ast.Sprint(prog))
			}

			tmpl, ok := value(t, prog, 1).(*ast.Template)
			if !ok || tmpl.Tag().Name() != tt.tag {
				t.Fatalf("statement 1 = %s", ast.Sformat(value(t, prog, 1)))
			}

			start := strings.Index(tt.text, tt.head)
			if r := tmpl.Range(); r == nil || r.Start != start || r.End != start+len(tt.head) {
				t.Errorf("template range = %v, want %d:%d", r, start, start+len(tt.head))
			}

			for i, name := range tt.siblings {
				at := i
				if i > 0 {
					at++
				}

				if got := value(t, prog, at); !ast.Equal(got, leaf(name)) {
					t.Errorf("statement %d = %s, want %s", at, ast.Sformat(got), name)
				}
			}
		})
	}
}

func TestParse_UnclosedElementInBlock(t *testing.T) {
	prog := mustParse(t, "if a {\n  <div>\n  b;\n}\nc")

	if n := len(prog.Statements()); n != 2 {
		t.Fatalf("statements = %d, want 2:\n%s", n, ast.Sprint(prog))
	}

	cond, ok := prog.Statements()[0].Children()[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement 0 holds %T, want *ast.IfStatement", prog.Statements()[0].Children()[0])
	}

	if n := len(cond.Actions()[0].Statements()); n != 2 {
		t.Errorf("block statements = %d, want 2", n)
	}
}

func TestParse_UnclosedProseStaysInBody(t *testing.T) {
	tmpl, ok := value(t, mustParse(t, "<p>Some text here."), 0).(*ast.Template)
	if !ok || tmpl.Variant() != ast.HtmlBad {
		t.Fatal("unclosed element with prose should be a malformed template")
	}

	children := tmpl.Children()
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}

	if text, ok := children[0].(*ast.Text); !ok || text.Text() != "Some text here." {
		t.Errorf("child = %s", ast.Sformat(children[0]))
	}
}

func TestParse_HeadCodeBeforeBody(t *testing.T) {
	tmpl := value(t, mustParse(t, "<x {a}>b</x>"), 0).(*ast.Template)

	if tmpl.Variant() != ast.HtmlBad {
		t.Errorf("variant = %v, want HtmlBad", tmpl.Variant())
	}

	children := tmpl.Children()
	if len(children) != 2 || children[0].Kind() != ast.KindStatement || children[1].Kind() != ast.KindText {
		t.Errorf("children = %v", children)
	}
}

func TestParse_Ranges(t *testing.T) {
	prog := mustParse(t, `<img src="a.png" alt="x"/>`)
	tmpl := value(t, prog, 0).(*ast.Template)

	if r := tmpl.Range(); r == nil || r.Start != 0 || r.End != 26 {
		t.Errorf("template range = %v, want 0:26", r)
	}

	if r := tmpl.Tag().Range(); r == nil || r.Start != 0 || r.End != 4 {
		t.Errorf("tag range = %v, want 0:4", r)
	}

	src := tmpl.Arguments()[0]
	if r := src.Key().Range(); r == nil || r.Start != 5 || r.End != 8 {
		t.Errorf("key range = %v, want 5:8", r)
	}

	if r := src.Value().Range(); r == nil || r.Start != 9 || r.End != 16 {
		t.Errorf("value range = %v, want 9:16", r)
	}

	if r := prog.Statements()[0].Range(); r == nil || r.Start != 0 || r.End != 26 {
		t.Errorf("statement range = %v, want 0:26", r)
	}
}

func TestParse_RangesFollowNormalizedText(t *testing.T) {
	for _, tc := range []struct {
		tabSize, start int
	}{{2, 2}, {4, 4}, {0, 0}} {
		sym := value(t, mustParse(t, "\tx", WithTabSize(tc.tabSize)), 0)

		if r := sym.Range(); r == nil || r.Start != tc.start || r.End != tc.start+1 {
			t.Errorf("tab size %d: range = %v, want %d:%d", tc.tabSize, r, tc.start, tc.start+1)
		}
	}
}

func checkContainment(t *testing.T, n ast.Node, limit int) {
	t.Helper()

	if r := n.Range(); r != nil && (r.Start < 0 || r.End > limit) {
		t.Errorf("%v range %v exceeds source length %d", n.Kind(), r, limit)
	}

	for _, c := range ast.Children(n) {
		if !n.Range().Contains(c.Range()) {
			t.Errorf("%v range %v does not contain %v range %v", n.Kind(), n.Range(), c.Kind(), c.Range())
		}

		checkContainment(t, c, limit)
	}
}

func TestParse_SpanContainment(t *testing.T) {
	inputs := []string{
		listDocument,
		"a + b * c - d;",
		`f(x)[y]? ?? -z`,
		"<x y=;\nb",
		`{k: <p a={1 + 2}>t</p>}`,
	}

	for _, in := range inputs {
		prog := mustParse(t, in)
		checkContainment(t, prog, len(in))
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := mustParse(t, listDocument)
	b := mustParse(t, listDocument)

	if !ast.Equal(a, b) {
		t.Fatal("two parses of the same input differ")
	}

	if ast.Sprint(a) != ast.Sprint(b) {
		t.Error("two parses of the same input differ in ranges")
	}
}

func TestParse_ListDocument(t *testing.T) {
	prog := mustParse(t, listDocument)

	stmts := prog.Statements()
	if len(stmts) != 2 {
		t.Fatalf("statements = %d, want 2", len(stmts))
	}

	ul, ok := value(t, prog, 0).(*ast.Template)
	if !ok || ul.Variant() != ast.OpenClose || len(ul.Arguments()) != 1 {
		t.Fatalf("first statement = %s", ast.Sformat(value(t, prog, 0)))
	}

	loop, ok := ul.Children()[0].(*ast.Statement).Children()[0].(*ast.ForInLoop)
	if !ok || loop.Pattern().Name() != "item" {
		t.Fatalf("ul body = %v", ul.Children())
	}

	cond, ok := stmts[1].Children()[0].(*ast.IfStatement)
	if !ok || cond.Else() == nil {
		t.Fatalf("second statement = %s", ast.Sformat(stmts[1]))
	}

	if op := cond.Conditions()[0].(*ast.InfixExpression).Operator(); op != "==" {
		t.Errorf("condition operator = %q", op)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"a + b * c;",
		"(a + b) * c",
		"if a { b } else if c { d; } else { e }",
		"for x in xs { f(x, 1)[0]?; }",
		`<p class="c" hidden>hi {name}<br/></p>`,
		`{a: 1, "b c": [1, 2.5, true, null], "if": {}}`,
		`<img src="a.png" w=10 alt={a + b} k=v/>`,
		`-x! ?? (y || z)`,
		`"q\"\n"`,
		"<x y=;\nb",
		"<x {a;}>t</x>",
		listDocument,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			want := mustParse(t, in)
			text := ast.Sformat(want)

			got := mustParse(t, text)
			if !ast.Equal(got, want) {
				t.Errorf("formatted text %q parsed to\n%s\nwant\n%s", text, ast.Sprint(got), ast.Sprint(want))
			}
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	prog, err := NewParserConfig().Parse(context.Background(), Named("doc.sdl", "a\nb + )"))
	if prog != nil {
		t.Error("a failed parse must not return a tree")
	}

	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Parse() error = %v, want ErrSyntax", err)
	}

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Parse() error = %T, want *SyntaxError", err)
	}

	if se.Locator != "doc.sdl" || se.Line != 2 {
		t.Errorf("error at %s:%d, want doc.sdl:2", se.Locator, se.Line)
	}

	if !strings.Contains(se.Error(), "  2 | b + )") {
		t.Errorf("Error() = %q, want a snippet of line 2", se.Error())
	}
}

func TestParse_LexerError(t *testing.T) {
	_, err := NewParserConfig().ParseString(context.Background(), "a # b")

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("ParseString() error = %v, want *SyntaxError", err)
	}

	if se.Start != 2 || se.Line != 1 || se.Column != 3 {
		t.Errorf("error at offset %d, %d:%d; want 2, 1:3", se.Start, se.Line, se.Column)
	}
}

func TestSyntaxError_Format(t *testing.T) {
	err := &participle.UnexpectedTokenError{
		Unexpected: lexer.Token{
			Value: ")",
			Pos:   lexer.Position{Filename: "f", Offset: 6, Line: 2, Column: 5},
		},
		Expect: `"(" | Ident`,
	}

	se := newSyntaxError(err, "a\nb + )")

	if se.Token != ")" || se.Start != 6 || se.End != 7 {
		t.Errorf("token %q at %d:%d, want \")\" at 6:7", se.Token, se.Start, se.End)
	}

	if len(se.Expected) != 2 || se.Expected[0] != `"("` || se.Expected[1] != "Ident" {
		t.Errorf("Expected = %q", se.Expected)
	}

	want := "syntax error in f at line 2, column 5: " + err.Message() + "\n" +
		"  2 | b + )\n" +
		"          ^"
	if got := se.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}

	if !errors.Is(se, ErrSyntax) || errors.Is(se, ErrMaxDepthExceeded) {
		t.Error("SyntaxError should match only ErrSyntax")
	}

	if se := syntaxErrorAt(lexer.Position{}, "boom", ""); se.Snippet() != "" {
		t.Errorf("Snippet() without a line = %q", se.Snippet())
	}
}

func TestParse_MaxDepth(t *testing.T) {
	ctx := context.Background()

	prog, err := NewParserConfig(WithMaxDepth(2)).ParseString(ctx, "[[[1]]]")
	if prog != nil || !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("ParseString() = %v, %v; want ErrMaxDepthExceeded", prog, err)
	}

	if _, err := NewParserConfig(WithMaxDepth(3)).ParseString(ctx, "[[[1]]]"); err != nil {
		t.Errorf("ParseString() at the limit error = %v", err)
	}

	deep := strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	if _, err := NewParserConfig().ParseString(ctx, deep); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("ParseString(deep) error = %v, want ErrMaxDepthExceeded", err)
	}

	nested := map[string]string{
		"close tags in heads": strings.Repeat("(<a</b> + ", 40) + "1" + strings.Repeat(")", 40),
		"element bodies":      strings.Repeat("<p>", 40) + strings.Repeat("</p>", 40),
		"code in bodies":      strings.Repeat("<p>{", 20) + "x" + strings.Repeat("}</p>", 20),
	}

	for name, text := range nested {
		if _, err := NewParserConfig(WithMaxDepth(64)).ParseString(ctx, text); err != nil {
			t.Errorf("%s: ParseString() within the limit error = %v", name, err)
		}

		if _, err := NewParserConfig(WithMaxDepth(16)).ParseString(ctx, text); !errors.Is(err, ErrMaxDepthExceeded) {
			t.Errorf("%s: ParseString() error = %v, want ErrMaxDepthExceeded", name, err)
		}
	}

	huge := strings.Repeat("(<a</b> + ", 20000) + "1"
	if _, err := NewParserConfig().ParseString(ctx, huge); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("ParseString(huge) error = %v, want ErrMaxDepthExceeded", err)
	}
}

type unknownNode struct{}

func (unknownNode) Rule() grammar.Rule { return grammar.RuleBranch }

func (unknownNode) Span() grammar.Span {
	return grammar.Span{Start: lexer.Position{Offset: 3, Line: 1, Column: 4}, End: 7}
}

func TestBuild_UntranslatedRule(t *testing.T) {
	b := newBuilder(context.Background(), NewParserConfig())

	_, err := b.node(unknownNode{})

	var re *RuleError
	if !errors.As(err, &re) {
		t.Fatalf("node() error = %v, want *RuleError", err)
	}

	if re.Rule != grammar.RuleBranch || re.Start != 3 || re.End != 7 {
		t.Errorf("RuleError = %+v", re)
	}

	if !errors.Is(err, ErrUntranslatedRule) {
		t.Error("RuleError should match ErrUntranslatedRule")
	}

	if want := `untranslated grammar rule "branch" at 1:4 [3:7]`; re.Error() != want {
		t.Errorf("Error() = %q, want %q", re.Error(), want)
	}
}

type failingSource struct{ err error }

func (s failingSource) Text() (string, error) { return "", s.err }

func (failingSource) Locator() string { return "broken" }

func TestParse_SourceErrorUnchanged(t *testing.T) {
	cause := errors.New("disk on fire")

	prog, err := NewParserConfig().Parse(context.Background(), failingSource{cause})
	if prog != nil || err != cause {
		t.Errorf("Parse() = %v, %v; want nil, %v", prog, err, cause)
	}
}

func TestParse_Locator(t *testing.T) {
	cfg := NewParserConfig()

	if _, err := cfg.Parse(context.Background(), Named("page.sdl", "x")); err != nil {
		t.Fatal(err)
	}

	if cfg.Locator() != "page.sdl" {
		t.Errorf("Locator() = %q", cfg.Locator())
	}
}

func TestParse_Trace(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace))

	if _, err := NewParserConfig(WithLogger(logger)).ParseString(context.Background(), "a + 1"); err != nil {
		t.Fatal(err)
	}

	for _, msg := range []string{"parse start", "preprocessed", "grammar complete", "build rule", "parse complete"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("trace output is missing %q", msg)
		}
	}
}

func TestParserConfig(t *testing.T) {
	c := NewParserConfig()
	if c.TabSize() != DefaultTabSize || c.MaxDepth() != DefaultMaxDepth {
		t.Errorf("defaults = %d, %d", c.TabSize(), c.MaxDepth())
	}

	c = NewParserConfig(WithTabSize(-1), WithMaxDepth(0), nil)
	if c.TabSize() != 0 || c.MaxDepth() != DefaultMaxDepth {
		t.Errorf("clamped = %d, %d", c.TabSize(), c.MaxDepth())
	}

	table := OperatorTable{"+": {Precedence: 1}}
	c = NewParserConfig(WithOperators(table))
	table["-"] = Operator{Precedence: 2}

	if _, ok := c.Operators()["-"]; ok {
		t.Error("WithOperators should copy the table")
	}

	if _, err := c.ParseString(context.Background(), "a - b"); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("ParseString() error = %v, want ErrUnknownOperator", err)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   Position
	}{
		{"ab\ncd", 0, Position{1, 1}},
		{"ab\ncd", 4, Position{2, 2}},
		{"ab\ncd", 3, Position{2, 1}},
		{"üx", 2, Position{1, 2}},
		{"ab", -1, Position{1, 1}},
		{"ab\nc", 100, Position{2, 2}},
	}

	for _, tt := range tests {
		if got := Locate(tt.text, tt.offset); got != tt.want {
			t.Errorf("Locate(%q, %d) = %+v, want %+v", tt.text, tt.offset, got, tt.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		listDocument,
		"a + b * c;",
		"<x y=;\nb",
		"<p>x</i>",
		"{a: [1, (2)]}",
		"if a {} else {}",
		"\t\\\r\n<",
	} {
		f.Add(seed)
	}

	cfg := NewParserConfig(WithMaxDepth(32))

	f.Fuzz(func(t *testing.T, text string) {
		prog, err := cfg.ParseString(context.Background(), text)
		if (prog == nil) == (err == nil) {
			t.Fatalf("ParseString(%q) = %v, %v", text, prog, err)
		}

		if prog != nil {
			checkContainment(t, prog, len(Normalize(text, cfg.TabSize())))
		}
	})
}
