package grammar

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

func mustParser(t *testing.T) *Parser {
	t.Helper()

	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return p
}

// kinds returns "Type:value" for every non-EOF token.
func kinds(t *testing.T, text string) []string {
	t.Helper()

	tokens, err := mustParser(t).Tokenize("test", text)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", text, err)
	}

	var out []string

	for _, tok := range tokens {
		if tok.EOF() {
			continue
		}

		out = append(out, SymbolName(tok.Type)+":"+tok.Value)
	}

	return out
}

func TestLexer_Modes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "code",
			text: `a.b + 1.5 // note`,
			want: []string{"Ident:a", "Punct:.", "Ident:b", "Operator:+", "Number:1.5"},
		},
		{
			name: "keywords",
			text: `if index in items`,
			want: []string{"Keyword:if", "Ident:index", "Keyword:in", "Ident:items"},
		},
		{
			name: "comparison needs space",
			text: `a < b`,
			want: []string{"Ident:a", "Operator:<", "Ident:b"},
		},
		{
			name: "self-closing tag",
			text: `<img src="a.png"/>`,
			want: []string{"VoidStart:<img", "Name:src", "Equals:=", `String:"a.png"`, "TagSelfClose:/>"},
		},
		{
			name: "void tag",
			text: `<br>x`,
			want: []string{"VoidStart:<br", "VoidEnd:>", "Ident:x"},
		},
		{
			name: "body",
			text: `<p>hi {n} a << b</p>`,
			want: []string{
				"TagStart:<p", "TagOpenEnd:>", "Text:hi ", "LBrace:{", "Ident:n",
				"RBrace:}", "Text: a << b", "CloseTag:</p>",
			},
		},
		{
			name: "junk in head",
			text: `<x @ y;`,
			want: []string{"TagStart:<x", "TagJunk:@", "Name:y", "TagAbort:;"},
		},
		{
			name: "stray close tag",
			text: `a </p>`,
			want: []string{"Ident:a", "CloseTag:</p>"},
		},
		{
			name: "void absorbs its close tag",
			text: `<img></IMG >x`,
			want: []string{"VoidStart:<img", "VoidEnd:></IMG >", "Ident:x"},
		},
		{
			name: "void keeps other close tags",
			text: `<p><br></p>`,
			want: []string{"TagStart:<p", "TagOpenEnd:>", "VoidStart:<br", "VoidEnd:>", "CloseTag:</p>"},
		},
		{
			name: "code in head",
			text: `<x k={a}/>`,
			want: []string{
				"TagStart:<x", "Name:k", "Equals:=", "LBrace:{", "Ident:a",
				"RBrace:}", "TagSelfClose:/>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kinds(t, tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("tokens =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := mustParser(t).Tokenize("doc.sdl", "a\n  bb")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	bb := tokens[1]
	if bb.Value != "bb" || bb.Pos.Offset != 4 || bb.Pos.Line != 2 || bb.Pos.Column != 3 {
		t.Errorf("token = %q at %+v", bb.Value, bb.Pos)
	}

	if bb.Pos.Filename != "doc.sdl" {
		t.Errorf("filename = %q", bb.Pos.Filename)
	}

	if !tokens[len(tokens)-1].EOF() {
		t.Error("last token should be EOF")
	}
}

func TestLexer_RejectsUnknownInput(t *testing.T) {
	_, err := mustParser(t).Tokenize("", "a # b")

	var pe participle.Error
	if !errors.As(err, &pe) {
		t.Fatalf("Tokenize() error = %v, want participle.Error", err)
	}

	if pe.Position().Offset != 2 {
		t.Errorf("error offset = %d, want 2", pe.Position().Offset)
	}
}

func TestParse(t *testing.T) {
	p := mustParser(t)

	prog, err := p.Parse("", `for x in xs { x; } if a { b } else { c }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(prog.Statements) != 2 {
		t.Fatalf("statements = %d, want 2", len(prog.Statements))
	}

	loop := prog.Statements[0].For
	if loop == nil || loop.Pattern.Name != "x" || len(loop.Body.Statements) != 1 {
		t.Fatalf("for statement = %+v", loop)
	}

	if !loop.Body.Statements[0].Expr.Terminated {
		t.Error("x; should be terminated")
	}

	cond := prog.Statements[1].If
	if cond == nil || len(cond.Branches) != 1 || cond.Else == nil {
		t.Fatalf("if statement = %+v", cond)
	}

	sp := loop.Span()
	if sp.Start.Offset != 0 || sp.End != len("for x in xs { x; }") {
		t.Errorf("for span = %d:%d", sp.Start.Offset, sp.End)
	}
}

func TestParse_Template(t *testing.T) {
	prog, err := mustParser(t).Parse("", `<a href="/" hidden>go {n}</a>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tmpl := prog.Statements[0].Expr.Expr.Head.Call.Data.Template
	if tmpl == nil || *tmpl.Open != "<a" {
		t.Fatalf("template = %+v", tmpl)
	}

	if len(tmpl.Items) != 2 || tmpl.Items[0].Argument == nil || tmpl.Items[1].Attribute == nil {
		t.Fatalf("items = %+v", tmpl.Items)
	}

	body := tmpl.End.Body
	if body == nil || len(body.Items) != 2 || body.Close == nil || body.Close.Raw != "</a>" {
		t.Fatalf("body = %+v", body)
	}

	if *body.Items[0].Text != "go " || body.Items[1].Code == nil {
		t.Errorf("body items = %+v", body.Items)
	}
}

func TestParse_MalformedTagKeepsSiblings(t *testing.T) {
	prog, err := mustParser(t).Parse("", "a\n<x y=;\nb")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(prog.Statements) != 3 {
		t.Fatalf("statements = %d, want 3", len(prog.Statements))
	}

	tmpl := prog.Statements[1].Expr.Expr.Head.Call.Data.Template
	if tmpl == nil || tmpl.End == nil || !tmpl.End.Abort {
		t.Errorf("template = %+v", tmpl)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := mustParser(t).Parse("", "a + )")

	var pe participle.Error
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want participle.Error", err)
	}

	if token, _ := Unexpected(pe); token != "+" && token != ")" {
		t.Errorf("unexpected token = %q", token)
	}
}

func TestUnexpected(t *testing.T) {
	err := &participle.UnexpectedTokenError{
		Unexpected: lexer.Token{Type: lexer.EOF},
		Expect:     `"}"`,
	}

	token, expected := Unexpected(err)
	if token != "EOF" || expected != `"}"` {
		t.Errorf("Unexpected() = %q, %q", token, expected)
	}

	token, expected = Unexpected(participle.Errorf(lexer.Position{}, "boom"))
	if token != "" || expected != "" {
		t.Errorf("Unexpected() = %q, %q; want empty", token, expected)
	}
}

func TestNesting(t *testing.T) {
	tests := []struct {
		text  string
		depth int
	}{
		{"a", 0},
		{"f(x)", 1},
		{"[[1], {a: (2)}]", 3},
		{"<p><b>{x}</b></p>", 3},
		{"<br> {}", 1},
		{"<a</b>", 0},
		{"(<a</b> + (<a</b> + 1))", 2},
		{"<p><a</b></p>", 1},
		{"</p> (x)", 1},
		{"{ ( }", 2},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens, err := p.Tokenize("", tt.text)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			if got, _ := Nesting(tokens); got != tt.depth {
				t.Errorf("Nesting() = %d, want %d", got, tt.depth)
			}
		})
	}
}

// repaired returns "Type:value" for every non-EOF token after repair.
func repaired(t *testing.T, text string) ([]string, bool) {
	t.Helper()

	tokens, err := mustParser(t).Tokenize("test", text)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", text, err)
	}

	tokens, changed := Repair("test", text, tokens)

	var out []string

	for _, tok := range tokens {
		if !tok.EOF() {
			out = append(out, SymbolName(tok.Type)+":"+tok.Value)
		}
	}

	return out, changed
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		changed bool
	}{
		{
			name:    "unterminated head",
			text:    "a\n<x\nb",
			want:    []string{"Ident:a", "TagStart:<x", "TagBroken:", "Ident:b"},
			changed: true,
		},
		{
			name:    "head ending at a trailing line break",
			text:    "<x y\n",
			want:    []string{"TagStart:<x", "Name:y", "TagBroken:"},
			changed: true,
		},
		{
			name:    "unclosed body",
			text:    "<div>\nb;",
			want:    []string{"TagStart:<div", "TagBroken:>", "Ident:b", "Punct:;"},
			changed: true,
		},
		{
			name:    "unclosed body in code",
			text:    "{<div>x}",
			want:    []string{"LBrace:{", "TagStart:<div", "TagBroken:>", "Ident:x", "RBrace:}"},
			changed: true,
		},
		{
			name: "unclosed bodies in turn",
			text: "<a>\n<b>\nc",
			want: []string{
				"TagStart:<a", "TagBroken:>", "TagStart:<b", "TagBroken:>", "Ident:c",
			},
			changed: true,
		},
		{
			name: "closed element",
			text: "<p>ok</p>",
			want: []string{"TagStart:<p", "TagOpenEnd:>", "Text:ok", "CloseTag:</p>"},
		},
		{
			name: "head on the last line",
			text: "a\n<x y",
			want: []string{"Ident:a", "TagStart:<x", "Name:y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := repaired(t, tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("tokens =\n%q\nwant\n%q", got, tt.want)
			}

			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestRepair_Positions(t *testing.T) {
	text := "a\n<x\n  bb cc"

	tokens, err := mustParser(t).Tokenize("doc.sdl", text)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	tokens, _ = Repair("doc.sdl", text, tokens)

	want := []lexer.Position{
		{Filename: "doc.sdl", Offset: 7, Line: 3, Column: 3},
		{Filename: "doc.sdl", Offset: 10, Line: 3, Column: 6},
	}

	got := []lexer.Position{tokens[3].Pos, tokens[4].Pos}
	if !slices.Equal(got, want) {
		t.Errorf("positions = %+v, want %+v", got, want)
	}

	if broken := tokens[2]; broken.Type != TokenType(TokenTagBroken) || broken.Pos.Offset != 4 {
		t.Errorf("broken token = %+v", broken)
	}
}

func TestParse_RepairFallsBack(t *testing.T) {
	prog, err := mustParser(t).Parse("", "<p>Some text here.")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(prog.Statements))
	}

	tmpl := prog.Statements[0].Expr.Expr.Head.Call.Data.Template
	if tmpl == nil || tmpl.End == nil || tmpl.End.Body == nil {
		t.Fatalf("template = %+v", tmpl)
	}
}

func TestRule_String(t *testing.T) {
	for r := RuleProgram; r <= RuleCodeSection; r++ {
		if strings.HasPrefix(r.String(), "rule(") {
			t.Errorf("rule %d has no name", int(r))
		}
	}

	if got := RuleTemplate.String(); got != "template" {
		t.Errorf("String() = %q", got)
	}

	if got := Rule(-1).String(); got != "rule(-1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestEBNF(t *testing.T) {
	if ebnf := mustParser(t).EBNF(); !strings.Contains(ebnf, "Program") {
		t.Errorf("EBNF() = %q", ebnf)
	}
}
