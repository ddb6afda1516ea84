package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/sdl/lang"
	"github.com/ardnew/sdl/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(context.Background(), nil, NewHistory(""), log.Logger{})
}

func TestModel_Evaluate(t *testing.T) {
	ctx := context.Background()
	m := testModel(t)

	tests := []struct {
		show     showMode
		contains string
	}{
		{showTree, "InfixExpression \"+\""},
		{showSource, "a + (b * c)"},
		{showJSON, `"kind": "Program"`},
		{showYAML, "kind: Program"},
	}

	for _, tt := range tests {
		t.Run(string(tt.show), func(t *testing.T) {
			m.show = tt.show

			out, err := m.evaluate(ctx, "a + b * c")
			if err != nil {
				t.Fatalf("evaluate() error = %v", err)
			}

			if !strings.Contains(out, tt.contains) {
				t.Errorf("evaluate() =\n%s\nwant it to contain %q", out, tt.contains)
			}

			if strings.HasSuffix(out, "\n") {
				t.Error("evaluate() output should not end with a newline")
			}
		})
	}

	if names := m.symbols.names(""); len(names) != 3 {
		t.Errorf("symbols = %v, want a, b and c", names)
	}
}

func TestModel_EvaluateError(t *testing.T) {
	m := testModel(t)

	_, err := m.evaluate(context.Background(), "a + )")
	if !errors.Is(err, lang.ErrSyntax) {
		t.Fatalf("evaluate() error = %v, want a syntax error", err)
	}

	if !strings.Contains(err.Error(), "^") {
		t.Errorf("error should include a caret snippet: %v", err)
	}
}

func TestModel_Load(t *testing.T) {
	m := testModel(t)

	if err := m.load(context.Background(), lang.Named("page.sdl", "<p>{user.name}</p>")); err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if m.document != "<p>{user.name}</p>" {
		t.Errorf("document = %q", m.document)
	}

	if names := m.symbols.names("user"); len(names) != 1 || names[0] != "name" {
		t.Errorf("symbols = %v", names)
	}

	if err := m.load(context.Background(), lang.String("(")); !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("load() error = %v, want a syntax error", err)
	}
}

func TestModel_SetShow(t *testing.T) {
	m := testModel(t)

	m, msg := m.setShow([]string{"JSON"})
	if m.show != showJSON || !strings.Contains(msg, "json") {
		t.Errorf("setShow(JSON) = %q, %q", m.show, msg)
	}

	m, msg = m.setShow([]string{"xml"})
	if m.show != showJSON || !strings.Contains(msg, "unknown mode") {
		t.Errorf("setShow(xml) = %q, %q", m.show, msg)
	}

	if _, msg = m.setShow(nil); !strings.Contains(msg, "json") {
		t.Errorf("setShow() = %q", msg)
	}
}

func TestModel_ListSymbols(t *testing.T) {
	m := testModel(t)

	if got := m.listSymbols(); !strings.Contains(got, "(none)") {
		t.Errorf("listSymbols() = %q", got)
	}

	if _, err := m.evaluate(context.Background(), "<ul>{item.id}</ul>"); err != nil {
		t.Fatal(err)
	}

	got := m.listSymbols()
	for _, want := range []string{"item", "item.id", "<ul>"} {
		if !strings.Contains(got, want) {
			t.Errorf("listSymbols() = %q, missing %q", got, want)
		}
	}
}

func TestModel_ExecuteInput(t *testing.T) {
	m := testModel(t)

	m.input.SetValue("a;")

	m, cmd := m.executeInput()
	if cmd == nil {
		t.Fatal("executeInput() returned no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input = %q, want it cleared", m.input.Value())
	}

	if e, err := m.history.Entry(0); err != nil || e.Line != "a;" || e.Mode != modeParse {
		t.Errorf("history = %v, %v", e, err)
	}

	m = m.switchToMode(modeCtrl)
	m.input.SetValue("show yaml")

	m, _ = m.executeInput()
	if m.show != showYAML {
		t.Errorf("show = %q after the show command", m.show)
	}

	m.input.SetValue("quit")

	if m, _ = m.executeInput(); !m.quitting {
		t.Error("quit should stop the REPL")
	}
}

func TestModel_History(t *testing.T) {
	m := testModel(t)

	for _, e := range []HistoryEntry{{"a", modeParse}, {"help", modeCtrl}, {"b", modeParse}} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, false)
	if m.input.Value() != "b" || m.mode != modeParse {
		t.Errorf("step back = %q in mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Errorf("step back = %q in mode %d", m.input.Value(), m.mode)
	}

	m = m.switchToMode(modeParse)
	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, true)
	m = m.historyStep(-1, true)

	if m.input.Value() != "a" || m.mode != modeParse {
		t.Errorf("same-mode step = %q in mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(1, true)
	m = m.historyStep(1, true)

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("stepping past the newest entry = %q at %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_TabCycle(t *testing.T) {
	m := testModel(t)

	if _, err := m.evaluate(context.Background(), "user.name; user.nick"); err != nil {
		t.Fatal(err)
	}

	m.input.SetValue("user.n")
	m.input.SetCursor(6)
	refreshMatches(&m, false)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	first := m.input.Value()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	second := m.input.Value()

	if first == second || !strings.HasPrefix(first, "user.n") || !strings.HasPrefix(second, "user.n") {
		t.Errorf("tab cycle = %q then %q", first, second)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "user.n" || m.tabActive {
		t.Errorf("Esc while cycling = %q, tabActive %v", m.input.Value(), m.tabActive)
	}
}

func TestModel_View(t *testing.T) {
	m := testModel(t)

	if v := m.View(); !strings.Contains(v, "Type sdl") {
		t.Errorf("View() = %q", v)
	}

	m.quitting = true
	if v := m.View(); v != "" {
		t.Errorf("View() after quit = %q", v)
	}
}
