package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/sdl/lang/grammar"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax           = NewError("syntax error")
	ErrUntranslatedRule = NewError("untranslated grammar rule")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrUnknownOperator  = NewError("unknown operator")
	ErrEmptyExpression  = NewError("empty expression")
	ErrOperandCount     = NewError("operand and operator count mismatch")
	ErrInvalidSymbol    = NewError("invalid symbol")
	ErrReadInput        = NewError("failed to read input")
	ErrGrammar          = NewError("grammar construction failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
// Copies made by [Error.Wrap] and [Error.With] match their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError reports input rejected by the grammar.
//
// Offsets, lines and columns refer to the normalized source text.
type SyntaxError struct {
	Locator  string
	Start    int // Byte offset of the offending token
	End      int // Byte offset just past the offending token
	Line     int
	Column   int
	Token    string   // Offending token text, or "EOF"
	Expected []string // Productions the grammar would have accepted
	Message  string

	source string
}

func newSyntaxError(err error, source string) *SyntaxError {
	se := &SyntaxError{Message: err.Error(), source: source}

	var pe participle.Error
	if !errors.As(err, &pe) {
		return se
	}

	pos := pe.Position()
	at := Locate(source, pos.Offset)
	se.Locator = pos.Filename
	se.Start, se.End = pos.Offset, pos.Offset
	se.Line, se.Column = at.Line, at.Column
	se.Message = pe.Message()

	token, expected := grammar.Unexpected(pe)
	se.Token = token

	if token != "" && token != "EOF" {
		se.End += len(token)
	}

	if expected != "" {
		se.Expected = strings.Split(expected, " | ")
	}

	return se
}

// syntaxErrorAt returns a syntax error positioned at pos.
func syntaxErrorAt(pos lexer.Position, msg, source string) *SyntaxError {
	return &SyntaxError{
		Locator: pos.Filename,
		Start:   pos.Offset,
		End:     pos.Offset,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: msg,
		source:  source,
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("syntax error")

	if e.Locator != "" {
		buf.WriteString(" in ")
		buf.WriteString(e.Locator)
	}

	if e.Line > 0 {
		buf.WriteString(" at line ")
		buf.WriteString(strconv.Itoa(e.Line))
		buf.WriteString(", column ")
		buf.WriteString(strconv.Itoa(e.Column))
	}

	buf.WriteString(": ")
	buf.WriteString(e.Message)

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteRune('\n')
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Is makes errors.Is(err, ErrSyntax) hold.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Message),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.Int("offset", e.Start),
	}

	if e.Locator != "" {
		attrs = append(attrs, slog.String("locator", e.Locator))
	}

	if e.Token != "" {
		attrs = append(attrs, slog.String("token", e.Token))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.Expected))
	}

	return slog.GroupValue(attrs...)
}

// Snippet renders the offending source line with a caret under the error
// column. It is empty when the source line is unknown.
func (e *SyntaxError) Snippet() string {
	lines := strings.Split(e.source, "\n")
	if e.Line <= 0 || e.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Line))
	src.WriteString(" | ")
	src.WriteString(lines[e.Line-1])
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Line))+5)
	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}

// RuleError reports a concrete parse tree node the tree builder has no
// translation for. It indicates a mismatch between grammar and builder.
type RuleError struct {
	Rule    grammar.Rule
	Locator string
	Start   int
	End     int
	Line    int
	Column  int
}

func newRuleError(n grammar.Node) *RuleError {
	e := &RuleError{Rule: grammar.RuleInvalid}
	if n == nil {
		return e
	}

	sp := n.Span()
	e.Rule = n.Rule()
	e.Locator = sp.Start.Filename
	e.Start, e.End = sp.Start.Offset, sp.End
	e.Line, e.Column = sp.Start.Line, sp.Start.Column

	return e
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return ErrUntranslatedRule.msg + " " + strconv.Quote(e.Rule.String()) +
		" at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column) +
		" [" + strconv.Itoa(e.Start) + ":" + strconv.Itoa(e.End) + "]"
}

// Is makes errors.Is(err, ErrUntranslatedRule) hold.
func (e *RuleError) Is(target error) bool { return target == ErrUntranslatedRule }

// LogValue implements slog.LogValuer.
func (e *RuleError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrUntranslatedRule.msg),
		slog.String("rule", e.Rule.String()),
		slog.Int("start", e.Start),
		slog.Int("end", e.End),
	)
}
