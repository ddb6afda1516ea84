package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers.
// Styles are bound to a renderer for the handler's output, so color is
// stripped automatically when the output is not a terminal.
type palette struct {
	key, str, num, time, dur lipgloss.Style
	yes, no, null            lipgloss.Style
	trace, debug, info       lipgloss.Style
	warn, err                lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		dur:   fg("5"),
		yes:   fg("2"),
		no:    fg("1"),
		null:  fg("8"),
		trace: fg("4"),
		debug: fg("4").Bold(true),
		info:  fg("2").Bold(true),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) string {
	name := strings.ToUpper(Level(l).String())

	switch {
	case l >= slog.LevelError:
		return p.err.Render(name)
	case l >= slog.LevelWarn:
		return p.warn.Render(name)
	case l >= slog.LevelInfo:
		return p.info.Render(name)
	case l >= slog.LevelDebug:
		return p.debug.Render(name)
	default:
		return p.trace.Render(name)
	}
}

func (p palette) value(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())
	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")
	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())
	case slog.KindTime:
		return p.time.Render(v.Time().String())
	case slog.KindAny:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return p.no.Render(err.Error())
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	default:
		return p.str.Render(v.String())
	}
}

// prettyBase holds state shared by both pretty handlers.
type prettyBase struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	style      palette
	formatTime FormatTime
	attrs      []slog.Attr
	groups     []string
}

func (h *prettyBase) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

// header returns the fixed leading fields of a record as key/rendered
// value pairs.
func (h *prettyBase) header(r slog.Record) [][2]string {
	var fields [][2]string

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, [2]string{slog.TimeKey, h.style.time.Render(ts)})
		}
	}

	fields = append(fields, [2]string{slog.LevelKey, h.style.level(r.Level)})

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, [2]string{
				slog.SourceKey,
				h.style.str.Render(src.File + ":" + strconv.Itoa(src.Line)),
			})
		}
	}

	return append(fields, [2]string{slog.MessageKey, h.style.str.Render(r.Message)})
}

// flatten visits every attribute of r, including those bound with WithAttrs,
// with group names joined to keys by dots.
func (h *prettyBase) flatten(r slog.Record, visit func(key string, v slog.Value)) {
	prefix := strings.Join(h.groups, ".")

	var walk func(prefix string, a slog.Attr)

	walk = func(prefix string, a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}

		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}

		if a.Value.Kind() == slog.KindGroup {
			for _, g := range a.Value.Group() {
				walk(key, g)
			}

			return
		}

		visit(key, a.Value)
	}

	for _, a := range h.attrs {
		walk(prefix, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		walk(prefix, a)

		return true
	})
}

func (h *prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return c
}

func (h *prettyBase) withGroup(name string) prettyBase {
	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return c
}

func newPrettyBase(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) prettyBase {
	return prettyBase{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		style:      newPalette(w),
		formatTime: formatTime,
	}
}

// prettyTextHandler writes one styled key=value line per record.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts, formatTime)}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	field := func(key, rendered string) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(key))
		buf.WriteByte('=')
		buf.WriteString(rendered)
	}

	for _, f := range h.header(r) {
		field(f[0], f[1])
	}

	h.flatten(r, func(key string, v slog.Value) {
		field(key, h.style.value(v))
	})

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes an indented, styled object per record.
// Values are not quoted; the output is for reading, not for machines.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts, formatTime)}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	first := true
	field := func(key, rendered string) {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(h.style.key.Render(key))
		buf.WriteString(": ")
		buf.WriteString(rendered)
	}

	for _, f := range h.header(r) {
		field(f[0], f[1])
	}

	h.flatten(r, func(key string, v slog.Value) {
		field(key, h.style.value(v))
	})

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
