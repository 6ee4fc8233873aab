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
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler holds the state shared by the colorized handlers.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) prettyHandler {
	return prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h prettyHandler) enabled(level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// withAttrs returns a copy of h that also writes attrs, qualified by the
// current group.
func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	if len(attrs) == 0 {
		return h
	}

	add := attrs
	if h.group != "" {
		add = []slog.Attr{{Key: h.group, Value: slog.GroupValue(attrs...)}}
	}

	h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], add...)

	return h
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	if name == "" {
		return h
	}

	if h.group != "" {
		name = h.group + "." + name
	}

	h.group = name

	return h
}

// header returns the time, level, source and message of r in output order.
// The level is left as a [slog.Level] so that handlers can color it.
func (h prettyHandler) header(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		a := slog.Time(slog.TimeKey, r.Time)
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			out = append(out, a)
		}
	}

	out = append(out, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return append(out, slog.String(slog.MessageKey, r.Message))
}

// body returns the handler attributes followed by the attributes of r.
func (h prettyHandler) body(r slog.Record) []slog.Attr {
	rec := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		rec = append(rec, a)

		return true
	})

	if h.group != "" && len(rec) > 0 {
		rec = []slog.Attr{{Key: h.group, Value: slog.GroupValue(rec...)}}
	}

	return append(h.attrs[:len(h.attrs):len(h.attrs)], rec...)
}

func (h prettyHandler) write(buf *bytes.Buffer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

func levelName(level slog.Level) string {
	return strings.ToUpper(Level(level).String())
}

// writeScalar writes a non-group value in color.
func writeScalar(buf *bytes.Buffer, v slog.Value) {
	var color, text string

	switch v.Kind() {
	case slog.KindString:
		color, text = colorCyan, v.String()
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}
	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = colorBlue, v.Time().Format(time.RFC3339)
	default:
		switch val := v.Any().(type) {
		case slog.Level:
			color, text = levelColor(val), levelName(val)
		case nil:
			color, text = colorGray, "null"
		default:
			color, text = colorCyan, fmt.Sprint(val)
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

// prettyTextHandler implements a colorized text handler for log messages.
// Group attributes are flattened into dotted keys.
type prettyTextHandler struct {
	prettyHandler
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyHandler(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		h.writeAttr(buf, "", a)
	}

	for _, a := range h.body(r) {
		h.writeAttr(buf, "", a)
	}

	buf.WriteByte('\n')

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key == "" {
			key = prefix
		}

		for _, sub := range a.Value.Group() {
			h.writeAttr(buf, key, sub)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	writeScalar(buf, a.Value)
}

// prettyJSONHandler implements a pretty-printed JSON-like handler for log
// messages: one field per line, unquoted, with groups nested.
type prettyJSONHandler struct {
	prettyHandler
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyHandler(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	attrs := append(h.header(r), h.body(r)...)

	first := true

	buf.WriteString("{")
	h.writeFields(buf, attrs, 1, &first)
	buf.WriteString("\n}\n")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeFields(
	buf *bytes.Buffer,
	attrs []slog.Attr,
	depth int,
	first *bool,
) {
	indent := strings.Repeat("  ", depth)

	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		// Inline the fields of unnamed groups.
		if a.Key == "" && a.Value.Kind() == slog.KindGroup {
			h.writeFields(buf, a.Value.Group(), depth, first)

			continue
		}

		if !*first {
			buf.WriteByte(',')
		}

		*first = false

		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			inner := true

			buf.WriteString("{")
			h.writeFields(buf, a.Value.Group(), depth+1, &inner)
			buf.WriteString("\n")
			buf.WriteString(indent)
			buf.WriteString("}")

			continue
		}

		writeScalar(buf, a.Value)
	}
}
