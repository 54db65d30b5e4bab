package logutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/jongio/garage-core/httperr"
	"github.com/jongio/garage-core/timeutil"
)

// ComponentKey is the attribute PatternHandler lifts into the line prefix.
const ComponentKey = "component"

// DefaultTimeFormat is the timestamp layout used by PatternHandler.
const DefaultTimeFormat = "2006-01-02T15:04:05.000"

const (
	ansiReset  = "\x1b[0m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

// PatternOptions configures a PatternHandler.
type PatternOptions struct {
	// Level is the minimum level. Defaults to info.
	Level slog.Leveler
	// Timestamp prefixes each line with the record time.
	Timestamp bool
	// TimeFormat defaults to DefaultTimeFormat.
	TimeFormat string
	// Color wraps the timestamp and level in ANSI colors.
	Color bool
}

// PatternHandler is a slog.Handler that writes one human-readable line per
// record:
//
//	[2024-01-15T10:30:00.000 ][INFO] [component] message key=value
//
// Error-valued attributes are also written below the line, indented, with
// their cause chain.
type PatternHandler struct {
	opts      PatternOptions
	w         io.Writer
	mu        *sync.Mutex
	component string
	attrs     []byte
	group     string
}

// NewPatternHandler creates a PatternHandler writing to w.
func NewPatternHandler(w io.Writer, opts *PatternOptions) *PatternHandler {
	h := &PatternHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.TimeFormat == "" {
		h.opts.TimeFormat = DefaultTimeFormat
	}
	return h
}

// Enabled reports whether level meets the handler's minimum.
func (h *PatternHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes r.
func (h *PatternHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	var errs []error

	if h.opts.Color {
		buf.WriteString(levelColor(r.Level))
	}
	if h.opts.Timestamp && !r.Time.IsZero() {
		buf.WriteString(r.Time.Format(h.opts.TimeFormat))
		buf.WriteByte(' ')
	}
	buf.WriteByte('[')
	buf.WriteString(r.Level.String())
	buf.WriteByte(']')
	if h.opts.Color {
		buf.WriteString(ansiReset)
	}

	component := h.component
	var attrs bytes.Buffer
	attrs.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && a.Key == ComponentKey {
			component = a.Value.String()
			return true
		}
		appendAttr(&attrs, h.group, a, &errs)
		return true
	})

	if component != "" {
		buf.WriteString(" [")
		buf.WriteString(component)
		buf.WriteByte(']')
	}
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(attrs.Bytes())

	for _, err := range errs {
		for line := range strings.SplitSeq(httperr.StackWithCause(err), "\n") {
			buf.WriteString("\n    ")
			buf.WriteString(line)
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that includes attrs on every line.
func (h *PatternHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	buf := bytes.NewBuffer(slices.Clone(h.attrs))
	var discard []error
	for _, a := range attrs {
		if h.group == "" && a.Key == ComponentKey {
			h2.component = a.Value.String()
			continue
		}
		appendAttr(buf, h.group, a, &discard)
	}
	h2.attrs = buf.Bytes()
	return &h2
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *PatternHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = qualify(h.group, name)
	return &h2
}

func appendAttr(buf *bytes.Buffer, group string, a slog.Attr, errs *[]error) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = qualify(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, prefix, ga, errs)
		}
		return
	}

	var val string
	switch v := a.Value.Any().(type) {
	case error:
		*errs = append(*errs, v)
		val = v.Error()
	case time.Time:
		val = timeutil.FormatISOUTC(v)
	default:
		val = a.Value.String()
	}

	buf.WriteByte(' ')
	buf.WriteString(qualify(group, a.Key))
	buf.WriteByte('=')
	buf.WriteString(quoteIfNeeded(val))
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiCyan
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// fanoutHandler sends each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("fanout handler: %w", err)
		}
	}
	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// floorLeveler is the higher of a shared level and a fixed minimum.
type floorLeveler struct {
	base  slog.Leveler
	floor slog.Level
}

func (l floorLeveler) Level() slog.Level {
	return max(l.base.Level(), l.floor)
}
