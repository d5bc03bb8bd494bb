package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandler is a slog.Handler for human-friendly output when the binary
// is run from a terminal instead of a workflow.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts:  opts,
		mu:    &sync.Mutex{},
		w:     w,
		attrs: []slog.Attr{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= minLevel(h.opts)
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString(h.formatLevel(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, h.formatAttr(nil, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.formatAttr(h.groups, a))
		return true
	})

	if len(attrs) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(attrs, " "))
	}

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  appendAttrs(h.attrs, h.groups, attrs),
		groups: h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  h.attrs,
		groups: appendGroup(h.groups, name),
	}
}

func (h *PrettyHandler) formatLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("[ERROR]")
	case level >= slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case level >= LevelNotice:
		return color.GreenString("[NOTE] ")
	case level >= slog.LevelInfo:
		return color.CyanString("[INFO] ")
	default:
		return color.HiBlackString("[DEBUG]")
	}
}

func (h *PrettyHandler) formatAttr(groups []string, a slog.Attr) string {
	text := attrText(groups, a)

	switch a.Key {
	case "error", "err":
		return color.RedString("%s", text)
	case "ticket_id", "case_status", "issue_number":
		return color.MagentaString("%s", text)
	case "duration_ms":
		return color.GreenString("%s", text)
	default:
		return color.HiBlackString("%s", text)
	}
}

func minLevel(opts *slog.HandlerOptions) slog.Level {
	if opts.Level != nil {
		return opts.Level.Level()
	}
	return slog.LevelWarn
}

// appendAttrs copies attrs so derived handlers never share a backing array.
// Attrs added under a group are stored with the qualified key.
func appendAttrs(existing []slog.Attr, groups []string, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(existing)+len(attrs))
	out = append(out, existing...)
	for _, a := range attrs {
		if len(groups) > 0 {
			a.Key = strings.Join(groups, ".") + "." + a.Key
		}
		out = append(out, a)
	}
	return out
}

func appendGroup(groups []string, name string) []string {
	out := make([]string, len(groups)+1)
	copy(out, groups)
	out[len(groups)] = name
	return out
}

// attrText renders a record attr; stored attrs are already qualified and are
// passed with nil groups.
func attrText(groups []string, a slog.Attr) string {
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return fmt.Sprintf("%s=%s", key, a.Value.Resolve().String())
}
