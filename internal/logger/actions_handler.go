package logger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// ActionsHandler writes records as workflow commands so that warnings,
// notices and errors show up as annotations on the run summary.
type ActionsHandler struct {
	action *githubactions.Action
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

func NewActionsHandler(action *githubactions.Action, opts *slog.HandlerOptions) *ActionsHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}
	return &ActionsHandler{
		action: action,
		opts:   opts,
	}
}

func (h *ActionsHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= minLevel(h.opts)
}

func (h *ActionsHandler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]string, 0, 1+len(h.attrs)+r.NumAttrs())
	parts = append(parts, r.Message)
	for _, a := range h.attrs {
		parts = append(parts, attrText(nil, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, attrText(h.groups, a))
		return true
	})
	line := strings.Join(parts, " ")

	switch {
	case r.Level >= slog.LevelError:
		h.action.Errorf("%s", line)
	case r.Level >= slog.LevelWarn:
		h.action.Warningf("%s", line)
	case r.Level >= LevelNotice:
		h.action.Noticef("%s", line)
	case r.Level >= slog.LevelInfo:
		h.action.Infof("%s", line)
	default:
		h.action.Debugf("%s", line)
	}
	return nil
}

func (h *ActionsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActionsHandler{
		action: h.action,
		opts:   h.opts,
		attrs:  appendAttrs(h.attrs, h.groups, attrs),
		groups: h.groups,
	}
}

func (h *ActionsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ActionsHandler{
		action: h.action,
		opts:   h.opts,
		attrs:  h.attrs,
		groups: appendGroup(h.groups, name),
	}
}
