package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/sethvargo/go-githubactions"
)

// LevelNotice sits between info and warn. In a workflow run it becomes a
// ::notice:: annotation.
const LevelNotice = slog.Level(2)

type contextKey struct{}

var loggerKey = contextKey{}

// Options selects the handler and verbosity for the process logger.
type Options struct {
	Debug   bool
	Verbose bool
	// Action routes records to workflow commands when non-nil.
	Action *githubactions.Action
	// Writer is used by the terminal handler. Defaults to os.Stderr.
	Writer io.Writer
}

func New(opts Options) *slog.Logger {
	if opts.Action != nil {
		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		return slog.New(NewActionsHandler(opts.Action, &slog.HandlerOptions{Level: level}))
	}

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	} else if opts.Verbose {
		level = slog.LevelInfo
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	return slog.New(NewPrettyHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	}))
}

func Initialize(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return WithLogger(ctx, l)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Notice(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
