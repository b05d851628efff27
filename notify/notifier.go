package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notice is one message for the user
type Notice struct {
	Level slog.Level
	Key   Key
	Args  []any
}

// Notifier delivers notices to the user
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Info creates an informational notice
func Info(key Key, args ...any) Notice {
	return Notice{Level: slog.LevelInfo, Key: key, Args: args}
}

// Warn creates a warning notice
func Warn(key Key, args ...any) Notice {
	return Notice{Level: slog.LevelWarn, Key: key, Args: args}
}

// Error creates an error notice
func Error(key Key, args ...any) Notice {
	return Notice{Level: slog.LevelError, Key: key, Args: args}
}

// WriterNotifier prints localized notices, one per line
type WriterNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	loc *Localizer
}

// NewWriterNotifier creates a notifier printing to w in the given language
func NewWriterNotifier(w io.Writer, loc *Localizer) *WriterNotifier {
	return &WriterNotifier{w: w, loc: loc}
}

// Notify implements Notifier
func (n *WriterNotifier) Notify(_ context.Context, notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, n.loc.Text(notice.Key, notice.Args...))
}

// LogNotifier records notices in a structured log
type LogNotifier struct {
	logger *slog.Logger
	loc    *Localizer
}

// NewLogNotifier creates a notifier logging through logger. A nil logger
// discards output.
func NewLogNotifier(logger *slog.Logger, loc *Localizer) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogNotifier{logger: logger, loc: loc}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	n.logger.Log(ctx, notice.Level, n.loc.Text(notice.Key, notice.Args...), "message_key", string(notice.Key))
}

// Recorder keeps every notice it receives
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier
func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Keys returns the keys of the recorded notices in order
func (r *Recorder) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]Key, len(r.notices))
	for i, n := range r.notices {
		keys[i] = n.Key
	}
	return keys
}

type multi []Notifier

func (m multi) Notify(ctx context.Context, n Notice) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

// Multi delivers each notice to every notifier in order
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

// Discard drops every notice
var Discard Notifier = multi(nil)
