// Package notify composes ports.Notifier implementations.
package notify

import (
	"log/slog"

	"production/internal/core/ports"
)

// Fanout delivers every event to each notifier in order. A panicking notifier
// is logged and skipped so that the others still receive the event.
type Fanout struct {
	notifiers []ports.Notifier
	logger    *slog.Logger
}

func NewFanout(logger *slog.Logger, notifiers ...ports.Notifier) *Fanout {
	return &Fanout{
		notifiers: notifiers,
		logger:    logger.With("component", "notify-fanout"),
	}
}

func (f *Fanout) Emit(event string, payload any) {
	for _, n := range f.notifiers {
		f.emit(n, event, payload)
	}
}

func (f *Fanout) emit(n ports.Notifier, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("notifier panicked", "event", event, "panic", r)
		}
	}()
	n.Emit(event, payload)
}

// Log writes every event to a structured logger at debug level.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "events")}
}

func (l *Log) Emit(event string, payload any) {
	l.logger.Debug("event published", "event", event, "payload", payload)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(string, any) {}
