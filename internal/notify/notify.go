package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers a user-facing failure message. Fire-and-forget: no
// return value, no acknowledgment.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// LogNotifier surfaces notifications through the structured log. The
// UI layer picks them up from the cart API responses; the log keeps an
// operator-visible trail.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, message string) {
	n.log.Warn("user notification", "message", message)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, string) {}
