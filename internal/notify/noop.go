package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded changes. It is used
// when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards changes with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendStatusChange logs and discards a single change.
func (n *NoOpNotifier) SendStatusChange(_ context.Context, change *StatusChange) error {
	n.log.Debug("notification discarded (no backend configured)",
		"creation_id", change.CreationID,
		"from", change.From,
		"to", change.To,
	)
	return nil
}

// SendBatch logs and discards a batch of changes.
func (n *NoOpNotifier) SendBatch(_ context.Context, changes []StatusChange) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"count", len(changes),
	)
	return nil
}
