package worker

import (
	"context"
	"log/slog"

	"campusdesk/internal/audit"
)

// Sink receives audit events drained from the inbox.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Worker drains the publisher's fan-out channel into a sink. It runs until
// the context is canceled; sink errors are logged and the event dropped,
// keeping the audit path best-effort end to end.
type Worker struct {
	sink   Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(sink Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit fan-out failed",
					"event_id", event.ID,
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
		}
	}
}
